package mmcif

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
)

// atomFromRow reads one _atom_site row. It also returns the model number,
// which is kept as text.
func atomFromRow(row *Row) (*atom.Atom, string, error) {
	id, err := row.Int("id")
	if err != nil {
		return nil, "", err
	}
	pos, err := xyz(row, "Cartn_x", "Cartn_y", "Cartn_z")
	if err != nil {
		return nil, "", err
	}
	element, err := row.String("type_symbol")
	if err != nil {
		return nil, "", err
	}
	name, err := row.String("auth_atom_id")
	if err != nil {
		return nil, "", err
	}
	entity, err := row.Int("label_entity_id")
	if err != nil {
		return nil, "", err
	}
	resName, err := row.String("auth_comp_id")
	if err != nil {
		return nil, "", err
	}
	seq, err := row.Int("auth_seq_id")
	if err != nil {
		return nil, "", err
	}
	occ, err := row.FloatOr("occupancy", 1)
	if err != nil {
		return nil, "", err
	}
	bfac, err := row.FloatOr("B_iso_or_equiv", 0)
	if err != nil {
		return nil, "", err
	}
	chain := strings.TrimSpace(row.StringOr("auth_asym_id", ""))
	a := &atom.Atom{
		ID:         id,
		Serial:     id,
		Element:    element,
		Name:       name,
		RecordName: row.StringOr("group_PDB", "HETATM"),
		AltLoc:     row.Char("label_alt_id", ' '),
		ResName:    resName,
		Chain:      chain,
		ResSeq:     seq,
		ICode:      row.Char("pdbx_PDB_ins_code", ' '),
		EntityID:   entity,
		Occupancy:  occ,
		TempFactor: bfac,
		Charge:     row.StringOr("pdbx_formal_charge", ""),
		Pos:        pos,
	}
	return a, row.StringOr("pdbx_PDB_model_num", " "), nil
}

// stateAtomSite reads the _atom_site loop. As soon as a second model
// number turns up, the rest of the loop is skipped line by line
// without being split.
func stateAtomSite(r *reader) stateFn {
	r.hasAtomSite = true
	models := make(map[string]bool)
	for r.Ok {
		// values left over from the last line still make up rows
		if len(r.pending) == 0 && isSpecial(r.cbytes()) {
			break
		}
		if len(models) > 1 {
			r.cscan()
			continue
		}
		row, ok := r.getRow(r.hdr)
		if !ok {
			break
		}
		a, mdl, err := atomFromRow(row)
		if err != nil {
			r.failAt(row.line, err.Error())
			return nil
		}
		models[mdl] = true
		if len(models) > 1 {
			r.buf.Warn(warn.NewOnlyFirstModel(row.line))
			r.pending = r.pending[:0]
			continue
		}
		r.buf.Line = row.line
		r.buf.AddAtom(a)
	}
	return stateTop
}

// atomSite is a lone _atom_site record, a file with one atom.
func atomSite(r *reader, row *Row) error {
	r.hasAtomSite = true
	a, _, err := atomFromRow(row)
	if err != nil {
		return err
	}
	r.buf.Line = row.line
	r.buf.AddAtom(a)
	return nil
}

// compAtom is one atom of a chemical component. The model coordinates
// are used if they are all there, then the ideal ones, then the origin.
func compAtom(r *reader, row *Row) error {
	resName, err := row.String("comp_id")
	if err != nil {
		return err
	}
	name, err := row.String("atom_id")
	if err != nil {
		return err
	}
	element, err := row.String("type_symbol")
	if err != nil {
		return err
	}
	pos, ok, err := optXyz(row, "model_Cartn_x", "model_Cartn_y", "model_Cartn_z")
	if err != nil {
		return err
	}
	if !ok {
		if pos, _, err = optXyz(row, "pdbx_model_Cartn_x_ideal", "pdbx_model_Cartn_y_ideal", "pdbx_model_Cartn_z_ideal"); err != nil {
			return err
		}
	}
	serial := len(r.compAtoms) + 1
	r.compAtoms = append(r.compAtoms, &atom.Atom{
		ID:         serial,
		Serial:     serial,
		Element:    element,
		Name:       name,
		RecordName: "HETATM",
		AltLoc:     ' ',
		ResName:    resName,
		ResSeq:     1,
		ICode:      ' ',
		EntityID:   1,
		Occupancy:  1,
		Pos:        pos,
	})
	return nil
}

func xyz(row *Row, x, y, z string) (cmmn.Xyz, error) {
	var v [3]float64
	for i, name := range []string{x, y, z} {
		f, err := row.Float(name)
		if err != nil {
			return cmmn.Xyz{}, err
		}
		v[i] = f
	}
	return cmmn.Xyz{X: v[0], Y: v[1], Z: v[2]}, nil
}

// optXyz is false, and the origin, unless all three values are there
func optXyz(row *Row, x, y, z string) (cmmn.Xyz, bool, error) {
	var v [3]float64
	for i, name := range []string{x, y, z} {
		f, err := row.OptFloat(name)
		if err != nil {
			return cmmn.Xyz{}, false, err
		}
		if f == nil {
			return cmmn.Xyz{}, false, nil
		}
		v[i] = *f
	}
	return cmmn.Xyz{X: v[0], Y: v[1], Z: v[2]}, true, nil
}

// compBondRow is a bond between two component atoms, by name
type compBondRow struct {
	a, b  string
	order string
}

func compBond(r *reader, row *Row) error {
	a, err := row.String("atom_id_1")
	if err != nil {
		return err
	}
	b, err := row.String("atom_id_2")
	if err != nil {
		return err
	}
	order, err := row.String("value_order")
	if err != nil {
		return err
	}
	r.compBonds = append(r.compBonds, compBondRow{a, b, order})
	return nil
}

func bondType(order string) atom.BondType {
	switch strings.ToLower(order) {
	case "doub", "delo":
		return atom.BondDouble
	case "trip":
		return atom.BondTriple
	case "arom":
		return atom.BondAromatic
	}
	return atom.BondSingle
}

// componentBonds joins component atoms by name. Names have to be unique.
func componentBonds(atoms []*atom.Atom, rows []compBondRow) ([]*atom.Bond, error) {
	byName := make(map[string]*atom.Atom, len(atoms))
	for _, a := range atoms {
		if _, ok := byName[a.Name]; ok {
			return nil, fmt.Errorf("Duplicate atom name '%s'.", a.Name)
		}
		byName[a.Name] = a
	}
	bonds := make([]*atom.Bond, 0, len(rows))
	for _, row := range rows {
		a, ok := byName[row.a]
		if !ok {
			return nil, fmt.Errorf("Bonds - cannot find atom with name '%s'.", row.a)
		}
		b, ok := byName[row.b]
		if !ok {
			return nil, fmt.Errorf("Bonds - cannot find atom with name '%s'.", row.b)
		}
		bonds = append(bonds, &atom.Bond{A: a, B: b, Type: bondType(row.order)})
	}
	return bonds, nil
}
