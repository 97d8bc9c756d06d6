package mmcif

import (
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/andrew-torda/pdbstruct/pdb/meta"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
)

// RecordType says what a category is used for. Categories that are
// not in the table are Unknown and skipped.
type RecordType int

const (
	Unknown RecordType = iota
	AtomSite
	AtomComp
	BondComp
	Helices
	Sheets
	Revisions
	Authors
	Reflns
	Refine
	Keywords
	ExpMethod
	Organism
	PolymerType
	EntityType
	ModifiedResidues
)

var recordNames = [...]string{"Unknown", "AtomSite", "AtomComp", "BondComp",
	"Helices", "Sheets", "Revisions", "Authors", "Reflns", "Refine", "Keywords",
	"ExpMethod", "Organism", "PolymerType", "EntityType", "ModifiedResidues"}

func (t RecordType) String() string {
	if t < 0 || int(t) >= len(recordNames) {
		return recordNames[Unknown]
	}
	return recordNames[t]
}

var recordTypes = map[string]RecordType{
	"_atom_site":                   AtomSite,
	"_chem_comp_atom":              AtomComp,
	"_chem_comp_bond":              BondComp,
	"_struct_conf":                 Helices,
	"_struct_sheet_range":          Sheets,
	"_database_PDB_rev":            Revisions,
	"_pdbx_audit_revision_history": Revisions,
	"_audit_author":                Authors,
	"_reflns":                      Reflns,
	"_refine":                      Refine,
	"_struct_keywords":             Keywords,
	"_exptl":                       ExpMethod,
	"_entity_src_gen":              Organism,
	"_entity_src_nat":              Organism,
	"_entity_poly":                 PolymerType,
	"_entity":                      EntityType,
	"_pdbx_struct_mod_residue":     ModifiedResidues,
}

// RecordTypeOf looks up a category name like _atom_site
func RecordTypeOf(cat string) RecordType { return recordTypes[cat] }

// splitTag breaks _atom_site.Cartn_x into _atom_site and Cartn_x
func splitTag(s string) (cat, item string) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

type (
	singleFn func(r *reader, row *Row) error
	loopFn   func(r *reader, rows []*Row) error
)

// handler is what to do with a lone record and with a loop. A nil loop
// means the loop is skipped, a nil single means the record is ignored.
type handler struct {
	loop   loopFn
	single singleFn
}

// rowError remembers which row of a loop broke
type rowError struct {
	line int
	err  error
}

func (e *rowError) Error() string { return e.err.Error() }
func (e *rowError) Unwrap() error { return e.err }

// eachRow makes a loop handler out of a single row handler
func eachRow(f singleFn) loopFn {
	return func(r *reader, rows []*Row) error {
		for _, row := range rows {
			if err := f(r, row); err != nil {
				return &rowError{row.line, err}
			}
		}
		return nil
	}
}

// firstRow is for categories that only make sense once
func firstRow(f singleFn) loopFn {
	return func(r *reader, rows []*Row) error {
		if len(rows) == 0 {
			return nil
		}
		if err := f(r, rows[0]); err != nil {
			return &rowError{rows[0].line, err}
		}
		return nil
	}
}

func both(f singleFn) handler { return handler{loop: eachRow(f), single: f} }

func ignoreRow(*reader, *Row) error    { return nil }
func ignoreRows(*reader, []*Row) error { return nil }

// handlers has no loop for AtomSite. The atom site loop is read row by
// row by its own state function.
var handlers = map[RecordType]handler{
	AtomSite:         {single: atomSite},
	AtomComp:         both(compAtom),
	BondComp:         both(compBond),
	Helices:          both(secondary(model.Helix)),
	Sheets:           both(secondary(model.Sheet)),
	Revisions:        {loop: revisionLoop, single: revision},
	Authors:          {loop: authorLoop, single: author},
	Reflns:           {loop: ignoreRows, single: ignoreRow},
	Refine:           {loop: firstRow(refine), single: refine},
	Keywords:         {loop: firstRow(keywords), single: keywords},
	ExpMethod:        {loop: expMethodLoop, single: expMethod},
	Organism:         both(organism),
	PolymerType:      both(polymer),
	EntityType:       both(entity),
	ModifiedResidues: both(modified),
}

func secondary(t model.SecondaryType) singleFn {
	return func(r *reader, row *Row) error {
		d, err := secondaryFromRow(row, t)
		if err != nil {
			return err
		}
		r.buf.Secondary = append(r.buf.Secondary, d)
		return nil
	}
}

func secondaryFromRow(row *Row, t model.SecondaryType) (model.SecondaryDescriptor, error) {
	var d model.SecondaryDescriptor
	bSeq, err := row.Int("beg_auth_seq_id")
	if err != nil {
		return d, err
	}
	bChain, err := row.String("beg_auth_asym_id")
	if err != nil {
		return d, err
	}
	eSeq, err := row.Int("end_auth_seq_id")
	if err != nil {
		return d, err
	}
	eChain, err := row.String("end_auth_asym_id")
	if err != nil {
		return d, err
	}
	d.Type = t
	d.Start = resid.New(bSeq, bChain, row.Char("pdbx_beg_PDB_ins_code", ' '))
	d.End = resid.New(eSeq, eChain, row.Char("pdbx_end_PDB_ins_code", ' '))
	return d, nil
}

const revisionLayout = "2006-1-2"

// revisionDate gets the date text from either of the revision categories
func revisionDate(row *Row) (string, error) {
	if row.h.cat == "_pdbx_audit_revision_history" {
		return row.String("revision_date")
	}
	if _, err := row.String("num"); err != nil {
		return "", err
	}
	return row.String("date")
}

// addRevisions keeps the dates that parse. Released is the earliest
// date, LatestRevision the most recent.
func (r *reader) addRevisions(rows []*Row) error {
	for _, row := range rows {
		s, err := revisionDate(row)
		if err != nil {
			return &rowError{row.line, err}
		}
		if t, err := time.Parse(revisionLayout, s); err == nil {
			r.revisions = append(r.revisions, t)
		}
	}
	dates := slices.Clone(r.revisions)
	slices.SortFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
	r.buf.Meta.SetRevisions(dates)
	return nil
}

func revision(r *reader, row *Row) error        { return r.addRevisions([]*Row{row}) }
func revisionLoop(r *reader, rows []*Row) error { return r.addRevisions(rows) }

func author(r *reader, row *Row) error {
	name, err := row.String("name")
	if err != nil {
		return err
	}
	r.buf.Meta.Authors = []string{name}
	return nil
}

func authorLoop(r *reader, rows []*Row) error {
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		name, err := row.String("name")
		if err != nil {
			return &rowError{row.line, err}
		}
		names = append(names, name)
	}
	r.buf.Meta.Authors = names
	return nil
}

func refine(r *reader, row *Row) error {
	res, err := row.OptFloat("ls_d_res_high")
	if err != nil {
		return err
	}
	r.buf.Meta.Resolution = res
	return nil
}

// keywords merges the free text with pdbx_keywords, comma separated,
// trimmed and without repeats.
func keywords(r *reader, row *Row) error {
	text, err := row.String("text")
	if err != nil {
		return err
	}
	if extra, ok := row.Opt("pdbx_keywords"); ok && extra != "" {
		text += "," + extra
	}
	kw := []string{}
	for _, k := range strings.Split(text, ",") {
		if k = strings.TrimSpace(k); k != "" && !slices.Contains(kw, k) {
			kw = append(kw, k)
		}
	}
	r.buf.Meta.Keywords = kw
	return nil
}

func expMethod(r *reader, row *Row) error {
	m, err := row.String("method")
	if err != nil {
		return err
	}
	r.buf.Meta.ExperimentMethod = m
	return nil
}

// expMethodLoop is for hybrid methods, like X-RAY and NEUTRON together.
func expMethodLoop(r *reader, rows []*Row) error {
	var methods []string
	for _, row := range rows {
		m, err := row.String("method")
		if err != nil {
			return &rowError{row.line, err}
		}
		if !slices.Contains(methods, m) {
			methods = append(methods, m)
		}
	}
	r.buf.Meta.ExperimentMethod = strings.Join(methods, ", ")
	return nil
}

func entity(r *reader, row *Row) error {
	id, err := row.Int("id")
	if err != nil {
		return err
	}
	weight, err := row.OptFloat("formula_weight")
	if err != nil {
		return err
	}
	n, err := row.IntOr("pdbx_number_of_molecules", 1)
	if err != nil {
		return err
	}
	r.buf.Meta.PutEntity(meta.Entity{
		ID:           id,
		Type:         meta.ParseEntityType(row.StringOr("type", "")),
		Source:       meta.ParseEntitySource(row.StringOr("src_method", "")),
		Weight:       weight,
		NumMolecules: n,
		ECNumber:     row.StringOr("pdbx_ec", ""),
	})
	return nil
}

// organism reads _entity_src_gen (genetically modified, with a host)
// or _entity_src_nat (taken from the organism itself).
func organism(r *reader, row *Row) error {
	id, err := row.Int("entity_id")
	if err != nil {
		return err
	}
	o := meta.Organism{EntityID: id}
	if row.h.cat == "_entity_src_nat" {
		o.Name = row.StringOr("pdbx_organism_scientific", "")
		o.TaxonomyID = row.StringOr("pdbx_ncbi_taxonomy_id", "")
		o.Genus = row.StringOr("genus", "")
	} else {
		o.Name = row.StringOr("pdbx_gene_src_scientific_name", "")
		o.TaxonomyID = row.StringOr("pdbx_gene_src_ncbi_taxonomy_id", "")
		o.Genus = row.StringOr("gene_src_genus", "")
		o.HostName = row.StringOr("pdbx_host_org_scientific_name", "")
		o.HostTaxonomyID = row.StringOr("pdbx_host_org_ncbi_taxonomy_id", "")
		o.HostGenus = row.StringOr("host_org_genus", "")
	}
	r.buf.Meta.PutOrganism(o)
	return nil
}

func polymer(r *reader, row *Row) error {
	id, err := row.Int("entity_id")
	if err != nil {
		return err
	}
	t, err := row.String("type")
	if err != nil {
		return err
	}
	chains := strings.Split(row.StringOr("pdbx_strand_id", ""), ",")
	for i := range chains {
		chains[i] = strings.TrimSpace(chains[i])
	}
	r.buf.Meta.PutPolymer(meta.Polymer{EntityID: id, Type: meta.ParsePolymerType(t), Chains: chains})
	return nil
}

// modified only keeps rows that say what the residue was modified from
func modified(r *reader, row *Row) error {
	n, err := row.IntOr("auth_seq_id", 0)
	if err != nil {
		return err
	}
	from := strings.TrimSpace(row.StringOr("parent_comp_id", ""))
	if from == "" {
		return nil
	}
	id := resid.New(n, row.StringOr("auth_asym_id", ""), row.Char("PDB_ins_code", ' '))
	r.buf.Modified = append(r.buf.Modified, model.ModifiedDescriptor{ID: id, ModifiedFrom: from})
	return nil
}

// lineOf digs the row line out of an error from a loop handler
func lineOf(err error, def int) (int, error) {
	var re *rowError
	if errors.As(err, &re) {
		return re.line, re.err
	}
	return def, err
}
