package model

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/geom"
	"github.com/andrew-torda/pdbstruct/pdb/meta"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
)

// maxConectBond is the longest CONECT bond we accept without a warning
const maxConectBond = 4.0

// ConectRecord is one pair from a CONECT line, by atom id.
type ConectRecord struct {
	From, To int
	Line     int
}

// Input is what a reader hands over once it has finished the file.
type Input struct {
	ID         string
	Atoms      []*atom.Atom
	Bonds      []*atom.Bond // bonds given explicitly, as in component files
	Conect     []ConectRecord
	Secondary  []SecondaryDescriptor
	Modified   []ModifiedDescriptor
	Meta       *meta.Metadata
	Component  bool
	PqrCharges bool
	AllAltLocs bool // keep every alternate location, not just the first
}

// Structure is an assembled model. Residues are in chain, number,
// insertion code order and Atoms follow the residues.
type Structure struct {
	ID         string
	Atoms      []*atom.Atom
	Bonds      []*atom.Bond
	Residues   []*Residue
	Chains     map[string]*Chain
	Helices    []*SecondaryElement
	Sheets     []*SecondaryElement
	Modified   []ModifiedDescriptor
	Meta       *meta.Metadata
	Component  bool // built from a chemical component file
	PqrCharges bool

	assembled bool
	byID      map[resid.ID]*Residue
	bbOnce    sync.Once
	backbone  *Backbone
}

// PreconditionError is returned when cloning something that was never
// assembled.
type PreconditionError struct {
	Op string
}

func (e *PreconditionError) Error() string {
	return e.Op + ": the source must be an assembled structure"
}

// IsAssembled says if s came from Assemble or a clone
func (s *Structure) IsAssembled() bool { return s != nil && s.assembled }

// ResidueByID looks up a residue. Missing residues are not an error.
func (s *Structure) ResidueByID(id resid.ID) (*Residue, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// ChainIDs gives the chain identifiers in order
func (s *Structure) ChainIDs() []string {
	ids := make([]string, 0, len(s.Chains))
	for id := range s.Chains {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ModifiedResidues are the residues that a modified-residue record
// could be matched to.
func (s *Structure) ModifiedResidues() []*Residue {
	var ret []*Residue
	for _, r := range s.Residues {
		if r.IsModified() {
			ret = append(ret, r)
		}
	}
	return ret
}

// Assemble groups atoms into residues and chains, then attaches bonds,
// modified residues and secondary structure. The warnings are things
// worth telling a user, none of them stop the assembly.
func Assemble(in Input) (*Structure, []warn.Warning) {
	chains, warnings := groupChains(in.Atoms, in.AllAltLocs)
	s := &Structure{
		ID:         in.ID,
		Modified:   slices.Clone(in.Modified),
		Meta:       in.Meta,
		Component:  in.Component,
		PqrCharges: in.PqrCharges,
	}
	if s.Meta == nil {
		s.Meta = meta.New()
	}
	s.setChains(chains)

	kept := make(map[*atom.Atom]bool, len(s.Atoms))
	for _, a := range s.Atoms {
		kept[a] = true
	}
	seen := make(map[atom.BondID]bool)
	for _, b := range in.Bonds {
		if kept[b.A] && kept[b.B] && !seen[b.ID()] {
			seen[b.ID()] = true
			s.Bonds = append(s.Bonds, b)
		}
	}
	conectWarnings := s.addConect(in.Conect, seen)

	s.applyModified()
	s.setSecondary(buildSecondary(s.Residues, in.Secondary))

	var ret []warn.Warning
	ret = append(ret, warnings.names...)
	ret = append(ret, conectWarnings...)
	ret = append(ret, warnings.altLocs...)
	return s, ret
}

type groupWarnings struct {
	names, altLocs []warn.Warning
}

type residueKey struct {
	number int
	icode  byte
}

// groupChains does steps 1 to 3: chains in first seen order, residues
// within a chain by number and insertion code, then both get sorted.
func groupChains(atoms []*atom.Atom, allAltLocs bool) ([]*Chain, groupWarnings) {
	var gw groupWarnings
	type chainGroup struct {
		id    string
		order []residueKey
		res   map[residueKey][]*atom.Atom
	}
	var groups []*chainGroup
	byChain := make(map[string]*chainGroup)
	for _, a := range atoms {
		id := resid.FromAtom(a)
		g, ok := byChain[id.Chain]
		if !ok {
			g = &chainGroup{id: id.Chain, res: make(map[residueKey][]*atom.Atom)}
			byChain[id.Chain] = g
			groups = append(groups, g)
		}
		k := residueKey{id.Number, id.ICode}
		if _, ok := g.res[k]; !ok {
			g.order = append(g.order, k)
		}
		g.res[k] = append(g.res[k], a)
	}

	chains := make([]*Chain, 0, len(groups))
	for _, g := range groups {
		c := &Chain{ID: g.id}
		for _, k := range g.order {
			ratoms, skipped := g.res[k], []byte(nil)
			if !allAltLocs {
				ratoms, skipped = selectAltLoc(ratoms)
			}
			r := NewResidue(ratoms)
			if names := residueNames(ratoms); len(names) > 1 {
				msg := fmt.Sprintf("Atoms in the residue contain multiple names (%s). Check chain ID.",
					strings.Join(names, ", "))
				gw.names = append(gw.names, warn.NewResidue(r.Name, r.ID, msg, warn.NoLine, warn.ResidueMultipleNames))
			}
			if len(skipped) > 0 {
				s := make([]string, len(skipped))
				for i, b := range skipped {
					s[i] = string(b)
				}
				msg := fmt.Sprintf("Skipped alternate location(s) '%s'.", strings.Join(s, ", "))
				gw.altLocs = append(gw.altLocs, warn.NewResidue(r.Name, r.ID, msg, warn.NoLine, warn.ResidueIgnoredAltLoc))
			}
			c.Residues = append(c.Residues, r)
		}
		slices.SortStableFunc(c.Residues, func(a, b *Residue) int {
			if d := cmp.Compare(a.ID.Number, b.ID.Number); d != 0 {
				return d
			}
			return cmp.Compare(a.ID.ICode, b.ID.ICode)
		})
		chains = append(chains, c)
	}
	slices.SortFunc(chains, func(a, b *Chain) int { return strings.Compare(a.ID, b.ID) })
	return chains, gw
}

// selectAltLoc keeps atoms without an alternate location and those of
// the first location in sort order. The others come back as skipped.
func selectAltLoc(atoms []*atom.Atom) ([]*atom.Atom, []byte) {
	var locs []byte
	for _, a := range atoms {
		if l := a.AltLoc; l != ' ' && l != 0 && !slices.Contains(locs, l) {
			locs = append(locs, l)
		}
	}
	if len(locs) < 2 {
		return atoms, nil
	}
	slices.Sort(locs)
	first := locs[0]
	kept := make([]*atom.Atom, 0, len(atoms))
	for _, a := range atoms {
		if a.AltLoc == ' ' || a.AltLoc == 0 || a.AltLoc == first {
			kept = append(kept, a)
		}
	}
	return kept, locs[1:]
}

// residueNames gives the distinct residue names, sorted
func residueNames(atoms []*atom.Atom) []string {
	var names []string
	for _, a := range atoms {
		if !slices.Contains(names, a.ResName) {
			names = append(names, a.ResName)
		}
	}
	slices.Sort(names)
	return names
}

// setChains fills in the chain map, residue list, atom list and the
// residue lookup table from sorted chains.
func (s *Structure) setChains(chains []*Chain) {
	s.Chains = make(map[string]*Chain, len(chains))
	s.Residues = s.Residues[:0]
	s.Atoms = s.Atoms[:0]
	s.byID = make(map[resid.ID]*Residue)
	for _, c := range chains {
		s.Chains[c.ID] = c
		for _, r := range c.Residues {
			s.Residues = append(s.Residues, r)
			s.Atoms = append(s.Atoms, r.Atoms...)
			s.byID[r.ID] = r
		}
	}
	s.assembled = true
}

// addConect turns CONECT pairs into bonds. Pairs with a missing atom
// are dropped quietly. Bonds involving a metal are metallic.
func (s *Structure) addConect(recs []ConectRecord, seen map[atom.BondID]bool) []warn.Warning {
	if len(recs) == 0 {
		return nil
	}
	byID := make(map[int]*atom.Atom, len(s.Atoms))
	for _, a := range s.Atoms {
		byID[a.ID] = a
	}
	var warnings []warn.Warning
	for _, c := range recs {
		a, okA := byID[c.From]
		b, okB := byID[c.To]
		if !okA || !okB || a == b {
			continue
		}
		bond := &atom.Bond{A: a, B: b, Type: atom.BondSingle}
		if atom.IsMetal(a.Element) || atom.IsMetal(b.Element) {
			bond.Type = atom.BondMetallic
		}
		if seen[bond.ID()] {
			continue
		}
		seen[bond.ID()] = true
		s.Bonds = append(s.Bonds, bond)
		if geom.Dist(a.Pos, b.Pos) > maxConectBond {
			warnings = append(warnings, warn.NewConectBondLength(a, b, c.Line))
		}
	}
	return warnings
}

func (s *Structure) applyModified() {
	for _, m := range s.Modified {
		if r, ok := s.byID[m.ID]; ok {
			r.ModifiedFrom = m.ModifiedFrom
		}
	}
}

// setSecondary splits the elements into helices and sheets and tags
// their residues.
func (s *Structure) setSecondary(elems []*SecondaryElement) {
	s.Helices, s.Sheets = nil, nil
	for _, e := range elems {
		e.tag()
		if e.Type == Helix {
			s.Helices = append(s.Helices, e)
		} else {
			s.Sheets = append(s.Sheets, e)
		}
	}
}

// buildSecondary walks the residues in order against the descriptors
// sorted by start. Descriptors that match no residue, or end before
// they start, are skipped.
func buildSecondary(residues []*Residue, descs []SecondaryDescriptor) []*SecondaryElement {
	if len(descs) == 0 {
		return nil
	}
	sorted := slices.Clone(descs)
	slices.SortStableFunc(sorted, func(a, b SecondaryDescriptor) int { return resid.Compare(a.Start, b.Start) })

	var elems []*SecondaryElement
	di := 0
	for i := 0; i < len(residues) && di < len(sorted); {
		cur := sorted[di]
		id := residues[i].ID
		switch {
		case resid.Compare(id, cur.End) > 0:
			di++
		case resid.Compare(id, cur.Start) >= 0:
			var run []*Residue
			for i < len(residues) && resid.Compare(residues[i].ID, cur.End) <= 0 {
				run = append(run, residues[i])
				i++
			}
			elems = append(elems, &SecondaryElement{Type: cur.Type, Residues: run})
			di++
		default:
			i++
		}
	}
	return elems
}
