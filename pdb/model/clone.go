package model

import (
	"slices"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
)

// Clone gives a deep copy. Atoms are new objects with the same fields,
// bonds, residues, chains and secondary structure are rebuilt over them.
// The metadata registry is shared, it is read only by then.
func (s *Structure) Clone() (*Structure, error) {
	if !s.IsAssembled() {
		return nil, &PreconditionError{Op: "clone"}
	}
	return s.rebuild(func(string) bool { return true }), nil
}

// CloneWithChains is Clone keeping only the named chains. Helices and
// sheets that start or end in another chain are dropped.
func (s *Structure) CloneWithChains(chains ...string) (*Structure, error) {
	if !s.IsAssembled() {
		return nil, &PreconditionError{Op: "clone with chains"}
	}
	return s.rebuild(func(c string) bool { return slices.Contains(chains, c) }), nil
}

func (s *Structure) rebuild(keep func(chain string) bool) *Structure {
	n := &Structure{
		ID:         s.ID,
		Meta:       s.Meta,
		Component:  s.Component,
		PqrCharges: s.PqrCharges,
	}
	clones := make(map[*atom.Atom]*atom.Atom, len(s.Atoms))
	var chains []*Chain
	for _, id := range s.ChainIDs() {
		if !keep(id) {
			continue
		}
		c := &Chain{ID: id}
		for _, r := range s.Chains[id].Residues {
			ratoms := make([]*atom.Atom, len(r.Atoms))
			for i, a := range r.Atoms {
				ratoms[i] = a.Clone()
				clones[a] = ratoms[i]
			}
			nr := NewResidue(ratoms)
			nr.ModifiedFrom = r.ModifiedFrom
			c.Residues = append(c.Residues, nr)
		}
		chains = append(chains, c)
	}
	n.setChains(chains)

	for _, b := range s.Bonds {
		a1, ok1 := clones[b.A]
		a2, ok2 := clones[b.B]
		if ok1 && ok2 {
			n.Bonds = append(n.Bonds, &atom.Bond{A: a1, B: a2, Type: b.Type})
		}
	}
	for _, m := range s.Modified {
		if keep(m.ID.Chain) {
			n.Modified = append(n.Modified, m)
		}
	}

	var elems []*SecondaryElement
	for _, list := range [][]*SecondaryElement{s.Helices, s.Sheets} {
		for _, e := range list {
			if !keep(e.Start().Chain()) || !keep(e.End().Chain()) {
				continue
			}
			ne := &SecondaryElement{Type: e.Type}
			for _, r := range e.Residues {
				if nr, ok := n.byID[r.ID]; ok {
					ne.Residues = append(ne.Residues, nr)
				}
			}
			if len(ne.Residues) > 0 {
				elems = append(elems, ne)
			}
		}
	}
	n.setSecondary(elems)
	return n
}
