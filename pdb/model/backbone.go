package model

import (
	"slices"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
)

// BackboneRun is the backbone atoms of one kind of polymer, in structure
// order, and the bonds between consecutive ones.
type BackboneRun struct {
	Atoms []*atom.Atom
	Bonds []*atom.Bond
}

// Backbone has the protein and the nucleic acid backbones.
type Backbone struct {
	Protein BackboneRun
	DNA     BackboneRun
}

var (
	proteinBackbone = []string{"N", "CA", "C"}
	dnaBackbone     = []string{"P", "O5'", "C5'", "C4'", "C3'", "O3'"}
)

// Backbone is built the first time it is asked for.
func (s *Structure) Backbone() *Backbone {
	s.bbOnce.Do(func() {
		s.backbone = &Backbone{
			Protein: backboneRun(s.Atoms, proteinBackbone),
			DNA:     backboneRun(s.Atoms, dnaBackbone),
		}
	})
	return s.backbone
}

// isBackboneBond is true for neighbours in the same residue, or for the
// last atom of one residue and the first of the next (C to N, O3' to P).
func isBackboneBond(names []string, a, b *atom.Atom) bool {
	ai := slices.Index(names, strings.ToUpper(a.Name))
	bi := slices.Index(names, strings.ToUpper(b.Name))
	switch b.ResSeq - a.ResSeq {
	case 0:
		return bi-ai == 1
	case 1:
		return ai-bi == len(names)-1
	}
	return false
}

func backboneRun(atoms []*atom.Atom, names []string) BackboneRun {
	var run BackboneRun
	for _, a := range atoms {
		if a.RecordName != "ATOM" {
			continue
		}
		if slices.Contains(names, strings.ToUpper(a.Name)) && strings.EqualFold(a.Element, a.Name[:1]) {
			run.Atoms = append(run.Atoms, a)
		}
	}
	for i := 0; i+1 < len(run.Atoms); i++ {
		a, b := run.Atoms[i], run.Atoms[i+1]
		if isBackboneBond(names, a, b) {
			run.Bonds = append(run.Bonds, &atom.Bond{A: a, B: b, Type: atom.BondSingle})
		}
	}
	return run
}
