// Package model is the assembled structure: residues, chains, helices
// and sheets built from a flat list of atoms.
package model

import (
	"math"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/geom"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
	"github.com/andrew-torda/pdbstruct/pdb/resname"
)

// SecondaryType is the secondary structure a residue belongs to
type SecondaryType int

const (
	SecondaryUnknown SecondaryType = iota
	Helix
	Sheet
)

func (s SecondaryType) String() string {
	switch s {
	case Helix:
		return "Helix"
	case Sheet:
		return "Sheet"
	}
	return "Unknown"
}

// Residue is a group of atoms with the same chain, number and insertion
// code. The atoms belong to the structure, the residue only points at them.
type Residue struct {
	ID           resid.ID
	Name         string
	Atoms        []*atom.Atom
	Secondary    SecondaryType
	ModifiedFrom string // parent residue name, "" if not modified

	isAmino      bool
	isNucleotide bool
	isWater      bool
	charge       resname.ChargeType
	shortName    string
}

// NewResidue takes the name and identifier from the first atom.
// atoms must not be empty.
func NewResidue(atoms []*atom.Atom) *Residue {
	a := atoms[0]
	name := a.ResName
	return &Residue{
		ID:           resid.FromAtom(a),
		Name:         name,
		Atoms:        atoms,
		isAmino:      resname.IsAmino(name),
		isNucleotide: resname.IsNucleotide(name),
		isWater:      resname.IsWater(name),
		charge:       resname.Charge(name),
		shortName:    resname.ShortName(name),
	}
}

func (r *Residue) IsAmino() bool              { return r.isAmino }
func (r *Residue) IsNucleotide() bool         { return r.isNucleotide }
func (r *Residue) IsWater() bool              { return r.isWater }
func (r *Residue) Charge() resname.ChargeType { return r.charge }
func (r *Residue) ShortName() string          { return r.shortName }
func (r *Residue) Chain() string              { return r.ID.Chain }
func (r *Residue) IsModified() bool           { return r.ModifiedFrom != "" }

// String is NAME ID, for example "ALA 12 A"
func (r *Residue) String() string { return r.Name + " " + r.ID.String() }

func (r *Residue) findAtom(name string) *atom.Atom {
	for _, a := range r.Atoms {
		if strings.EqualFold(strings.TrimSpace(a.Name), name) {
			return a
		}
	}
	return nil
}

// CAlpha is the first atom called CA, only for amino acids.
func (r *Residue) CAlpha() *atom.Atom {
	if !r.isAmino {
		return nil
	}
	return r.findAtom("CA")
}

// CarbonylOxygen is the first atom called O
func (r *Residue) CarbonylOxygen() *atom.Atom { return r.findAtom("O") }

// Distance is the smallest distance between an atom of r and an atom
// of other.
func (r *Residue) Distance(other *Residue) float64 {
	min2 := math.MaxFloat64
	for _, a := range r.Atoms {
		for _, b := range other.Atoms {
			if d := geom.Dist2(a.Pos, b.Pos); d < min2 {
				min2 = d
			}
		}
	}
	return math.Sqrt(min2)
}
