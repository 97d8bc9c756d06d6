// Package atom has the atom records read from coordinate files and
// the small interface the rest of the pdb packages use to ask an atom
// about its residue, chain and name.
package atom

import (
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
	"github.com/andrew-torda/pdbstruct/pdb/resname"
)

// FieldSource is anything that can answer the PDB questions about
// an atom. Atoms that did not come from a PDB/mmCIF file answer with
// defaults.
type FieldSource interface {
	AtomID() int
	ElementSymbol() string
	Position() cmmn.Xyz
	PdbRecordName() string
	PdbName() string
	PdbChain() string
	PdbResSeq() int
	PdbInsCode() byte
	PdbResName() string
	PdbAltLoc() byte
	PdbEntityID() int
}

// Atom is one ATOM or HETATM record
type Atom struct {
	ID         int // unique within a structure, usually the serial number
	Serial     int
	Element    string
	Name       string
	RecordName string
	AltLoc     byte
	ResName    string
	Chain      string
	ResSeq     int
	ICode      byte
	EntityID   int
	Occupancy  float64
	TempFactor float64
	SegID      string
	Charge     string
	Pos        cmmn.Xyz
}

func (a *Atom) AtomID() int           { return a.ID }
func (a *Atom) ElementSymbol() string { return a.Element }
func (a *Atom) Position() cmmn.Xyz    { return a.Pos }
func (a *Atom) PdbRecordName() string { return a.RecordName }
func (a *Atom) PdbName() string       { return a.Name }
func (a *Atom) PdbChain() string      { return a.Chain }
func (a *Atom) PdbResSeq() int        { return a.ResSeq }
func (a *Atom) PdbInsCode() byte      { return a.ICode }
func (a *Atom) PdbResName() string    { return a.ResName }
func (a *Atom) PdbAltLoc() byte       { return a.AltLoc }
func (a *Atom) PdbEntityID() int      { return a.EntityID }

// Clone gives a new atom with the same fields.
func (a *Atom) Clone() *Atom {
	c := *a
	return &c
}

// Plain is an atom that only knows its element and position,
// for example from a mol2 or sdf file.
type Plain struct {
	ID      int
	Element string
	Pos     cmmn.Xyz
	Amino   bool // mol2 substructure says it is an amino acid
}

func (p *Plain) AtomID() int           { return p.ID }
func (p *Plain) ElementSymbol() string { return p.Element }
func (p *Plain) Position() cmmn.Xyz    { return p.Pos }
func (p *Plain) PdbName() string       { return p.Element }
func (p *Plain) PdbChain() string      { return "" }
func (p *Plain) PdbResSeq() int        { return 0 }
func (p *Plain) PdbInsCode() byte      { return ' ' }
func (p *Plain) PdbResName() string    { return "UNK" }
func (p *Plain) PdbAltLoc() byte       { return ' ' }
func (p *Plain) PdbEntityID() int      { return 1 }

func (p *Plain) PdbRecordName() string {
	if p.Amino {
		return "ATOM"
	}
	return "HETATM"
}

// ToAtom fills out a full record using the defaults for anything the
// plain atom does not know. Occupancy 0 and temperature factor 1 are
// what the PDB writers of other formats use.
func ToAtom(f FieldSource) *Atom {
	if a, ok := f.(*Atom); ok {
		return a
	}
	return &Atom{
		ID:         f.AtomID(),
		Serial:     f.AtomID(),
		Element:    f.ElementSymbol(),
		Name:       f.PdbName(),
		RecordName: f.PdbRecordName(),
		AltLoc:     f.PdbAltLoc(),
		ResName:    f.PdbResName(),
		Chain:      f.PdbChain(),
		ResSeq:     f.PdbResSeq(),
		ICode:      f.PdbInsCode(),
		EntityID:   f.PdbEntityID(),
		Occupancy:  0,
		TempFactor: 1,
		Pos:        f.Position(),
	}
}

var backboneNames = map[string]bool{
	"C": true, "N": true, "O": true, "H": true, "CA": true,
	"P": true, "O1P": true, "O2P": true, "OP1": true, "OP2": true,
	"O5'": true, "C5'": true, "C4'": true, "O4'": true, "C1'": true,
	"C2'": true, "C3'": true, "O3'": true, "O2'": true,
}

// IsBackboneName says if an atom name belongs to the protein or
// nucleic acid backbone.
func IsBackboneName(name string) bool {
	return backboneNames[strings.ToUpper(name)]
}

// IsBackbone is IsBackboneName for an atom
func IsBackbone(f FieldSource) bool { return IsBackboneName(f.PdbName()) }

// IsWater looks at the residue name
func IsWater(f FieldSource) bool { return resname.IsWater(f.PdbResName()) }

// IsHetAtom is true for HETATM records and for anything that is not
// part of a standard amino acid.
func IsHetAtom(f FieldSource) bool {
	return f.PdbRecordName() == "HETATM" || !resname.IsAmino(f.PdbResName())
}
