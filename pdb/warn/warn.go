// Package warn has the non-fatal problems a reader can report. A file
// with warnings still gives a structure.
package warn

import (
	"fmt"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/geom"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
)

// NoLine is the line number of a warning not tied to an input line
const NoLine = -1

// Warning is what readers collect
type Warning interface {
	Message() string
	Line() int
	Header() string
	String() string
}

// Base is a message and the line where it happened.
type Base struct {
	Msg    string
	LineNo int
}

func (b Base) Message() string { return b.Msg }
func (b Base) Line() int       { return b.LineNo }
func (b Base) Header() string  { return "" }
func (b Base) String() string  { return format("", b) }

func format(header string, b Base) string {
	switch {
	case header != "" && b.LineNo >= 0:
		return fmt.Sprintf("%s, line %d: %s", header, b.LineNo, b.Msg)
	case header != "":
		return fmt.Sprintf("%s: %s", header, b.Msg)
	case b.LineNo >= 0:
		return fmt.Sprintf("Line %d: %s", b.LineNo, b.Msg)
	}
	return b.Msg
}

// New is a generic warning
func New(msg string, line int) Base { return Base{Msg: msg, LineNo: line} }

// OnlyFirstModel is recorded once per file with more than one model.
type OnlyFirstModel struct{ Base }

func NewOnlyFirstModel(line int) OnlyFirstModel {
	return OnlyFirstModel{Base{"Only the first model was loaded (the input contains multiple models).", line}}
}

// MultipleStructures is recorded when a second data_ block shows up
type MultipleStructures struct{ Base }

func NewMultipleStructures(line int) MultipleStructures {
	return MultipleStructures{Base{"The file contains multiple structures (data_ entries). " +
		"Only the first structure was loaded.", line}}
}

type AtomKind int

const (
	AtomGeneric AtomKind = iota
	AtomDuplicateID
	AtomPositionOccupied
)

// Atom is a problem with one atom
type Atom struct {
	Base
	Atom *atom.Atom
	Kind AtomKind
}

func NewAtom(a *atom.Atom, msg string, line int, kind AtomKind) Atom {
	return Atom{Base{msg, line}, a, kind}
}

func (w Atom) Header() string {
	return fmt.Sprintf("Atom %s (%s) %d", w.Atom.Element, w.Atom.Name, w.Atom.ID)
}
func (w Atom) String() string { return format(w.Header(), w.Base) }

type ResidueKind int

const (
	ResidueGeneric ResidueKind = iota
	ResiduesTooClose
	ResidueIgnoredAltLoc
	ResidueMultipleNames
)

// Residue is a problem with a whole residue
type Residue struct {
	Base
	Name string
	ID   resid.ID
	Kind ResidueKind
}

func NewResidue(name string, id resid.ID, msg string, line int, kind ResidueKind) Residue {
	return Residue{Base{msg, line}, name, id, kind}
}

func (w Residue) Header() string {
	if w.Kind == ResidueMultipleNames {
		return fmt.Sprintf("Residue %s", w.ID)
	}
	return fmt.Sprintf("Residue %s %s", w.Name, w.ID)
}
func (w Residue) String() string { return format(w.Header(), w.Base) }

// ConectBondLength is a CONECT record joining atoms too far apart
type ConectBondLength struct {
	Base
	A, B *atom.Atom
}

func NewConectBondLength(a, b *atom.Atom, line int) ConectBondLength {
	return ConectBondLength{Base{"Suspicious CONECT bond length.", line}, a, b}
}

func (w ConectBondLength) Header() string {
	return fmt.Sprintf("Bond (%s %d, %s %d), %.2fang",
		w.A.Element, w.A.ID, w.B.Element, w.B.ID, geom.Dist(w.A.Pos, w.B.Pos))
}
func (w ConectBondLength) String() string { return format(w.Header(), w.Base) }
