// Package ingest has the buffers both readers fill while going through
// a file, and the rules for atoms that clash with ones already read.
package ingest

import (
	"fmt"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
	"github.com/andrew-torda/pdbstruct/pdb/meta"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
)

// Options are reader settings
type Options struct {
	AllAltLocs bool // keep every alternate location
}

// Buffers collects everything read from one file
type Buffers struct {
	Atoms      []*atom.Atom
	Bonds      []*atom.Bond
	Conect     []model.ConectRecord
	Secondary  []model.SecondaryDescriptor
	Modified   []model.ModifiedDescriptor
	Meta       *meta.Metadata
	Warnings   []warn.Warning
	Line       int // current line, for warnings
	Component  bool
	PqrCharges bool

	ids      map[int]bool
	occupied map[cmmn.Xyz]*atom.Atom
	tooClose map[resid.ID]bool
}

// New gives empty buffers
func New() *Buffers {
	return &Buffers{
		Meta:     meta.New(),
		ids:      make(map[int]bool),
		occupied: make(map[cmmn.Xyz]*atom.Atom),
		tooClose: make(map[resid.ID]bool),
	}
}

// Warn records a warning
func (b *Buffers) Warn(w warn.Warning) { b.Warnings = append(b.Warnings, w) }

func residueString(a *atom.Atom) string {
	return a.ResName + " " + resid.FromAtom(a).String()
}

// AddAtom appends a unless it clashes with an atom already read. The
// first atom wins:
//   - a repeated id is dropped
//   - an atom on top of one from the same residue is kept if it is an
//     alternate location, dropped if it has a different name
//   - an atom on top of one from another residue is dropped, and the
//     later of the two residues is removed completely by Filter
//
// It says if the atom was kept.
func (b *Buffers) AddAtom(a *atom.Atom) bool {
	if b.ids[a.ID] {
		b.Warn(warn.NewAtom(a, "Duplicate id, atom ignored.", b.Line, warn.AtomDuplicateID))
		return false
	}
	b.ids[a.ID] = true

	other, ok := b.occupied[a.Pos]
	if !ok {
		b.occupied[a.Pos] = a
		b.Atoms = append(b.Atoms, a)
		return true
	}
	aID, oID := resid.FromAtom(a), resid.FromAtom(other)
	if aID != oID {
		later := other
		if c := strings.Compare(other.Chain, a.Chain); c < 0 || (c == 0 && other.ResSeq < a.ResSeq) {
			later = a
		}
		laterID := resid.FromAtom(later)
		if !b.tooClose[laterID] {
			b.tooClose[laterID] = true
			msg := fmt.Sprintf("'%s' and '%s' are too close to each other (0.000 ang). '%s' ignored.",
				residueString(a), residueString(other), residueString(later))
			b.Warn(warn.NewResidue(later.ResName, laterID, msg, b.Line, warn.ResiduesTooClose))
		}
		return false
	}
	if other.AltLoc == a.AltLoc && other.Name != a.Name {
		msg := fmt.Sprintf("Position [%s] already occupied by atom '%d'.", a.Pos, other.ID)
		b.Warn(warn.NewAtom(a, msg, b.Line, warn.AtomPositionOccupied))
		return false
	}
	b.Atoms = append(b.Atoms, a)
	return true
}

// Filter drops the atoms of residues that were too close to another
func (b *Buffers) Filter() []*atom.Atom {
	if len(b.tooClose) == 0 {
		return b.Atoms
	}
	kept := make([]*atom.Atom, 0, len(b.Atoms))
	for _, a := range b.Atoms {
		if !b.tooClose[resid.FromAtom(a)] {
			kept = append(kept, a)
		}
	}
	return kept
}

// Assemble builds the structure from what was read. Assembly warnings
// are added to the reader's own.
func (b *Buffers) Assemble(id string, opts Options) (*model.Structure, []warn.Warning) {
	s, w := model.Assemble(model.Input{
		ID:         id,
		Atoms:      b.Filter(),
		Bonds:      b.Bonds,
		Conect:     b.Conect,
		Secondary:  b.Secondary,
		Modified:   b.Modified,
		Meta:       b.Meta,
		Component:  b.Component,
		PqrCharges: b.PqrCharges,
		AllAltLocs: opts.AllAltLocs,
	})
	b.Warnings = append(b.Warnings, w...)
	return s, b.Warnings
}
