package model

import "github.com/andrew-torda/pdbstruct/pdb/resid"

// Chain is a chain identifier and its residues in order.
type Chain struct {
	ID       string
	Residues []*Residue
}

// SecondaryElement is a helix or a strand, a contiguous run of residues.
type SecondaryElement struct {
	Type     SecondaryType
	Residues []*Residue
}

func (e *SecondaryElement) Start() *Residue { return e.Residues[0] }
func (e *SecondaryElement) End() *Residue   { return e.Residues[len(e.Residues)-1] }

// SecondaryDescriptor is a HELIX, SHEET or _struct_conf row before
// it is matched against residues.
type SecondaryDescriptor struct {
	Type       SecondaryType
	Start, End resid.ID
}

// ModifiedDescriptor is a MODRES or _pdbx_struct_mod_residue row.
type ModifiedDescriptor struct {
	ID           resid.ID
	ModifiedFrom string
}

// tag stamps the element type on all of its residues. A residue in two
// overlapping elements ends up with the type of the last one tagged.
func (e *SecondaryElement) tag() {
	for _, r := range e.Residues {
		r.Secondary = e.Type
	}
}
