package model

import (
	"github.com/andrew-torda/matrix"
	"github.com/andrew-torda/pdbstruct/pdb/geom"
)

// CAlphaDistances gives the matrix of distances between the C-alpha atoms
// of all amino acids, and the residues in matrix order. Residues without
// a CA are left out.
func (s *Structure) CAlphaDistances() (*matrix.FMatrix2d, []*Residue) {
	var res []*Residue
	for _, r := range s.Residues {
		if r.CAlpha() != nil {
			res = append(res, r)
		}
	}
	mat := matrix.NewFMatrix2d(len(res), len(res))
	for i := range res {
		xi := res[i].CAlpha().Pos
		for j := i + 1; j < len(res); j++ {
			d := float32(geom.Dist(xi, res[j].CAlpha().Pos))
			mat.Mat[i][j] = d
			mat.Mat[j][i] = d
		}
	}
	return mat, res
}

// Contact is a pair of residues close enough to each other
type Contact struct {
	A, B *Residue
	Dist float32
}

// Contacts lists the residue pairs whose C-alpha atoms are within cutoff.
func (s *Structure) Contacts(cutoff float64) []Contact {
	mat, res := s.CAlphaDistances()
	var ret []Contact
	for i := range res {
		for j := i + 1; j < len(res); j++ {
			if d := mat.Mat[i][j]; float64(d) <= cutoff {
				ret = append(ret, Contact{res[i], res[j], d})
			}
		}
	}
	return ret
}
