// Package cmmn has common definitions for coordinates and
// the programs built on the pdb packages.
package cmmn

import (
	"fmt"
	"math"
)

// Exit codes for the command line programs
const (
	ExitSuccess = iota
	ExitFailure
	ExitUsageError
)

// Xyz is a position in Angstrom
type Xyz struct{ X, Y, Z float64 }
type XyzSl []Xyz // xyz's are coordinates

// BrokenXyz marks a coordinate we could not read.
var BrokenXyz = Xyz{math.MaxFloat64, 0, -math.MaxFloat64}

// Ok says if a coordinate was read properly
func (xyz Xyz) Ok() bool {
	return xyz != BrokenXyz
}

// Sub returns xyz - b
func (xyz Xyz) Sub(b Xyz) Xyz {
	return Xyz{xyz.X - b.X, xyz.Y - b.Y, xyz.Z - b.Z}
}

// Dot is the scalar product
func (xyz Xyz) Dot(b Xyz) float64 {
	return xyz.X*b.X + xyz.Y*b.Y + xyz.Z*b.Z
}

// String prints with three decimals, the way coordinate files do.
func (xyz Xyz) String() string {
	return fmt.Sprintf("%.3f, %.3f, %.3f", xyz.X, xyz.Y, xyz.Z)
}
