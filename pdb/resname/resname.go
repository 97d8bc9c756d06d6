// Package resname classifies residue names: amino acid, nucleotide,
// water, charge class and the one letter code.
// The tables are fixed and never written after initialisation.
package resname

import "strings"

// ChargeType of an amino acid side chain
type ChargeType int

const (
	ChargeUnknown ChargeType = iota
	Positive
	Negative
	Aromatic
	Polar
	NonPolar
)

var chargeNames = [...]string{"Unknown", "Positive", "Negative", "Aromatic", "Polar", "NonPolar"}

func (c ChargeType) String() string {
	if c < 0 || int(c) >= len(chargeNames) {
		return "Unknown"
	}
	return chargeNames[c]
}

// threeToOne covers the twenty standard amino acids.
var threeToOne = map[string]string{
	"ALA": "A", "ARG": "R", "ASN": "N", "ASP": "D", "CYS": "C",
	"GLU": "E", "GLN": "Q", "GLY": "G", "HIS": "H", "ILE": "I",
	"LEU": "L", "LYS": "K", "MET": "M", "PHE": "F", "PRO": "P",
	"SER": "S", "THR": "T", "TRP": "W", "TYR": "Y", "VAL": "V",
}

var nucleotides = map[string]bool{
	"A": true, "C": true, "G": true, "T": true, "U": true,
	"DA": true, "DC": true, "DG": true, "DT": true, "DU": true,
}

// charge classes, checked in this order
var chargeSets = []struct {
	c     ChargeType
	names []string
}{
	{Positive, []string{"LYS", "ARG", "HIS"}},
	{Negative, []string{"ASP", "GLU"}},
	{Aromatic, []string{"PHE", "TYR", "TRP"}},
	{Polar, []string{"CYS", "SER", "THR", "ASN", "GLN"}},
	{NonPolar, []string{"MET", "LEU", "VAL", "ILE", "ALA", "GLY", "PRO"}},
}

// IsAmino is true for the twenty standard amino acids, ignoring case.
func IsAmino(name string) bool {
	_, ok := threeToOne[strings.ToUpper(name)]
	return ok
}

// IsNucleotide is true for A, C, G, T, U and the deoxy forms.
func IsNucleotide(name string) bool {
	return nucleotides[strings.ToUpper(name)]
}

// IsWater is only HOH
func IsWater(name string) bool {
	return strings.EqualFold(name, "HOH")
}

// Charge classifies a residue name
func Charge(name string) ChargeType {
	n := strings.ToUpper(name)
	for _, set := range chargeSets {
		for _, s := range set.names {
			if s == n {
				return set.c
			}
		}
	}
	return ChargeUnknown
}

// ShortName gives the one letter code. Nucleotides lose the deoxy D.
// Anything else gets its first character, or X if there is nothing.
func ShortName(name string) string {
	if s, ok := threeToOne[strings.ToUpper(name)]; ok {
		return s
	}
	if IsNucleotide(name) {
		if len(name) == 2 {
			return strings.ToUpper(name[1:])
		}
		return strings.ToUpper(name)
	}
	if name == "" {
		return "X"
	}
	return name[:1]
}
