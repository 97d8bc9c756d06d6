package atom

import "strings"

// BondType is the chemical type of a bond
type BondType int

const (
	BondUnknown BondType = iota
	BondSingle
	BondDouble
	BondTriple
	BondAromatic
	BondMetallic
)

var bondTypeNames = [...]string{"Unknown", "Single", "Double", "Triple", "Aromatic", "Metallic"}

func (b BondType) String() string {
	if b < 0 || int(b) >= len(bondTypeNames) {
		return "Unknown"
	}
	return bondTypeNames[b]
}

// Bond joins two atoms
type Bond struct {
	A, B *Atom
	Type BondType
}

// BondID identifies a bond independent of the order of its atoms
type BondID struct{ Lo, Hi int }

// NewBondID orders the two ids
func NewBondID(i, j int) BondID {
	if i > j {
		i, j = j, i
	}
	return BondID{i, j}
}

// ID of a bond
func (b *Bond) ID() BondID { return NewBondID(b.A.ID, b.B.ID) }

var metals = map[string]bool{
	"LI": true, "BE": true, "NA": true, "MG": true, "AL": true, "K": true,
	"CA": true, "SC": true, "TI": true, "V": true, "CR": true, "MN": true,
	"FE": true, "CO": true, "NI": true, "CU": true, "ZN": true, "GA": true,
	"RB": true, "SR": true, "Y": true, "ZR": true, "NB": true, "MO": true,
	"TC": true, "RU": true, "RH": true, "PD": true, "AG": true, "CD": true,
	"IN": true, "SN": true, "CS": true, "BA": true, "LA": true, "CE": true,
	"PR": true, "ND": true, "SM": true, "EU": true, "GD": true, "TB": true,
	"DY": true, "HO": true, "ER": true, "TM": true, "YB": true, "LU": true,
	"HF": true, "TA": true, "W": true, "RE": true, "OS": true, "IR": true,
	"PT": true, "AU": true, "HG": true, "TL": true, "PB": true, "BI": true,
	"U": true,
}

// IsMetal says if an element symbol is a metal
func IsMetal(element string) bool { return metals[strings.ToUpper(element)] }
