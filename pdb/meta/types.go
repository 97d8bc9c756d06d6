package meta

import "strings"

// EntityType is from _entity.type
type EntityType int

const (
	EntityUnknown EntityType = iota
	EntityPolymer
	EntityNonPolymer
	EntityWater
)

var entityTypeNames = [...]string{"Unknown", "Polymer", "NonPolymer", "Water"}

func (e EntityType) String() string { return enumName(int(e), entityTypeNames[:]) }

// ParseEntityType looks at the start of the word, ignoring case.
func ParseEntityType(s string) EntityType {
	switch {
	case hasPrefixFold(s, "polymer"):
		return EntityPolymer
	case hasPrefixFold(s, "non-polymer"):
		return EntityNonPolymer
	case hasPrefixFold(s, "water"):
		return EntityWater
	}
	return EntityUnknown
}

// EntitySource is from _entity.src_method
type EntitySource int

const (
	SourceNotAssigned EntitySource = iota
	GMO
	Natural
	Synthetic
)

var sourceNames = [...]string{"NotAssigned", "GMO", "Natural", "Synthetic"}

func (e EntitySource) String() string { return enumName(int(e), sourceNames[:]) }

// ParseEntitySource takes the three letter mmCIF codes
func ParseEntitySource(s string) EntitySource {
	switch s {
	case "nat":
		return Natural
	case "man":
		return GMO
	case "syn":
		return Synthetic
	}
	return SourceNotAssigned
}

// StoichiometryType classifies the protein stoichiometry string
type StoichiometryType int

const (
	StoichiometryNotAssigned StoichiometryType = iota
	Monomer
	Homomer
	Heteromer
)

var stoichNames = [...]string{"NotAssigned", "Monomer", "Homomer", "Heteromer"}

func (s StoichiometryType) String() string { return enumName(int(s), stoichNames[:]) }

// PolymerType is from _entity_poly.type, or a combination of them
type PolymerType int

const (
	PolymerNotAssigned PolymerType = iota
	Protein
	DNA
	RNA
	ProteinDNA
	ProteinRNA
	NucleicAcids
	Mixture
	Sugar
	Other
)

var polymerNames = [...]string{"NotAssigned", "Protein", "DNA", "RNA", "ProteinDNA",
	"ProteinRNA", "NucleicAcids", "Mixture", "Sugar", "Other"}

func (p PolymerType) String() string { return enumName(int(p), polymerNames[:]) }

// ParsePolymerType reads things like "polypeptide(L)" or
// "polydeoxyribonucleotide".
func ParsePolymerType(s string) PolymerType {
	switch {
	case strings.TrimSpace(s) == "":
		return Other
	case hasPrefixFold(s, "polypeptide"):
		return Protein
	case hasPrefixFold(s, "polydeoxy"):
		return DNA
	case hasPrefixFold(s, "polyribo"):
		return RNA
	case hasPrefixFold(s, "polysaccharide"):
		return Sugar
	}
	return Other
}

type typePair struct{ a, b PolymerType }

// pairs of polymer types that have their own name
var combined = map[typePair]PolymerType{
	{Protein, DNA}: ProteinDNA,
	{Protein, RNA}: ProteinRNA,
	{DNA, RNA}:     NucleicAcids,
}

// Combine gives the type of a structure made of two polymer types.
func Combine(a, b PolymerType) PolymerType {
	if a == b {
		return a
	}
	if a > b {
		a, b = b, a
	}
	if t, ok := combined[typePair{a, b}]; ok {
		return t
	}
	return Other
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}

func enumName(i int, names []string) string {
	if i < 0 || i >= len(names) {
		return names[0]
	}
	return names[i]
}
