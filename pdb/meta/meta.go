// Package meta holds what a structure file says about itself: entities,
// organisms, polymer types, revision dates, keywords. Aggregates like the
// total weight or the stoichiometry are worked out on first use.
//
// The tables can be filled in any order by any record type. Once one of
// the aggregates has been read, the registry is frozen: later changes to
// the tables are not seen by the aggregates.
package meta

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Entity is one row of _entity
type Entity struct {
	ID           int
	Type         EntityType
	Source       EntitySource
	Weight       *float64 // formula weight as written in the file, nil if missing
	NumMolecules int
	ECNumber     string
}

// Organism says where a polymer entity comes from and where it was
// expressed. Empty strings are missing values.
type Organism struct {
	EntityID       int
	Name           string
	TaxonomyID     string
	Genus          string
	HostName       string
	HostTaxonomyID string
	HostGenus      string
}

// Polymer is one row of _entity_poly
type Polymer struct {
	EntityID int
	Type     PolymerType
	Chains   []string
}

// table keeps rows by entity id and remembers the order ids were first seen.
type table[T any] struct {
	rows  map[int]*T
	order []int
}

func (t *table[T]) put(id int, v T) {
	if t.rows == nil {
		t.rows = make(map[int]*T)
	}
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = &v
}

func (t *table[T]) get(id int) (*T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t *table[T]) each(f func(*T)) {
	for _, id := range t.order {
		f(t.rows[id])
	}
}

// derived is everything computed on first use
type derived struct {
	totalWeight     float64
	entitySources   []EntitySource
	originOrganisms []string
	originGenus     []string
	originIDs       []string
	hostOrganisms   []string
	hostGenus       []string
	hostIDs         []string
	ecNumbers       []string
	polymerType     PolymerType
	stoichString    string
	stoichType      StoichiometryType
	entityIDs       []int
}

// Metadata is the registry for one structure
type Metadata struct {
	Resolution       *float64
	Keywords         []string
	Authors          []string
	Released         time.Time // zero if unknown
	LatestRevision   time.Time
	ExperimentMethod string

	entities  table[Entity]
	organisms table[Organism]
	polymers  table[Polymer]

	once sync.Once
	d    derived
}

// New gives an empty registry
func New() *Metadata {
	return &Metadata{Keywords: []string{}, Authors: []string{}}
}

// PutEntity adds or replaces the entity with e.ID
func (m *Metadata) PutEntity(e Entity) { m.entities.put(e.ID, e) }

// PutOrganism adds or replaces the organism of o.EntityID
func (m *Metadata) PutOrganism(o Organism) { m.organisms.put(o.EntityID, o) }

// PutPolymer adds or replaces the polymer row of p.EntityID
func (m *Metadata) PutPolymer(p Polymer) { m.polymers.put(p.EntityID, p) }

// Entity looks up an entity. Missing entities are not an error.
func (m *Metadata) Entity(id int) (*Entity, bool) { return m.entities.get(id) }

// Organism looks up the organism data for an entity
func (m *Metadata) Organism(id int) (*Organism, bool) { return m.organisms.get(id) }

// Polymer looks up the polymer data for an entity
func (m *Metadata) Polymer(id int) (*Polymer, bool) { return m.polymers.get(id) }

// SetRevisions takes the revision dates in file order.
// The first is the release, the last the most recent revision.
func (m *Metadata) SetRevisions(dates []time.Time) {
	if len(dates) == 0 {
		return
	}
	m.Released = dates[0]
	m.LatestRevision = dates[len(dates)-1]
}

func (m *Metadata) derive() {
	m.once.Do(func() {
		polymerIDs := make(map[int]bool)
		m.entities.each(func(e *Entity) {
			if e.Type == EntityPolymer {
				polymerIDs[e.ID] = true
			}
		})
		d := &m.d

		m.entities.each(func(e *Entity) {
			if e.Type != EntityWater && e.Weight != nil {
				d.totalWeight += float64(e.NumMolecules) * *e.Weight
			}
			if polymerIDs[e.ID] {
				if !slices.Contains(d.entitySources, e.Source) {
					d.entitySources = append(d.entitySources, e.Source)
				}
				d.ecNumbers = appendDistinct(d.ecNumbers, e.ECNumber)
			}
		})
		slices.Sort(d.ecNumbers)

		m.organisms.each(func(o *Organism) {
			if !polymerIDs[o.EntityID] {
				return
			}
			d.originOrganisms = appendDistinct(d.originOrganisms, o.Name)
			d.originGenus = appendDistinct(d.originGenus, o.Genus)
			d.originIDs = appendDistinct(d.originIDs, o.TaxonomyID)
			d.hostOrganisms = appendDistinct(d.hostOrganisms, o.HostName)
			d.hostGenus = appendDistinct(d.hostGenus, o.HostGenus)
			d.hostIDs = appendDistinct(d.hostIDs, o.HostTaxonomyID)
		})

		d.polymerType = m.combinedPolymerType()
		d.stoichString = m.stoichiometryString()
		d.stoichType = classifyStoichiometry(d.stoichString)

		d.entityIDs = slices.Clone(m.entities.order)
		slices.Sort(d.entityIDs)
	})
}

// appendDistinct skips empty strings and strings already present
func appendDistinct(sl []string, s string) []string {
	if s == "" || slices.Contains(sl, s) {
		return sl
	}
	return append(sl, s)
}

// combinedPolymerType looks at the distinct polymer types. One type is
// itself, two types may have a combined name, three or more are a mixture.
// No polymer rows at all gives Other.
func (m *Metadata) combinedPolymerType() PolymerType {
	var types []PolymerType
	m.polymers.each(func(p *Polymer) {
		if !slices.Contains(types, p.Type) {
			types = append(types, p.Type)
		}
	})
	switch {
	case len(types) == 1:
		return types[0]
	case len(types) == 2:
		return Combine(types[0], types[1])
	case len(types) >= 3:
		return Mixture
	}
	return Other
}

// stoichiometryString gives each protein entity a letter, most chains
// first, and appends the chain count if it is not 1. Two entities with
// 2 and 1 chains give A2B.
func (m *Metadata) stoichiometryString() string {
	var prot []*Polymer
	m.polymers.each(func(p *Polymer) {
		if p.Type == Protein {
			prot = append(prot, p)
		}
	})
	slices.SortStableFunc(prot, func(a, b *Polymer) int {
		return len(b.Chains) - len(a.Chains)
	})
	var sb strings.Builder
	for i, p := range prot {
		sb.WriteByte(byte('A' + i%26))
		if n := len(p.Chains); n != 1 {
			sb.WriteString(strconv.Itoa(n))
		}
	}
	return sb.String()
}

var homomer = regexp.MustCompile(`^A\d+$`)

func classifyStoichiometry(s string) StoichiometryType {
	switch {
	case s == "":
		return StoichiometryNotAssigned
	case len(s) == 1:
		return Monomer
	case homomer.MatchString(s):
		return Homomer
	}
	return Heteromer
}

// ClassifyStoichiometry is exported for callers with their own strings.
func ClassifyStoichiometry(s string) StoichiometryType { return classifyStoichiometry(s) }

// TotalWeight sums number of molecules times weight over entities
// that are not water and have a weight.
func (m *Metadata) TotalWeight() float64 { m.derive(); return m.d.totalWeight }

// EntitySources are the distinct sources of polymer entities
func (m *Metadata) EntitySources() []EntitySource { m.derive(); return m.d.entitySources }

func (m *Metadata) OriginOrganisms() []string      { m.derive(); return m.d.originOrganisms }
func (m *Metadata) OriginOrganismsGenus() []string { m.derive(); return m.d.originGenus }
func (m *Metadata) OriginOrganismsID() []string    { m.derive(); return m.d.originIDs }
func (m *Metadata) HostOrganisms() []string        { m.derive(); return m.d.hostOrganisms }
func (m *Metadata) HostOrganismsGenus() []string   { m.derive(); return m.d.hostGenus }
func (m *Metadata) HostOrganismsID() []string      { m.derive(); return m.d.hostIDs }

// ECNumbers are distinct and sorted
func (m *Metadata) ECNumbers() []string { m.derive(); return m.d.ecNumbers }

func (m *Metadata) PolymerType() PolymerType { m.derive(); return m.d.polymerType }

func (m *Metadata) ProteinStoichiometryString() string { m.derive(); return m.d.stoichString }

func (m *Metadata) ProteinStoichiometry() StoichiometryType { m.derive(); return m.d.stoichType }

// EntityIDs are the sorted ids of the entity table
func (m *Metadata) EntityIDs() []int { m.derive(); return m.d.entityIDs }

// String is a one line summary for logs
func (m *Metadata) String() string {
	res := "?"
	if m.Resolution != nil {
		res = strconv.FormatFloat(*m.Resolution, 'f', 2, 64)
	}
	return fmt.Sprintf("method=%q resolution=%s polymer=%s stoichiometry=%s",
		m.ExperimentMethod, res, m.PolymerType(), m.ProteinStoichiometryString())
}
