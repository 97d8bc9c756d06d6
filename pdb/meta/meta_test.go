package meta_test

import (
	"sync"
	"testing"
	"time"

	. "github.com/andrew-torda/pdbstruct/pdb/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fp(f float64) *float64 { return &f }

func TestParseEnums(t *testing.T) {
	assert.Equal(t, EntityPolymer, ParseEntityType("Polymer"))
	assert.Equal(t, EntityNonPolymer, ParseEntityType("non-polymer"))
	assert.Equal(t, EntityWater, ParseEntityType("WATER"))
	assert.Equal(t, EntityUnknown, ParseEntityType("macrolide"))

	assert.Equal(t, Natural, ParseEntitySource("nat"))
	assert.Equal(t, GMO, ParseEntitySource("man"))
	assert.Equal(t, Synthetic, ParseEntitySource("syn"))
	assert.Equal(t, SourceNotAssigned, ParseEntitySource("?"))

	assert.Equal(t, Protein, ParsePolymerType("polypeptide(L)"))
	assert.Equal(t, DNA, ParsePolymerType("polydeoxyribonucleotide"))
	assert.Equal(t, RNA, ParsePolymerType("polyribonucleotide"))
	assert.Equal(t, Sugar, ParsePolymerType("polysaccharide(D)"))
	assert.Equal(t, Other, ParsePolymerType("other"))
}

func TestCombine(t *testing.T) {
	tests := []struct {
		a, b, want PolymerType
	}{
		{Protein, DNA, ProteinDNA},
		{DNA, Protein, ProteinDNA},
		{RNA, Protein, ProteinRNA},
		{DNA, RNA, NucleicAcids},
		{Protein, Protein, Protein},
		{Protein, Sugar, Other},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Combine(tt.a, tt.b), "%s+%s", tt.a, tt.b)
	}
}

func polymers(types ...PolymerType) *Metadata {
	m := New()
	for i, ty := range types {
		m.PutPolymer(Polymer{EntityID: i + 1, Type: ty, Chains: []string{"A"}})
	}
	return m
}

func TestPolymerType(t *testing.T) {
	assert.Equal(t, Other, New().PolymerType())
	assert.Equal(t, DNA, polymers(DNA, DNA).PolymerType())
	assert.Equal(t, ProteinRNA, polymers(Protein, RNA).PolymerType())
	assert.Equal(t, Other, polymers(Protein, Sugar).PolymerType())
	assert.Equal(t, Mixture, polymers(Protein, RNA, DNA).PolymerType())
}

func TestStoichiometry(t *testing.T) {
	tests := []struct {
		chains [][]string
		want   string
		ty     StoichiometryType
	}{
		{nil, "", StoichiometryNotAssigned},
		{[][]string{{"A"}}, "A", Monomer},
		{[][]string{{"A", "B"}}, "A2", Homomer},
		{[][]string{{"C"}, {"A", "B"}}, "A2B", Heteromer},
		{[][]string{{"A"}, {"B"}}, "AB", Heteromer},
		{[][]string{{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"}}, "A10", Homomer},
	}
	for i, tt := range tests {
		m := New()
		for j, c := range tt.chains {
			m.PutPolymer(Polymer{EntityID: j + 1, Type: Protein, Chains: c})
		}
		m.PutPolymer(Polymer{EntityID: 99, Type: DNA, Chains: []string{"X", "Y"}})
		assert.Equal(t, tt.want, m.ProteinStoichiometryString(), "test %d", i)
		assert.Equal(t, tt.ty, m.ProteinStoichiometry(), "test %d", i)
	}
	assert.Equal(t, Heteromer, ClassifyStoichiometry("A2B2"))
}

func TestTotalWeight(t *testing.T) {
	m := New()
	m.PutEntity(Entity{ID: 1, Type: EntityPolymer, Weight: fp(50), NumMolecules: 2})
	m.PutEntity(Entity{ID: 2, Type: EntityWater, Weight: fp(18), NumMolecules: 1})
	m.PutEntity(Entity{ID: 3, Type: EntityNonPolymer, NumMolecules: 4})
	assert.InDelta(t, 100.0, m.TotalWeight(), 1e-9)
}

func TestOrganisms(t *testing.T) {
	m := New()
	m.PutEntity(Entity{ID: 1, Type: EntityPolymer, Source: GMO, ECNumber: "3.4.21.4"})
	m.PutEntity(Entity{ID: 2, Type: EntityPolymer, Source: GMO, ECNumber: "1.1.1.1"})
	m.PutEntity(Entity{ID: 3, Type: EntityNonPolymer, Source: Synthetic, ECNumber: "9.9.9.9"})
	m.PutOrganism(Organism{EntityID: 1, Name: "Homo sapiens", TaxonomyID: "9606", Genus: "Homo",
		HostName: "Escherichia coli", HostTaxonomyID: "562"})
	m.PutOrganism(Organism{EntityID: 2, Name: "Homo sapiens", TaxonomyID: "9606"})
	m.PutOrganism(Organism{EntityID: 3, Name: "Mus musculus"})

	assert.Equal(t, []string{"Homo sapiens"}, m.OriginOrganisms())
	assert.Equal(t, []string{"9606"}, m.OriginOrganismsID())
	assert.Equal(t, []string{"Homo"}, m.OriginOrganismsGenus())
	assert.Equal(t, []string{"Escherichia coli"}, m.HostOrganisms())
	assert.Equal(t, []string{"562"}, m.HostOrganismsID())
	assert.Empty(t, m.HostOrganismsGenus())
	assert.Equal(t, []EntitySource{GMO}, m.EntitySources())
	assert.Equal(t, []string{"1.1.1.1", "3.4.21.4"}, m.ECNumbers())
}

func TestEntityIDs(t *testing.T) {
	m := New()
	for _, id := range []int{3, 1, 2} {
		m.PutEntity(Entity{ID: id, Type: EntityPolymer})
	}
	assert.Equal(t, []int{1, 2, 3}, m.EntityIDs())
	e, ok := m.Entity(2)
	require.True(t, ok)
	assert.Equal(t, 2, e.ID)
	_, ok = m.Entity(7)
	assert.False(t, ok)
}

// Once read, aggregates do not change.
func TestFrozen(t *testing.T) {
	m := polymers(Protein)
	assert.Equal(t, "A", m.ProteinStoichiometryString())
	m.PutPolymer(Polymer{EntityID: 5, Type: Protein, Chains: []string{"B"}})
	assert.Equal(t, "A", m.ProteinStoichiometryString())
	assert.Equal(t, Protein, m.PolymerType())
}

func TestConcurrentRead(t *testing.T) {
	m := polymers(Protein, DNA)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, ProteinDNA, m.PolymerType())
		}()
	}
	wg.Wait()
}

func TestRevisions(t *testing.T) {
	m := New()
	d := func(s string) time.Time {
		v, _ := time.Parse("2006-1-2", s)
		return v
	}
	m.SetRevisions([]time.Time{d("1999-3-4"), d("2001-1-1"), d("2011-7-13")})
	assert.Equal(t, d("1999-3-4"), m.Released)
	assert.Equal(t, d("2011-7-13"), m.LatestRevision)
	m2 := New()
	m2.SetRevisions(nil)
	assert.True(t, m2.Released.IsZero())
}
