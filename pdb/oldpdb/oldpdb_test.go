package oldpdb_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/oldpdb"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// atomLine writes an ATOM or HETATM record in the standard columns
func atomLine(rec string, serial int, name, res, chain string, seq int, x, y, z float64, elem string) string {
	return fmt.Sprintf("%-6s%5d %-4s %3s %1s%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		rec, serial, name, res, chain, seq, x, y, z, 1.0, 12.5, elem)
}

func fixture() string {
	lines := []string{
		"HEADER    HYDROLASE                               09-FEB-95   1ABC",
		"EXPDTA    X-RAY DIFFRACTION",
		"KEYWDS    HYDROLASE, ENZYME,",
		"KEYWDS   2 ZINC",
		"REMARK   2",
		"REMARK   2 RESOLUTION.    1.55 ANGSTROMS.",
		"MODRES 1ABC MSE A    2  MET  SELENOMETHIONINE",
		"HELIX    1   1 ALA A    1  MSE A    2  5",
		"SHEET    1   A 2 GLY A   3  SER A   4  0",
		atomLine("ATOM", 1, " N", "ALA", "A", 1, 0, 0, 0, "N"),
		atomLine("ATOM", 2, " CA", "ALA", "A", 1, 1.5, 0, 0, "C"),
		atomLine("HETATM", 3, " N", "MSE", "A", 2, 3.8, 0, 0, "N"),
		atomLine("HETATM", 4, " CA", "MSE", "A", 2, 5.3, 0, 0, "C"),
		atomLine("ATOM", 5, " N", "GLY", "A", 3, 7.6, 0, 0, "N"),
		atomLine("ATOM", 6, " CA", "GLY", "A", 3, 9.1, 0, 0, "C"),
		atomLine("ATOM", 7, " N", "SER", "A", 4, 11.4, 0, 0, "N"),
		atomLine("ATOM", 8, " CA", "SER", "A", 4, 12.9, 0, 0, "C"),
		atomLine("HETATM", 9, "ZN", "ZN", "A", 101, 9.1, 2.0, 0, ""),
		atomLine("HETATM", 10, " O", "HOH", "B", 201, 20, 20, 20, "O"),
		"CONECT    9    6",
		"END",
	}
	return strings.Join(lines, "\n") + "\n"
}

func read(t *testing.T, s string) (*model.Structure, []warn.Warning) {
	t.Helper()
	st, w, err := oldpdb.Read(strings.NewReader(s), "test", ingest.Options{})
	require.NoError(t, err)
	return st, w
}

func TestReadStructure(t *testing.T) {
	s, w := read(t, fixture())
	assert.Empty(t, w)
	assert.Len(t, s.Atoms, 10)
	assert.Equal(t, []string{"A", "B"}, s.ChainIDs())

	mse, ok := s.ResidueByID(resid.MustParse("2 A"))
	require.True(t, ok)
	assert.Equal(t, "MET", mse.ModifiedFrom)
	assert.Equal(t, "HETATM", mse.Atoms[0].RecordName)

	require.Len(t, s.Helices, 1)
	assert.Len(t, s.Helices[0].Residues, 2)
	require.Len(t, s.Sheets, 1)
	assert.Len(t, s.Sheets[0].Residues, 2)

	ser, ok := s.ResidueByID(resid.MustParse("4 A"))
	require.True(t, ok)
	assert.Equal(t, model.Sheet, ser.Secondary)
	assert.Equal(t, 12.5, ser.Atoms[0].TempFactor)
	assert.Equal(t, "N", ser.Atoms[0].Element)
}

// A residue claimed by two ranges goes to the one that starts first.
func TestOverlappingSecondary(t *testing.T) {
	f := strings.Replace(fixture(), "MSE A    2  5", "GLY A    3  5", 1)
	s, _ := read(t, f)
	require.Len(t, s.Helices, 1)
	assert.Len(t, s.Helices[0].Residues, 3)
	require.Len(t, s.Sheets, 1)
	require.Len(t, s.Sheets[0].Residues, 1)
	assert.Equal(t, "SER", s.Sheets[0].Residues[0].Name)

	gly, ok := s.ResidueByID(resid.MustParse("3 A"))
	require.True(t, ok)
	assert.Equal(t, model.Helix, gly.Secondary)
}

func TestMetalConect(t *testing.T) {
	s, _ := read(t, fixture())
	require.Len(t, s.Bonds, 1)
	b := s.Bonds[0]
	assert.Equal(t, atom.BondMetallic, b.Type)
	assert.Equal(t, "ZN", b.A.Element)
}

func TestReadMetadata(t *testing.T) {
	s, _ := read(t, fixture())
	m := s.Meta
	assert.Equal(t, time.Date(1995, 2, 9, 0, 0, 0, 0, time.UTC), m.Released)
	require.NotNil(t, m.Resolution)
	assert.InDelta(t, 1.55, *m.Resolution, 1e-9)
	assert.Equal(t, []string{"HYDROLASE", "ENZYME", "ZINC"}, m.Keywords)
	assert.Equal(t, "X-RAY DIFFRACTION", m.ExperimentMethod)
}

func TestNoKeywords(t *testing.T) {
	s, _ := read(t, atomLine("ATOM", 1, " CA", "GLY", "A", 1, 0, 0, 0, "C")+"\n")
	assert.NotNil(t, s.Meta.Keywords)
	assert.Empty(t, s.Meta.Keywords)
	assert.Nil(t, s.Meta.Resolution)
}

func TestOnlyFirstModel(t *testing.T) {
	lines := []string{
		"MODEL        1",
		atomLine("ATOM", 1, " N", "GLY", "A", 1, 0, 0, 0, "N"),
		atomLine("ATOM", 2, " CA", "GLY", "A", 1, 1.5, 0, 0, "C"),
		"ENDMDL",
		"MODEL        2",
		atomLine("ATOM", 1, " N", "GLY", "A", 1, 0.1, 0, 0, "N"),
		atomLine("ATOM", 2, " CA", "GLY", "A", 1, 1.6, 0, 0, "C"),
		"ENDMDL",
		"MODEL        3",
		"ENDMDL",
		"CONECT    1    2",
	}
	s, w := read(t, strings.Join(lines, "\n"))
	assert.Len(t, s.Atoms, 2)
	assert.Equal(t, 1.5, s.Atoms[1].Pos.X)
	require.Len(t, w, 1)
	_, ok := w[0].(warn.OnlyFirstModel)
	assert.True(t, ok)
	assert.Equal(t, 5, w[0].Line())
	assert.Len(t, s.Bonds, 1)
}

func TestGuessElementSymbol(t *testing.T) {
	tests := []struct {
		name     string
		het      bool
		fallback byte
		want     string
	}{
		{"HG21", false, 'H', "H"},
		{"CA", false, 'C', "C"},
		{"CA", true, 'C', "CA"},
		{"hO1", true, 'h', "H"},
		{"FE", true, 'F', "FE"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, oldpdb.GuessElementSymbol(tt.name, tt.het, tt.fallback), tt.name)
	}
}

func TestGuessedElement(t *testing.T) {
	s, _ := read(t, fixture())
	zn := s.Atoms[len(s.Atoms)-2]
	require.Equal(t, "ZN", zn.ResName)
	assert.Equal(t, "ZN", zn.Element)
}

func TestDuplicateSerial(t *testing.T) {
	s := atomLine("ATOM", 1, " N", "GLY", "A", 1, 0, 0, 0, "N") + "\n" +
		atomLine("ATOM", 1, " CA", "GLY", "A", 1, 1.5, 0, 0, "C") + "\n"
	st, w := read(t, s)
	assert.Len(t, st.Atoms, 1)
	require.Len(t, w, 1)
	aw, ok := w[0].(warn.Atom)
	require.True(t, ok)
	assert.Equal(t, warn.AtomDuplicateID, aw.Kind)
	assert.Equal(t, 2, aw.Line())
}

func TestPQR(t *testing.T) {
	s := "ATOM      1  N   MET A   1      39.914   3.935  -2.319  0.15920000    1.550 N\n" +
		"ATOM      2  CA  MET A   1      40.914   3.935  -2.319 -0.0221 1.875\n"
	st, _, err := oldpdb.ReadPQR(strings.NewReader(s), "pqr", ingest.Options{})
	require.NoError(t, err)
	require.Len(t, st.Atoms, 2)
	assert.True(t, st.PqrCharges)
	assert.InDelta(t, 0.1592, st.Atoms[0].Occupancy, 1e-9)
	assert.InDelta(t, 1.55, st.Atoms[0].TempFactor, 1e-9)
	assert.Equal(t, "N", st.Atoms[0].Element)
	assert.InDelta(t, -0.0221, st.Atoms[1].Occupancy, 1e-9)
	assert.Equal(t, "C", st.Atoms[1].Element)
}

func TestPQRTooFewFields(t *testing.T) {
	s := "ATOM      1  N   MET A   1      39.914   3.935  -2.319  0.1592\n"
	_, _, err := oldpdb.ReadPQR(strings.NewReader(s), "pqr", ingest.Options{})
	var pe *oldpdb.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, pe.Line())
	assert.Contains(t, pe.Description(), "Invalid PQR record")
}

func TestBadCoordinate(t *testing.T) {
	good := atomLine("ATOM", 1, " N", "GLY", "A", 1, 0, 0, 0, "N")
	bad := good[:30] + "   x.yzw" + good[38:]
	_, _, err := oldpdb.Read(strings.NewReader(good+"\n\n"+bad+"\n"), "x", ingest.Options{})
	var pe *oldpdb.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 3, pe.Line())
	assert.Contains(t, pe.Description(), "x.yzw")
}

func TestNoAtoms(t *testing.T) {
	_, _, err := oldpdb.Read(strings.NewReader("HEADER    NOTHING\nEND\n"), "x", ingest.Options{})
	var pe *oldpdb.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "The file contains no atoms.", pe.Description())
	assert.Equal(t, 2, pe.Line())
}
