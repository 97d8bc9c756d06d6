package mmcif_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/andrew-torda/pdbstruct/pdb/mmcif"
)

func TestMessyLine(t *testing.T) {
	// This is from 2a9w.cif. I think there should be seven pieces
	ss :=
		`GA9 non-polymer         . '3,3-BIS(3-BR-4-HYD)-7-CH-1H,3H-BEO[DE]ISO-1-ONE'
'4-CHL-3',3"-DIB-1,8-NAPHTH' 'C24 H13 Br2 Cl O4' 560.619

GLN 'L-peptide linking' y GLUTAMINE                                                                   ? 'C5 H10 N2 O3'
146.144
`
	answers := []int{4, 3, 6, 1}
	scnr := NewCmmtScanner(bytes.NewReader([]byte(ss)))
	ndx := 0
	for scnr.Cscan() == true && scnr.Cbytes() != nil {
		tt, err := SplitCifLine(scnr.Cbytes())
		if err != nil {
			t.Error("Splitting messy string", err)
		}
		if len(tt) != answers[ndx] {
			t.Error("wrong number of entries, got", len(tt), "line", ndx)
		}
		ndx++
	}
	if ndx != len(answers) {
		t.Error("expected", len(answers), "lines, got", ndx)
	}
}

type twostring struct {
	in  string
	out string
}

func TestQuotes(t *testing.T) {
	data := []twostring{
		{`A "O5'" B`, `A|O5'|B`},
		{`'N,O' x`, `N,O|x`},
		{`'it''s'`, `it''s`},
		{`  lead   trail  `, `lead|trail`},
		{`"a b" 'c d'`, `a b|c d`},
		{`x 'y'`, `x|y`},
	}
	for _, d := range data {
		got, err := SplitCifLine([]byte(d.in))
		if err != nil {
			t.Error("unexpected error on", d.in, err)
		}
		if s := strings.Join(got, "|"); s != d.out {
			t.Errorf("%s: expected %s got %s", d.in, d.out, s)
		}
	}
}

func TestUnterminated(t *testing.T) {
	for _, s := range []string{`'abc`, `x "no end`} {
		if _, err := SplitCifLine([]byte(s)); err == nil {
			t.Error("expected error on", s)
		}
	}
}

func TestNulls(t *testing.T) {
	got := Nulls([]byte(`? . '?' "." x`))
	exp := []bool{true, true, false, false, false}
	if len(got) != len(exp) {
		t.Fatal("expected", len(exp), "words, got", len(got))
	}
	for i := range exp {
		if got[i] != exp[i] {
			t.Error("word", i, "expected null", exp[i])
		}
	}
}

func TestFields(t *testing.T) {
	lines := []string{
		"ATOM   2    C  CA  A MET A 1 1   ? 24.415 9.736   -9.941  0.77 40.13 ? 0   MET A CA  1",
		"   x",
		"x   ",
		"",
		"a\tb c",
	}
	var scrtch [40]BSlice
	for _, l := range lines {
		got := Fields([]byte(l), scrtch[:])
		exp := strings.Fields(l)
		if len(got) != len(exp) {
			t.Errorf("%q: expected %d fields got %d", l, len(exp), len(got))
			continue
		}
		for i := range exp {
			if string(got[i]) != exp[i] {
				t.Errorf("%q: field %d expected %s got %s", l, i, exp[i], got[i])
			}
		}
	}
}

// A scratch space that is too small must not lose words
func TestSplitLineSmallScratch(t *testing.T) {
	got, err := SplitLine([]byte("a b c d e"), 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 5 {
		t.Error("expected 5 words, got", got)
	}
	got, _ = SplitLine([]byte(`a 'b c' d`), 2)
	if len(got) != 3 {
		t.Error("expected 3 words, got", got)
	}
}

func TestCscan(t *testing.T) {
	s := "a\n\n   \r\nb   \r\n# c\n"
	scnr := NewCmmtScanner(strings.NewReader(s))
	var got []string
	for scnr.Cscan() && scnr.Cbytes() != nil {
		got = append(got, string(scnr.Cbytes()))
	}
	if strings.Join(got, "|") != "a|b|# c" {
		t.Error("got", got)
	}
}

func TestIsSpecial(t *testing.T) {
	data := []struct {
		s   string
		exp bool
	}{
		{"_atom_site.id", true},
		{"loop_", true},
		{"LOOP_", true},
		{"data_1abc", true},
		{"#", true},
		{"ATOM 1 N", false},
		{";text", false},
	}
	for _, d := range data {
		if got := IsSpecial([]byte(d.s)); got != d.exp {
			t.Errorf("%s: expected %v", d.s, d.exp)
		}
	}
	if !IsSpecial(nil) {
		t.Error("end of file should be special")
	}
}
