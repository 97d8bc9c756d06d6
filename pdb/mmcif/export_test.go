package mmcif

// Export some internal functions for testing

func (s *cmmtScanner) Cbytes() []byte   { return s.cbytes() }
func (s *cmmtScanner) Cscan() (ok bool) { return s.cscan() }

type CmmtScanner = cmmtScanner

var NewCmmtScanner = newCmmtScanner
var Fields = fields
var IsSpecial = isSpecial

type BSlice = bSlice

// SplitCifLine gives the words without the quoting information
func SplitCifLine(b []byte) ([]string, error) {
	toks, err := splitCifLine(b, nil)
	return tokenStrings(toks), err
}

// SplitLine is SplitCifLine with the fast path, using a small scratch space
func SplitLine(b []byte, nscrtch int) ([]string, error) {
	toks, err := splitLine(b, make([]bSlice, nscrtch), nil)
	return tokenStrings(toks), err
}

// Nulls says which words were an unquoted ? or .
func Nulls(b []byte) []bool {
	toks, _ := splitCifLine(b, nil)
	ret := make([]bool, len(toks))
	for i, t := range toks {
		ret[i] = t.isNull()
	}
	return ret
}

func tokenStrings(toks []token) []string {
	var ret []string
	for _, t := range toks {
		ret = append(ret, t.s)
	}
	return ret
}
