// Package resid identifies residues by chain, sequence number and
// insertion code. IDs are comparable values, so they work as map keys.
package resid

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
)

// ID is a residue identifier. Chain is never nil-like, a blank chain
// is stored as "". A blank insertion code is a space.
type ID struct {
	Number int
	Chain  string
	ICode  byte
}

// New makes an ID, replacing a whitespace-only chain by "".
func New(number int, chain string, icode byte) ID {
	if strings.TrimSpace(chain) == "" {
		chain = ""
	}
	if icode == 0 {
		icode = ' '
	}
	return ID{Number: number, Chain: chain, ICode: icode}
}

// FromAtom reads the residue fields of any atom
func FromAtom(a atom.FieldSource) ID {
	return New(a.PdbResSeq(), a.PdbChain(), a.PdbInsCode())
}

// String gives NUMBER [CHAIN] [i:CODE]
func (id ID) String() string {
	s := strconv.Itoa(id.Number)
	if id.Chain != "" {
		s += " " + id.Chain
	}
	if id.ICode != ' ' && id.ICode != 0 {
		s += " i:" + string(id.ICode)
	}
	return s
}

// Compare orders by chain (byte-wise), then number, then insertion code.
func Compare(a, b ID) int {
	if c := strings.Compare(a.Chain, b.Chain); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Number, b.Number); c != 0 {
		return c
	}
	return cmp.Compare(a.ICode, b.ICode)
}

// Less is Compare(id, b) < 0
func (id ID) Less(b ID) bool { return Compare(id, b) < 0 }

// FormatError is returned by Parse
type FormatError struct {
	Text string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("'%s' is not a valid residue identifier. The format is "+
		"'NUMBER [CHAIN] [i:INSERTIONCODE]' (parameters in [] are optional, "+
		"for example '175 i:12' or '143 B').", e.Text)
}

// chain names can contain most printable characters
const chainChars = `[_,.;:"&<>()/\\{}'` + "`" + `~!@#$%A-Za-z0-9*|+\-]*`

// There is no lookahead in RE2, so a chain starting with "i:" is
// rejected after matching.
var (
	withICode = regexp.MustCompile(`^\s*([0-9]+)(?:\s+(` + chainChars + `))?\s+i:([a-zA-Z0-9])\s*$`)
	noICode   = regexp.MustCompile(`^\s*([0-9]+)(?:\s+(` + chainChars + `))?\s*$`)
)

// Parse reads NUMBER [CHAIN] [i:INSERTIONCODE]. Whitespace between the
// parts can be anything, the insertion code is one letter or digit.
func Parse(s string) (ID, error) {
	var number, chain string
	icode := byte(' ')
	if m := withICode.FindStringSubmatch(s); m != nil && !strings.HasPrefix(m[2], "i:") {
		number, chain, icode = m[1], m[2], m[3][0]
	} else if m := noICode.FindStringSubmatch(s); m != nil && !strings.HasPrefix(m[2], "i:") {
		number, chain = m[1], m[2]
	} else {
		return ID{}, &FormatError{Text: s}
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return ID{}, &FormatError{Text: s}
	}
	return New(n, chain, icode), nil
}

// MustParse is for tests and tables of constants.
func MustParse(s string) ID {
	id, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return id
}
