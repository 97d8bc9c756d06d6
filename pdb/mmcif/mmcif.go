package mmcif

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
)

const (
	maxLine  = 1 << 20 // longest line we accept
	maxWords = 64      // words on a line before we use the slow splitter
)

type cmmtScanner struct {
	*bufio.Scanner           // standard library scanner
	lErr           readError // fill this out as soon as an error happens
	ctoken         []byte    // Store the bytes that will be returned by cbytes()
	n              int       // line number in the mmcif file
	Ok             bool      // Are we OK or have we had an error ?
}

// newCmmtScanner is a wrapper around scanner, but
//   - jumps over blank lines
//   - removes trailing space
//
// Comment lines are kept, since a # ends a group of single items.
func newCmmtScanner(r io.Reader) cmmtScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLine)
	return cmmtScanner{Scanner: s, Ok: true}
}

// cscan is a wrapper around the library Scan(). It adds a newline counter
// for error messages. At the end of the file it returns true, but
// cbytes() gives nil. It only returns false after an error.
func (s *cmmtScanner) cscan() (ok bool) {
	if !s.Ok { // We have already had an error
		s.ctoken = nil
		return false
	}
	for s.Scan() {
		s.n++
		b := bytes.TrimRight(s.Bytes(), " \t\r")
		if len(b) == 0 {
			continue
		}
		s.ctoken = b
		return true
	}
	s.ctoken = nil
	if err := s.Err(); err != nil {
		s.fill(err.Error(), false)
		return false
	}
	return true
}

// cbytes is like Bytes from the library, but returns the processed
// characters. They are only valid until the next cscan().
func (s *cmmtScanner) cbytes() []byte {
	return s.ctoken
}

// reader holds the state while going through one file
type reader struct {
	cmmtScanner
	buf         *ingest.Buffers
	hdr         *header // current loop
	scrtch      []bSlice
	toks        []token
	pending     []token // values read past the end of a loop row
	sawData     bool
	hasAtomSite bool
	compAtoms   []*atom.Atom
	compBonds   []compBondRow
	revisions   []time.Time
}

func newReader(r io.Reader) *reader {
	return &reader{
		cmmtScanner: newCmmtScanner(r),
		buf:         ingest.New(),
		scrtch:      make([]bSlice, maxWords),
		toks:        make([]token, 0, maxWords),
	}
}

// stateFn is the type of state function. It returns the next
// state function that should act on its input.
type stateFn func(*reader) stateFn

func hasPrefixFold(b []byte, prefix string) bool {
	return len(b) >= len(prefix) && bytes.EqualFold(b[:len(prefix)], []byte(prefix))
}

// isSpecial is true for a line that starts something new, and at the
// end of the file.
func isSpecial(b []byte) bool {
	switch {
	case b == nil:
		return true
	case b[0] == '_', b[0] == '#':
		return true
	case hasPrefixFold(b, "loop_"), hasPrefixFold(b, "data_"):
		return true
	}
	return false
}

// stateTop is the general state that looks at the current line and
// decides what state to jump to next. Lines that are not the start of
// something are skipped.
func stateTop(r *reader) stateFn {
	b := r.cbytes() // Does not advance scanner
	switch {
	case !r.Ok || b == nil:
		return nil
	case hasPrefixFold(b, "data_"):
		return stateData
	case hasPrefixFold(b, "loop_"):
		return stateLoop
	case b[0] == '_':
		return stateSingle
	case b[0] == ';':
		r.textBlock()
		return stateTop
	}
	r.cscan()
	return stateTop
}

// stateData handles data_ lines. We only read the first block.
func stateData(r *reader) stateFn {
	if r.sawData {
		r.buf.Warn(warn.NewMultipleStructures(r.n))
		return nil
	}
	r.sawData = true
	r.cscan()
	return stateTop
}

// stateLoop gets the headers from a loop directive and decides what to
// do with the rows. Loops we have no use for are skipped.
func stateLoop(r *reader) stateFn {
	r.hdr = nil
	r.pending = r.pending[:0]
	for r.cscan(); r.Ok; r.cscan() {
		b := r.cbytes()
		if b == nil || b[0] != '_' {
			break
		}
		name := b
		if i := bytes.IndexAny(b, " \t"); i > 0 {
			name = b[:i]
		}
		cat, item := splitTag(string(name))
		if r.hdr == nil {
			r.hdr = newHeader(cat)
		}
		r.hdr.add(item)
	}
	if !r.Ok || r.hdr == nil {
		return stateTop
	}
	rt := RecordTypeOf(r.hdr.cat)
	if rt == AtomSite {
		return stateAtomSite
	}
	h, ok := handlers[rt]
	if !ok || h.loop == nil {
		return stateSkip
	}
	line := r.n
	var rows []*Row
	for {
		row, ok := r.getRow(r.hdr)
		if !ok {
			break
		}
		rows = append(rows, row)
	}
	if !r.Ok {
		return nil
	}
	if err := h.loop(r, rows); err != nil {
		l, e := lineOf(err, line)
		r.failAt(l, e.Error())
		return nil
	}
	return stateTop
}

// stateSkip jumps over the rows of a loop we do not want
func stateSkip(r *reader) stateFn {
	for b := r.cbytes(); r.Ok && !isSpecial(b); b = r.cbytes() {
		if b[0] == ';' {
			r.textBlock()
		} else {
			r.cscan()
		}
	}
	return stateTop
}

// stateSingle collects the _cat.item value lines of one category and
// hands them over as one row. A value may be on the next line, either
// by itself or as a text block.
func stateSingle(r *reader) stateFn {
	var h *header
	row := &Row{line: r.n}
	for b := r.cbytes(); r.Ok && b != nil && b[0] == '_'; b = r.cbytes() {
		toks, err := splitLine(b, r.scrtch, r.toks)
		if err != nil {
			r.fill(err.Error(), true)
			return nil
		}
		cat, item := splitTag(toks[0].s)
		if h == nil {
			h = newHeader(cat)
		} else if cat != h.cat {
			break
		}
		var v token
		switch len(toks) {
		case 2:
			v = toks[1]
			r.cscan()
		case 1:
			if v, err = r.nextLineValue(toks[0].s); err != nil {
				r.fill(err.Error(), true)
				return nil
			}
		default:
			r.fill(fmt.Sprintf("more than one value for %s", toks[0].s), true)
			return nil
		}
		if i, ok := h.index[item]; ok {
			row.vals[i] = v
			continue
		}
		h.add(item)
		row.vals = append(row.vals, v)
	}
	if !r.Ok || h == nil {
		return nil
	}
	row.h = h
	hd, ok := handlers[RecordTypeOf(h.cat)]
	if !ok || hd.single == nil {
		return stateTop
	}
	if err := hd.single(r, row); err != nil {
		r.failAt(row.line, err.Error())
		return nil
	}
	return stateTop
}

// nextLineValue is for an item whose value is on the following line
func (r *reader) nextLineValue(name string) (token, error) {
	r.cscan()
	b := r.cbytes()
	if isSpecial(b) {
		return token{}, fmt.Errorf("no value for %s", name)
	}
	if b[0] == ';' {
		s, ok := r.textBlock()
		if !ok {
			return token{}, fmt.Errorf("unterminated text field for %s", name)
		}
		return token{s, true}, nil
	}
	toks, err := splitLine(b, r.scrtch, r.toks)
	if err != nil {
		return token{}, err
	}
	if len(toks) != 1 {
		return token{}, fmt.Errorf("more than one value for %s", name)
	}
	v := toks[0]
	r.cscan()
	return v, nil
}

// textBlock reads a value between lines starting with ;
// The current line is the first one. On return the scanner is on the
// line after the closing ;
func (r *reader) textBlock() (string, bool) {
	start := r.n
	lines := []string{string(r.cbytes()[1:])}
	for r.cscan(); ; r.cscan() {
		b := r.cbytes()
		if b == nil {
			r.failAt(start, "unterminated text field")
			return "", false
		}
		if b[0] == ';' {
			break
		}
		lines = append(lines, string(b))
	}
	r.cscan()
	return strings.TrimSpace(strings.Join(lines, "\n")), true
}

// getRow asks the scanner for lines until it has one value for each
// column of the loop. A row may be spread over lines and a line may
// hold more than one row. It is false at the end of the loop or after
// an error.
func (r *reader) getRow(h *header) (*Row, bool) {
	n := len(h.names)
	row := &Row{h: h, line: r.n, vals: make([]token, 0, n)}
	row.vals = append(row.vals, r.pending...)
	r.pending = r.pending[:0]
	for len(row.vals) < n {
		b := r.cbytes()
		if isSpecial(b) {
			if len(row.vals) != 0 {
				r.failAt(row.line, fmt.Sprintf("%s loop row has %d of %d values", h.cat, len(row.vals), n))
			}
			return nil, false
		}
		if b[0] == ';' {
			s, ok := r.textBlock()
			if !ok {
				return nil, false
			}
			row.vals = append(row.vals, token{s, true})
			continue
		}
		toks, err := splitLine(b, r.scrtch, r.toks)
		if err != nil {
			r.fill(err.Error(), true)
			return nil, false
		}
		row.vals = append(row.vals, toks...)
		r.cscan()
	}
	if len(row.vals) > n {
		r.pending = append(r.pending, row.vals[n:]...)
		row.vals = row.vals[:n]
	}
	return row, true
}

// Read goes through an mmCIF file and builds the structure in the first
// data block. The warnings are returned even when there is an error.
func Read(rd io.Reader, id string, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	r := newReader(rd)
	if !r.cscan() {
		return nil, nil, &r.lErr
	}
	for state := stateTop; state != nil && r.Ok; {
		state = state(r)
	}
	if !r.Ok {
		return nil, r.buf.Warnings, &r.lErr
	}
	return r.finish(id, opts)
}

func (r *reader) errorAt(line int, desc string) error {
	r.failAt(line, desc)
	return &r.lErr
}

// finish builds either an ordinary structure or, for a file that only
// has _chem_comp_atom, a component structure of one residue.
func (r *reader) finish(id string, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	if len(r.buf.Atoms) == 0 && len(r.compAtoms) == 0 {
		return nil, r.buf.Warnings, r.errorAt(r.n, "The file contains no atoms.")
	}
	if len(r.compAtoms) > 0 && !r.hasAtomSite {
		bonds, err := componentBonds(r.compAtoms, r.compBonds)
		if err != nil {
			return nil, r.buf.Warnings, r.errorAt(r.n, err.Error())
		}
		r.buf.Atoms = r.compAtoms
		r.buf.Bonds = bonds
		r.buf.Component = true
	}
	s, w := r.buf.Assemble(id, opts)
	return s, w, nil
}
