// Package oldpdb reads the fixed column PDB format and PQR files, which
// are PDB files with a charge and a radius where the occupancy and
// temperature factor would be.
//
// Only the first model is read. CONECT records after it are still used.
package oldpdb

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
)

// lineLen is what every line is padded to, so column slicing cannot
// go off the end.
const lineLen = 80

// hugeStart is where ids start in a file with more than 99999 atoms
const hugeStart = 100000

// ParseError is the first problem in a file
type ParseError struct {
	line int
	desc string
}

func (e *ParseError) Line() int           { return e.line }
func (e *ParseError) Description() string { return e.desc }
func (e *ParseError) Error() string       { return "Line: " + strconv.Itoa(e.line) + " " + e.desc }

type reader struct {
	buf      *ingest.Buffers
	pqr      bool
	n        int  // line number
	model    int  // index of the current MODEL, -1 before the first
	skipping bool // past the first model, only CONECT is read
	warned   bool
	huge     bool
	hugeID   int
	keywords []string
}

// Read reads a PDB file
func Read(rd io.Reader, id string, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	return read(rd, id, false, opts)
}

// ReadPQR reads a PQR file
func ReadPQR(rd io.Reader, id string, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	return read(rd, id, true, opts)
}

func read(rd io.Reader, id string, pqr bool, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	r := &reader{buf: ingest.New(), pqr: pqr, model: -1, hugeID: hugeStart}
	r.buf.PqrCharges = pqr
	scnr := bufio.NewScanner(rd)
	for scnr.Scan() {
		r.n++
		line := scnr.Text()
		if len(line) == 0 {
			continue
		}
		if err := r.line(line); err != nil {
			return nil, r.buf.Warnings, &ParseError{r.n, err.Error()}
		}
	}
	if err := scnr.Err(); err != nil {
		return nil, r.buf.Warnings, &ParseError{r.n, err.Error()}
	}
	if len(r.buf.Atoms) == 0 {
		return nil, r.buf.Warnings, &ParseError{r.n, "The file contains no atoms."}
	}
	r.buf.Meta.Keywords = r.keywords
	if r.buf.Meta.Keywords == nil {
		r.buf.Meta.Keywords = []string{}
	}
	s, w := r.buf.Assemble(id, opts)
	return s, w, nil
}

// line looks at the record name and hands the line to its parser
func (r *reader) line(line string) error {
	r.buf.Line = r.n
	if r.skipping {
		if !r.warned && hasPrefixFold(line, "MODEL") {
			r.warned = true
			r.buf.Warn(warn.NewOnlyFirstModel(r.n))
		}
		if strings.HasPrefix(line, "CONECT") {
			return r.conect(pad(line))
		}
		return nil
	}
	rec := line
	if len(rec) > 6 {
		rec = rec[:6]
	}
	switch strings.TrimSpace(rec) {
	case "ATOM", "HETATM":
		return r.atom(pad(line))
	case "CONECT":
		return r.conect(pad(line))
	case "ENDMDL":
		if !r.huge {
			r.skipping = true
		}
	case "EXPDTA":
		r.expdta(pad(line))
	case "HELIX":
		return r.helix(pad(line))
	case "SHEET":
		return r.sheet(pad(line))
	case "HEADER":
		r.header(line)
	case "MODRES":
		return r.modres(pad(line))
	case "MODEL":
		r.model++
	case "REMARK":
		r.remark(line)
	case "KEYWDS":
		r.keywds(pad(line))
	}
	return nil
}

func pad(line string) string {
	if len(line) >= lineLen {
		return line
	}
	return line + strings.Repeat(" ", lineLen-len(line))
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
