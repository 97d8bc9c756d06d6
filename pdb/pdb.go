// Package pdb is the upper level for reading structure files.
// Decide if a file is compressed or not, and what format
// we are going to read. Then call the corresponding pdb or mmcif
// format reader.
package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andrew-torda/pdbstruct/pdb/ingest"
	"github.com/andrew-torda/pdbstruct/pdb/mmcif"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/oldpdb"
	"github.com/andrew-torda/pdbstruct/pdb/warn"
	"github.com/andrew-torda/pdbstruct/pdb/zwrap"
)

// Format is a file format we can read
type Format int

const (
	FormatUnknown Format = iota
	FormatPDB
	FormatPQR
	FormatMmcif
)

func (f Format) String() string {
	switch f {
	case FormatPDB:
		return "PDB"
	case FormatPQR:
		return "PQR"
	case FormatMmcif:
		return "PDBx/mmCIF"
	}
	return "unknown"
}

// ParseFormat takes a name like "pdb" or "cif" as given on a command line
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "pdb", "ent":
		return FormatPDB
	case "pqr":
		return FormatPQR
	case "cif", "mmcif", "pdbx":
		return FormatMmcif
	}
	return FormatUnknown
}

// maxTestLines is how far we look into a file with no useful extension
const maxTestLines = 5000

var (
	pdbWords   = []string{"HEADER", "COMPND", "SOURCE", "REMARK", "SEQRES", "CRYST1", "MODEL", "HETATM", "ATOM"}
	mmcifWords = []string{"data_", "loop_", "_entry.id"}
)

// trimName takes off a .gz, then says what is left and the extension,
// lower case and without the dot.
func trimName(fname string) (string, string) {
	s := filepath.Base(fname)
	if strings.EqualFold(filepath.Ext(s), ".gz") {
		s = s[:len(s)-len(".gz")]
	}
	ext := filepath.Ext(s)
	return strings.TrimSuffix(s, ext), strings.ToLower(strings.TrimPrefix(ext, "."))
}

// IDFromName is the structure id for a file: the base name without .gz
// and without the extension. "a/1abc.cif.gz" gives "1abc".
func IDFromName(fname string) string {
	id, _ := trimName(fname)
	return id
}

// FormatFromName decides the format from the extension alone.
// .pdb0 to .pdb9 are the biological assembly files.
func FormatFromName(fname string) Format {
	_, ext := trimName(fname)
	switch {
	case ext == "pdb" || ext == "ent":
		return FormatPDB
	case len(ext) == 4 && strings.HasPrefix(ext, "pdb") && ext[3] >= '0' && ext[3] <= '9':
		return FormatPDB
	case ext == "pqr":
		return FormatPQR
	case ext == "cif" || ext == "mmcif":
		return FormatMmcif
	}
	return FormatUnknown
}

// Sniff looks at the start of the contents and guesses if they are in
// old PDB format or in mmcif.
func Sniff(rd io.Reader) (Format, error) {
	scnnr := bufio.NewScanner(rd)
	for i := 0; i < maxTestLines && scnnr.Scan(); i++ {
		s := scnnr.Text()
		for _, w := range mmcifWords {
			if strings.HasPrefix(s, w) {
				return FormatMmcif, nil
			}
		}
		for _, w := range pdbWords {
			if strings.HasPrefix(s, w) {
				return FormatPDB, nil
			}
		}
	}
	if err := scnnr.Err(); err != nil {
		return FormatUnknown, err
	}
	return FormatUnknown, errors.New("cannot recognise format")
}

// sniffFile opens a file just to look inside
func sniffFile(fname string) (Format, error) {
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return FormatUnknown, err
	}
	defer rdr.Close()
	f, err := Sniff(rdr)
	if err != nil {
		return FormatUnknown, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// ReadStructure reads a structure from a file, possibly gzipped.
// The format comes from the extension or, failing that, from the
// contents. The id of the structure is taken from the file name.
func ReadStructure(fname string, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	f := FormatFromName(fname)
	if f == FormatUnknown {
		var err error
		if f, err = sniffFile(fname); err != nil {
			return nil, nil, err
		}
	}
	rdr, err := zwrap.Open(fname)
	if err != nil {
		return nil, nil, err
	}
	defer rdr.Close()
	return Read(rdr, IDFromName(fname), f, opts)
}

// lineError is what both readers return when a file is broken
type lineError interface {
	Line() int
	Description() string
}

// FormatError says a file could not be read, and where
type FormatError struct {
	Format Format
	Line   int
	Msg    string
	err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("Invalid %s format. First error at line %d: %s", e.Format, e.Line, e.Msg)
}

func (e *FormatError) Unwrap() error { return e.err }

// Read reads a structure in a known format. Warnings come back even
// when there is an error.
func Read(rd io.Reader, id string, f Format, opts ingest.Options) (*model.Structure, []warn.Warning, error) {
	var (
		s   *model.Structure
		w   []warn.Warning
		err error
	)
	switch f {
	case FormatMmcif:
		s, w, err = mmcif.Read(rd, id, opts)
	case FormatPDB:
		s, w, err = oldpdb.Read(rd, id, opts)
	case FormatPQR:
		s, w, err = oldpdb.ReadPQR(rd, id, opts)
	default:
		return nil, nil, fmt.Errorf("%s: cannot read format %s", id, f)
	}
	if err == nil {
		return s, w, nil
	}
	// PQR files are reported as PDB
	if f == FormatPQR {
		f = FormatPDB
	}
	var le lineError
	if errors.As(err, &le) {
		return nil, w, &FormatError{Format: f, Line: le.Line(), Msg: le.Description(), err: err}
	}
	return nil, w, fmt.Errorf("%s: %w", id, err)
}
