package oldpdb

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/andrew-torda/pdbstruct/pdb/atom"
	"github.com/andrew-torda/pdbstruct/pdb/cmmn"
	"github.com/andrew-torda/pdbstruct/pdb/model"
	"github.com/andrew-torda/pdbstruct/pdb/resid"
)

// col is the trimmed text of columns [from, to) counting from zero
func col(line string, from, to int) string {
	return strings.TrimSpace(line[from:to])
}

// intCol is zero for blank columns
func intCol(line string, from, to int) (int, error) {
	s := col(line, from, to)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not an integer (columns %d-%d)", s, from+1, to)
	}
	return n, nil
}

func floatCol(line string, from, to int) (float64, error) {
	return parseFloat(col(line, from, to))
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number", s)
	}
	return f, nil
}

// GuessElementSymbol is for lines with nothing in columns 77-78.
// Hydrogens start with H. Otherwise a HETATM takes its whole name and
// an ATOM takes the fallback, which is usually column 14.
func GuessElementSymbol(name string, isHetAtom bool, fallback byte) string {
	if hasPrefixFold(name, "H") {
		return "H"
	}
	if isHetAtom {
		return name
	}
	return strings.TrimSpace(string(fallback))
}

// id is the serial number, unless the file is so big that serial
// numbers wrapped. Then ids are handed out in order.
func (r *reader) id(serial int) int {
	if serial == 10000 && len(r.buf.Atoms) >= 95000 {
		r.huge = true
	}
	if r.huge {
		r.hugeID++
		return r.hugeID
	}
	return serial
}

// atom reads ATOM and HETATM lines. In PQR files the charge and radius
// follow the coordinates, separated by spaces, optionally followed by
// an element.
func (r *reader) atom(line string) error {
	serial, err := intCol(line, 6, 11)
	if err != nil {
		return err
	}
	var pos cmmn.Xyz
	if pos.X, err = floatCol(line, 30, 38); err != nil {
		return err
	}
	if pos.Y, err = floatCol(line, 38, 46); err != nil {
		return err
	}
	if pos.Z, err = floatCol(line, 46, 54); err != nil {
		return err
	}
	seq, err := intCol(line, 22, 26)
	if err != nil {
		return err
	}
	if r.model > 0 {
		seq += r.model * 10000
	}
	record := "ATOM"
	if strings.HasPrefix(line, "HETATM") {
		record = "HETATM"
	}
	a := &atom.Atom{
		ID:         r.id(serial),
		Serial:     serial,
		Name:       col(line, 12, 16),
		RecordName: record,
		AltLoc:     line[16],
		ResName:    col(line, 17, 20),
		Chain:      col(line, 21, 22),
		ResSeq:     seq,
		ICode:      line[26],
	}
	var element string
	if r.pqr {
		if element, err = r.pqrFields(line, a); err != nil {
			return err
		}
	} else {
		if a.Occupancy, err = floatCol(line, 54, 60); err != nil {
			return err
		}
		if a.TempFactor, err = floatCol(line, 60, 66); err != nil {
			return err
		}
		a.SegID = col(line, 72, 76)
		element = col(line, 76, 78)
		a.Charge = col(line, 78, 80)
	}
	if element == "" {
		element = GuessElementSymbol(a.Name, record == "HETATM", line[13])
	}
	a.Element = element
	a.EntityID = 1
	a.Pos = pos
	r.buf.AddAtom(a)
	return nil
}

const pqrUsage = "Invalid PQR record. The fields must be aligned the same way as in PDB format, " +
	"with charge, radius, and optionally element symbol, being the last 3 columns " +
	"and separated by at least a single space. For example: " +
	"'ATOM      1  N   MET A   1      39.914   3.935  -2.319  0.15920000    1.550 N'."

// pqrFields puts the charge in the occupancy and the radius in the
// temperature factor.
func (r *reader) pqrFields(line string, a *atom.Atom) (string, error) {
	f := strings.Fields(line[55:])
	if len(f) < 2 {
		return "", fmt.Errorf("%s", pqrUsage)
	}
	var err error
	if a.Occupancy, err = parseFloat(f[0]); err != nil {
		return "", err
	}
	if a.TempFactor, err = parseFloat(f[1]); err != nil {
		return "", err
	}
	if len(f) >= 3 {
		return f[2], nil
	}
	return "", nil
}

// conect gives up to four bonds from the atom in columns 7-11
func (r *reader) conect(line string) error {
	from, err := intCol(line, 6, 11)
	if err != nil {
		return err
	}
	for _, c := range []int{11, 16, 21, 26} {
		to, err := intCol(line, c, c+5)
		if err != nil {
			return err
		}
		if col(line, c, c+5) == "" {
			continue
		}
		r.buf.Conect = append(r.buf.Conect, model.ConectRecord{From: from, To: to, Line: r.n})
	}
	return nil
}

// residue reads a residue id from a chain column, a four column
// number and an insertion code column.
func residue(line string, chain, num, icode int) (resid.ID, error) {
	n, err := intCol(line, num, num+4)
	if err != nil {
		return resid.ID{}, err
	}
	return resid.New(n, string(line[chain]), line[icode]), nil
}

func (r *reader) secondary(line string, t model.SecondaryType, c [6]int) error {
	start, err := residue(line, c[0], c[1], c[2])
	if err != nil {
		return err
	}
	end, err := residue(line, c[3], c[4], c[5])
	if err != nil {
		return err
	}
	r.buf.Secondary = append(r.buf.Secondary, model.SecondaryDescriptor{Type: t, Start: start, End: end})
	return nil
}

func (r *reader) helix(line string) error {
	return r.secondary(line, model.Helix, [6]int{19, 21, 25, 31, 33, 37})
}

func (r *reader) sheet(line string) error {
	return r.secondary(line, model.Sheet, [6]int{21, 22, 26, 32, 33, 37})
}

func (r *reader) modres(line string) error {
	id, err := residue(line, 16, 18, 22)
	if err != nil {
		return err
	}
	r.buf.Modified = append(r.buf.Modified, model.ModifiedDescriptor{ID: id, ModifiedFrom: col(line, 24, 27)})
	return nil
}

var (
	headerDate = regexp.MustCompile(`([0-9]+)-([A-Za-z]{3})-([0-9]+)`)
	resolution = regexp.MustCompile(`[0-9]+\.[0-9]+`)
)

// header takes the release date, written like 09-FEB-95
func (r *reader) header(line string) {
	m := headerDate.FindStringSubmatch(line)
	if m == nil {
		return
	}
	y, _ := strconv.Atoi(m[3])
	if y > 50 {
		y += 1900
	} else {
		y += 2000
	}
	s := fmt.Sprintf("%s-%s-%d", m[1], m[2], y)
	if t, err := time.Parse("2-Jan-2006", s); err == nil {
		r.buf.Meta.Released = t
	}
}

// remark only looks at REMARK   2 RESOLUTION. 1.55 ANGSTROMS.
func (r *reader) remark(line string) {
	if !strings.HasPrefix(line, "REMARK   2 RESOLUTION.") {
		return
	}
	if m := resolution.FindString(line); m != "" {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			r.buf.Meta.Resolution = &f
		}
	}
}

func (r *reader) keywds(line string) {
	for _, k := range strings.Split(line[10:], ",") {
		if k = strings.TrimSpace(k); k != "" {
			r.keywords = append(r.keywords, k)
		}
	}
}

func (r *reader) expdta(line string) {
	if m := strings.TrimSpace(line[10:]); m != "" && r.buf.Meta.ExperimentMethod == "" {
		r.buf.Meta.ExperimentMethod = m
	}
}
