package mmcif

import (
	"fmt"
	"strconv"
	"strings"
)

// header is the list of item names of a category, in file order.
// Loop rows share one header.
type header struct {
	cat   string // like _atom_site
	names []string
	index map[string]int
}

func newHeader(cat string) *header {
	return &header{cat: cat, index: make(map[string]int)}
}

func (h *header) add(name string) {
	if _, ok := h.index[name]; !ok {
		h.index[name] = len(h.names)
		h.names = append(h.names, name)
	}
}

// Row is one set of values of a category, either one row of a loop
// or all the single items of a category.
type Row struct {
	h    *header
	vals []token
	line int
}

func (r *Row) get(name string) (token, bool) {
	i, ok := r.h.index[name]
	if !ok || i >= len(r.vals) {
		return token{}, false
	}
	return r.vals[i], true
}

func (r *Row) fullName(name string) string { return r.h.cat + "." + name }

// String is a required value.
func (r *Row) String(name string) (string, error) {
	t, ok := r.get(name)
	if !ok {
		return "", fmt.Errorf("The field '%s' is required.", r.fullName(name))
	}
	if t.isNull() {
		return "", fmt.Errorf("The value of '%s' is required.", r.fullName(name))
	}
	return t.s, nil
}

// StringOr gives def for a missing or null value
func (r *Row) StringOr(name, def string) string {
	if t, ok := r.get(name); ok && !t.isNull() {
		return t.s
	}
	return def
}

// Opt is a value that may be missing. "" and false if it is.
func (r *Row) Opt(name string) (string, bool) {
	if t, ok := r.get(name); ok && !t.isNull() {
		return t.s, true
	}
	return "", false
}

func (r *Row) parseInt(name, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("'%s' is not an integer in '%s'", s, r.fullName(name))
	}
	return n, nil
}

func (r *Row) parseFloat(name, s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("'%s' is not a number in '%s'", s, r.fullName(name))
	}
	return f, nil
}

// Int is a required integer
func (r *Row) Int(name string) (int, error) {
	s, err := r.String(name)
	if err != nil {
		return 0, err
	}
	return r.parseInt(name, s)
}

// IntOr gives def for a missing or null value, but a value that is
// there has to be an integer.
func (r *Row) IntOr(name string, def int) (int, error) {
	s, ok := r.Opt(name)
	if !ok {
		return def, nil
	}
	return r.parseInt(name, s)
}

// Float is a required number
func (r *Row) Float(name string) (float64, error) {
	s, err := r.String(name)
	if err != nil {
		return 0, err
	}
	return r.parseFloat(name, s)
}

// FloatOr is like IntOr
func (r *Row) FloatOr(name string, def float64) (float64, error) {
	s, ok := r.Opt(name)
	if !ok {
		return def, nil
	}
	return r.parseFloat(name, s)
}

// OptFloat is nil for a missing value
func (r *Row) OptFloat(name string) (*float64, error) {
	s, ok := r.Opt(name)
	if !ok {
		return nil, nil
	}
	f, err := r.parseFloat(name, s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Char is the first character of a value, def if missing, null or blank.
func (r *Row) Char(name string, def byte) byte {
	s := strings.TrimSpace(r.StringOr(name, ""))
	if s == "" {
		return def
	}
	return s[0]
}

// Line is where the row started
func (r *Row) Line() int { return r.line }
