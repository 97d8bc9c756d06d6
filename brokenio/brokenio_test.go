package brokenio_test

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/pdbstruct/brokenio"
)

var tochop = [][]byte{
	[]byte(""),
	[]byte("a"),
	[]byte("abc"),
	[]byte("abcdefghij"),
	[]byte("abcdefghijklmn"),
}

var longstring = "0123456789012345678901234567890123456789"

// lenNonNull returns the length of byte array up to first null
func lenNonNull(a []byte) int {
	if i := bytes.IndexByte(a, 0); i >= 0 {
		return i
	}
	return len(a)
}

// checkNonNull gets two byte slices and sees if they are
// identical within the first characters which are not nulls
func checkNonNull(a, b []byte) bool {
	shorter := min(lenNonNull(a), lenNonNull(b))
	return bytes.Equal(a[:shorter], b[:shorter])
}

func newReader(s string) *brokenio.Reader {
	return brokenio.NewReader(io.NopCloser(strings.NewReader(s)))
}

// testFrac - wipe out different fractions of the input buffer.
func testFrac(t *testing.T, inb []byte, frac float32) {
	s := make([]byte, len(inb))
	rdr := newReader(string(inb))
	rdr.SetProbFail(1)
	rdr.SetFracFail(frac)
	_, err := rdr.Read(s)
	nuls := []byte{0}
	if !checkNonNull(inb, s) {
		t.Error("contents of strings changed with string", string(inb), "frac", frac)
	}
	switch frac {
	case 0.0:
		if n := bytes.Count(s, nuls); n > 0 {
			t.Error("want no null bytes, got", n)
		}
		if err != nil && len(inb) > 0 {
			t.Errorf("error reading from string \"%s\"", inb)
		}
	case 1.0: // all nulls and an error
		if n := bytes.Count(s, nuls); n != len(s) {
			t.Error("want", len(s), "nulls, got", n)
		}
		if len(s) > 0 && !errors.Is(err, brokenio.ErrInjected) {
			t.Error("did not get error reading from", string(inb))
		}
	default:
		nNull := bytes.Count(s, nuls)
		if nNull == 0 && len(inb) > 0 {
			t.Errorf("no nulls found in \"%s\"", string(s))
		}
		if nNull == len(s) && len(s) > 2 {
			t.Error("Wiped out complete string in", string(inb))
		}
	}
}

// TestTrashing takes strings and removes parts of them
func TestTrashing(t *testing.T) {
	fracs := [3]float32{0, 0.3, 1}
	for _, frac := range fracs {
		for _, inb := range tochop {
			testFrac(t, inb, frac)
		}
	}
}

func forZeroFile(prob float32) (n int, err error) {
	rdr := newReader(longstring)
	rdr.SetProbZeroFile(prob)
	tmp := make([]byte, len(longstring))
	n, err = rdr.Read(tmp)
	rdr.Close()
	return n, err
}

func TestZeroFile(t *testing.T) {
	n, err := forZeroFile(1)
	if n > 0 {
		t.Error("should have received zero bytes")
	}
	if err != io.EOF {
		t.Errorf("Should have received EOF")
	}
	n, err = forZeroFile(0)
	if n < len(longstring) {
		t.Error("Wanted", len(longstring), "got", n)
	}
	if err != nil {
		t.Errorf("err reading from string")
	}
}

func TestReaderSimple(t *testing.T) {
	rdr := newReader(longstring)
	rdr.SetProbFail(0)
	s := make([]byte, len(longstring))
	if rdr.Read(s); string(s) != longstring {
		t.Errorf("simple read fail got %q wanted %q", s, longstring)
	}
}

// A scanner should see the lines before the failure, then the error
func TestFailAfter(t *testing.T) {
	rdr := newReader("line one\nline two\nline three\n")
	rdr.SetFailAfter(9)
	scnr := bufio.NewScanner(rdr)
	var got []string
	for scnr.Scan() {
		got = append(got, scnr.Text())
	}
	if len(got) != 1 || got[0] != "line one" {
		t.Errorf("got lines %q", got)
	}
	if !errors.Is(scnr.Err(), brokenio.ErrInjected) {
		t.Errorf("wanted injected error, got %v", scnr.Err())
	}
}

func Example_setVerbose() {
	rdr := newReader(longstring)
	rdr.SetVerbose(true)
	tmp := make([]byte, len(longstring))
	rdr.Read(tmp)
	rdr.Close()
	// Output: Closing 1 calls and 40 bytes
}

// TestClose - check if the reader really is calling the correct close method.
func TestClose(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "testclose_test")
	if err := os.WriteFile(fname, []byte(longstring), 0o600); err != nil {
		t.Fatal("Writing temp file failed", err)
	}
	fp, err := os.Open(fname)
	if err != nil {
		t.Fatal("reading from tempfile, err = ", err)
	}
	rdr := brokenio.NewReader(fp)
	s := make([]byte, len(longstring))
	if n, err := rdr.Read(s); n != len(longstring) || err != nil {
		t.Error("Failed reading from tempfile, n, err = ", n, err)
	}
	if err = rdr.Close(); err != nil {
		t.Error("failed on close of reader")
	}
	if err = fp.Close(); err == nil {
		t.Error("file was not closed by the wrapper")
	}
}
