// Test Zwrap
package zwrap_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/pdbstruct/pdb/zwrap"
)

// both of these are "andrewsays", but the first is compressed. Write them to a file
// and check that the file opener does the right thing.
type gztest struct {
	data    []byte
	gzipped bool
}

var gztests = []gztest{
	{[]byte{
		0x1f, 0x8b, 0x08, 0x00, 0xb6, 0xf1, 0xa0, 0x5b, 0x00, 0x03,
		0x4b, 0xcc, 0x4b, 0x29, 0x4a, 0x2d, 0x2f, 0x4e, 0xac, 0x2c,
		0xce, 0x48, 0xcd, 0xc9, 0xc9, 0x07, 0x00, 0x44, 0xa8, 0x66,
		0x89, 0x0f, 0x00, 0x00, 0x00},
		true,
	},
	{[]byte{
		0x61, 0x6e, 0x64, 0x72, 0x65, 0x77, 0x73, 0x61,
		0x79, 0x73, 0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x0a},
		false,
	},
}

// writeToTmp writes a byte slice to a file in a test directory and
// returns its name.
func writeToTmp(t *testing.T, data []byte) string {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "del_me_testing")
	if err := os.WriteFile(fname, data, 0o600); err != nil {
		t.Fatal("fail writing to tempfile", err)
	}
	return fname
}

func checkRead(t *testing.T, r io.Reader) {
	t.Helper()
	b, err := io.ReadAll(r)
	if err != nil {
		t.Errorf("Reading got %s", err)
	}
	if len(b) < 10 || string(b[:10]) != "andrewsays" {
		t.Errorf("wrong string: %q", b)
	}
}

func TestWrap(t *testing.T) {
	for _, x := range gztests {
		fp, err := os.Open(writeToTmp(t, x.data))
		if err != nil {
			t.Fatal(err)
		}
		tmpr, err := zwrap.Wrap(fp)
		if err != nil {
			if x.gzipped {
				t.Error("Fail on correctly gzipped file")
			}
			fp.Close()
			continue
		}
		if !x.gzipped {
			t.Error("Fail on not compressed file")
		}
		checkRead(t, tmpr)
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Calling WrapMaybe should not fail since it guesses if the file
// is compressed or not.
func TestWrapMaybe(t *testing.T) {
	for _, x := range gztests {
		fp, err := os.Open(writeToTmp(t, x.data))
		if err != nil {
			t.Fatal(err)
		}
		tmpr, err := zwrap.WrapMaybe(fp)
		if err != nil {
			t.Fatalf("Fail on file where compressed was %v", x.gzipped)
		}
		if tmpr.Compressed() != x.gzipped {
			t.Errorf("Compressed() gave %v", tmpr.Compressed())
		}
		checkRead(t, tmpr)
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

// Open maps plain files and decompresses gzipped ones
func TestOpen(t *testing.T) {
	for _, x := range gztests {
		tmpr, err := zwrap.Open(writeToTmp(t, x.data))
		if err != nil {
			t.Fatalf("Open failed where compressed was %v: %s", x.gzipped, err)
		}
		if tmpr.Compressed() != x.gzipped {
			t.Errorf("Compressed() gave %v", tmpr.Compressed())
		}
		checkRead(t, tmpr)
		if err := tmpr.Close(); err != nil {
			t.Errorf("Error closing: %s", err)
		}
	}
}

func TestOpenEmpty(t *testing.T) {
	tmpr, err := zwrap.Open(writeToTmp(t, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer tmpr.Close()
	if b, err := io.ReadAll(tmpr); err != nil || len(b) != 0 {
		t.Errorf("empty file gave %d bytes, err %v", len(b), err)
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := zwrap.Open(filepath.Join(t.TempDir(), "does", "not", "exist")); err == nil {
		t.Error("no error opening missing file")
	}
}
