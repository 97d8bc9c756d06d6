// Package zwrap takes a file pointer and optionally wraps it so upon
// calling Close, the decompressor will be closed, followed by the
// underlying file.
// Uncompressed files opened with Open are memory mapped instead of
// being read through a file pointer.
package zwrap

import (
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// gzMagic starts every gzip stream
var gzMagic = []byte{0x1f, 0x8b}

// FpGzip is what we return. Read goes to the decompressor if there
// is one, otherwise straight to the source.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader
}

// Close closes the decompressor, then the underlying readCloser.
// It should work if the source is a file, a mapping or an http stream.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	return errors.Join(fc.zrdr.Close(), fc.fp.Close())
}

// Read makes sure we read from the compressed stream and
// not the underlying file stream.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Compressed says if reads go through gzip
func (fc *FpGzip) Compressed() bool { return fc.zrdr != nil }

// Wrap takes a source like a file pointer or http stream and wraps it
// in a gzip reader. It fails if the source is not gzipped.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	zrdr, err := gzip.NewReader(fp)
	if err != nil {
		return nil, err
	}
	return &FpGzip{fp: fp, zrdr: zrdr}, nil
}

// ReadSeekCloser is a file or anything else we can rewind
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe will decide if the underlying stream is compressed
// and wrap the file pointer if necessary.
// If you pass in something which can seek, you get back a ReadCloser
// which cannot seek.
func WrapMaybe(fpIn ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fpIn); err == nil {
		return out, nil
	}
	_, err := fpIn.Seek(0, io.SeekStart)
	return &FpGzip{fp: fpIn}, err
}

// mapped is a read only mapping of a whole file
type mapped struct {
	*bytes.Reader
	m  mmap.MMap
	fp *os.File
}

func (m *mapped) Close() error {
	return errors.Join(m.m.Unmap(), m.fp.Close())
}

// Open opens a file for reading. Gzipped files are decompressed,
// others are memory mapped. Empty files are read normally since they
// cannot be mapped.
func Open(fname string) (*FpGzip, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	magic := make([]byte, len(gzMagic))
	n, err := io.ReadFull(fp, magic)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		fp.Close()
		return nil, err
	}
	if _, err := fp.Seek(0, io.SeekStart); err != nil {
		fp.Close()
		return nil, err
	}
	if n == len(gzMagic) && bytes.Equal(magic, gzMagic) {
		out, err := Wrap(fp)
		if err != nil {
			fp.Close()
			return nil, errors.New("reading " + fname + " " + err.Error())
		}
		return out, nil
	}
	if n == 0 {
		return &FpGzip{fp: fp}, nil
	}
	m, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		fp.Close()
		return nil, err
	}
	return &FpGzip{fp: &mapped{Reader: bytes.NewReader(m), m: m, fp: fp}}, nil
}
