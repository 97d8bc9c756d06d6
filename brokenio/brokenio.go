// Package brokenio wraps an io.ReadCloser so reads fail on demand.
// Typical use: you get a file pointer, a reader from a compressed
// source or an http source. You write
// reader = brokenio.NewReader(reader) to wrap the old reader. Everything
// then functions as before, but with artificial errors.
// When we introduce an error, we return ErrInjected.
// When we introduce a failure on the first read, we return io.EOF with no
// data. This is what one often sees on a zero length file.
package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
)

// ErrInjected is wrapped by every error the reader makes up
var ErrInjected = errors.New("injected read failure")

// A Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// These values are the fraction of time an error will take place,
// so a value of 0.05 means failure in 5% of the cases.
type Reader struct {
	rc           io.ReadCloser
	rnd          *rand.Rand
	probZeroFile float32 // probability of returning a zero length file
	probFail     float32
	fracFail     float32
	failAfter    int // fail once this many bytes have gone through, -1 never
	nCalled      int
	nByte        int
	verbose      bool
	out          io.Writer
}

// NewReader returns a new Reader, a wrapper around the old one.
// It never fails until told to.
func NewReader(rIn io.ReadCloser) *Reader {
	return &Reader{
		rc:        rIn,
		rnd:       rand.New(rand.NewPCG(1, 2)),
		fracFail:  0.5,
		failAfter: -1,
		out:       os.Stdout,
	}
}

// SetSeed makes the random failures repeatable
func (r *Reader) SetSeed(seed uint64) { r.rnd = rand.New(rand.NewPCG(seed, seed)) }

// SetVerbose says if the amount of data is printed on Close
func (r *Reader) SetVerbose(newV bool) { r.verbose = newV }

// SetOutput is where verbose output goes
func (r *Reader) SetOutput(w io.Writer) { r.out = w }

// SetFracFail sets the fraction of the bytes which will be trashed
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail sets the probability of a read failure.
// It must be between zero and 1.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes the read which passes n bytes return what it has
// up to n and an error. Negative n turns it off.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	clear(p[nkeep:])
	return nkeep, fmt.Errorf("%w: wiped out last %d of %d", ErrInjected, len(p)-nkeep, len(p))
}

// Read wraps the original reader and sums up the amount of data that
// has gone through.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	if r.failAfter >= 0 && r.nByte >= r.failAfter {
		return 0, fmt.Errorf("%w after %d bytes", ErrInjected, r.nByte)
	}
	n, err := r.rc.Read(p)
	r.nCalled++
	if r.failAfter >= 0 && r.nByte+n > r.failAfter {
		keep := r.failAfter - r.nByte
		r.nByte = r.failAfter
		return keep, fmt.Errorf("%w after %d bytes", ErrInjected, r.failAfter)
	}
	r.nByte += n
	if n > 0 && r.probFail > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *Reader) Close() error {
	if r.verbose {
		fmt.Fprintln(r.out, "Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	return r.rc.Close()
}
