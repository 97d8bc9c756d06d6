// An error implementation that saves the line number and the
// line we were trying to read.
// The key is to call xxxx.fill() where xxxx is the name of the comment
// scanner/mmcif reader.
package mmcif

import (
	"strconv"
)

const maxMsgLen = 70

type readError struct {
	n      int    // line number
	inline string // The line that provoked the error
	desc   string // Description of error
}

// fill stores the problem we have seen for printing
// out when it is convenient. It is in the scanner, but
// can be seen (by inclusion) in the mmcif reader.
// Only the first error is kept, later ones are usually a consequence.
func (m *cmmtScanner) fill(desc string, saveLine bool) {
	if !m.Ok {
		return
	}
	m.Ok = false
	m.lErr.n = m.n
	if saveLine {
		m.lErr.inline = string(m.cbytes())
	}
	m.lErr.desc = desc
}

func firstPart(s string) string {
	l := len(s)
	if l > maxMsgLen {
		l = maxMsgLen
	}
	return s[:l]
}

// Line is the line number of the first error
func (e *readError) Line() int { return e.n }

// Description is the error without the line number
func (e *readError) Description() string { return e.desc }

// Error takes what is known about the state and causes and returns a
// single string. This should include the number of the last line read
// and any description of the error we have.
func (e *readError) Error() string {
	var errmsg string
	if e.n != 0 {
		errmsg = "Line: " + strconv.Itoa(e.n) + " "
	}
	errmsg += e.desc
	if e.inline != "" {
		errmsg += "\nLine starting with\n" + firstPart(e.inline)
	}
	return errmsg
}

// failAt is fill for an error that belongs to an earlier line,
// like the start of a loop row.
func (m *cmmtScanner) failAt(line int, desc string) {
	if !m.Ok {
		return
	}
	m.fill(desc, false)
	m.lErr.n = line
}
