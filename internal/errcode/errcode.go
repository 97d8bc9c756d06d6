// Package errcode lists the codes of errors shown to command line users.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Configuration and logging
	ConfigFileError
	ConfigValueError
	CreateLogFileError

	// Structure input
	ReadStructureError
	FetchError
	ResidueIDError
	ChainNotFoundError

	// Index database
	IndexOpenError
	IndexWriteError
	IndexQueryError

	// Output
	WriteOutputError
)
