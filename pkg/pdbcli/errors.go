package pdbcli

import (
	"fmt"
	"runtime"

	"github.com/andrew-torda/pdbstruct/internal/errcode"
	"github.com/gnames/gn"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	return runtime.FuncForPC(pc).Name()
}

func ReadStructureError(file string, err error) error {
	return &gn.Error{
		Code: errcode.ReadStructureError,
		Msg:  "Cannot read structure from <em>%s</em>",
		Vars: []any{file},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func FetchError(id string, err error) error {
	return &gn.Error{
		Code: errcode.FetchError,
		Msg:  "Cannot download entry <em>%s</em>",
		Vars: []any{id},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func ResidueIDError(text string, err error) error {
	return &gn.Error{
		Code: errcode.ResidueIDError,
		Msg:  "Not a residue identifier: <em>%s</em>",
		Vars: []any{text},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func ChainNotFoundError(file, chain string) error {
	return &gn.Error{
		Code: errcode.ChainNotFoundError,
		Msg:  "No chain <em>%s</em> in %s",
		Vars: []any{chain, file},
		Err:  fmt.Errorf("from %s: chain %q not in %s", caller(), chain, file),
	}
}

func IndexOpenError(path string, err error) error {
	return &gn.Error{
		Code: errcode.IndexOpenError,
		Msg:  "Cannot open index <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func IndexWriteError(path string, err error) error {
	return &gn.Error{
		Code: errcode.IndexWriteError,
		Msg:  "Cannot store summaries in <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func IndexQueryError(path string, err error) error {
	return &gn.Error{
		Code: errcode.IndexQueryError,
		Msg:  "Cannot search index <em>%s</em>",
		Vars: []any{path},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}

func WriteOutputError(what string, err error) error {
	return &gn.Error{
		Code: errcode.WriteOutputError,
		Msg:  "Cannot write %s",
		Vars: []any{what},
		Err:  fmt.Errorf("from %s: %w", caller(), err),
	}
}
