package ioemit

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// SeedWriteError creates an error for a SQL seed that cannot be written.
func SeedWriteError(path string, err error) error {
	msg := `Cannot write SQL seed <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.SeedWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// CancelledError creates an error for an interrupted emission.
func CancelledError(err error) error {
	msg := "SQL generation was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("emission cancelled: %w", err),
	}
}
