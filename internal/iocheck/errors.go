package iocheck

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// SeedReadError creates an error for a SQL seed that cannot be read.
func SeedReadError(path string, err error) error {
	msg := `Cannot read SQL seed <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// SeedCheckError creates an error for a seed that does not load into
// SQLite. Statement numbers start from 1, zero means the database could
// not be prepared.
func SeedCheckError(path string, stmt int, err error) error {
	msg := `SQL seed <em>%s</em> failed to load into SQLite

<em>Statement:</em> %d
<em>Cause:</em> %v`
	vars := []any{path, stmt, err}

	return &gn.Error{
		Code: errcode.SeedCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("seed check of %s, statement %d: %w", path, stmt, err),
	}
}

// RowCountError creates an error for a seed that loaded a different
// number of rows than expected.
func RowCountError(path string, want, got int) error {
	msg := `SQL seed <em>%s</em> has <em>%d</em> row(s) in SQLite, expected <em>%d</em>`
	vars := []any{path, got, want}

	return &gn.Error{
		Code: errcode.SeedCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("seed check of %s: want %d rows, got %d", path, want, got),
	}
}
