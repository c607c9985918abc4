package iocsv

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// PreparedReadError creates an error for a prepared table that cannot be
// read or parsed.
func PreparedReadError(path string, err error) error {
	msg := `Cannot read prepared table <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.PreparedReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// MissingColumnsError creates an error for a prepared table without some
// of the required columns.
func MissingColumnsError(path string, cols []string) error {
	list := strings.Join(cols, ", ")
	msg := `Missing columns in <em>%s</em>: <em>%s</em>`
	vars := []any{path, list}

	return &gn.Error{
		Code: errcode.MissingColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing columns in CSV: %s", list),
	}
}
