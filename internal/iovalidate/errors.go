package iovalidate

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// DuplicateSpeciesError creates an error for a prepared table where some
// genus and species pairs occur more than once.
func DuplicateSpeciesError(path string, count int) error {
	msg := `Invalid prepared table <em>%s</em>

Found <em>%d</em> genus and species combination(s) with several rows.
Such rows differ in family or other fields and have to be resolved
in the source data.`
	vars := []any{path, count}

	return &gn.Error{
		Code: errcode.DuplicateSpeciesError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d duplicate genus/species combinations", count),
	}
}

// CancelledError creates an error for an interrupted validation.
func CancelledError(err error) error {
	msg := "Validation was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("validation cancelled: %w", err),
	}
}
