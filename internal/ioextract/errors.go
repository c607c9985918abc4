package ioextract

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// ArchiveOpenError creates an error for an archive that cannot be opened
// as zip file.
func ArchiveOpenError(path string, err error) error {
	msg := `Cannot open archive

<em>File path:</em> %s

<em>Possible causes:</em>
  - File does not exist
  - File is not a zip archive
  - Permission denied`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ArchiveOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open archive %s: %w", path, err),
	}
}

// MemberNotFoundError creates an error for an archive that does not
// contain the checklist file.
func MemberNotFoundError(path, member string, err error) error {
	msg := `Checklist <em>%s</em> not found in <em>%s</em>

<em>How to fix:</em>
  1. Check the content of the archive
  2. Set the member name with --member flag or archive.member option`
	vars := []any{member, path}

	return &gn.Error{
		Code: errcode.ArchiveMemberNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("member %s not found in %s: %w", member, path, err),
	}
}

// SourceReadError creates an error for a checklist that cannot be read
// or parsed.
func SourceReadError(name string, err error) error {
	msg := `Cannot read checklist <em>%s</em>`
	vars := []any{name}

	return &gn.Error{
		Code: errcode.SourceReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", name, err),
	}
}

// MissingColumnsError creates an error for a checklist header that lacks
// columns required for filtering.
func MissingColumnsError(name string, cols []string) error {
	list := strings.Join(cols, ", ")
	msg := `Missing required column(s) in header of <em>%s</em>: <em>%s</em>`
	vars := []any{name, list}

	return &gn.Error{
		Code: errcode.MissingColumnsError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("missing required columns: %s", list),
	}
}

// PreparedWriteError creates an error for a prepared table that cannot be
// written.
func PreparedWriteError(path string, err error) error {
	msg := `Cannot write prepared table <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.PreparedWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write %s: %w", path, err),
	}
}

// CancelledError creates an error for an interrupted extraction.
func CancelledError(err error) error {
	msg := "Extraction was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("extraction cancelled: %w", err),
	}
}
