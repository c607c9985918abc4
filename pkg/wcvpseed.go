// Package wcvpseed defines the contracts of the passes that turn a
// WCVP checklist archive into a SQL seed file for the species table.
// Implementations live in internal/io* packages.
package wcvpseed

import (
	"context"

	"github.com/gnames/wcvpseed/pkg/species"
)

// Extractor reads the checklist member of a zip archive, keeps accepted
// species, drops duplicates and writes the prepared CSV table.
type Extractor interface {
	// Extract processes archivePath and writes the prepared table to the
	// path given by configuration.
	Extract(ctx context.Context, archivePath string) (*ExtractStats, error)
}

// Validator checks a prepared table for repeated (genus, species) pairs.
// It never modifies the table.
type Validator interface {
	// Validate returns a report. If the report has conflicts, the error
	// is not nil as well.
	Validate(ctx context.Context, csvPath string) (*Report, error)
}

// Emitter converts a validated prepared table into batched INSERT
// statements.
type Emitter interface {
	// Emit reads csvPath and writes the SQL seed to sqlPath. The output
	// file exists only if the whole table was emitted.
	Emit(ctx context.Context, csvPath, sqlPath string) (*EmitStats, error)
}

// ExtractStats summarizes an extraction pass.
type ExtractStats struct {
	// Total is the number of data rows read from the source.
	Total int
	// Kept is the number of rows written to the prepared table.
	Kept int
	// Duplicates is the number of accepted rows dropped because their
	// (family, genus, species) key was already seen.
	Duplicates int
	// Unreviewed is the number of kept rows whose reviewed flag is not
	// 'y'. Such rows are not filtered out.
	Unreviewed int
}

// Report is the result of a validation pass.
type Report struct {
	// Rows is the number of data rows in the prepared table.
	Rows int
	// Conflicts are sorted by genus, then species.
	Conflicts []Conflict
}

// HasConflicts returns true if the prepared table failed validation.
func (r *Report) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Conflict is a group of prepared rows sharing genus and species.
type Conflict struct {
	Genus   string
	Species string
	Members []ConflictMember
}

// ConflictMember is one row of a conflicting group.
type ConflictMember struct {
	// Line is the line of the prepared table where the row starts.
	Line   int
	Record species.PreparedRecord
}

// EmitStats summarizes an emission pass.
type EmitStats struct {
	// Rows is the number of emitted tuples.
	Rows int
	// Statements is the number of INSERT statements.
	Statements int
}

// Checker applies a SQL seed to a scratch database to prove that it
// loads.
type Checker interface {
	// Check runs all statements of sqlPath and compares the number of
	// inserted rows with the row count of the species table.
	Check(ctx context.Context, sqlPath string) (*CheckStats, error)
}

// CheckStats summarizes a seed check.
type CheckStats struct {
	// Statements is the number of executed statements.
	Statements int
	// Rows is the number of rows in the species table after the check.
	Rows int
}
