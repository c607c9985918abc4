// Package lifecycle defines the top-level operation of the seed generator:
// a build that runs all passes from checklist archive to SQL seed.
package lifecycle

import (
	"context"

	wcvpseed "github.com/gnames/wcvpseed/pkg"
)

// Builder runs the passes in strict sequence:
//   - extract the prepared table from the archive;
//   - validate genus and species uniqueness;
//   - emit the SQL seed;
//   - optionally check that the seed loads into SQLite.
//
// A pass starts only after the previous one finished successfully. The
// passes exchange file paths only.
type Builder interface {
	// Build turns archivePath into a SQL seed at sqlPath.
	Build(ctx context.Context, archivePath, sqlPath string) (*BuildStats, error)
}

// BuildStats collects results of every completed pass. Check is nil when
// the seed check is disabled.
type BuildStats struct {
	Extract  *wcvpseed.ExtractStats
	Validate *wcvpseed.Report
	Emit     *wcvpseed.EmitStats
	Check    *wcvpseed.CheckStats
}
