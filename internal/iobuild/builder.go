// Package iobuild implements lifecycle.Builder on top of the extractor,
// validator, emitter and checker.
package iobuild

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/wcvpseed/internal/iocheck"
	"github.com/gnames/wcvpseed/internal/ioemit"
	"github.com/gnames/wcvpseed/internal/ioextract"
	"github.com/gnames/wcvpseed/internal/iovalidate"
	wcvpseed "github.com/gnames/wcvpseed/pkg"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/lifecycle"
)

type builder struct {
	cfg       *config.Config
	extractor wcvpseed.Extractor
	validator wcvpseed.Validator
	emitter   wcvpseed.Emitter
	checker   wcvpseed.Checker
}

// New creates a Builder. The seed check runs only if cfg.WithCheck is
// true.
func New(cfg *config.Config) lifecycle.Builder {
	res := &builder{
		cfg:       cfg,
		extractor: ioextract.New(cfg),
		validator: iovalidate.New(nil),
		emitter:   ioemit.New(cfg),
	}
	if cfg.WithCheck {
		res.checker = iocheck.New()
	}
	return res
}

// Build runs all passes. It stops at the first failed pass, so a prepared
// table with conflicts never reaches the emitter.
func (b *builder) Build(
	ctx context.Context,
	archivePath, sqlPath string,
) (*lifecycle.BuildStats, error) {
	var err error
	startTime := time.Now()
	res := &lifecycle.BuildStats{}
	preparedPath := b.cfg.PreparedPath()

	steps := 3
	if b.checker != nil {
		steps++
	}
	step := func(i int, msg string, vars ...any) {
		gn.Info("(%d/%d) "+msg, append([]any{i, steps}, vars...)...)
	}

	slog.Info("Starting build",
		"archive", archivePath,
		"prepared", preparedPath,
		"output", sqlPath,
		"check", b.checker != nil,
	)

	step(1, "Extracting accepted species from <em>%s</em>", archivePath)
	if res.Extract, err = b.extractor.Extract(ctx, archivePath); err != nil {
		return res, err
	}

	step(2, "Validating <em>%s</em>", preparedPath)
	if res.Validate, err = b.validator.Validate(ctx, preparedPath); err != nil {
		return res, err
	}

	step(3, "Generating SQL seed <em>%s</em>", sqlPath)
	if res.Emit, err = b.emitter.Emit(ctx, preparedPath, sqlPath); err != nil {
		return res, err
	}

	if b.checker != nil {
		step(4, "Loading <em>%s</em> into SQLite", sqlPath)
		if res.Check, err = b.checker.Check(ctx, sqlPath); err != nil {
			return res, err
		}
		if res.Check.Rows != res.Emit.Rows {
			return res, iocheck.RowCountError(sqlPath, res.Emit.Rows, res.Check.Rows)
		}
	}

	duration := time.Since(startTime)
	slog.Info("Build complete",
		"rows", res.Emit.Rows,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("SQL seed <em>%s</em> is ready in %s",
		sqlPath, gnfmt.TimeString(duration.Seconds()))
	return res, nil
}
