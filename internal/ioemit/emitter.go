// Package ioemit implements the Emitter: it classifies every row of a
// validated prepared table and writes batched INSERT statements for the
// species table.
package ioemit

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/wcvpseed/internal/iocsv"
	"github.com/gnames/wcvpseed/internal/iofs"
	wcvpseed "github.com/gnames/wcvpseed/pkg"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/species"
)

const cancelCheckRows = 10_000

type emitter struct {
	batchSize    int
	withProgress bool
}

// New creates an Emitter with batch size and progress settings taken from
// cfg.
func New(cfg *config.Config) wcvpseed.Emitter {
	return &emitter{
		batchSize:    cfg.Emit.BatchSize,
		withProgress: cfg.WithProgress,
	}
}

// Emit converts the prepared table at csvPath into a SQL seed at sqlPath.
// The seed is written to a temporary file next to sqlPath and renamed
// when all rows are emitted, so a failed run leaves no output.
func (e *emitter) Emit(
	ctx context.Context,
	csvPath, sqlPath string,
) (*wcvpseed.EmitStats, error) {
	startTime := time.Now()

	in, err := os.Open(csvPath)
	if err != nil {
		return nil, iocsv.PreparedReadError(csvPath, err)
	}
	defer in.Close()

	var src io.Reader = in
	if e.withProgress {
		if info, err := in.Stat(); err == nil {
			bar := iocsv.NewBytesBar(info.Size(), "Emitting: ")
			src = bar.NewProxyReader(in)
			defer bar.Finish()
		}
	}

	if err = iofs.EnsureParentDir(sqlPath); err != nil {
		return nil, err
	}
	tmpPath := sqlPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		return nil, SeedWriteError(sqlPath, err)
	}

	stats, err := e.emit(ctx, src, out, csvPath, sqlPath)
	if err == nil {
		err = closeAndRename(out, tmpPath, sqlPath)
	}
	if err != nil {
		out.Close()
		os.Remove(tmpPath)
		return nil, err
	}

	duration := time.Since(startTime)
	slog.Info("Emission complete",
		"rows", stats.Rows,
		"statements", stats.Statements,
		"batch_size", e.batchSize,
		"output", sqlPath,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Emitted <em>%s</em> rows in <em>%s</em> statement(s) in %s",
		humanize.Comma(int64(stats.Rows)),
		humanize.Comma(int64(stats.Statements)),
		gnfmt.TimeString(duration.Seconds()),
	)

	return stats, nil
}

func closeAndRename(f *os.File, tmpPath, sqlPath string) error {
	if err := f.Sync(); err != nil {
		return SeedWriteError(sqlPath, err)
	}
	if err := f.Close(); err != nil {
		return SeedWriteError(sqlPath, err)
	}
	if err := os.Rename(tmpPath, sqlPath); err != nil {
		return SeedWriteError(sqlPath, err)
	}
	return nil
}

// emit reads the prepared table from r and writes statements to w.
func (e *emitter) emit(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	csvPath, sqlPath string,
) (*wcvpseed.EmitStats, error) {
	stats := &wcvpseed.EmitStats{}

	pr, err := iocsv.NewPreparedReader(r, csvPath)
	if err != nil {
		return nil, err
	}

	bw := bufio.NewWriter(w)
	sw := &statementWriter{w: bw, batchSize: e.batchSize}

	for id := 0; ; id++ {
		rec, err := pr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		if (id+1)%cancelCheckRows == 0 {
			select {
			case <-ctx.Done():
				return nil, CancelledError(ctx.Err())
			default:
			}
		}

		res, err := species.Classify(rec, id)
		if err != nil {
			slog.Error("Cannot classify prepared row",
				"line", pr.Line(),
				"genus", rec.Genus,
				"species", rec.Species,
				"error", err,
			)
			return nil, err
		}

		if err = sw.add(res.Tuple()); err != nil {
			return nil, SeedWriteError(sqlPath, err)
		}
	}

	if err = sw.finish(); err != nil {
		return nil, SeedWriteError(sqlPath, err)
	}
	if err = bw.Flush(); err != nil {
		return nil, SeedWriteError(sqlPath, err)
	}

	stats.Rows = sw.rows
	stats.Statements = sw.statements
	return stats, nil
}

// statementWriter groups tuples into INSERT statements of at most
// batchSize tuples. A statement header is written only together with its
// first tuple.
type statementWriter struct {
	w          io.Writer
	batchSize  int
	inBatch    int
	rows       int
	statements int
}

func (s *statementWriter) add(tuple string) error {
	if s.inBatch == s.batchSize {
		if err := s.finish(); err != nil {
			return err
		}
	}

	prefix := species.TupleSeparator
	if s.inBatch == 0 {
		prefix = species.InsertHeader
		s.statements++
	}
	if _, err := io.WriteString(s.w, prefix+tuple); err != nil {
		return err
	}
	s.inBatch++
	s.rows++
	return nil
}

// finish terminates the open statement, if any.
func (s *statementWriter) finish() error {
	if s.inBatch == 0 {
		return nil
	}
	s.inBatch = 0
	_, err := io.WriteString(s.w, species.StatementEnd)
	return err
}
