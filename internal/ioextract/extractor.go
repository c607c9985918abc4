// Package ioextract implements the Extractor: it streams the checklist
// out of a zip archive, keeps accepted species, drops repeated taxa and
// writes the prepared CSV table.
package ioextract

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"strings"
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

// Columns of the source table used for filtering.
const (
	RankColumn     = "taxon_rank"
	StatusColumn   = "taxon_status"
	ReviewedColumn = "reviewed"
)

// acceptedStatus is the only taxonomic status that is kept.
const acceptedStatus = "accepted"

// keepRanks are the ranks that are kept.
var keepRanks = map[string]struct{}{
	"species": {},
}

// cancelCheckRows defines how often the context is checked.
const cancelCheckRows = 10_000

type extractor struct {
	cfg *config.Config
}

// New creates an Extractor that writes to cfg.PreparedPath().
func New(cfg *config.Config) wcvpseed.Extractor {
	return &extractor{cfg: cfg}
}

// Extract reads the checklist member of the archive and writes the
// prepared table.
func (e *extractor) Extract(
	ctx context.Context,
	archivePath string,
) (*wcvpseed.ExtractStats, error) {
	startTime := time.Now()

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return nil, ArchiveOpenError(archivePath, err)
	}
	defer zr.Close()

	f, err := findMember(&zr.Reader, e.cfg.Archive.Member)
	if err != nil {
		return nil, MemberNotFoundError(archivePath, e.cfg.Archive.Member, err)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, SourceReadError(f.Name, err)
	}
	defer rc.Close()

	var src io.Reader = rc
	if e.cfg.WithProgress {
		bar := iocsv.NewBytesBar(int64(f.UncompressedSize64), "Extracting: ")
		src = bar.NewProxyReader(rc)
		defer bar.Finish()
	}

	outPath := e.cfg.PreparedPath()
	if err = iofs.EnsureParentDir(outPath); err != nil {
		return nil, err
	}
	out, err := os.Create(outPath)
	if err != nil {
		return nil, PreparedWriteError(outPath, err)
	}
	defer out.Close()

	slog.Info("Extracting checklist",
		"archive", archivePath,
		"member", f.Name,
		"output", outPath,
	)

	stats, err := filter(ctx, src, out, f.Name, outPath)
	if err != nil {
		return nil, err
	}
	if err = out.Close(); err != nil {
		return nil, PreparedWriteError(outPath, err)
	}

	duration := time.Since(startTime)
	slog.Info("Extraction complete",
		"total", stats.Total,
		"kept", stats.Kept,
		"duplicates", stats.Duplicates,
		"unreviewed", stats.Unreviewed,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	if stats.Total == 0 {
		gn.Warn("Checklist <em>%s</em> is empty, prepared table has header only",
			f.Name)
	}
	gn.Info(
		"Kept <em>%s/%s</em> rows (status=accepted, rank in [species], "+
			"%s duplicates) in %s",
		humanize.Comma(int64(stats.Kept)),
		humanize.Comma(int64(stats.Total)),
		humanize.Comma(int64(stats.Duplicates)),
		gnfmt.TimeString(duration.Seconds()),
	)
	if stats.Unreviewed > 0 {
		slog.Warn("Kept rows that are not marked as reviewed",
			"count", stats.Unreviewed)
	}

	return stats, nil
}

// findMember returns the archive entry with the given name. If there is
// no exact match, the first file with the same base name is used.
func findMember(zr *zip.Reader, member string) (*zip.File, error) {
	var byBase *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.Name == member {
			return f, nil
		}
		if byBase == nil && path.Base(f.Name) == member {
			byBase = f
		}
	}
	if byBase != nil {
		return byBase, nil
	}
	return nil, errors.New("no such file in archive")
}

// sourceIndex maps normalized column names of the source header to
// positions.
type sourceIndex map[string]int

func newSourceIndex(header []string) sourceIndex {
	res := make(sourceIndex, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		res[species.Norm(h)] = i
	}
	return res
}

// pos returns position of a column, or -1 if the column is absent.
func (s sourceIndex) pos(col string) int {
	if i, ok := s[species.Norm(col)]; ok {
		return i
	}
	return -1
}

// field returns normalized value of a row at i. Absent columns and short
// rows give an empty string.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return species.Norm(row[i])
}

type taxonKey struct {
	family, genus, species string
}

// filter streams the pipe-delimited source from r and writes accepted,
// unique rows to w as comma-delimited prepared table. The src and dst
// names are used in error messages.
func filter(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	src, dst string,
) (*wcvpseed.ExtractStats, error) {
	stats := &wcvpseed.ExtractStats{}

	cr := csv.NewReader(r)
	cr.Comma = '|'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	cw := csv.NewWriter(w)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		if err = cw.Write(species.Columns); err != nil {
			return nil, PreparedWriteError(dst, err)
		}
		cw.Flush()
		if err = cw.Error(); err != nil {
			return nil, PreparedWriteError(dst, err)
		}
		return stats, nil
	}
	if err != nil {
		return nil, SourceReadError(src, err)
	}

	idx := newSourceIndex(header)
	rankIdx := idx.pos(RankColumn)
	statusIdx := idx.pos(StatusColumn)
	reviewedIdx := idx.pos(ReviewedColumn)

	var missing []string
	for _, v := range []struct {
		col string
		i   int
	}{
		{RankColumn, rankIdx},
		{StatusColumn, statusIdx},
		{ReviewedColumn, reviewedIdx},
	} {
		if v.i < 0 {
			missing = append(missing, v.col)
		}
	}
	if len(missing) > 0 {
		return nil, MissingColumnsError(src, missing)
	}

	proj := make([]int, len(species.Columns))
	for i, col := range species.Columns {
		proj[i] = idx.pos(col)
	}
	familyIdx := idx.pos("family")
	genusIdx := idx.pos("genus")
	speciesIdx := idx.pos("species")

	if err = cw.Write(species.Columns); err != nil {
		return nil, PreparedWriteError(dst, err)
	}

	seen := make(map[taxonKey]struct{})
	out := make([]string, len(species.Columns))
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, SourceReadError(src, err)
		}
		stats.Total++

		if stats.Total%cancelCheckRows == 0 {
			select {
			case <-ctx.Done():
				return nil, CancelledError(ctx.Err())
			default:
			}
		}

		reviewed := field(row, reviewedIdx)
		status := field(row, statusIdx)
		rank := field(row, rankIdx)
		if status != acceptedStatus {
			continue
		}
		if _, ok := keepRanks[rank]; !ok {
			continue
		}

		key := taxonKey{
			family:  field(row, familyIdx),
			genus:   field(row, genusIdx),
			species: field(row, speciesIdx),
		}
		if _, ok := seen[key]; ok {
			stats.Duplicates++
			continue
		}
		seen[key] = struct{}{}

		for i, j := range proj {
			out[i] = field(row, j)
		}
		if err = cw.Write(out); err != nil {
			return nil, PreparedWriteError(dst, err)
		}
		stats.Kept++
		if reviewed != "y" {
			stats.Unreviewed++
		}
	}

	cw.Flush()
	if err = cw.Error(); err != nil {
		return nil, PreparedWriteError(dst, err)
	}
	return stats, nil
}
