// Package iovalidate implements the Validator. It detects prepared rows
// that share genus and species, even when their families differ.
//
// All rows are grouped in memory, so memory use grows linearly with the
// size of the prepared table.
package iovalidate

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/wcvpseed/internal/iocsv"
	wcvpseed "github.com/gnames/wcvpseed/pkg"
	"github.com/gnames/wcvpseed/pkg/species"
)

type validator struct {
	out io.Writer
}

// New creates a Validator that prints conflicts to w. If w is nil,
// conflicts go to STDOUT.
func New(w io.Writer) wcvpseed.Validator {
	if w == nil {
		w = os.Stdout
	}
	return &validator{out: w}
}

type comboKey struct {
	genus, species string
}

// Validate reads the prepared table at csvPath and reports every group
// of rows with the same genus and species.
func (v *validator) Validate(
	ctx context.Context,
	csvPath string,
) (*wcvpseed.Report, error) {
	startTime := time.Now()

	f, err := os.Open(csvPath)
	if err != nil {
		return nil, iocsv.PreparedReadError(csvPath, err)
	}
	defer f.Close()

	pr, err := iocsv.NewPreparedReader(f, csvPath)
	if err != nil {
		return nil, err
	}

	res := &wcvpseed.Report{}
	combos := make(map[comboKey][]wcvpseed.ConflictMember)
	for {
		rec, err := pr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		res.Rows++

		if res.Rows%10_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, CancelledError(ctx.Err())
			default:
			}
		}

		key := comboKey{genus: rec.Genus, species: rec.Species}
		combos[key] = append(combos[key], wcvpseed.ConflictMember{
			Line: pr.Line(),
			Record: species.PreparedRecord{
				Family:              strings.TrimSpace(rec.Family),
				Genus:               rec.Genus,
				Species:             rec.Species,
				GeographicArea:      strings.TrimSpace(rec.GeographicArea),
				LifeformDescription: strings.TrimSpace(rec.LifeformDescription),
				ClimateDescription:  strings.TrimSpace(rec.ClimateDescription),
			},
		})
	}

	for k, members := range combos {
		if len(members) < 2 {
			continue
		}
		res.Conflicts = append(res.Conflicts, wcvpseed.Conflict{
			Genus:   k.genus,
			Species: k.species,
			Members: members,
		})
	}
	slices.SortFunc(res.Conflicts, func(a, b wcvpseed.Conflict) int {
		return cmp.Or(
			cmp.Compare(a.Genus, b.Genus),
			cmp.Compare(a.Species, b.Species),
		)
	})

	duration := time.Since(startTime)
	slog.Info("Validation complete",
		"rows", res.Rows,
		"conflicts", len(res.Conflicts),
		"duration", gnfmt.TimeString(duration.Seconds()),
	)

	if res.HasConflicts() {
		if err = v.printConflicts(res.Conflicts); err != nil {
			return nil, err
		}
		return res, DuplicateSpeciesError(csvPath, len(res.Conflicts))
	}

	gn.Info("Validated <em>%s</em> prepared rows in %s",
		humanize.Comma(int64(res.Rows)),
		gnfmt.TimeString(duration.Seconds()),
	)
	return res, nil
}

func (v *validator) printConflicts(conflicts []wcvpseed.Conflict) error {
	for _, c := range conflicts {
		_, err := fmt.Fprintf(v.out, "%s %s → %d occurrences:\n",
			c.Genus, c.Species, len(c.Members))
		if err != nil {
			return err
		}
		for _, m := range c.Members {
			_, err = fmt.Fprintf(v.out,
				"  - line %d, family=%s, geographic_area=%s, "+
					"lifeform=%s, climate=%s\n",
				m.Line,
				m.Record.Family,
				m.Record.GeographicArea,
				m.Record.LifeformDescription,
				m.Record.ClimateDescription,
			)
			if err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintln(v.out); err != nil {
			return err
		}
	}
	return nil
}
