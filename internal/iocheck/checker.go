// Package iocheck implements the Checker. It applies a SQL seed to an
// in-memory SQLite database that has the species table of the mobile
// application.
package iocheck

import (
	"bufio"
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	wcvpseed "github.com/gnames/wcvpseed/pkg"
	"github.com/gnames/wcvpseed/pkg/species"
	_ "modernc.org/sqlite"
)

// maxStatementSize limits the size of one INSERT statement in bytes.
const maxStatementSize = 256 << 20

type checker struct{}

// New creates a Checker.
func New() wcvpseed.Checker {
	return checker{}
}

// Check loads sqlPath into a fresh in-memory database inside of one
// transaction. The transaction is rolled back at the end, nothing
// persists.
func (c checker) Check(
	ctx context.Context,
	sqlPath string,
) (*wcvpseed.CheckStats, error) {
	startTime := time.Now()

	f, err := os.Open(sqlPath)
	if err != nil {
		return nil, SeedReadError(sqlPath, err)
	}
	defer f.Close()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, SeedCheckError(sqlPath, 0, err)
	}
	defer db.Close()
	// every connection to :memory: has its own database
	db.SetMaxOpenConns(1)

	if _, err = db.ExecContext(ctx, species.TableDDL); err != nil {
		return nil, SeedCheckError(sqlPath, 0, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, SeedCheckError(sqlPath, 0, err)
	}
	defer tx.Rollback()

	res := &wcvpseed.CheckStats{}
	var inserted int64

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), maxStatementSize)
	sc.Split(species.ScanStatements)
	for sc.Scan() {
		stmt := sc.Text()
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		res.Statements++

		r, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return nil, SeedCheckError(sqlPath, res.Statements, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return nil, SeedCheckError(sqlPath, res.Statements, err)
		}
		inserted += n
	}
	if err = sc.Err(); err != nil {
		return nil, SeedReadError(sqlPath, err)
	}

	q := "SELECT count(*) FROM " + species.TableName
	if err = tx.QueryRowContext(ctx, q).Scan(&res.Rows); err != nil {
		return nil, SeedCheckError(sqlPath, res.Statements, err)
	}
	if int64(res.Rows) != inserted {
		return nil, RowCountError(sqlPath, int(inserted), res.Rows)
	}

	duration := time.Since(startTime)
	slog.Info("Seed check complete",
		"path", sqlPath,
		"statements", res.Statements,
		"rows", res.Rows,
		"duration", gnfmt.TimeString(duration.Seconds()),
	)
	gn.Info("Seed loads into SQLite: <em>%s</em> rows, %s statement(s)",
		humanize.Comma(int64(res.Rows)),
		humanize.Comma(int64(res.Statements)),
	)

	return res, nil
}
