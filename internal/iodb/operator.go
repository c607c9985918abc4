// Package iodb implements database operations using pgxpool.
// This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/gnames/wcvpseed/pkg/db"
	"github.com/gnames/wcvpseed/pkg/species"
	"github.com/jackc/pgx/v5/pgxpool"
)

// maxStatementSize limits the size of one INSERT statement in bytes.
const maxStatementSize = 256 << 20

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// the seed goes through a single transaction
	poolConfig.MaxConns = 2
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced
// operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, TableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// LoadSeed streams statements of the seed at sqlPath and runs them in
// one transaction. Nothing is committed if any statement fails.
func (p *pgxOperator) LoadSeed(
	ctx context.Context,
	sqlPath string,
) (*db.LoadStats, error) {
	if p.pool == nil {
		return nil, NotConnectedError()
	}
	startTime := time.Now()

	exists, err := p.TableExists(ctx, species.TableName)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, MissingTableError(species.TableName)
	}

	f, err := os.Open(sqlPath)
	if err != nil {
		return nil, SeedReadError(sqlPath, err)
	}
	defer f.Close()

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, LoadError(sqlPath, 0, err)
	}
	defer tx.Rollback(ctx)

	res := &db.LoadStats{}
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 1<<20), maxStatementSize)
	sc.Split(species.ScanStatements)
	for sc.Scan() {
		stmt := sc.Text()
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		res.Statements++

		tag, err := tx.Exec(ctx, stmt)
		if err != nil {
			return nil, LoadError(sqlPath, res.Statements, err)
		}
		res.Rows += tag.RowsAffected()
		slog.Debug("Seed statement applied",
			"statement", res.Statements,
			"rows", tag.RowsAffected(),
		)
	}
	if err = sc.Err(); err != nil {
		return nil, SeedReadError(sqlPath, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, LoadError(sqlPath, res.Statements, err)
	}

	slog.Info("Seed loaded",
		"path", sqlPath,
		"statements", res.Statements,
		"rows", res.Rows,
		"duration", gnfmt.TimeString(time.Since(startTime).Seconds()),
	)
	return res, nil
}
