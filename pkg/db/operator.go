package db

import (
	"context"

	"github.com/gnames/wcvpseed/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator defines database operations needed to load a SQL seed into
// PostgreSQL. The species table is expected to exist already, schema
// creation belongs to the application that owns the database.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the database.
	TableExists(ctx context.Context, tableName string) (bool, error)

	// LoadSeed runs all statements of a SQL seed in one transaction and
	// returns the number of statements and of inserted rows.
	LoadSeed(ctx context.Context, sqlPath string) (*LoadStats, error)
}

// LoadStats summarizes a seed load.
type LoadStats struct {
	Statements int
	Rows       int64
}
