package iodb

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/wcvpseed/pkg/errcode"
)

// ConnectionError creates an error for failed connection to PostgreSQL.
func ConnectionError(host string, port int, database, user string,
	err error) error {
	msg := `Cannot connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check your configuration file:
     <em>~/.config/wcvpseed/config.yaml</em>

<em>Database:</em> %s`
	vars := []any{host, port, host, user, database}

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
			host, port, database, err),
	}
}

// NotConnectedError creates an error for when a database
// operation is attempted without connection.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError creates an error for failure of
// table existence check.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot check table %s: %w", table, err),
	}
}

// MissingTableError creates an error for a database without the target
// table.
func MissingTableError(table string) error {
	msg := `Table <em>%s</em> does not exist

The seed only inserts rows. Create the table with the schema of the
application before loading the seed.`
	vars := []any{table}

	return &gn.Error{
		Code: errcode.DBMissingTableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("table %s does not exist", table),
	}
}

// SeedReadError creates an error for a SQL seed that cannot be read.
func SeedReadError(path string, err error) error {
	msg := "Cannot read SQL seed <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}

// LoadError creates an error for a statement of the seed that failed.
// The transaction is rolled back.
func LoadError(path string, stmt int, err error) error {
	msg := `Cannot load SQL seed <em>%s</em>, nothing was committed

<em>Statement:</em> %d
<em>Cause:</em> %v`
	vars := []any{path, stmt, err}

	return &gn.Error{
		Code: errcode.DBLoadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("load %s, statement %d: %w", path, stmt, err),
	}
}
