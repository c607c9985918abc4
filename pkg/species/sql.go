package species

import (
	"bytes"
	"fmt"
	"strings"
)

// TableName is the name of the target table.
const TableName = "species"

// InsertHeader starts every INSERT statement of the seed.
const InsertHeader = "INSERT INTO " + TableName +
	" (id, slug, name, family, genus, geographic_origin," +
	" shape, lifetime, climate_zone, moisture)\nVALUES\n"

const (
	// TupleSeparator goes between tuples of the same statement.
	TupleSeparator = ",\n"
	// StatementEnd terminates a statement.
	StatementEnd = ";\n"
)

// TableDDL creates the species table in SQLite, the way the mobile
// application defines it. Seed files are applied on top of it.
const TableDDL = `CREATE TABLE species (
  id INTEGER PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  family TEXT NOT NULL,
  genus TEXT NOT NULL,
  geographic_origin INTEGER NOT NULL DEFAULT 0,
  shape INTEGER NOT NULL DEFAULT 0,
  lifetime INTEGER NOT NULL DEFAULT 0,
  climate_zone INTEGER NOT NULL DEFAULT 0,
  moisture INTEGER NOT NULL DEFAULT 0
)`

// Escape doubles single quotes for use in a SQL string literal.
func Escape(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// Tuple renders the row as a SQL value tuple.
func (r Row) Tuple() string {
	return fmt.Sprintf("(%d, '%s', '%s','%s','%s',%d,%d,%d,%d,%d)",
		r.ID,
		Escape(r.Slug),
		Escape(r.Name),
		Escape(r.Family),
		Escape(r.Genus),
		r.GeographicOrigin,
		r.Shape,
		r.LifeTime,
		r.ClimateZone,
		r.Moisture,
	)
}

// ScanStatements is a bufio.SplitFunc that splits a seed file into
// statements. Every token ends with the statement terminator, which is
// kept. A terminator inside of a single-quoted literal does not end a
// statement, doubled quotes are literal quotes. Trailing data without a
// terminator is returned as the last token.
func ScanStatements(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	inQuote := false
	for i, b := range data {
		switch b {
		case '\'':
			inQuote = !inQuote
		case ';':
			if !inQuote && bytes.HasPrefix(data[i:], []byte(StatementEnd)) {
				end := i + len(StatementEnd)
				return end, data[:end], nil
			}
		}
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
