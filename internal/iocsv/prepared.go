// Package iocsv holds helpers shared by passes that stream CSV files:
// the reader of the prepared table and byte progress bars.
package iocsv

import (
	"encoding/csv"
	"errors"
	"io"
	"slices"

	"github.com/gnames/wcvpseed/pkg/species"
)

// PreparedReader reads records of the prepared table in the order of
// species.Columns, whatever the column order of the file is.
type PreparedReader struct {
	path string
	cr   *csv.Reader
	proj []int
	vals []string
}

// NewPreparedReader reads the header from r and maps it to
// species.Columns. The path is used in error messages. An empty input has
// all columns missing.
func NewPreparedReader(r io.Reader, path string) (*PreparedReader, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, PreparedReadError(path, err)
	}

	proj := make([]int, len(species.Columns))
	var missing []string
	for i, col := range species.Columns {
		proj[i] = slices.Index(header, col)
		if proj[i] < 0 {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, MissingColumnsError(path, missing)
	}

	res := &PreparedReader{
		path: path,
		cr:   cr,
		proj: proj,
		vals: make([]string, len(proj)),
	}
	return res, nil
}

// Read returns the next record as stored in the file. Short rows give
// empty trailing fields. At the end of the table the error is io.EOF.
func (p *PreparedReader) Read() (species.PreparedRecord, error) {
	row, err := p.cr.Read()
	if errors.Is(err, io.EOF) {
		return species.PreparedRecord{}, io.EOF
	}
	if err != nil {
		return species.PreparedRecord{}, PreparedReadError(p.path, err)
	}

	for i, j := range p.proj {
		p.vals[i] = ""
		if j < len(row) {
			p.vals[i] = row[j]
		}
	}
	return species.NewPreparedRecord(p.vals), nil
}

// Line returns the line where the last read record starts. The header is
// line 1.
func (p *PreparedReader) Line() int {
	line, _ := p.cr.FieldPos(0)
	return line
}
