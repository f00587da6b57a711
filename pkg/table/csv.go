package table

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/matzehuels/radialstack/pkg/errors"
)

// ReadCSV reads a table with a header row. Roles come from b. Cells in the
// value column are parsed as float64; empty cells become nil and
// unparsable cells stay strings so the transformer can report them.
func ReadCSV(r io.Reader, b Bindings) (Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return Table{}, errors.New(errors.ErrCodeEmptyInput, "csv has no header row")
	}
	if err != nil {
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv header")
	}

	cols := make([]Column, len(header))
	for i, h := range header {
		cols[i] = Column{Name: strings.TrimSpace(h)}
	}
	if cols, err = b.Apply(cols); err != nil {
		return Table{}, err
	}
	valueCol := roleIndex(cols, RoleValue)

	t := Table{Columns: cols, Rows: [][]any{}}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "read csv line %d", line)
		}
		row := make([]any, len(cols))
		for i := range cols {
			if i >= len(rec) {
				continue
			}
			row[i] = rec[i]
			if i == valueCol {
				row[i] = parseNumber(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func parseNumber(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// roleIndex returns the last column carrying role r, or -1.
func roleIndex(cols []Column, r Role) int {
	idx := -1
	for i, c := range cols {
		if c.Has(r) {
			idx = i
		}
	}
	return idx
}
