package transform

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/table"
)

// BlankKey stands in for a nil segment or layer cell.
const BlankKey = "(Blank)"

// InputRow is one table row reduced to its three roles.
type InputRow struct {
	Segment string
	Layer   string
	Value   float64
}

// ExtractRows resolves the roles of t once and reduces every row to an
// InputRow. A missing role is a MISSING_ROLE error; a value cell that is
// not numeric is an INVALID_INPUT error naming the row.
func ExtractRows(t table.Table) ([]InputRow, error) {
	rm, err := table.ResolveRoles(t.Columns)
	if err != nil {
		return nil, err
	}

	rows := make([]InputRow, 0, len(t.Rows))
	for i, cells := range t.Rows {
		v, err := number(cell(cells, rm.Value))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "row %d", i)
		}
		rows = append(rows, InputRow{
			Segment: key(cell(cells, rm.Segment)),
			Layer:   key(cell(cells, rm.Layer)),
			Value:   v,
		})
	}
	return rows, nil
}

// Transform groups the rows of t by segment. See the package documentation
// for the aggregation rules. Zero rows yield an empty, non-nil slice.
func Transform(t table.Table) ([]SegmentRecord, error) {
	rows, err := ExtractRows(t)
	if err != nil {
		return nil, err
	}
	return Group(rows), nil
}

// Group aggregates rows into one record per segment, in first-seen order.
func Group(rows []InputRow) []SegmentRecord {
	records := []SegmentRecord{}
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.Segment]
		if !ok {
			i = len(records)
			index[row.Segment] = i
			records = append(records, SegmentRecord{Segment: row.Segment})
		}
		rec := &records[i]
		rec.set(row.Layer, row.Value)
		rec.Total += row.Value
	}
	return records
}

func cell(cells []any, i int) any {
	if i < 0 || i >= len(cells) {
		return nil
	}
	return cells[i]
}

func key(v any) string {
	switch k := v.(type) {
	case nil:
		return BlankKey
	case string:
		return k
	case float64:
		return strconv.FormatFloat(k, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// number converts a value cell to a finite float64. nil counts as zero.
func number(v any) (float64, error) {
	f, err := toFloat(v)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("value %v is not finite", v)
	}
	return f, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int8:
		return float64(n), nil
	case int16:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case uint:
		return float64(n), nil
	case uint8:
		return float64(n), nil
	case uint16:
		return float64(n), nil
	case uint32:
		return float64(n), nil
	case uint64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("value %q is not numeric", n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("value %v (%T) is not numeric", v, v)
}
