package table

import (
	"encoding/json"
	"io"
	"slices"

	"github.com/matzehuels/radialstack/pkg/errors"
)

// ReadJSON decodes a table in the host shape:
//
//	{"columns": [{"name": "month", "roles": ["segments"]}, ...],
//	 "rows": [["Jan", "AZ", 6], ...]}
//
// Numbers decode as json.Number. When no column declares a role, or b is
// non-zero, roles are assigned from b.
func ReadJSON(r io.Reader, b Bindings) (Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var t Table
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return Table{}, errors.New(errors.ErrCodeEmptyInput, "json table is empty")
		}
		return Table{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode json table")
	}
	return normalize(t, b)
}

// normalize applies bindings when needed and guarantees a non-nil row slice.
func normalize(t Table, b Bindings) (Table, error) {
	if !b.IsZero() || !hasRoles(t.Columns) {
		cols, err := b.Apply(t.Columns)
		if err != nil {
			return Table{}, err
		}
		t.Columns = cols
	}
	if t.Rows == nil {
		t.Rows = [][]any{}
	}
	return t, nil
}

func hasRoles(cols []Column) bool {
	return slices.ContainsFunc(cols, func(c Column) bool { return len(c.Roles) > 0 })
}
