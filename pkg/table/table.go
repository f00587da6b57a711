package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/matzehuels/radialstack/pkg/errors"
)

// Role is a data role a column can carry.
type Role int

const (
	RoleSegment Role = iota
	RoleLayer
	RoleValue
)

var roleNames = [...]string{
	RoleSegment: "segments",
	RoleLayer:   "layers",
	RoleValue:   "data_values",
}

// Roles returns every role in resolution order.
func Roles() []Role { return []Role{RoleSegment, RoleLayer, RoleValue} }

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return fmt.Sprintf("Role(%d)", int(r))
	}
	return roleNames[r]
}

// ParseRole accepts the host role names ("segments", "layers",
// "data_values") and the short forms "segment", "layer" and "value".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "segments", "segment":
		return RoleSegment, nil
	case "layers", "layer":
		return RoleLayer, nil
	case "data_values", "value", "values":
		return RoleValue, nil
	}
	return 0, errors.New(errors.ErrCodeInvalidInput, "unknown role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(b []byte) error {
	v, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Column describes one table column.
type Column struct {
	Name  string `json:"name"`
	Roles []Role `json:"roles,omitempty"`
}

// Has reports whether the column carries role r.
func (c Column) Has(r Role) bool { return slices.Contains(c.Roles, r) }

// UnmarshalJSON accepts roles either as a list of names or as the host's
// object form, e.g. {"segments": true}.
func (c *Column) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name  string          `json:"name"`
		Roles json.RawMessage `json:"roles"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Name = raw.Name
	c.Roles = nil

	trimmed := bytes.TrimSpace(raw.Roles)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil
	}
	if trimmed[0] == '{' {
		var flags map[string]bool
		if err := json.Unmarshal(trimmed, &flags); err != nil {
			return err
		}
		for _, r := range Roles() {
			if flags[r.String()] {
				c.Roles = append(c.Roles, r)
			}
		}
		return nil
	}
	return json.Unmarshal(trimmed, &c.Roles)
}

// Table is a host-shaped table: role-tagged columns and rows of primitive
// cells. Row i, column j is Rows[i][j].
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

// ColumnNames returns the column names in order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// RoleMap holds the column index of each role.
type RoleMap struct {
	Segment int
	Layer   int
	Value   int
}

// ResolveRoles locates the segment, layer and value columns. When several
// columns carry the same role the last one wins. A role carried by no
// column yields an error with code MISSING_ROLE.
func ResolveRoles(cols []Column) (RoleMap, error) {
	idx := map[Role]int{RoleSegment: -1, RoleLayer: -1, RoleValue: -1}
	for i, c := range cols {
		for _, r := range c.Roles {
			if _, ok := idx[r]; ok {
				idx[r] = i
			}
		}
	}
	for _, r := range Roles() {
		if idx[r] < 0 {
			return RoleMap{}, errors.New(errors.ErrCodeMissingRole, "no column carries role %s", r)
		}
	}
	return RoleMap{Segment: idx[RoleSegment], Layer: idx[RoleLayer], Value: idx[RoleValue]}, nil
}
