package table

import (
	"github.com/matzehuels/radialstack/pkg/errors"
)

// Bindings name the columns that carry each role. An empty name selects the
// positional default: first column for segments, second for layers, third
// for values.
type Bindings struct {
	Segment string `mapstructure:"segment" json:"segment,omitempty"`
	Layer   string `mapstructure:"layer" json:"layer,omitempty"`
	Value   string `mapstructure:"value" json:"value,omitempty"`
}

// IsZero reports whether no binding is set.
func (b Bindings) IsZero() bool { return b == Bindings{} }

// Validate checks each binding name.
func (b Bindings) Validate() error {
	for _, name := range []string{b.Segment, b.Layer, b.Value} {
		if err := errors.ValidateColumnName(name); err != nil {
			return err
		}
	}
	return nil
}

// Apply returns a copy of cols with roles assigned from the bindings. Roles
// already present on cols are discarded. A named column that does not exist
// is an INVALID_INPUT error; a positional default past the last column
// leaves that role unassigned, which ResolveRoles reports as MISSING_ROLE.
func (b Bindings) Apply(cols []Column) ([]Column, error) {
	out := make([]Column, len(cols))
	for i, c := range cols {
		out[i] = Column{Name: c.Name}
	}

	bind := func(role Role, name string, fallback int) error {
		i := fallback
		if name != "" {
			i = indexOf(out, name)
			if i < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "column %q not found for role %s", name, role)
			}
		}
		if i < len(out) {
			out[i].Roles = append(out[i].Roles, role)
		}
		return nil
	}

	if err := bind(RoleSegment, b.Segment, 0); err != nil {
		return nil, err
	}
	if err := bind(RoleLayer, b.Layer, 1); err != nil {
		return nil, err
	}
	if err := bind(RoleValue, b.Value, 2); err != nil {
		return nil, err
	}
	return out, nil
}

func indexOf(cols []Column, name string) int {
	for i, c := range cols {
		if c.Name == name {
			return i
		}
	}
	return -1
}
