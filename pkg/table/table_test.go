package table

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/radialstack/pkg/errors"
)

func TestRoleString(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleSegment, "segments"},
		{RoleLayer, "layers"},
		{RoleValue, "data_values"},
		{Role(7), "Role(7)"},
	}
	for _, tt := range tests {
		if got := tt.role.String(); got != tt.want {
			t.Errorf("Role(%d).String() = %q, want %q", int(tt.role), got, tt.want)
		}
	}
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"segments", RoleSegment, false},
		{"Segment", RoleSegment, false},
		{"layers", RoleLayer, false},
		{"data_values", RoleValue, false},
		{" value ", RoleValue, false},
		{"tooltips", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseRole(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseRole(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestResolveRoles(t *testing.T) {
	cols := []Column{
		{Name: "count", Roles: []Role{RoleValue}},
		{Name: "month", Roles: []Role{RoleSegment}},
		{Name: "region", Roles: []Role{RoleLayer}},
	}
	rm, err := ResolveRoles(cols)
	if err != nil {
		t.Fatalf("ResolveRoles: %v", err)
	}
	want := RoleMap{Segment: 1, Layer: 2, Value: 0}
	if rm != want {
		t.Errorf("ResolveRoles = %+v, want %+v", rm, want)
	}
}

func TestResolveRolesLastColumnWins(t *testing.T) {
	cols := []Column{
		{Name: "month", Roles: []Role{RoleSegment}},
		{Name: "quarter", Roles: []Role{RoleSegment}},
		{Name: "region", Roles: []Role{RoleLayer, RoleValue}},
	}
	rm, err := ResolveRoles(cols)
	if err != nil {
		t.Fatalf("ResolveRoles: %v", err)
	}
	if rm.Segment != 1 {
		t.Errorf("Segment = %d, want 1", rm.Segment)
	}
	if rm.Layer != 2 || rm.Value != 2 {
		t.Errorf("Layer, Value = %d, %d, want 2, 2", rm.Layer, rm.Value)
	}
}

func TestResolveRolesMissing(t *testing.T) {
	tests := []struct {
		name string
		cols []Column
	}{
		{"no columns", nil},
		{"no value", []Column{
			{Name: "month", Roles: []Role{RoleSegment}},
			{Name: "region", Roles: []Role{RoleLayer}},
		}},
		{"untagged", []Column{{Name: "month"}, {Name: "region"}, {Name: "count"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveRoles(tt.cols)
			if !errors.Is(err, errors.ErrCodeMissingRole) {
				t.Errorf("ResolveRoles error = %v, want code %s", err, errors.ErrCodeMissingRole)
			}
		})
	}
}

func TestColumnUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Column
	}{
		{"list form", `{"name":"month","roles":["segments"]}`, Column{Name: "month", Roles: []Role{RoleSegment}}},
		{"object form", `{"name":"region","roles":{"layers":true,"data_values":false}}`, Column{Name: "region", Roles: []Role{RoleLayer}}},
		{"short names", `{"name":"count","roles":["value"]}`, Column{Name: "count", Roles: []Role{RoleValue}}},
		{"no roles", `{"name":"note"}`, Column{Name: "note"}},
		{"null roles", `{"name":"note","roles":null}`, Column{Name: "note"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Column
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Column mismatch (-want +got):\n%s", diff)
			}
		})
	}

	var c Column
	if err := json.Unmarshal([]byte(`{"name":"x","roles":["tooltips"]}`), &c); err == nil {
		t.Error("Unmarshal with unknown role should fail")
	}
}

func TestColumnMarshalJSON(t *testing.T) {
	b, err := json.Marshal(Column{Name: "month", Roles: []Role{RoleSegment}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `{"name":"month","roles":["segments"]}`; got != want {
		t.Errorf("Marshal = %s, want %s", got, want)
	}
}

func TestBindingsApply(t *testing.T) {
	cols := []Column{{Name: "region"}, {Name: "month"}, {Name: "count"}, {Name: "note", Roles: []Role{RoleValue}}}

	got, err := Bindings{Segment: "month", Layer: "region", Value: "count"}.Apply(cols)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	want := []Column{
		{Name: "region", Roles: []Role{RoleLayer}},
		{Name: "month", Roles: []Role{RoleSegment}},
		{Name: "count", Roles: []Role{RoleValue}},
		{Name: "note"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Apply mismatch (-want +got):\n%s", diff)
	}
	if cols[3].Roles == nil {
		t.Error("Apply must not mutate its input")
	}
}

func TestBindingsApplyPositional(t *testing.T) {
	got, err := Bindings{}.Apply([]Column{{Name: "a"}, {Name: "b"}, {Name: "c"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	rm, err := ResolveRoles(got)
	if err != nil {
		t.Fatalf("ResolveRoles: %v", err)
	}
	if rm != (RoleMap{Segment: 0, Layer: 1, Value: 2}) {
		t.Errorf("positional roles = %+v", rm)
	}

	short, err := Bindings{}.Apply([]Column{{Name: "a"}, {Name: "b"}})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := ResolveRoles(short); !errors.Is(err, errors.ErrCodeMissingRole) {
		t.Errorf("two columns should leave value unbound, got %v", err)
	}
}

func TestBindingsApplyUnknownColumn(t *testing.T) {
	_, err := Bindings{Layer: "state"}.Apply([]Column{{Name: "month"}, {Name: "region"}, {Name: "count"}})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Apply error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
