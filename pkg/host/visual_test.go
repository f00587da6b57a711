package host

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/fonts"
	"github.com/matzehuels/radialstack/pkg/render/radial"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/table"
)

var viewport = layout.Viewport{Width: 800, Height: 600}

func salesTable(rows ...[]any) table.Table {
	return table.Table{
		Columns: []table.Column{
			{Name: "Month", Roles: []table.Role{table.RoleSegment}},
			{Name: "Region", Roles: []table.Role{table.RoleLayer}},
			{Name: "Count", Roles: []table.Role{table.RoleValue}},
		},
		Rows: rows,
	}
}

func newVisual(t *testing.T) (*Visual, *scene.MemorySurface) {
	t.Helper()
	v := New(WithRenderOptions(radial.WithLayoutOptions(layout.WithMeasurer(fonts.ApproxMeasurer{}))))
	s := scene.NewMemorySurface()
	v.OnInit(s)
	return v, s
}

func TestOnInit(t *testing.T) {
	v, s := newVisual(t)
	if _, err := uuid.Parse(v.ID()); err != nil {
		t.Errorf("ID() = %q is not a UUID: %v", v.ID(), err)
	}
	if s.Clears() != 1 {
		t.Errorf("OnInit cleared %d times, want 1", s.Clears())
	}
	other, _ := newVisual(t)
	if other.ID() == v.ID() {
		t.Error("instances share an ID")
	}
}

func TestOnUpdateDraws(t *testing.T) {
	v, s := newVisual(t)
	st := v.OnUpdate(Update{
		Table: salesTable(
			[]any{"Jan", "AZ", 6.0},
			[]any{"Jan", "SC", 40.0},
			[]any{"Feb", "AZ", 3.0},
			[]any{"Feb", "SC", 59.0},
		),
		Viewport: viewport,
		Palette:  palette.Map{"AZ": "#ff0000"},
	})
	if !st.Drawn {
		t.Fatalf("nothing drawn: %s", st.Reason)
	}
	if st.Segments != 2 || st.Layers != 2 {
		t.Errorf("status = %+v", st)
	}
	if got := len(s.Elements()); got != st.Elements || got == 0 {
		t.Errorf("surface has %d elements, status says %d", got, st.Elements)
	}
	if v.Scene().Len() != st.Elements {
		t.Errorf("Scene().Len() = %d, want %d", v.Scene().Len(), st.Elements)
	}
	if !strings.HasPrefix(st.String(), "drew ") {
		t.Errorf("String() = %q", st.String())
	}
}

func TestOnUpdateAbsorbsAnomalies(t *testing.T) {
	tests := []struct {
		name string
		u    Update
		code errors.Code
	}{
		{"no rows", Update{Table: salesTable(), Viewport: viewport}, errors.ErrCodeEmptyInput},
		{"missing role", Update{Table: table.Table{
			Columns: []table.Column{{Name: "Month", Roles: []table.Role{table.RoleSegment}}},
			Rows:    [][]any{{"Jan"}},
		}, Viewport: viewport}, errors.ErrCodeMissingRole},
		{"non-numeric value", Update{Table: salesTable([]any{"Jan", "AZ", true}), Viewport: viewport}, errors.ErrCodeInvalidInput},
		{"zero viewport", Update{Table: salesTable([]any{"Jan", "AZ", 1.0})}, errors.ErrCodeInvalidViewport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, s := newVisual(t)
			st := v.OnUpdate(tt.u)
			if st.Drawn {
				t.Fatal("Drawn = true, want false")
			}
			if st.Code != tt.code {
				t.Errorf("Code = %q, want %q (%s)", st.Code, tt.code, st.Reason)
			}
			if got := len(s.Elements()); got != 0 {
				t.Errorf("surface has %d elements, want 0", got)
			}
		})
	}
}

func TestOnUpdateSupersedes(t *testing.T) {
	v, s := newVisual(t)
	v.OnUpdate(Update{Table: salesTable(
		[]any{"Jan", "AZ", 6.0},
		[]any{"Feb", "AZ", 3.0},
		[]any{"Mar", "AZ", 9.0},
	), Viewport: viewport})
	first := len(s.Elements())

	st := v.OnUpdate(Update{Table: salesTable([]any{"Jan", "AZ", 6.0}), Viewport: viewport})
	if got := len(s.Elements()); got != st.Elements || got >= first {
		t.Errorf("second update left %d elements (first %d, status %d)", got, first, st.Elements)
	}

	v.OnUpdate(Update{Table: salesTable(), Viewport: viewport})
	if got := len(s.Elements()); got != 0 {
		t.Errorf("empty update left %d elements", got)
	}
	if v.Scene().Len() != 0 {
		t.Error("Scene() should be empty after an empty update")
	}
}

func TestOnUpdateInvalidStyle(t *testing.T) {
	v, _ := newVisual(t)
	st := v.OnUpdate(Update{
		Table:    salesTable([]any{"Jan", "AZ", 6.0}),
		Viewport: viewport,
		Style:    styles.Options{LayerFontSize: -3},
	})
	if !st.Drawn {
		t.Fatalf("invalid style should fall back to defaults: %s", st.Reason)
	}
	if len(st.Warnings) != 1 {
		t.Errorf("Warnings = %v, want one", st.Warnings)
	}
}

type panicSurface struct{ scene.MemorySurface }

func (p *panicSurface) Append(scene.Element) { panic("surface gone") }

func TestOnUpdateRecovers(t *testing.T) {
	v := New()
	s := &panicSurface{}
	v.OnInit(s)

	st := v.OnUpdate(Update{Table: salesTable([]any{"Jan", "AZ", 6.0}), Viewport: viewport})
	if st.Drawn || st.Code != errors.ErrCodeInternal {
		t.Errorf("status = %+v, want internal error", st)
	}
	if !strings.Contains(st.Reason, "surface gone") {
		t.Errorf("Reason = %q", st.Reason)
	}
}

func TestOnEnumerateStyleOptions(t *testing.T) {
	v, _ := newVisual(t)
	v.OnUpdate(Update{
		Table:    salesTable([]any{"Jan", "AZ", 6.0}),
		Viewport: viewport,
		Style:    styles.Options{LegendFontSize: 16},
	})
	props := v.OnEnumerateStyleOptions()
	if len(props) != 3 {
		t.Fatalf("got %d properties, want 3", len(props))
	}
	found := false
	for _, p := range props {
		if p.Name == "legendFontSize" {
			found = true
			if p.Value != 16.0 {
				t.Errorf("legendFontSize value = %v, want 16", p.Value)
			}
		}
	}
	if !found {
		t.Error("legendFontSize missing")
	}
}
