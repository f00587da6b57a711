package styles

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/radialstack/pkg/errors"
)

func TestWithDefaults(t *testing.T) {
	got := Options{LegendFontSize: 10}.WithDefaults()
	want := Options{FontFamily: "helvetica", LayerFontSize: 14, LegendFontSize: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WithDefaults mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Defaults(), Options{}.WithDefaults()); diff != "" {
		t.Errorf("zero options should equal Defaults (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"zero", Options{}, false},
		{"defaults", Defaults(), false},
		{"negative layer size", Options{LayerFontSize: -1}, true},
		{"huge legend", Options{LegendFontSize: 500}, true},
		{"nan", Options{LegendFontSize: math.NaN()}, true},
		{"long family", Options{FontFamily: string(make([]byte, 300))}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidStyle) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidStyle)
			}
		})
	}
}

func TestLegendRowHeight(t *testing.T) {
	if got := (Options{}).LegendRowHeight(); got != 20 {
		t.Errorf("default LegendRowHeight = %v, want 20", got)
	}
	if got := (Options{LegendFontSize: 18}).LegendRowHeight(); got != 30 {
		t.Errorf("LegendRowHeight(18) = %v, want 30", got)
	}
}

func TestSchema(t *testing.T) {
	props := Schema(Options{LayerFontSize: 20})
	if len(props) != 3 {
		t.Fatalf("Schema has %d properties, want 3", len(props))
	}
	names := map[string]Property{}
	for _, p := range props {
		if p.Object != ObjectName {
			t.Errorf("%s: Object = %q, want %q", p.Name, p.Object, ObjectName)
		}
		names[p.Name] = p
	}
	if got := names["layerFontSize"].Value; got != 20.0 {
		t.Errorf("layerFontSize value = %v, want 20", got)
	}
	if got := names["fontFamily"].Type; got != PropertyText {
		t.Errorf("fontFamily type = %v, want %v", got, PropertyText)
	}
}
