package scale

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLinearAt(t *testing.T) {
	s := NewLinear(0, 200, 40, 100)

	tests := []struct {
		v, want float64
	}{
		{0, 40},
		{200, 100},
		{100, 70},
		{300, 130},
	}
	for _, tt := range tests {
		if got := s.At(tt.v); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
	if got := s.Invert(70); got != 100 {
		t.Errorf("Invert(70) = %v, want 100", got)
	}
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear(0, 0, 40, 100)
	for _, v := range []float64{0, 5, -5} {
		if got := s.At(v); got != 70 {
			t.Errorf("At(%v) = %v, want range midpoint 70", v, got)
		}
	}
}

func TestTicks(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		count       int
		want        []float64
	}{
		{"month totals", 0, 161, 4, []float64{0, 50, 100, 150}},
		{"larger max", 0, 238, 4, []float64{0, 50, 100, 150, 200}},
		{"round max", 0, 100, 4, []float64{0, 20, 40, 60, 80, 100}},
		{"unit interval", 0, 1, 4, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}},
		{"big values", 0, 12000, 4, []float64{0, 2000, 4000, 6000, 8000, 10000, 12000}},
		{"single point", 0, 0, 4, []float64{0}},
		{"reversed", 10, 0, 4, []float64{10, 8, 6, 4, 2, 0}},
		{"offset start", 3, 11, 4, []float64{4, 6, 8, 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Ticks(tt.start, tt.stop, tt.count)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Ticks(%v, %v, %d) mismatch (-want +got):\n%s", tt.start, tt.stop, tt.count, diff)
			}
		})
	}
}

func TestTicksNoCount(t *testing.T) {
	if got := Ticks(0, 10, 0); got != nil {
		t.Errorf("Ticks with count 0 = %v, want nil", got)
	}
	if got := Ticks(0, math.NaN(), 4); got != nil {
		t.Errorf("Ticks with NaN = %v, want nil", got)
	}
}

func TestTickIncrement(t *testing.T) {
	tests := []struct {
		start, stop float64
		count       int
		want        float64
	}{
		{0, 161, 4, 50},
		{0, 10, 4, 2},
		{0, 1, 4, -5},
		{0, 1000, 4, 200},
	}
	for _, tt := range tests {
		if got := TickIncrement(tt.start, tt.stop, tt.count); got != tt.want {
			t.Errorf("TickIncrement(%v, %v, %d) = %v, want %v", tt.start, tt.stop, tt.count, got, tt.want)
		}
	}
}
