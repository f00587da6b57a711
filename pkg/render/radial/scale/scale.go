// Package scale maps data values onto radii and picks ring tick values.
//
// [Linear] and [Ticks] follow the d3-scale conventions the chart was
// designed against: a degenerate domain maps to the middle of the range,
// and ticks are "nice" multiples of 1, 2 or 5 times a power of ten.
package scale

import (
	"math"
)

// Linear maps a continuous domain onto a continuous range.
type Linear struct {
	D0, D1 float64 // domain
	R0, R1 float64 // range
}

// NewLinear returns a scale from [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// At maps v into the range. Values outside the domain extrapolate. When
// the domain is a single point every value maps to the range midpoint.
func (s Linear) At(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 || math.IsNaN(span) {
		return s.R0 + (s.R1-s.R0)/2
	}
	t := (v - s.D0) / span
	return s.R0 + t*(s.R1-s.R0)
}

// Invert maps a range value back into the domain.
func (s Linear) Invert(r float64) float64 {
	span := s.R1 - s.R0
	if span == 0 {
		return s.D0 + (s.D1-s.D0)/2
	}
	t := (r - s.R0) / span
	return s.D0 + t*(s.D1-s.D0)
}

// Ticks returns the scale's ticks for the given count hint.
func (s Linear) Ticks(count int) []float64 { return Ticks(s.D0, s.D1, count) }

var (
	e10 = math.Sqrt(50)
	e5  = math.Sqrt(10)
	e2  = math.Sqrt(2)
)

// Ticks returns roughly count+1 evenly spaced, nicely rounded values
// within [start, stop], inclusive when the bounds fall on a step. start ==
// stop yields that single value; a non-positive count yields none.
func Ticks(start, stop float64, count int) []float64 {
	if start == stop && count > 0 {
		return []float64{start}
	}
	reverse := stop < start
	if reverse {
		start, stop = stop, start
	}

	step := TickIncrement(start, stop, count)
	if step == 0 || math.IsInf(step, 0) || math.IsNaN(step) {
		return nil
	}

	var ticks []float64
	if step > 0 {
		lo, hi := math.Ceil(start/step), math.Floor(stop/step)
		n := int(math.Ceil(hi - lo + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))*step)
		}
	} else {
		step = -step
		lo, hi := math.Ceil(start*step), math.Floor(stop*step)
		n := int(math.Ceil(hi - lo + 1))
		for i := 0; i < n; i++ {
			ticks = append(ticks, (lo+float64(i))/step)
		}
	}

	if reverse {
		for i, j := 0, len(ticks)-1; i < j; i, j = i+1, j-1 {
			ticks[i], ticks[j] = ticks[j], ticks[i]
		}
	}
	return ticks
}

// TickIncrement returns the tick step for [start, stop]. A positive result
// is the step itself; a negative result -k means a step of 1/k, which
// keeps sub-unit steps exact.
func TickIncrement(start, stop float64, count int) float64 {
	if count <= 0 {
		return math.Inf(1)
	}
	step := (stop - start) / float64(count)
	power := math.Floor(math.Log10(step))
	err := step / math.Pow(10, power)

	factor := 1.0
	switch {
	case err >= e10:
		factor = 10
	case err >= e5:
		factor = 5
	case err >= e2:
		factor = 2
	}

	if power >= 0 {
		return factor * math.Pow(10, power)
	}
	return -math.Pow(10, -power) / factor
}
