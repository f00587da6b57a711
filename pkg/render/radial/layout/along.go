package layout

import (
	"math"
)

// pointAlong walks the outline of arc a (outer arc clockwise, radial line
// in, inner arc back, radial line out) and returns the point at fraction f
// of its length, relative to the center, with the travel direction in
// radians in screen orientation.
func pointAlong(a Arc, f float64) (Point, float64) {
	r0, r1 := a.InnerRadius, a.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0, a1 := a.StartAngle, a.EndAngle
	sweep := a1 - a0

	outer := r1 * sweep
	radial := r1 - r0
	inner := r0 * sweep
	total := outer + 2*radial + inner
	if total <= 0 {
		return Polar(Point{}, r1, a0), a0
	}

	d := f * total
	switch {
	case d <= outer:
		th := a0 + d/r1
		return Polar(Point{}, r1, th), th
	case d <= outer+radial:
		p := Polar(Point{}, r1-(d-outer), a1)
		return p, a1 + math.Pi/2
	case d <= outer+radial+inner:
		th := a1 - (d-outer-radial)/r0
		return Polar(Point{}, r0, th), th + math.Pi
	default:
		p := Polar(Point{}, r0+(d-outer-radial-inner), a0)
		return p, a0 - math.Pi/2
	}
}
