package layout

import (
	"math"
	"strconv"
	"strings"
)

const (
	tau        = 2 * math.Pi
	epsilon    = 1e-6
	tauEpsilon = tau - epsilon
)

// pathBuilder writes SVG path data with the same command sequence as
// d3-path, rounding coordinates to three decimals.
type pathBuilder struct {
	sb     strings.Builder
	x1, y1 float64
	open   bool
}

func (p *pathBuilder) moveTo(x, y float64) {
	p.sb.WriteString("M" + num(x) + "," + num(y))
	p.x1, p.y1, p.open = x, y, true
}

func (p *pathBuilder) lineTo(x, y float64) {
	p.sb.WriteString("L" + num(x) + "," + num(y))
	p.x1, p.y1 = x, y
}

func (p *pathBuilder) closePath() {
	if p.open {
		p.sb.WriteString("Z")
	}
}

// arc appends a circular arc around (x, y) from angle a0 to a1, in the
// standard orientation (0 at 3 o'clock, increasing clockwise on screen).
func (p *pathBuilder) arc(x, y, r, a0, a1 float64, ccw bool) {
	dx, dy := r*math.Cos(a0), r*math.Sin(a0)
	x0, y0 := x+dx, y+dy
	sweep := "1"
	da := a1 - a0
	if ccw {
		sweep = "0"
		da = a0 - a1
	}

	if !p.open {
		p.moveTo(x0, y0)
	} else if math.Abs(p.x1-x0) > epsilon || math.Abs(p.y1-y0) > epsilon {
		p.lineTo(x0, y0)
	}
	if r == 0 {
		return
	}
	if da < 0 {
		da = math.Mod(da, tau) + tau
	}

	rs := num(r) + "," + num(r)
	switch {
	case da > tauEpsilon:
		p.sb.WriteString("A" + rs + ",0,1," + sweep + "," + num(x-dx) + "," + num(y-dy))
		p.sb.WriteString("A" + rs + ",0,1," + sweep + "," + num(x0) + "," + num(y0))
		p.x1, p.y1 = x0, y0
	case da > epsilon:
		large := "0"
		if da >= math.Pi {
			large = "1"
		}
		p.x1, p.y1 = x+r*math.Cos(a1), y+r*math.Sin(a1)
		p.sb.WriteString("A" + rs + ",0," + large + "," + sweep + "," + num(p.x1) + "," + num(p.y1))
	}
}

func (p *pathBuilder) String() string { return p.sb.String() }

// ArcPath returns the SVG path of an annular sector centered on the origin.
// Angles are in radians, clockwise from 12 o'clock. The output matches
// d3-shape's arc generator without padding or corner radius.
func ArcPath(innerRadius, outerRadius, startAngle, endAngle float64) string {
	r0, r1 := innerRadius, outerRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0, a1 := startAngle-math.Pi/2, endAngle-math.Pi/2
	da := math.Abs(a1 - a0)
	cw := a1 > a0

	var p pathBuilder
	switch {
	case !(r1 > epsilon):
		p.moveTo(0, 0)
	case da > tauEpsilon:
		p.moveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.arc(0, 0, r1, a0, a1, !cw)
		if r0 > epsilon {
			p.moveTo(r0*math.Cos(a1), r0*math.Sin(a1))
			p.arc(0, 0, r0, a1, a0, cw)
		}
	default:
		p.moveTo(r1*math.Cos(a0), r1*math.Sin(a0))
		p.arc(0, 0, r1, a0, a1, !cw)
		if !(r0 > epsilon) {
			p.lineTo(r0*math.Cos(a1), r0*math.Sin(a1))
		} else {
			p.arc(0, 0, r0, a1, a0, cw)
		}
	}
	p.closePath()
	return p.String()
}

// Polar returns the point at radius r and angle a (clockwise from 12
// o'clock) around center c.
func Polar(c Point, r, a float64) Point {
	return Point{X: c.X + r*math.Sin(a), Y: c.Y - r*math.Cos(a)}
}

// num formats a coordinate with at most three decimals.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop the sign of -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatValue renders a tick value the way the chart labels rings.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCoord renders a coordinate with at most three decimals.
func FormatCoord(v float64) string { return num(v) }
