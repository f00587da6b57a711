package sink

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/matzehuels/radialstack/pkg/fonts"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
)

// arcStep is the maximum angle between polyline vertices of an arc.
const arcStep = math.Pi / 180

// ringLabelSize is the font size of scale ring values in raster output.
const ringLabelSize = 10.0

// RasterOption configures [RenderPNG] and [RenderPDF].
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	dpi        int
	background color.Color
}

// WithDPI sets the PNG resolution. 72 DPI maps one layout unit to one
// pixel; the default 144 renders at 2x.
func WithDPI(dpi int) RasterOption {
	return func(r *rasterRenderer) {
		if dpi > 0 {
			r.dpi = dpi
		}
	}
}

// WithBackground sets the page color. The default is white.
func WithBackground(c color.Color) RasterOption {
	return func(r *rasterRenderer) {
		if c != nil {
			r.background = c
		}
	}
}

func newRasterRenderer(opts ...RasterOption) rasterRenderer {
	r := rasterRenderer{dpi: 144, background: color.White}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// painter draws the final frame of a scene onto a vg canvas. Scene
// coordinates have y growing down; vg has y growing up.
type painter struct {
	c             vg.Canvas
	width, height float64
}

func (p painter) pt(x, y float64) vg.Point {
	return vg.Point{X: vg.Length(x), Y: vg.Length(p.height - y)}
}

func (p painter) polar(c layout.Point, r, a float64) vg.Point {
	q := layout.Polar(c, r, a)
	return p.pt(q.X, q.Y)
}

func (p painter) draw(sc scene.Scene) error {
	for _, e := range sc.Elements {
		if err := p.element(e); err != nil {
			return fmt.Errorf("draw %s %s: %w", e.Kind, e.ID, err)
		}
	}
	return nil
}

func (p painter) element(e scene.Element) error {
	if opacity(e.Final("opacity")) == 0 {
		return nil
	}
	g := e.Geometry
	switch e.Kind {
	case scene.KindPath:
		fill, err := paint(e.Final("fill"), opacity(e.Final("opacity")))
		if err != nil || fill == nil {
			return err
		}
		p.c.SetColor(fill)
		p.c.Fill(p.annulus(g))
	case scene.KindLine:
		stroke, err := paint(e.Final("stroke"), 1)
		if err != nil || stroke == nil {
			return err
		}
		var path vg.Path
		path.Move(p.pt(g.From.X, g.From.Y))
		path.Line(p.pt(g.To.X, g.To.Y))
		p.c.SetLineWidth(1)
		p.c.SetColor(stroke)
		p.c.Stroke(path)
	case scene.KindCircle:
		stroke, err := paint(e.Final("stroke"), 1)
		if err != nil || stroke == nil {
			return err
		}
		p.c.SetLineWidth(1)
		p.c.SetColor(stroke)
		p.c.Stroke(p.circle(g.Center, g.Radius))
	case scene.KindText:
		return p.text(e)
	case scene.KindTextPath:
		return p.textAlong(e)
	}
	return nil
}

func (p painter) annulus(g scene.Geometry) vg.Path {
	r0, r1 := g.InnerRadius, g.OuterRadius
	if r1 < r0 {
		r0, r1 = r1, r0
	}
	a0, a1 := g.StartAngle, g.EndAngle
	n := max(2, int(math.Ceil((a1-a0)/arcStep)))

	var path vg.Path
	for i := 0; i <= n; i++ {
		a := a0 + (a1-a0)*float64(i)/float64(n)
		if i == 0 {
			path.Move(p.polar(g.Center, r1, a))
		} else {
			path.Line(p.polar(g.Center, r1, a))
		}
	}
	for i := n; i >= 0; i-- {
		path.Line(p.polar(g.Center, r0, a0+(a1-a0)*float64(i)/float64(n)))
	}
	path.Close()
	return path
}

func (p painter) circle(c layout.Point, r float64) vg.Path {
	n := int(2 * math.Pi / arcStep)
	var path vg.Path
	path.Move(p.polar(c, r, 0))
	for i := 1; i < n; i++ {
		path.Line(p.polar(c, r, 2*math.Pi*float64(i)/float64(n)))
	}
	path.Close()
	return path
}

func (p painter) text(e scene.Element) error {
	size := e.Geometry.FontSize
	if size <= 0 {
		size = ringLabelSize
	}
	if e.Class == scene.ClassRingHalo || e.Class == scene.ClassRingText {
		size = ringLabelSize
	}
	face := fonts.Face(size)
	w := float64(face.Width(e.Text).Points())
	x, y := e.Geometry.At.X, e.Geometry.At.Y
	switch e.Geometry.Anchor {
	case "middle":
		x -= w / 2
	case "end":
		x -= w
	}
	if dy, ok := e.Attr("dy"); ok {
		y += emOffset(dy, size)
	}

	if e.Class == scene.ClassRingHalo {
		halo, err := paint(e.Final("stroke"), 1)
		if err != nil || halo == nil {
			return err
		}
		pad := layout.HaloWidth / 2
		ext := face.Extents()
		top, bottom := y-float64(ext.Ascent.Points())-pad, y+float64(ext.Descent.Points())+pad
		var rect vg.Path
		rect.Move(p.pt(x-pad, top))
		rect.Line(p.pt(x+w+pad, top))
		rect.Line(p.pt(x+w+pad, bottom))
		rect.Line(p.pt(x-pad, bottom))
		rect.Close()
		p.c.SetColor(halo)
		p.c.Fill(rect)
		return nil
	}

	fill, err := paint(textFill(e), opacity(e.Final("opacity")))
	if err != nil || fill == nil {
		return err
	}
	p.c.SetColor(fill)
	p.c.FillString(face, p.pt(x, y), e.Text)
	return nil
}

// textAlong approximates a label on a path by rotating it to the path
// direction at its anchor point.
func (p painter) textAlong(e scene.Element) error {
	g := e.Geometry
	size := g.FontSize
	if size <= 0 {
		size = ringLabelSize
	}
	face := fonts.Face(size)
	w := face.Width(e.Text)
	dy := 0.0
	if v, ok := e.Attr("dy"); ok {
		dy = emOffset(v, size)
	}
	fill, err := paint(textFill(e), 1)
	if err != nil || fill == nil {
		return err
	}
	p.c.Push()
	defer p.c.Pop()
	p.c.Translate(p.pt(g.At.X, g.At.Y))
	p.c.Rotate(-g.Angle)
	p.c.SetColor(fill)
	p.c.FillString(face, vg.Point{X: -w / 2, Y: vg.Length(-dy)}, e.Text)
	return nil
}

func textFill(e scene.Element) string {
	if v := e.Final("fill"); v != "" {
		return v
	}
	return "black"
}

// paint resolves a CSS color and applies opacity. It returns nil for
// "none" and empty colors.
func paint(s string, alpha float64) (color.Color, error) {
	if s == "" || s == "none" {
		return nil, nil
	}
	c, err := palette.ParseColor(s)
	if err != nil {
		return nil, err
	}
	if alpha >= 1 {
		return c, nil
	}
	r, g, b, a := c.RGBA()
	k := alpha
	return color.NRGBA64{
		R: unpremul(r, a), G: unpremul(g, a), B: unpremul(b, a),
		A: uint16(float64(a) * k),
	}, nil
}

func unpremul(v, a uint32) uint16 {
	if a == 0 {
		return 0
	}
	return uint16(v * 0xffff / a)
}

func opacity(s string) float64 {
	if s == "" {
		return 1
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 1
	}
	return min(1, max(0, v))
}

// emOffset converts an SVG length ("-5", "0.35em") to layout units.
func emOffset(s string, size float64) float64 {
	if v, ok := strings.CutSuffix(s, "em"); ok {
		f, _ := strconv.ParseFloat(v, 64)
		return f * size
	}
	f, _ := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	return f
}

func (p painter) background(c color.Color) {
	if _, _, _, a := c.RGBA(); a == 0 {
		return
	}
	var rect vg.Path
	w := vg.Length(p.width)
	h := vg.Length(p.height)
	rect.Move(vg.Point{})
	rect.Line(vg.Point{X: w})
	rect.Line(vg.Point{X: w, Y: h})
	rect.Line(vg.Point{Y: h})
	rect.Close()
	p.c.SetColor(c)
	p.c.Fill(rect)
}

// WithScale sets the PNG resolution as a multiple of one pixel per layout
// unit.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) {
		if s > 0 {
			r.dpi = int(math.Round(72 * s))
		}
	}
}
