// Package radial renders stacked values per segment as a radial chart: one
// slice per segment, layers stacked outward from a central hole, with scale
// rings, a legend and a staggered entrance animation.
//
// Rendering runs in two phases. [layout.Build] computes the static geometry
// and [anim.Schedule] derives the animation timeline from it; [scene.Compose]
// joins both into the drawable scene that sinks serialize and hosts replay.
//
//	records, _ := transform.Transform(tbl)
//	sc, ok := radial.Build(records, transform.LayerNames(records),
//	    layout.Viewport{Width: 800, Height: 600}, hostPalette, styles.Options{})
//	if ok {
//	    svg := sink.RenderSVG(sc)
//	}
//
// Subpackages:
//   - [layout]: arcs, dividers, labels, rings and legend positions
//   - [anim]: entrance animation timeline
//   - [scene]: paint-ordered elements and the Surface abstraction
//   - [sink]: SVG, JSON, PNG and PDF output
//   - [palette]: ordinal layer colors and host palettes
//   - [styles]: editable style options
//   - [scale]: linear radius scale and nice ticks
package radial

import (
	"github.com/matzehuels/radialstack/pkg/render/radial/anim"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// Option configures Build, Compose and Render.
type Option func(*config)

type config struct {
	static bool
	layout []layout.Option
}

// WithStatic omits the entrance animation.
func WithStatic() Option { return func(c *config) { c.static = true } }

// WithLayoutOptions passes options through to [layout.Build].
func WithLayoutOptions(opts ...layout.Option) Option {
	return func(c *config) { c.layout = append(c.layout, opts...) }
}

// Compose builds the scene of records, or returns why nothing can be drawn.
// The error wraps [layout.ErrNothingToDraw].
func Compose(records []transform.SegmentRecord, layers []string, vp layout.Viewport, host palette.Host, style styles.Options, opts ...Option) (scene.Scene, error) {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	lopts := append([]layout.Option{layout.WithHostPalette(host), layout.WithStyle(style)}, c.layout...)
	l, err := layout.Build(records, layers, vp, lopts...)
	if err != nil {
		return scene.Scene{}, err
	}
	var tl anim.Timeline
	if !c.static {
		tl = anim.Schedule(l)
	}
	return scene.Compose(l, tl), nil
}

// Build is Compose without the reason: ok is false when there is nothing
// to draw.
func Build(records []transform.SegmentRecord, layers []string, vp layout.Viewport, host palette.Host, style styles.Options, opts ...Option) (scene.Scene, bool) {
	sc, err := Compose(records, layers, vp, host, style, opts...)
	return sc, err == nil
}

// Render clears surface and draws the chart onto it. When there is nothing
// to draw the surface is left empty and the zero Scene is returned.
func Render(surface scene.Surface, records []transform.SegmentRecord, layers []string, vp layout.Viewport, host palette.Host, style styles.Options, opts ...Option) scene.Scene {
	sc, ok := Build(records, layers, vp, host, style, opts...)
	if !ok {
		surface.Clear()
		return scene.Scene{}
	}
	scene.Draw(surface, sc)
	return sc
}
