// Package sink serializes a radial [scene.Scene] into output formats.
//
// # Formats
//
//   - SVG: the chart with its entrance animation as SMIL <animate> elements,
//     or the final frame when rendered with [WithStatic]
//   - JSON: the scene elements with geometry, attributes and timings
//   - PNG and PDF: the final frame drawn with gonum's vg canvases
//
// Basic usage:
//
//	sc := scene.Compose(l, anim.Schedule(l))
//	svg := sink.RenderSVG(sc)
//	png, err := sink.RenderPNG(sc, sink.WithDPI(144))
//
// Raster formats draw text with the Liberation Sans faces bundled with gonum
// plot and approximate arcs with polylines, so no external tools are needed.
//
// [scene.Scene]: github.com/matzehuels/radialstack/pkg/render/radial/scene.Scene
package sink
