// Package fonts provides text measurement and font faces for chart layout.
//
// Layout needs the width of layer names to size the legend column and to
// center layer labels under the hole; the raster sinks need real faces to
// draw text. Both come from the Liberation collection bundled with gonum
// plot, so no system fonts are required. Liberation Sans is metric
// compatible with Helvetica and Arial, the families SVG output names.
package fonts

import (
	"sync"
	"unicode/utf8"

	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/vg"
)

// FontFamily is the CSS font-family written into SVG output by default.
const FontFamily = "helvetica"

// FallbackFontFamily lists CSS fallbacks for systems without Helvetica.
const FallbackFontFamily = `helvetica, 'Liberation Sans', Arial, sans-serif`

// Measurer reports the advance width of text at a font size, in layout units.
type Measurer interface {
	Width(text string, size float64) float64
}

var (
	cache     *font.Cache
	cacheOnce sync.Once
)

func faces() *font.Cache {
	cacheOnce.Do(func() {
		cache = font.NewCache(liberation.Collection())
	})
	return cache
}

// Face returns the Liberation Sans face at the given size in points.
// The face collection is loaded once on first use.
func Face(size float64) font.Face {
	return faces().Lookup(font.Font{Typeface: "Liberation", Variant: "Sans"}, vg.Points(size))
}

// FaceMeasurer measures text with the Liberation Sans glyph metrics.
type FaceMeasurer struct{}

// Width implements Measurer.
func (FaceMeasurer) Width(text string, size float64) float64 {
	if text == "" || size <= 0 {
		return 0
	}
	f := Face(size)
	return f.Width(text).Points()
}

// charWidthRatio approximates the average glyph advance of a sans-serif face.
const charWidthRatio = 0.55

// ApproxMeasurer estimates width from the character count alone.
type ApproxMeasurer struct{}

// Width implements Measurer.
func (ApproxMeasurer) Width(text string, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * charWidthRatio
}

// Default returns the measurer used when callers do not supply one.
func Default() Measurer { return FaceMeasurer{} }

// MaxWidth returns the widest measurement among texts.
func MaxWidth(m Measurer, texts []string, size float64) float64 {
	var w float64
	for _, t := range texts {
		w = max(w, m.Width(t, size))
	}
	return w
}
