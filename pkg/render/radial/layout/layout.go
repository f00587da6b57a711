package layout

import (
	"fmt"
	"math"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/fonts"
	"github.com/matzehuels/radialstack/pkg/render/radial/palette"
	"github.com/matzehuels/radialstack/pkg/render/radial/scale"
	"github.com/matzehuels/radialstack/pkg/render/radial/styles"
	"github.com/matzehuels/radialstack/pkg/transform"
)

const (
	InnerRatio       = 0.4  // hole radius as a fraction of the outer radius
	Margin           = 40.0 // minimum legend column width
	LegendTop        = 40.0
	LegendPadding    = 8.0
	LayerLabelOffset = 14.0
	SegmentLabelAt   = 0.75 // fraction of the arc path length
	SegmentLabelDY   = -5.0
	RingTicks        = 4
	RingLabelDY      = "0.35em"
	RingFontSize     = 10.0

	RingStroke      = "#ccdcea"
	HaloStroke      = "#fff"
	HaloWidth       = 5.0
	DividerStroke   = "purple"
	CrosshairStroke = "#dcdcdc"
)

// ErrNothingToDraw is returned (possibly wrapped) when the inputs leave
// nothing to draw. Callers skip drawing entirely.
var ErrNothingToDraw = errors.New(errors.ErrCodeEmptyInput, "nothing to draw")

// Viewport is the drawing area in layout units.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is an absolute position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Arc is one layer's annular sector in one segment.
type Arc struct {
	ID          string  `json:"id"`
	Layer       int     `json:"layer"`
	Segment     int     `json:"segment"`
	LayerName   string  `json:"layerName"`
	SegmentName string  `json:"segmentName"`
	Value       float64 `json:"value"`
	Band        Band    `json:"band"`
	InnerRadius float64 `json:"innerRadius"`
	OuterRadius float64 `json:"outerRadius"`
	StartAngle  float64 `json:"startAngle"`
	EndAngle    float64 `json:"endAngle"`
	Path        string  `json:"path"`
	Color       string  `json:"color"`
}

// Line is a straight stroke between two absolute points.
type Line struct {
	ID     string `json:"id"`
	From   Point  `json:"from"`
	To     Point  `json:"to"`
	Stroke string `json:"stroke"`
}

// Ring is a circular scale gridline with its value label.
type Ring struct {
	ID     string  `json:"id"`
	Value  float64 `json:"value"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
	At     Point   `json:"at"`
}

// SegmentLabel names a segment along the innermost layer's arc.
type SegmentLabel struct {
	ID     string  `json:"id"`
	Text   string  `json:"text"`
	PathID string  `json:"pathId"`
	Offset float64 `json:"offset"`
	DY     float64 `json:"dy"`
	At     Point   `json:"at"`
	Angle  float64 `json:"angle"` // tangent direction at At, radians, screen orientation
}

// Label is a colored text placed at an absolute point.
type Label struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Color    string  `json:"color"`
	At       Point   `json:"at"`
	Width    float64 `json:"width"`
	FontSize float64 `json:"fontSize"`
}

// Layout is the complete static geometry of one chart.
type Layout struct {
	Viewport      Viewport       `json:"viewport"`
	Center        Point          `json:"center"`
	InnerRadius   float64        `json:"innerRadius"`
	OuterRadius   float64        `json:"outerRadius"`
	MaxTotal      float64        `json:"maxTotal"`
	SliceAngle    float64        `json:"sliceAngle"`
	LegendWidth   float64        `json:"legendWidth"`
	Segments      []string       `json:"segments"`
	Layers        []string       `json:"layers"`
	Stacks        []StackedBand  `json:"stacks"`
	Arcs          []Arc          `json:"arcs"` // layer-major
	Dividers      []Line         `json:"dividers"`
	SegmentLabels []SegmentLabel `json:"segmentLabels"`
	LayerLabels   []Label        `json:"layerLabels"`
	Rings         []Ring         `json:"rings"`
	Legend        []Label        `json:"legend"`
	Crosshairs    []Line         `json:"crosshairs"`
	Style         styles.Options `json:"style"`
}

// Arc returns the arc of layer l in segment i.
func (l Layout) Arc(layer, segment int) Arc {
	return l.Arcs[layer*len(l.Segments)+segment]
}

// Scale returns the value to radius scale of the layout.
func (l Layout) Scale() scale.Linear {
	return scale.NewLinear(0, l.MaxTotal, l.InnerRadius, l.OuterRadius)
}

// Option configures Build.
type Option func(*builder)

type builder struct {
	host     palette.Host
	ordinal  []palette.Option
	style    styles.Options
	measurer fonts.Measurer
}

// WithHostPalette sets the palette used for layer labels and legend.
func WithHostPalette(h palette.Host) Option {
	return func(b *builder) { b.host = h }
}

// WithOrdinalOptions configures the arc palette.
func WithOrdinalOptions(opts ...palette.Option) Option {
	return func(b *builder) { b.ordinal = append(b.ordinal, opts...) }
}

// WithStyle sets the style options. Zero fields take defaults.
func WithStyle(s styles.Options) Option {
	return func(b *builder) { b.style = s }
}

// WithMeasurer sets the text measurer.
func WithMeasurer(m fonts.Measurer) Option {
	return func(b *builder) {
		if m != nil {
			b.measurer = m
		}
	}
}

// Build computes the chart geometry. layers fixes the stacking, color and
// legend order; records with layers outside it draw nothing for them.
// Empty records or layers, an invalid viewport, a non-positive radius or a
// non-finite total yield an error wrapping ErrNothingToDraw.
func Build(records []transform.SegmentRecord, layers []string, vp Viewport, opts ...Option) (Layout, error) {
	b := builder{measurer: fonts.Default()}
	for _, opt := range opts {
		opt(&b)
	}
	style := b.style.WithDefaults()

	if len(records) == 0 || len(layers) == 0 {
		return Layout{}, ErrNothingToDraw
	}
	if err := errors.ValidateViewport(vp.Width, vp.Height); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidViewport, ErrNothingToDraw, "%s", errors.UserMessage(err))
	}

	legendWidth := max(Margin, math.Ceil(fonts.MaxWidth(b.measurer, layers, style.LegendFontSize))+LegendPadding)
	outer := min(vp.Height, vp.Width-legendWidth) / 2
	if !(outer > 0) {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidViewport, ErrNothingToDraw, "viewport %vx%v leaves no room for the chart", vp.Width, vp.Height)
	}
	inner := InnerRatio * outer
	center := Point{X: outer, Y: outer}
	maxTotal := transform.MaxTotal(records)
	for _, rec := range records {
		if math.IsNaN(rec.Total) || math.IsInf(rec.Total, 0) {
			return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, ErrNothingToDraw, "segment %q has a non-finite total", rec.Segment)
		}
	}
	r := scale.NewLinear(0, maxTotal, inner, outer)

	n := len(records)
	slice := tau / float64(n)
	ordinal := palette.NewOrdinal(layers, b.ordinal...)

	l := Layout{
		Viewport:    vp,
		Center:      center,
		InnerRadius: inner,
		OuterRadius: outer,
		MaxTotal:    maxTotal,
		SliceAngle:  slice,
		LegendWidth: legendWidth,
		Layers:      append([]string(nil), layers...),
		Stacks:      Stack(records, layers),
		Style:       style,
	}
	for _, rec := range records {
		l.Segments = append(l.Segments, rec.Segment)
	}

	for li, sb := range l.Stacks {
		color := ordinal.Color(sb.Layer)
		for i, band := range sb.Bands {
			a := Arc{
				ID:          ArcID(li, i),
				Layer:       li,
				Segment:     i,
				LayerName:   sb.Layer,
				SegmentName: l.Segments[i],
				Value:       band.Width(),
				Band:        band,
				InnerRadius: r.At(band.Lower),
				OuterRadius: r.At(band.Upper),
				StartAngle:  float64(i) * slice,
				EndAngle:    float64(i+1) * slice,
				Color:       color,
			}
			a.Path = ArcPath(a.InnerRadius, a.OuterRadius, a.StartAngle, a.EndAngle)
			l.Arcs = append(l.Arcs, a)
		}
	}

	for i := range n {
		angle := float64(i+1) * slice
		l.Dividers = append(l.Dividers, Line{
			ID:     fmt.Sprintf("divider_%d", i),
			From:   Polar(center, inner, angle),
			To:     Polar(center, outer, angle),
			Stroke: DividerStroke,
		})

		base := l.Arc(0, i)
		at, dir := pointAlong(base, SegmentLabelAt)
		l.SegmentLabels = append(l.SegmentLabels, SegmentLabel{
			ID:     fmt.Sprintf("segment_label_%d", i),
			Text:   l.Segments[i],
			PathID: base.ID,
			Offset: SegmentLabelAt,
			DY:     SegmentLabelDY,
			At:     Point{X: center.X + at.X, Y: center.Y + at.Y},
			Angle:  dir,
		})
	}

	legendRow := style.LegendRowHeight()
	for li, name := range layers {
		color := palette.LabelColor(b.host, ordinal, name)
		l.LayerLabels = append(l.LayerLabels, Label{
			ID:       fmt.Sprintf("layer_label_%d", li),
			Text:     name,
			Color:    color,
			At:       Point{X: center.X, Y: center.Y + LayerLabelOffset},
			Width:    b.measurer.Width(name, style.LayerFontSize),
			FontSize: style.LayerFontSize,
		})
		l.Legend = append(l.Legend, Label{
			ID:       fmt.Sprintf("legend_%d", li),
			Text:     name,
			Color:    color,
			At:       Point{X: vp.Width - legendWidth, Y: LegendTop + float64(li)*legendRow},
			Width:    b.measurer.Width(name, style.LegendFontSize),
			FontSize: style.LegendFontSize,
		})
	}

	for k, t := range scale.Ticks(0, maxTotal, RingTicks) {
		radius := r.At(t)
		l.Rings = append(l.Rings, Ring{
			ID:     fmt.Sprintf("ring_%d", k),
			Value:  t,
			Radius: radius,
			Label:  FormatValue(t),
			At:     Point{X: center.X, Y: center.Y - radius},
		})
	}

	l.Crosshairs = []Line{
		{ID: "crosshair_h", From: Point{X: 0, Y: center.Y}, To: Point{X: vp.Width, Y: center.Y}, Stroke: CrosshairStroke},
		{ID: "crosshair_v", From: Point{X: center.X, Y: 0}, To: Point{X: center.X, Y: vp.Height}, Stroke: CrosshairStroke},
	}
	return l, nil
}

// ArcID returns the element ID of the arc of layer l in segment i.
func ArcID(layer, segment int) string {
	return fmt.Sprintf("arc_%d_%d", layer, segment)
}

// ElementCount returns the number of drawable elements in the layout.
func (l Layout) ElementCount() int {
	return len(l.Arcs) + len(l.Dividers) + len(l.SegmentLabels) + len(l.LayerLabels) +
		len(l.Rings) + len(l.Legend) + len(l.Crosshairs)
}
