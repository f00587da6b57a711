package scene

import (
	"github.com/matzehuels/radialstack/pkg/fonts"
	"github.com/matzehuels/radialstack/pkg/render/radial/anim"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
)

// Compose builds the scene for l, attaching the animations of tl to their
// targets. A nil timeline yields a static scene.
//
// Paint order: arcs, slice dividers, segment labels, layer labels, scale
// rings (circle, halo, value), legend, crosshairs.
func Compose(l layout.Layout, tl anim.Timeline) Scene {
	family := l.Style.FontFamily
	if family == "" {
		family = fonts.FontFamily
	}
	s := Scene{
		Width:      l.Viewport.Width,
		Height:     l.Viewport.Height,
		FontFamily: family,
		Duration:   tl.End(),
		Elements:   make([]Element, 0, l.ElementCount()+len(l.Rings)*2),
	}
	c := l.Center
	add := func(e Element) {
		if e.ID != "" {
			e.Animations = tl.For(e.ID)
		}
		s.Elements = append(s.Elements, e)
	}

	for _, a := range l.Arcs {
		fill := a.Color
		if v, ok := tl.Initial(a.ID, anim.AttrFill); ok {
			fill = v
		}
		add(Element{
			Kind:  KindPath,
			ID:    a.ID,
			Class: ClassArc,
			Attrs: attrs("d", a.Path, "transform", translate(c), "fill", fill),
			Geometry: Geometry{
				Center:      c,
				InnerRadius: a.InnerRadius,
				OuterRadius: a.OuterRadius,
				StartAngle:  a.StartAngle,
				EndAngle:    a.EndAngle,
			},
		})
	}

	for _, d := range l.Dividers {
		add(lineElement(d, ClassDivider))
	}

	for _, sl := range l.SegmentLabels {
		add(Element{
			Kind:  KindTextPath,
			ID:    sl.ID,
			Class: ClassSegmentText,
			Attrs: attrs("transform", translate(c), "dy", f(sl.DY), "startOffset", f(sl.Offset*100)+"%", "text-anchor", "middle", "font-size", f(l.Style.LegendFontSize)),
			Text:  sl.Text,
			Href:  sl.PathID,
			Geometry: Geometry{
				Center:   c,
				At:       sl.At,
				Angle:    sl.Angle,
				FontSize: l.Style.LegendFontSize,
				Anchor:   "middle",
			},
		})
	}

	for _, lb := range l.LayerLabels {
		add(labelElement(lb, ClassLayerText, "middle", tl))
	}

	for _, r := range l.Rings {
		add(Element{
			Kind:     KindCircle,
			ID:       r.ID,
			Class:    ClassRing,
			Attrs:    attrs("cx", f(c.X), "cy", f(c.Y), "r", f(r.Radius), "fill", "none", "stroke", layout.RingStroke),
			Geometry: Geometry{Center: c, Radius: r.Radius},
		})
		text := Geometry{Center: c, Radius: r.Radius, At: r.At, FontSize: layout.RingFontSize, Anchor: "middle"}
		add(Element{
			Kind:     KindText,
			Class:    ClassRingHalo,
			Attrs:    attrs("x", f(r.At.X), "y", f(r.At.Y), "dy", layout.RingLabelDY, "text-anchor", "middle", "font-size", f(layout.RingFontSize), "fill", "none", "stroke", layout.HaloStroke, "stroke-width", f(layout.HaloWidth)),
			Text:     r.Label,
			Geometry: text,
		})
		add(Element{
			Kind:     KindText,
			Class:    ClassRingText,
			Attrs:    attrs("x", f(r.At.X), "y", f(r.At.Y), "dy", layout.RingLabelDY, "text-anchor", "middle", "font-size", f(layout.RingFontSize)),
			Text:     r.Label,
			Geometry: text,
		})
	}

	for _, lg := range l.Legend {
		add(labelElement(lg, ClassLegendText, "start", tl))
	}

	for _, ch := range l.Crosshairs {
		add(lineElement(ch, ClassCrosshair))
	}
	return s
}

func lineElement(ln layout.Line, class string) Element {
	return Element{
		Kind:     KindLine,
		ID:       ln.ID,
		Class:    class,
		Attrs:    attrs("x1", f(ln.From.X), "y1", f(ln.From.Y), "x2", f(ln.To.X), "y2", f(ln.To.Y), "stroke", ln.Stroke),
		Geometry: Geometry{From: ln.From, To: ln.To},
	}
}

func labelElement(lb layout.Label, class, anchor string, tl anim.Timeline) Element {
	opacity := "1"
	if v, ok := tl.Initial(lb.ID, anim.AttrOpacity); ok {
		opacity = v
	}
	return Element{
		Kind:  KindText,
		ID:    lb.ID,
		Class: class,
		Attrs: attrs(
			"x", f(lb.At.X), "y", f(lb.At.Y),
			"text-anchor", anchor,
			"font-size", f(lb.FontSize),
			"fill", lb.Color, "stroke", lb.Color,
			"opacity", opacity,
		),
		Text:     lb.Text,
		Geometry: Geometry{At: lb.At, FontSize: lb.FontSize, Anchor: anchor},
	}
}
