// Package scene turns a radial layout and its animation timeline into a
// flat, ordered list of drawable elements.
//
// The scene is the hand-off point between geometry and output: sinks
// serialize it (SVG, JSON, PNG, PDF) and hosts replay it onto a [Surface].
// Elements appear in paint order, so later elements draw on top.
package scene

import (
	"fmt"
	"time"

	"github.com/matzehuels/radialstack/pkg/render/radial/anim"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
)

// Kind is the primitive an element is drawn with.
type Kind string

const (
	KindPath     Kind = "path"
	KindLine     Kind = "line"
	KindCircle   Kind = "circle"
	KindText     Kind = "text"
	KindTextPath Kind = "textPath" // text laid out along another element's path
)

// Element classes.
const (
	ClassArc         = "arc"
	ClassDivider     = "divider"
	ClassSegmentText = "segment-text"
	ClassLayerText   = "layer-text"
	ClassRing        = "ring"
	ClassRingHalo    = "ring-halo"
	ClassRingText    = "ring-text"
	ClassLegendText  = "legend-text"
	ClassCrosshair   = "crosshair"
	ClassChart       = "radial-class"
)

// Attr is one presentation attribute.
type Attr struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Geometry holds the numeric shape of an element in absolute coordinates.
// Which fields are meaningful depends on the element kind.
type Geometry struct {
	Center      layout.Point `json:"center"`
	InnerRadius float64      `json:"innerRadius,omitempty"`
	OuterRadius float64      `json:"outerRadius,omitempty"`
	StartAngle  float64      `json:"startAngle,omitempty"`
	EndAngle    float64      `json:"endAngle,omitempty"`
	From        layout.Point `json:"from"`
	To          layout.Point `json:"to"`
	Radius      float64      `json:"radius,omitempty"`
	At          layout.Point `json:"at"`
	Angle       float64      `json:"angle,omitempty"`
	FontSize    float64      `json:"fontSize,omitempty"`
	Anchor      string       `json:"anchor,omitempty"`
}

// Element is one drawable primitive.
type Element struct {
	Kind       Kind             `json:"kind"`
	ID         string           `json:"id,omitempty"`
	Class      string           `json:"class,omitempty"`
	Attrs      []Attr           `json:"attrs"`
	Text       string           `json:"text,omitempty"`
	Href       string           `json:"href,omitempty"`
	Geometry   Geometry         `json:"geometry"`
	Animations []anim.Animation `json:"animations,omitempty"`
}

// Attr returns the value of the named attribute.
func (e Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Final returns the value the named attribute has once every animation
// has completed: the last animated value, else the static attribute.
func (e Element) Final(name string) string {
	if v, ok := anim.Timeline(e.Animations).Final(e.ID, anim.Attribute(name)); ok {
		return v
	}
	v, _ := e.Attr(name)
	return v
}

// Scene is a complete chart ready to draw.
type Scene struct {
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	FontFamily string        `json:"fontFamily"`
	Duration   time.Duration `json:"duration"`
	Elements   []Element     `json:"elements"`
}

// Len returns the number of elements.
func (s Scene) Len() int { return len(s.Elements) }

// ByClass returns the elements with the given class in paint order.
func (s Scene) ByClass(class string) []Element {
	var out []Element
	for _, e := range s.Elements {
		if e.Class == class {
			out = append(out, e)
		}
	}
	return out
}

// Find returns the element with the given ID.
func (s Scene) Find(id string) (Element, bool) {
	for _, e := range s.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

func attrs(kv ...string) []Attr {
	out := make([]Attr, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, Attr{Name: kv[i], Value: kv[i+1]})
	}
	return out
}

func f(v float64) string { return layout.FormatCoord(v) }

func translate(p layout.Point) string {
	return fmt.Sprintf("translate(%s,%s)", f(p.X), f(p.Y))
}
