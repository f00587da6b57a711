package sink

import (
	"encoding/json"

	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
	"github.com/matzehuels/radialstack/pkg/transform"
)

// JSONOption configures [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	records []transform.SegmentRecord
	layers  []string
	static  bool
}

// WithJSONRecords includes the transformed records and layer order the
// scene was built from.
func WithJSONRecords(records []transform.SegmentRecord, layers []string) JSONOption {
	return func(r *jsonRenderer) { r.records, r.layers = records, layers }
}

// WithJSONStatic drops animations and writes final attribute values.
func WithJSONStatic() JSONOption { return func(r *jsonRenderer) { r.static = true } }

type jsonOutput struct {
	Width      float64                   `json:"width"`
	Height     float64                   `json:"height"`
	FontFamily string                    `json:"font_family"`
	DurationMS int64                     `json:"duration_ms,omitempty"`
	Layers     []string                  `json:"layers,omitempty"`
	Records    []transform.SegmentRecord `json:"records,omitempty"`
	Elements   []jsonElement             `json:"elements"`
}

type jsonElement struct {
	Kind       string            `json:"kind"`
	ID         string            `json:"id,omitempty"`
	Class      string            `json:"class,omitempty"`
	Attrs      map[string]string `json:"attrs,omitempty"`
	Text       string            `json:"text,omitempty"`
	Href       string            `json:"href,omitempty"`
	Geometry   scene.Geometry    `json:"geometry"`
	Animations []jsonAnimation   `json:"animations,omitempty"`
}

type jsonAnimation struct {
	Attribute  string `json:"attribute"`
	From       string `json:"from"`
	To         string `json:"to"`
	BeginMS    int64  `json:"begin_ms"`
	DurationMS int64  `json:"duration_ms"`
	Easing     string `json:"easing,omitempty"`
}

// RenderJSON renders sc as indented JSON.
func RenderJSON(sc scene.Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:      sc.Width,
		Height:     sc.Height,
		FontFamily: sc.FontFamily,
		Layers:     r.layers,
		Records:    r.records,
		Elements:   make([]jsonElement, 0, len(sc.Elements)),
	}
	if !r.static {
		out.DurationMS = sc.Duration.Milliseconds()
	}
	for _, e := range sc.Elements {
		je := jsonElement{
			Kind:     string(e.Kind),
			ID:       e.ID,
			Class:    e.Class,
			Attrs:    make(map[string]string, len(e.Attrs)),
			Text:     e.Text,
			Href:     e.Href,
			Geometry: e.Geometry,
		}
		for _, a := range e.Attrs {
			if r.static {
				je.Attrs[a.Name] = e.Final(a.Name)
			} else {
				je.Attrs[a.Name] = a.Value
			}
		}
		if !r.static {
			for _, a := range e.Animations {
				je.Animations = append(je.Animations, jsonAnimation{
					Attribute:  string(a.Attribute),
					From:       a.From,
					To:         a.To,
					BeginMS:    a.Begin.Milliseconds(),
					DurationMS: a.Duration.Milliseconds(),
					Easing:     a.Easing,
				})
			}
		}
		out.Elements = append(out.Elements, je)
	}
	return json.MarshalIndent(out, "", "  ")
}
