package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/radialstack/pkg/fonts"
	"github.com/matzehuels/radialstack/pkg/render/radial/layout"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
)

const chartCSS = `
    .layer-text, .legend-text { font-weight: normal; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static     bool
	prefix     string
	fontFamily string
}

// WithStatic renders the final frame without animation elements.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithIDPrefix prefixes every element ID and reference, so several charts
// can share one document.
func WithIDPrefix(p string) SVGOption { return func(r *svgRenderer) { r.prefix = p } }

// WithFontFamily overrides the CSS font family of the chart.
func WithFontFamily(f string) SVGOption { return func(r *svgRenderer) { r.fontFamily = f } }

// RenderSVG renders sc as a standalone SVG document.
func RenderSVG(sc scene.Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	family := r.fontFamily
	if family == "" {
		family = sc.FontFamily
	}
	if family == "" || family == fonts.FontFamily {
		family = fonts.FallbackFontFamily
	}

	var buf bytes.Buffer
	w, h := layout.FormatCoord(sc.Width), layout.FormatCoord(sc.Height)
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" class="%s" width="%s" height="%s" viewBox="0 0 %s %s" font-family="%s">`+"\n",
		scene.ClassChart, w, h, w, h, EscapeXML(family))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	for _, e := range sc.Elements {
		r.element(&buf, e)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) element(buf *bytes.Buffer, e scene.Element) {
	inner := map[string]bool{}
	if e.Kind == scene.KindTextPath {
		inner["startOffset"], inner["text-anchor"] = true, true
	}
	tag := string(e.Kind)
	if e.Kind == scene.KindTextPath {
		tag = "text"
	}

	buf.WriteString("  <" + tag)
	if e.ID != "" {
		fmt.Fprintf(buf, ` id="%s"`, EscapeXML(r.prefix+e.ID))
	}
	if e.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, EscapeXML(e.Class))
	}
	for _, a := range e.Attrs {
		if inner[a.Name] {
			continue
		}
		v := a.Value
		if r.static {
			v = e.Final(a.Name)
		}
		fmt.Fprintf(buf, ` %s="%s"`, a.Name, EscapeXML(v))
	}

	animated := !r.static && len(e.Animations) > 0
	hasBody := e.Kind == scene.KindText || e.Kind == scene.KindTextPath || animated
	if !hasBody {
		buf.WriteString("/>\n")
		return
	}
	buf.WriteString(">")

	if animated {
		buf.WriteString("\n")
		for _, a := range e.Animations {
			fmt.Fprintf(buf, `    <animate attributeName="%s" from="%s" to="%s" begin="%s" dur="%s" fill="freeze" calcMode="%s"/>`+"\n",
				a.Attribute, EscapeXML(a.From), EscapeXML(a.To), seconds(a.Begin), seconds(a.Duration), calcMode(a.Easing))
		}
		if e.Kind == scene.KindText || e.Kind == scene.KindTextPath {
			buf.WriteString("    ")
		}
	}

	switch e.Kind {
	case scene.KindTextPath:
		href := "#" + EscapeXML(r.prefix+e.Href)
		fmt.Fprintf(buf, `<textPath href="%s" xlink:href="%s"`, href, href)
		for _, a := range e.Attrs {
			if inner[a.Name] {
				fmt.Fprintf(buf, ` %s="%s"`, a.Name, EscapeXML(a.Value))
			}
		}
		fmt.Fprintf(buf, ">%s</textPath>", EscapeXML(e.Text))
	case scene.KindText:
		buf.WriteString(EscapeXML(e.Text))
	}
	if animated && e.Kind != scene.KindText && e.Kind != scene.KindTextPath {
		buf.WriteString("  ")
	}
	fmt.Fprintf(buf, "</%s>\n", tag)
}

func seconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}

func calcMode(easing string) string {
	switch easing {
	case "discrete", "paced", "spline":
		return easing
	default:
		return "linear"
	}
}

// EscapeXML escapes s for use in XML text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
