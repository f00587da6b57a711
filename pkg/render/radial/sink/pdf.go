package sink

import (
	"bytes"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgpdf"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
)

// RenderPDF draws the final frame of sc as a single page PDF. Fonts are
// embedded.
func RenderPDF(sc scene.Scene, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	if err := errors.ValidateViewport(sc.Width, sc.Height); err != nil {
		return nil, err
	}
	c := vgpdf.New(vg.Length(sc.Width), vg.Length(sc.Height))
	c.EmbedFonts(true)

	p := painter{c: c, width: sc.Width, height: sc.Height}
	p.background(r.background)
	if err := p.draw(sc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render pdf")
	}
	var buf bytes.Buffer
	if _, err := c.WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode pdf")
	}
	return buf.Bytes(), nil
}
