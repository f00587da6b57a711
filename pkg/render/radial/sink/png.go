package sink

import (
	"bytes"

	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/matzehuels/radialstack/pkg/errors"
	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
)

// RenderPNG draws the final frame of sc as a PNG image.
func RenderPNG(sc scene.Scene, opts ...RasterOption) ([]byte, error) {
	r := newRasterRenderer(opts...)
	if err := errors.ValidateViewport(sc.Width, sc.Height); err != nil {
		return nil, err
	}
	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(sc.Width), vg.Length(sc.Height)),
		vgimg.UseDPI(r.dpi),
		vgimg.UseBackgroundColor(r.background),
	)
	if err := (painter{c: c, width: sc.Width, height: sc.Height}).draw(sc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render png")
	}
	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
