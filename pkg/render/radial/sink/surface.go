package sink

import (
	"sync"

	"github.com/matzehuels/radialstack/pkg/render/radial/scene"
)

// SVGSurface is a [scene.Surface] that renders its content as SVG.
type SVGSurface struct {
	mu       sync.Mutex
	width    float64
	height   float64
	family   string
	elements []scene.Element
	opts     []SVGOption
}

// NewSVGSurface returns an empty surface of the given size.
func NewSVGSurface(width, height float64, opts ...SVGOption) *SVGSurface {
	return &SVGSurface{width: width, height: height, opts: opts}
}

func (s *SVGSurface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = nil
}

func (s *SVGSurface) Append(e scene.Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.elements = append(s.elements, e)
}

// Resize changes the document size of later renders.
func (s *SVGSurface) Resize(width, height float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Len returns the number of drawn elements.
func (s *SVGSurface) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.elements)
}

// Bytes renders the current content.
func (s *SVGSurface) Bytes() []byte {
	s.mu.Lock()
	sc := scene.Scene{
		Width:      s.width,
		Height:     s.height,
		FontFamily: s.family,
		Elements:   append([]scene.Element(nil), s.elements...),
	}
	s.mu.Unlock()
	return RenderSVG(sc, s.opts...)
}
