package palette

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var named = map[string]color.Color{
	"white":  color.White,
	"black":  color.Black,
	"purple": color.RGBA{R: 0x80, B: 0x80, A: 0xff},
	"gray":   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":   color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"none":   color.Transparent,
}

// ParseColor parses a CSS hex color (#rgb or #rrggbb) or one of the few
// named colors the chart uses.
func ParseColor(s string) (color.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := named[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") || (len(s) != 4 && len(s) != 7) {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}
