package style

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var namedColors = map[string]color.RGBA{
	"black":       {A: 0xFF},
	"white":       {R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	"red":         {R: 0xFF, A: 0xFF},
	"green":       {G: 0xFF, A: 0xFF},
	"blue":        {B: 0xFF, A: 0xFF},
	"yellow":      {R: 0xFF, G: 0xFF, A: 0xFF},
	"cyan":        {G: 0xFF, B: 0xFF, A: 0xFF},
	"magenta":     {R: 0xFF, B: 0xFF, A: 0xFF},
	"gray":        {R: 0x88, G: 0x88, B: 0x88, A: 0xFF},
	"grey":        {R: 0x88, G: 0x88, B: 0x88, A: 0xFF},
	"darkgray":    {R: 0x44, G: 0x44, B: 0x44, A: 0xFF},
	"lightgray":   {R: 0xCC, G: 0xCC, B: 0xCC, A: 0xFF},
	"transparent": {},
}

// ParseColor accepts #RGB, #RRGGBB, #AARRGGBB and a few color names.
// The result is alpha-premultiplied.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if c, ok := namedColors[strings.ToLower(s)]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	switch len(s) {
	case 4, 7:
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
	case 9:
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		a := uint8(v >> 24)
		return premultiply(uint8(v>>16), uint8(v>>8), uint8(v), a), nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// FormatColor is the inverse of ParseColor for hex colors. Opaque colors
// print as #RRGGBB, others as #AARRGGBB.
func FormatColor(c color.RGBA) string {
	if c.A == 0xFF {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	if c.A == 0 {
		return "#00000000"
	}
	unmul := func(v uint8) uint8 { return uint8((uint32(v)*0xFF + uint32(c.A)/2) / uint32(c.A)) }
	return fmt.Sprintf("#%02X%02X%02X%02X", c.A, unmul(c.R), unmul(c.G), unmul(c.B))
}

func premultiply(r, g, b, a uint8) color.RGBA {
	mul := func(v uint8) uint8 { return uint8((uint32(v)*uint32(a) + 0x7F) / 0xFF) }
	return color.RGBA{R: mul(r), G: mul(g), B: mul(b), A: a}
}
