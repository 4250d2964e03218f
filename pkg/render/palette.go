package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette maps pen numbers to CSS color names or #rrggbb values. Index 0 is
// unused because pen 0 never draws.
type Palette []string

// DefaultPalette is the pen carousel of the plotters this tool targets.
var DefaultPalette = Palette{"", "black", "red", "blue", "green", "yellow", "orange", "brown", "pink"}

var namedColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"red":    {255, 0, 0, 255},
	"blue":   {0, 0, 255, 255},
	"green":  {0, 128, 0, 255},
	"yellow": {255, 255, 0, 255},
	"orange": {255, 165, 0, 255},
	"brown":  {165, 42, 42, 255},
	"pink":   {255, 192, 203, 255},
	"purple": {128, 0, 128, 255},
	"gray":   {128, 128, 128, 255},
	"grey":   {128, 128, 128, 255},
	"white":  {255, 255, 255, 255},
}

// Name returns the color for pen. Pens outside the palette are black.
func (p Palette) Name(pen uint8) string {
	if int(pen) < len(p) && p[pen] != "" {
		return p[pen]
	}
	return "black"
}

// RGBA resolves the color for pen. Unknown names resolve to black.
func (p Palette) RGBA(pen uint8) color.RGBA {
	c, err := ParseColor(p.Name(pen))
	if err != nil {
		return namedColors["black"]
	}
	return c
}

// ParseColor parses a color name from the built-in table or a #rrggbb value.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	var r, g, b uint8
	if len(s) == 7 && s[0] == '#' {
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{r, g, b, 255}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}
