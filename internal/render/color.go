package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// namedColors covers the CSS names used by the house style.
var namedColors = map[string]drawing.Color{
	"white":  {R: 255, G: 255, B: 255, A: 255},
	"black":  {R: 0, G: 0, B: 0, A: 255},
	"red":    {R: 255, G: 0, B: 0, A: 255},
	"yellow": {R: 255, G: 255, B: 0, A: 255},
	"green":  {R: 0, G: 128, B: 0, A: 255},
	"blue":   {R: 0, G: 0, B: 255, A: 255},
	"gray":   {R: 128, G: 128, B: 128, A: 255},
}

// ParseColor converts "#rrggbb", "rgb(...)", "rgba(...)" or a CSS name into a drawing color.
func ParseColor(s string) (drawing.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "":
		return drawing.ColorTransparent, fmt.Errorf("empty color")
	case strings.HasPrefix(s, "#"):
		hex := s[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return drawing.ColorTransparent, fmt.Errorf("invalid hex color %q", s)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return drawing.ColorTransparent, fmt.Errorf("invalid hex color %q", s)
		}
		return drawing.ColorFromHex(hex), nil
	case strings.HasPrefix(s, "rgb"):
		return parseRGBA(s)
	}
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	return drawing.ColorTransparent, fmt.Errorf("unknown color %q", s)
}

func parseRGBA(s string) (drawing.Color, error) {
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return drawing.ColorTransparent, fmt.Errorf("invalid color %q", s)
	}
	parts := strings.Split(s[open+1:end], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return drawing.ColorTransparent, fmt.Errorf("invalid color %q", s)
	}
	var rgb [3]uint8
	for i := range 3 {
		v, err := strconv.ParseUint(strings.TrimSpace(parts[i]), 10, 8)
		if err != nil {
			return drawing.ColorTransparent, fmt.Errorf("invalid color %q: %w", s, err)
		}
		rgb[i] = uint8(v)
	}
	alpha := uint8(255)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return drawing.ColorTransparent, fmt.Errorf("invalid alpha in %q", s)
		}
		alpha = uint8(a*255 + 0.5)
	}
	return drawing.Color{R: rgb[0], G: rgb[1], B: rgb[2], A: alpha}, nil
}

// colorOr parses s and falls back to def when s is empty or malformed.
func colorOr(s string, def drawing.Color) drawing.Color {
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
