package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

var namedColors = map[string]string{
	"black":  "000000",
	"white":  "ffffff",
	"grey":   "808080",
	"gray":   "808080",
	"blue":   "0000ff",
	"orange": "ffa500",
	"purple": "800080",
	"violet": "ee82ee",
	"indigo": "4b0082",
	"red":    "ff0000",
	"brown":  "a52a2a",
	"green":  "008000",
}

// ParseColor understands color names ("blue", "indigo"), hex codes ("#4b0082"),
// and grey levels given as a fraction from 0 (black) to 1 (white), e.g. "0.4".
// An empty string is black.
func ParseColor(name string) (drawing.Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return drawing.ColorBlack, nil
	}

	if hex, exists := namedColors[name]; exists {
		return drawing.ColorFromHex(hex), nil
	}

	if strings.HasPrefix(name, "#") {
		hex := strings.TrimPrefix(name, "#")
		if len(hex) != 6 && len(hex) != 3 {
			return drawing.Color{}, fmt.Errorf("invalid hex color %q", name)
		}
		if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
			return drawing.Color{}, fmt.Errorf("invalid hex color %q", name)
		}
		return drawing.ColorFromHex(hex), nil
	}

	if level, err := strconv.ParseFloat(name, 64); err == nil {
		if level < 0 || level > 1 {
			return drawing.Color{}, fmt.Errorf("grey level %q must be between 0 and 1", name)
		}
		v := uint8(level*255 + 0.5)
		return drawing.Color{R: v, G: v, B: v, A: 255}, nil
	}

	return drawing.Color{}, fmt.Errorf("unknown color %q", name)
}

// withAlpha applies an opacity between 0 and 1. Values outside that range
// leave the color opaque.
func withAlpha(c drawing.Color, alpha float64) drawing.Color {
	if alpha <= 0 || alpha > 1 {
		return c
	}
	return c.WithAlpha(uint8(alpha*255 + 0.5))
}
