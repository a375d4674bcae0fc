package diagram

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Color is a CSS style color: "#rgb", "#rrggbb", "#rrggbbaa" or a CSS color
// name. The empty string and "none" mean the area is not painted.
type Color string

const (
	NoColor Color = ""
	Black   Color = "black"
	White   Color = "white"
)

func (c Color) IsNone() bool {
	s := strings.TrimSpace(strings.ToLower(string(c)))
	return s == "" || s == "none" || s == "transparent"
}

// RGBA parses the color. Unpainted colors yield a fully transparent value.
func (c Color) RGBA() (color.NRGBA, error) {
	if c.IsNone() {
		return color.NRGBA{}, nil
	}

	s := strings.TrimSpace(strings.ToLower(string(c)))
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}

	named, ok := colornames.Map[s]
	if !ok {
		return color.NRGBA{}, fmt.Errorf("unknown color %q", string(c))
	}
	return color.NRGBA{R: named.R, G: named.G, B: named.B, A: named.A}, nil
}

// Hex formats the color as "#rrggbb" ignoring alpha; unpainted colors give "none".
func (c Color) Hex() string {
	if c.IsNone() {
		return "none"
	}
	rgba, err := c.RGBA()
	if err != nil {
		return "none"
	}
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}

// Alpha is the color's own alpha channel scaled to [0,1].
func (c Color) Alpha() float64 {
	rgba, err := c.RGBA()
	if err != nil {
		return 0
	}
	return float64(rgba.A) / 255
}

func (c Color) validate(field string) error {
	if _, err := c.RGBA(); err != nil {
		return invalidStyle("%s: %v", field, err)
	}
	return nil
}

func parseHex(h string) (color.NRGBA, error) {
	expand := func(s string) string {
		var b strings.Builder
		for _, r := range s {
			b.WriteRune(r)
			b.WriteRune(r)
		}
		return b.String()
	}

	switch len(h) {
	case 3:
		h = expand(h) + "ff"
	case 6:
		h += "ff"
	case 8:
	default:
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", "#"+h)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("malformed hex color %q", "#"+h)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
