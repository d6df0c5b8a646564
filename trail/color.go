package trail

import (
	"fmt"
	"image/color"
	"strconv"
)

// Color is an 8-bit RGB triple parsed from a #RRGGBB string.
// Copied by value; never mutated after parsing.
type Color struct {
	R, G, B uint8
}

// ParseHexColor parses a 6-digit hex color string with an optional
// leading '#'. Any other length or a non-hex digit is an error.
func ParseHexColor(text string) (Color, error) {
	hex := text
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: need 6 hex digits (e.g. #RRGGBB)", text)
	}

	r, err := strconv.ParseUint(hex[0:2], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", text, err)
	}
	g, err := strconv.ParseUint(hex[2:4], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", text, err)
	}
	b, err := strconv.ParseUint(hex[4:6], 16, 8)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", text, err)
	}

	return Color{R: uint8(r), G: uint8(g), B: uint8(b)}, nil
}

// Hex formats the color as a lowercase #rrggbb string.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// NRGBA returns the color with the given alpha as a straight-alpha pixel.
func (c Color) NRGBA(alpha uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: alpha}
}
