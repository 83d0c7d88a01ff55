package assets

import "github.com/lucasb-eyer/go-colorful"

// ParseColor parses a "#rrggbb" string, returning fallback when it is not
// a valid hex colour.
func ParseColor(hex string, fallback colorful.Color) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fallback
	}
	return c
}

// Shade scales c by a light intensity in [0, 1].
func Shade(c colorful.Color, intensity float64) colorful.Color {
	if intensity < 0 {
		intensity = 0
	} else if intensity > 1 {
		intensity = 1
	}
	return colorful.Color{R: c.R * intensity, G: c.G * intensity, B: c.B * intensity}.Clamped()
}
