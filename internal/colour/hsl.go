// Package colour picks a single vibrant accent colour out of an image.
package colour

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// HSL is a colour in hue/saturation/lightness space.
// H is in degrees [0,360), S and L are in [0,1].
type HSL struct {
	H float64 `json:"hue"`
	S float64 `json:"saturation"`
	L float64 `json:"lightness"`
}

// RGBToHSL converts an 8-bit RGB triple to HSL.
func RGBToHSL(red, green, blue uint8) HSL {
	r := float64(red) / 255.0
	g := float64(green) / 255.0
	b := float64(blue) / 255.0

	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	l := (maxVal + minVal) / 2.0

	// Achromatic.
	if delta == 0 {
		return HSL{H: 0, S: 0, L: l}
	}

	s := delta / (1.0 - math.Abs(2.0*l-1.0))

	var h float64
	switch maxVal {
	case r:
		h = 60.0 * math.Mod((g-b)/delta, 6.0)
	case g:
		h = 60.0 * ((b-r)/delta + 2.0)
	default:
		h = 60.0 * ((r-g)/delta + 4.0)
	}
	if h < 0 {
		h += 360.0
	}

	return HSL{H: h, S: s, L: l}
}

// Score rates how vibrant a colour is: saturated colours near mid lightness
// score highest, greys score zero.
func Score(c HSL) float64 {
	return c.S * (1.0 - math.Abs(c.L-0.5))
}

// Hex returns the colour as a #rrggbb string.
func (c HSL) Hex() string {
	return colorful.Hsl(c.H, c.S, c.L).Clamped().Hex()
}

// String returns the colour in CSS hsl() notation with one decimal place.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", c.H, c.S*100, c.L*100)
}
