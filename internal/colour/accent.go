package colour

import (
	"fmt"
	"math"
)

// TextContrastThreshold is the lightness percent at or above which accent
// text is drawn black instead of white.
const TextContrastThreshold = 50

// Accent holds the integer values written to the theme's accent directives.
type Accent struct {
	// Hue in whole degrees, 0-359.
	Hue int `json:"hue"`

	// Saturation in percent, 0-100.
	Saturation int `json:"saturation"`

	// Lightness in percent, 0-100, after the bright accent policy.
	Lightness int `json:"lightness"`

	// Inverted is set when the bright accent policy flipped the lightness.
	Inverted bool `json:"inverted"`
}

// NewAccent formats a sampled colour as accent values. With bright set, a
// lightness below the contrast threshold is mirrored (L becomes 100-L) so
// dark wallpapers still get a readable accent.
func NewAccent(c HSL, bright bool) Accent {
	hue := int(math.Round(c.H))
	if hue >= 360 {
		hue -= 360
	}

	a := Accent{
		Hue:        hue,
		Saturation: percent(c.S),
		Lightness:  percent(c.L),
	}

	if bright && a.Lightness < TextContrastThreshold {
		a.Lightness = 100 - a.Lightness
		a.Inverted = true
	}

	return a
}

// DarkText reports whether black text should be used on this accent.
func (a Accent) DarkText() bool {
	return a.Lightness >= TextContrastThreshold
}

// HSL returns the accent as a colour.
func (a Accent) HSL() HSL {
	return HSL{
		H: float64(a.Hue),
		S: float64(a.Saturation) / 100.0,
		L: float64(a.Lightness) / 100.0,
	}
}

// String returns the accent in CSS hsl() notation.
func (a Accent) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", a.Hue, a.Saturation, a.Lightness)
}

func percent(v float64) int {
	p := int(math.Round(v * 100))
	return max(0, min(100, p))
}
