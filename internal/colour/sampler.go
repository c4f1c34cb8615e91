package colour

import (
	"fmt"
	"image"
	"image/color"
)

const (
	// DefaultAlphaThreshold is the minimum alpha a pixel needs to be scored.
	DefaultAlphaThreshold = 200

	// DefaultGridDivisor controls the sampling stride: the shorter image side
	// divided by this value, never less than one pixel.
	DefaultGridDivisor = 100
)

// Result holds the outcome of a single sampling pass.
type Result struct {
	HSL

	// Score is the vibrancy score of the selected colour.
	Score float64 `json:"score"`

	// Visited counts the grid pixels that were inspected.
	Visited int `json:"visited"`

	// Skipped counts inspected pixels ignored for transparency.
	Skipped int `json:"skipped"`
}

// Degenerate reports whether no pixel produced a positive score. The colour is
// then the zero triple, which callers may treat as "no signal" or as neutral.
func (r Result) Degenerate() bool {
	return r.Score <= 0
}

// Sampler scans a subsampled pixel grid and selects the most vibrant colour.
type Sampler struct {
	// AlphaThreshold excludes pixels with lower alpha (0-255).
	AlphaThreshold uint8

	// GridDivisor sets the stride as min(width, height) / GridDivisor.
	GridDivisor int
}

// NewSampler creates a Sampler with the default threshold and stride.
func NewSampler() *Sampler {
	return &Sampler{
		AlphaThreshold: DefaultAlphaThreshold,
		GridDivisor:    DefaultGridDivisor,
	}
}

// Validate checks the sampler configuration.
func (s *Sampler) Validate() error {
	if s.GridDivisor < 1 {
		return fmt.Errorf("grid divisor must be at least 1, got %d", s.GridDivisor)
	}
	return nil
}

// Step returns the sampling stride for an image of the given size.
func (s *Sampler) Step(width, height int) int {
	divisor := s.GridDivisor
	if divisor < 1 {
		divisor = DefaultGridDivisor
	}
	return max(1, min(width, height)/divisor)
}

// Sample visits the grid row-major and returns the best scoring colour.
// Ties keep the first pixel found, so the result is deterministic for a
// given image and stride.
func (s *Sampler) Sample(img image.Image) Result {
	var best Result

	bounds := img.Bounds()
	step := s.Step(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y += step {
		for x := bounds.Min.X; x < bounds.Max.X; x += step {
			best.Visited++

			px := pixelAt(img, x, y)
			if px.A < s.AlphaThreshold {
				best.Skipped++
				continue
			}

			hsl := RGBToHSL(px.R, px.G, px.B)
			if score := Score(hsl); score > best.Score {
				best.Score = score
				best.HSL = hsl
			}
		}
	}

	return best
}

// pixelAt returns the non-premultiplied 8-bit colour at (x, y).
func pixelAt(img image.Image, x, y int) color.NRGBA {
	if nrgba, ok := img.(*image.NRGBA); ok {
		return nrgba.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}
