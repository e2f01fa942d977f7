// Package render draws cut figures: rows of equal-aspect raster panels
// sharing one colour bar.
package render

import (
	"image/color"
	"math"
)

// Colormap maps a normalized value in [0, 1] to a colour.
type Colormap func(t float64) color.RGBA

// Gnuplot is the "traditional pm3d" black-blue-red-yellow colour map:
// red = sqrt(t), green = t^3, blue = sin(2*pi*t).
func Gnuplot(t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: channel(math.Sqrt(t)),
		G: channel(t * t * t),
		B: channel(math.Sin(2 * math.Pi * t)),
		A: 0xff,
	}
}

func channel(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
