package render

import "math"

// Norm maps data values onto [0, 1] for colour lookup.
type Norm interface {
	// Normalize returns the position of v in the display range, clipped to [0, 1].
	Normalize(v float64) float64
	// Bounds returns the display range.
	Bounds() (vmin, vmax float64)
	// Ticks returns the values labelled on the colour bar.
	Ticks() []float64
}

// NewNorm returns a logarithmic normalizer when vmax is positive and a
// linear one otherwise; a logarithmic scale has no meaning for an all-zero
// or negative range.
func NewNorm(vmin, vmax float64) Norm {
	if vmax > 0 {
		return LogNorm{Vmin: vmin, Vmax: vmax}
	}
	return LinearNorm{Vmin: vmin, Vmax: vmax}
}

// LinearNorm maps [Vmin, Vmax] linearly onto [0, 1].
type LinearNorm struct {
	Vmin, Vmax float64
}

func (n LinearNorm) Normalize(v float64) float64 {
	if n.Vmax == n.Vmin {
		return 0
	}
	return clamp01((v - n.Vmin) / (n.Vmax - n.Vmin))
}

func (n LinearNorm) Bounds() (float64, float64) { return n.Vmin, n.Vmax }

func (n LinearNorm) Ticks() []float64 { return LinearTicks(n.Vmin, n.Vmax, 5) }

// LogNorm maps [Vmin, Vmax] logarithmically onto [0, 1]. Vmin must be positive.
type LogNorm struct {
	Vmin, Vmax float64
}

func (n LogNorm) Normalize(v float64) float64 {
	if v <= 0 || n.Vmin <= 0 || n.Vmax <= n.Vmin {
		return 0
	}
	lo, hi := math.Log10(n.Vmin), math.Log10(n.Vmax)
	return clamp01((math.Log10(v) - lo) / (hi - lo))
}

func (n LogNorm) Bounds() (float64, float64) { return n.Vmin, n.Vmax }

func (n LogNorm) Ticks() []float64 { return LogTicks(n.Vmin, n.Vmax) }
