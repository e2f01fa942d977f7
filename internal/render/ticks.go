package render

import (
	"math"
	"strconv"
)

const maxTicks = 12

// LinearTicks returns round values within [lo, hi], roughly n of them.
func LinearTicks(lo, hi float64, n int) []float64 {
	if !finite(lo) || !finite(hi) {
		return nil
	}
	if hi <= lo || n < 1 {
		return []float64{lo}
	}
	step := niceStep((hi - lo) / float64(n))
	var ticks []float64
	for k := math.Ceil(lo/step - 1e-9); len(ticks) <= 4*maxTicks; k++ {
		v := k * step
		if v > hi+step*1e-9 {
			break
		}
		ticks = append(ticks, v)
	}
	return ticks
}

// LogTicks returns the powers of ten within [lo, hi], thinned to at most
// maxTicks values. Ranges within a single decade fall back to linear ticks.
func LogTicks(lo, hi float64) []float64 {
	if lo <= 0 || hi < lo || !finite(lo) || !finite(hi) {
		return nil
	}
	first := int(math.Ceil(math.Log10(lo) - 1e-9))
	last := int(math.Floor(math.Log10(hi) + 1e-9))
	if last < first {
		return LinearTicks(lo, hi, 3)
	}
	stride := (last-first)/maxTicks + 1
	var ticks []float64
	for e := first; e <= last; e += stride {
		ticks = append(ticks, math.Pow(10, float64(e)))
	}
	return ticks
}

// FormatTick renders a tick value with up to four significant digits.
func FormatTick(v float64) string {
	if math.Abs(v) < 1e-300 {
		return "0"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func niceStep(raw float64) float64 {
	exp := math.Floor(math.Log10(raw))
	base := math.Pow(10, exp)
	f := raw / base
	switch {
	case f < 1.5:
		return base
	case f < 3:
		return 2 * base
	case f < 7:
		return 5 * base
	}
	return 10 * base
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
