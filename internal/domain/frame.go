package domain

import "math"

// Axis is the coordinate grid along one frame axis.
type Axis struct {
	// Grid holds the coordinate of each pixel center.
	Grid []float64

	// Unit is the unit string of the coordinates (e.g. "pc").
	Unit string
}

// First returns the first grid value, or 0 for an empty grid.
func (a Axis) First() float64 {
	if len(a.Grid) == 0 {
		return 0
	}
	return a.Grid[0]
}

// Last returns the last grid value, or 0 for an empty grid.
func (a Axis) Last() float64 {
	if len(a.Grid) == 0 {
		return 0
	}
	return a.Grid[len(a.Grid)-1]
}

// Frame is a 2D raster of physical values.
// Data is stored row-major with x varying fastest: Data[y*Nx+x].
type Frame struct {
	Nx, Ny int
	Data   []float64

	// Unit is the unit string of the values (e.g. "Msun/pc3").
	Unit string

	X, Y Axis
}

// At returns the value at pixel (x, y), with y = 0 the bottom row.
func (f Frame) At(x, y int) float64 {
	return f.Data[y*f.Nx+x]
}

// Max returns the largest non-NaN value, or -Inf when there is none.
func (f Frame) Max() float64 {
	m := math.Inf(-1)
	for _, v := range f.Data {
		if v > m {
			m = v
		}
	}
	return m
}

// Clone returns a deep copy of the frame.
func (f Frame) Clone() Frame {
	c := f
	c.Data = append([]float64(nil), f.Data...)
	c.X.Grid = append([]float64(nil), f.X.Grid...)
	c.Y.Grid = append([]float64(nil), f.Y.Grid...)
	return c
}

// ClipBelow replaces every value of the frame smaller than floor by floor.
func (f Frame) ClipBelow(floor float64) {
	ClipBelow(f.Data, floor)
}

// ClipBelow replaces every value smaller than floor by floor, in place.
// NaN values are left untouched.
func ClipBelow(data []float64, floor float64) {
	for i, v := range data {
		if v < floor {
			data[i] = floor
		}
	}
}

// MaxOf returns the largest Max over the given frames.
func MaxOf(frames ...Frame) float64 {
	m := math.Inf(-1)
	for _, f := range frames {
		if v := f.Max(); v > m {
			m = v
		}
	}
	return m
}
