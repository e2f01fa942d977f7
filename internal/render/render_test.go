package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skirt-tools/cutviz/internal/domain"
)

func TestGnuplotEndpoints(t *testing.T) {
	assert.Equal(t, color.RGBA{A: 0xff}, Gnuplot(0))

	top := Gnuplot(1)
	assert.Equal(t, uint8(0xff), top.R)
	assert.Equal(t, uint8(0xff), top.G)
	assert.Equal(t, uint8(0), top.B, "sin(2pi) clips to zero")

	// Out of range and NaN inputs clamp.
	assert.Equal(t, Gnuplot(0), Gnuplot(-3))
	assert.Equal(t, Gnuplot(0), Gnuplot(math.NaN()))
	assert.Equal(t, Gnuplot(1), Gnuplot(7))
}

func TestGnuplotQuarter(t *testing.T) {
	c := Gnuplot(0.25)
	assert.Equal(t, uint8(math.Round(0.5*255)), c.R)
	assert.Equal(t, uint8(math.Round(math.Pow(0.25, 3)*255)), c.G)
	assert.Equal(t, uint8(0xff), c.B)
}

func TestNewNormPicksScale(t *testing.T) {
	tests := []struct {
		name       string
		vmin, vmax float64
		wantLog    bool
	}{
		{"positive", 1e-5, 1, true},
		{"all zero", 0, 0, false},
		{"negative", -2e-5, -2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, isLog := NewNorm(tt.vmin, tt.vmax).(LogNorm)
			assert.Equal(t, tt.wantLog, isLog)
		})
	}
}

func TestLogNormNormalize(t *testing.T) {
	n := LogNorm{Vmin: 1e-2, Vmax: 1e2}
	assert.InDelta(t, 0, n.Normalize(1e-2), 1e-12)
	assert.InDelta(t, 0.5, n.Normalize(1), 1e-12)
	assert.InDelta(t, 1, n.Normalize(1e2), 1e-12)
	assert.Equal(t, 0.0, n.Normalize(0))
	assert.Equal(t, 1.0, n.Normalize(1e9))
}

func TestLinearNormNormalize(t *testing.T) {
	n := LinearNorm{Vmin: 0, Vmax: 40}
	assert.InDelta(t, 0.25, n.Normalize(10), 1e-12)
	assert.Equal(t, 0.0, n.Normalize(-5))
	assert.Equal(t, 1.0, n.Normalize(50))

	degenerate := LinearNorm{}
	assert.Equal(t, 0.0, degenerate.Normalize(0))
	assert.Equal(t, []float64{0}, degenerate.Ticks())
}

func TestLinearTicks(t *testing.T) {
	ticks := LinearTicks(0, 1, 5)
	require.Len(t, ticks, 6)
	assert.InDelta(t, 0, ticks[0], 1e-12)
	assert.InDelta(t, 1, ticks[5], 1e-12)

	for _, v := range LinearTicks(-3.2, 7.9, 4) {
		assert.GreaterOrEqual(t, v, -3.2)
		assert.LessOrEqual(t, v, 7.9)
	}
	assert.Nil(t, LinearTicks(math.NaN(), 1, 5))
}

func TestLogTicks(t *testing.T) {
	assert.InDeltaSlice(t, []float64{1e-3, 1e-2, 1e-1, 1}, LogTicks(1e-3, 5), 1e-15)
	assert.Nil(t, LogTicks(0, 1))
	assert.LessOrEqual(t, len(LogTicks(1e-40, 1e40)), maxTicks)
}

func TestFormatTick(t *testing.T) {
	assert.Equal(t, "0", FormatTick(0))
	assert.Equal(t, "0.25", FormatTick(0.25))
	assert.Equal(t, "1e-05", FormatTick(1e-5))
	assert.Equal(t, "1234", FormatTick(1234))
}

func testFrame(nx, ny int, fn func(x, y int) float64) domain.Frame {
	f := domain.Frame{Nx: nx, Ny: ny, Data: make([]float64, nx*ny), Unit: "K"}
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			f.Data[y*nx+x] = fn(x, y)
		}
	}
	f.X = domain.Axis{Grid: linspace(-1, 1, nx), Unit: "pc"}
	f.Y = domain.Axis{Grid: linspace(-1, 1, ny), Unit: "pc"}
	return f
}

func linspace(lo, hi float64, n int) []float64 {
	g := make([]float64, n)
	for i := range g {
		g[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return g
}

func TestDrawSize(t *testing.T) {
	f := testFrame(8, 8, func(x, y int) float64 { return float64(x + y) })
	img, err := Draw(Spec{
		Panels:   []Panel{{Frame: f, Cut: domain.CutXZ}, {Frame: f, Cut: domain.CutXZ}},
		Norm:     LinearNorm{Vmin: 0, Vmax: 14},
		BarLabel: "T [K]",
		Width:    9,
		Height:   3,
		DPI:      50,
	})
	require.NoError(t, err)
	assert.Equal(t, 450, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
	assert.Equal(t, background, img.RGBAAt(0, 0), "corner stays blank")
}

func TestDrawOriginLowerLeft(t *testing.T) {
	// Bright top row, dark elsewhere: the top of the panel must be bright.
	f := testFrame(4, 4, func(_, y int) float64 {
		if y == 3 {
			return 1
		}
		return 0
	})
	norm := LinearNorm{Vmin: 0, Vmax: 1}
	img, err := Draw(Spec{
		Panels: []Panel{{Frame: f, Cut: domain.CutXY}},
		Norm:   norm,
		Width:  4,
		Height: 4,
		DPI:    100,
	})
	require.NoError(t, err)

	cellW := (400 - barGap - barWidth - barLabels)
	availW := cellW - marginLeft - marginRight
	plotH := 400 - marginTop - marginBottom
	w, h := fitBox(availW, plotH, f)
	x0 := marginLeft + (availW-w)/2
	y0 := marginTop + (plotH-h)/2

	top := img.RGBAAt(x0+w/2, y0+2)
	assert.GreaterOrEqual(t, top.R, uint8(250))
	assert.GreaterOrEqual(t, top.G, uint8(250))
	assert.LessOrEqual(t, top.B, uint8(5))

	bottom := img.RGBAAt(x0+w/2, y0+h-3)
	assert.LessOrEqual(t, bottom.R, uint8(5))
	assert.LessOrEqual(t, bottom.G, uint8(5))
}

func TestDrawRejectsBadInput(t *testing.T) {
	_, err := Draw(Spec{Norm: LinearNorm{}})
	assert.Error(t, err)

	bad := domain.Frame{Nx: 3, Ny: 3, Data: []float64{1}}
	_, err = Draw(Spec{Panels: []Panel{{Frame: bad}}, Norm: LinearNorm{}, Width: 2, Height: 2})
	assert.ErrorIs(t, err, domain.ErrFrameShape)

	good := testFrame(2, 2, func(_, _ int) float64 { return 1 })
	_, err = Draw(Spec{Panels: []Panel{{Frame: good}}, Width: 2, Height: 2})
	assert.Error(t, err)
}

func TestFitBoxKeepsAspect(t *testing.T) {
	f := testFrame(4, 2, func(_, _ int) float64 { return 0 })
	f.X.Grid = linspace(-2, 2, 4)
	f.Y.Grid = linspace(-1, 1, 2)

	w, h := fitBox(400, 400, f)
	assert.Equal(t, 400, w)
	assert.Equal(t, 200, h)
}
