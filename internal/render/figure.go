package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"github.com/skirt-tools/cutviz/internal/domain"
)

// Layout in pixels.
const (
	marginTop    = 16
	marginBottom = 52
	marginLeft   = 84
	marginRight  = 12
	barGap       = 24
	barWidth     = 18
	barLabels    = 96
	tickLen      = 5
	minPixels    = 64
)

// DefaultDPI converts figure sizes in inches to pixels when Spec.DPI is unset.
const DefaultDPI = 100

var (
	ink        = color.RGBA{A: 0xff}
	background = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Panel is one raster panel of a figure.
type Panel struct {
	Frame domain.Frame
	// Cut names the axes: the first letter labels the horizontal axis and
	// the last letter the vertical one.
	Cut domain.Cut
}

// Spec describes a figure.
type Spec struct {
	Panels   []Panel
	Norm     Norm
	Colormap Colormap
	// BarLabel is written along the colour bar, e.g. "density [Msun/pc3]".
	BarLabel string
	// Width and Height are the figure size in inches.
	Width, Height float64
	DPI           int
}

// Draw renders the figure described by spec.
// Panels are laid out left to right with equal aspect ratio, origin at the
// lower left, and resampled with a bicubic (Catmull-Rom) filter.
func Draw(spec Spec) (*image.RGBA, error) {
	if len(spec.Panels) == 0 {
		return nil, errors.New("render: no panels")
	}
	if spec.Norm == nil {
		return nil, errors.New("render: no normalizer")
	}
	for i, p := range spec.Panels {
		f := p.Frame
		if f.Nx <= 0 || f.Ny <= 0 || len(f.Data) != f.Nx*f.Ny {
			return nil, fmt.Errorf("panel %d: %w: %dx%d with %d values", i, domain.ErrFrameShape, f.Nx, f.Ny, len(f.Data))
		}
	}
	cmap := spec.Colormap
	if cmap == nil {
		cmap = Gnuplot
	}
	dpi := spec.DPI
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	width := max(int(math.Round(spec.Width*float64(dpi))), minPixels)
	height := max(int(math.Round(spec.Height*float64(dpi))), minPixels)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	n := len(spec.Panels)
	cellW := (width - barGap - barWidth - barLabels) / n
	plotH := height - marginTop - marginBottom
	availW := cellW - marginLeft - marginRight

	top, bottom := height, 0
	for i, p := range spec.Panels {
		w, h := fitBox(availW, plotH, p.Frame)
		x0 := i*cellW + marginLeft + (availW-w)/2
		y0 := marginTop + (plotH-h)/2
		box := image.Rect(x0, y0, x0+w, y0+h)

		drawRaster(img, box, p.Frame, spec.Norm, cmap)
		drawAxes(img, box, p)
		top = min(top, box.Min.Y)
		bottom = max(bottom, box.Max.Y)
	}

	bx := n*cellW + barGap
	drawColorBar(img, image.Rect(bx, top, bx+barWidth, bottom), spec.Norm, cmap, spec.BarLabel)
	return img, nil
}

// fitBox returns the largest box within availW x availH whose aspect ratio
// matches the frame's physical extent.
func fitBox(availW, availH int, f domain.Frame) (int, int) {
	availW = max(availW, 1)
	availH = max(availH, 1)
	ew := math.Abs(f.X.Last() - f.X.First())
	eh := math.Abs(f.Y.Last() - f.Y.First())
	if ew == 0 || eh == 0 || !finite(ew/eh) {
		ew, eh = float64(f.Nx), float64(f.Ny)
	}
	ratio := ew / eh
	if float64(availW)/float64(availH) > ratio {
		return max(int(math.Round(float64(availH)*ratio)), 1), availH
	}
	return availW, max(int(math.Round(float64(availW)/ratio)), 1)
}

// drawRaster colours each frame pixel and scales the result into box.
// Row y = 0 of the frame ends up at the bottom. NaN pixels stay blank.
func drawRaster(dst *image.RGBA, box image.Rectangle, f domain.Frame, norm Norm, cmap Colormap) {
	src := image.NewRGBA(image.Rect(0, 0, f.Nx, f.Ny))
	for y := 0; y < f.Ny; y++ {
		for x := 0; x < f.Nx; x++ {
			c := background
			if v := f.At(x, y); !math.IsNaN(v) {
				c = cmap(norm.Normalize(v))
			}
			src.SetRGBA(x, f.Ny-1-y, c)
		}
	}
	xdraw.CatmullRom.Scale(dst, box, src, src.Bounds(), xdraw.Src, nil)
}

func drawAxes(dst *image.RGBA, box image.Rectangle, p Panel) {
	strokeRect(dst, box.Inset(-1))

	fx := p.Frame.X
	fy := p.Frame.Y
	if x0, x1 := fx.First(), fx.Last(); x1 != x0 {
		for _, v := range LinearTicks(math.Min(x0, x1), math.Max(x0, x1), 5) {
			px := box.Min.X + int(math.Round((v-x0)/(x1-x0)*float64(box.Dx()-1)))
			vline(dst, px, box.Max.Y, box.Max.Y+tickLen)
			drawTextCentered(dst, px, box.Max.Y+tickLen+textAscent()+2, FormatTick(v), ink)
		}
	}
	if y0, y1 := fy.First(), fy.Last(); y1 != y0 {
		for _, v := range LinearTicks(math.Min(y0, y1), math.Max(y0, y1), 5) {
			py := box.Max.Y - 1 - int(math.Round((v-y0)/(y1-y0)*float64(box.Dy()-1)))
			hline(dst, box.Min.X-1-tickLen, box.Min.X-1, py)
			drawTextRight(dst, box.Min.X-tickLen-3, py+textAscent()/2, FormatTick(v), ink)
		}
	}

	xLabel := domain.Label(p.Cut.HorizontalAxis(), fx.Unit)
	yLabel := domain.Label(p.Cut.VerticalAxis(), fy.Unit)
	drawTextCentered(dst, (box.Min.X+box.Max.X)/2, box.Max.Y+tickLen+2*textAscent()+12, xLabel, ink)
	drawTextVertical(dst, box.Min.X-marginLeft+12, (box.Min.Y+box.Max.Y)/2, yLabel, ink)
}

func drawColorBar(dst *image.RGBA, bar image.Rectangle, norm Norm, cmap Colormap, label string) {
	h := bar.Dy()
	if h <= 1 {
		return
	}
	for py := bar.Min.Y; py < bar.Max.Y; py++ {
		c := cmap(float64(bar.Max.Y-1-py) / float64(h-1))
		for px := bar.Min.X; px < bar.Max.X; px++ {
			dst.SetRGBA(px, py, c)
		}
	}
	strokeRect(dst, bar.Inset(-1))

	for _, v := range norm.Ticks() {
		t := norm.Normalize(v)
		py := bar.Max.Y - 1 - int(math.Round(t*float64(h-1)))
		hline(dst, bar.Max.X, bar.Max.X+tickLen, py)
		drawText(dst, bar.Max.X+tickLen+3, py+textAscent()/2, FormatTick(v), ink)
	}
	drawTextVertical(dst, bar.Max.X+barLabels-12, (bar.Min.Y+bar.Max.Y)/2, label, ink)
}

func strokeRect(dst *image.RGBA, r image.Rectangle) {
	hline(dst, r.Min.X, r.Max.X, r.Min.Y)
	hline(dst, r.Min.X, r.Max.X, r.Max.Y-1)
	vline(dst, r.Min.X, r.Min.Y, r.Max.Y)
	vline(dst, r.Max.X-1, r.Min.Y, r.Max.Y)
}

func hline(dst *image.RGBA, x0, x1, y int) {
	for x := x0; x < x1; x++ {
		dst.SetRGBA(x, y, ink)
	}
}

func vline(dst *image.RGBA, x, y0, y1 int) {
	for y := y0; y < y1; y++ {
		dst.SetRGBA(x, y, ink)
	}
}
