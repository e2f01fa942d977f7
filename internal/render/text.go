package render

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

func textAscent() int {
	return face.Metrics().Ascent.Ceil()
}

// drawText draws s with its baseline starting at (x, y).
func drawText(dst draw.Image, x, y int, s string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// drawTextCentered draws s horizontally centered on cx.
func drawTextCentered(dst draw.Image, cx, y int, s string, col color.Color) {
	drawText(dst, cx-textWidth(s)/2, y, s, col)
}

// drawTextRight draws s so that it ends at x.
func drawTextRight(dst draw.Image, x, y int, s string, col color.Color) {
	drawText(dst, x-textWidth(s), y, s, col)
}

// drawTextVertical draws s rotated a quarter turn counter-clockwise,
// centered on (cx, cy), reading bottom to top.
func drawTextVertical(dst draw.Image, cx, cy int, s string, col color.Color) {
	w := textWidth(s)
	h := face.Metrics().Height.Ceil()
	if w == 0 {
		return
	}
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	drawText(tmp, 0, textAscent(), s, col)

	x0 := cx - h/2
	y0 := cy - w/2
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := tmp.RGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			dst.Set(x0+y, y0+w-1-x, c)
		}
	}
}
