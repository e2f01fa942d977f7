// Package fitstest writes small FITS images for tests.
package fitstest

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const blockSize = 2880

// Image describes a primary-HDU image written with BITPIX = -64.
type Image struct {
	Nx, Ny int
	// Planes adds a third axis of the given length when greater than zero.
	Planes int
	// Data holds Nx*Ny(*Planes) values, x varying fastest.
	Data []float64
	Unit string

	// World coordinates of the first pixel and the pixel step along x and y.
	X0, DX float64
	Y0, DY float64
	// AxisUnit is written as CUNIT1 and CUNIT2.
	AxisUnit string
}

// Grid returns an Image with values fn(x, y), spanning [-half, half] on both axes.
func Grid(nx, ny int, half float64, unit string, fn func(x, y int) float64) Image {
	data := make([]float64, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			data[y*nx+x] = fn(x, y)
		}
	}
	img := Image{Nx: nx, Ny: ny, Data: data, Unit: unit, AxisUnit: "pc", X0: -half, Y0: -half}
	if nx > 1 {
		img.DX = 2 * half / float64(nx-1)
	}
	if ny > 1 {
		img.DY = 2 * half / float64(ny-1)
	}
	return img
}

// Write stores img as a FITS file at path, creating parent directories.
func Write(t testing.TB, path string, img Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, Encode(img), 0o644); err != nil {
		t.Fatalf("write fits: %v", err)
	}
}

// Encode returns the FITS bytes of img.
func Encode(img Image) []byte {
	var hdr bytes.Buffer
	card := func(key, value string) {
		line := fmt.Sprintf("%-8s= %20s", key, value)
		hdr.WriteString(fmt.Sprintf("%-80s", line))
	}
	str := func(key, value string) {
		line := fmt.Sprintf("%-8s= '%-8s'", key, value)
		hdr.WriteString(fmt.Sprintf("%-80s", line))
	}
	num := func(v float64) string { return strings.ToUpper(fmt.Sprintf("%.10E", v)) }

	naxis := 2
	if img.Planes > 0 {
		naxis = 3
	}
	card("SIMPLE", "T")
	card("BITPIX", "-64")
	card("NAXIS", fmt.Sprint(naxis))
	card("NAXIS1", fmt.Sprint(img.Nx))
	card("NAXIS2", fmt.Sprint(img.Ny))
	if img.Planes > 0 {
		card("NAXIS3", fmt.Sprint(img.Planes))
	}
	if img.Unit != "" {
		str("BUNIT", img.Unit)
	}
	card("CRPIX1", num(1))
	card("CRVAL1", num(img.X0))
	card("CDELT1", num(img.DX))
	card("CRPIX2", num(1))
	card("CRVAL2", num(img.Y0))
	card("CDELT2", num(img.DY))
	if img.AxisUnit != "" {
		str("CUNIT1", img.AxisUnit)
		str("CUNIT2", img.AxisUnit)
	}
	hdr.WriteString(fmt.Sprintf("%-80s", "END"))
	pad(&hdr, ' ')

	var data bytes.Buffer
	for _, v := range img.Data {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(v))
		data.Write(b[:])
	}
	pad(&data, 0)

	return append(hdr.Bytes(), data.Bytes()...)
}

func pad(buf *bytes.Buffer, fill byte) {
	if rem := buf.Len() % blockSize; rem != 0 {
		buf.Write(bytes.Repeat([]byte{fill}, blockSize-rem))
	}
}
