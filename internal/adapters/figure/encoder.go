// Package figure writes rendered figures to PNG or PDF files.
package figure

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/skirt-tools/cutviz/internal/domain"
)

// Suffixes lists the file extensions the encoder can produce.
var Suffixes = []string{".pdf", ".png"}

// pointsPerInch is the PDF user space unit.
const pointsPerInch = 72.0

// Encoder implements ports.FigureEncoder.
type Encoder struct {
	// DPI maps raster pixels to PDF page size. Zero means 100.
	DPI int
}

// NewEncoder creates an Encoder for figures rendered at dpi.
func NewEncoder(dpi int) *Encoder {
	return &Encoder{DPI: dpi}
}

// Save encodes img according to the extension of path and writes it
// atomically: the figure goes to a temporary file that is renamed into place.
func (e *Encoder) Save(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := e.Encode(&buf, strings.ToLower(filepath.Ext(path)), img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Encode writes img to w in the format named by ext (".png" or ".pdf").
func (e *Encoder) Encode(w io.Writer, ext string, img image.Image) error {
	switch ext {
	case ".png":
		return png.Encode(w, img)
	case ".pdf":
		return e.encodePDF(w, img)
	}
	return fmt.Errorf("%w: %q", domain.ErrUnsupportedSuffix, ext)
}

// encodePDF embeds img as a lossless PNG on a single page sized to the
// figure's physical dimensions.
func (e *Encoder) encodePDF(w io.Writer, img image.Image) error {
	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return err
	}

	dpi := e.DPI
	if dpi <= 0 {
		dpi = 100
	}
	b := img.Bounds()
	wd := float64(b.Dx()) * pointsPerInch / float64(dpi)
	ht := float64(b.Dy()) * pointsPerInch / float64(dpi)

	// The page size is given explicitly; "L" would swap it.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: wd, Ht: ht},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("cutviz", true)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader("figure", opts, &raster)
	pdf.ImageOptions("figure", 0, 0, wd, ht, false, opts, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
