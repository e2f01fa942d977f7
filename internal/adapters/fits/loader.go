// Package fits loads simulation rasters from FITS files using astrogo/fitsio.
package fits

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/astrogo/fitsio"

	"github.com/skirt-tools/cutviz/internal/domain"
)

// Loader implements ports.FrameLoader for FITS files.
type Loader struct{}

// NewLoader creates a FITS frame loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFrame reads the primary image of the FITS file at path.
// The image must be 2D, or 3D with a single plane. BSCALE and BZERO are
// applied; the value unit comes from BUNIT and the axis grids from the
// CRPIXn, CRVALn, CDELTn and CUNITn keywords.
func (l *Loader) LoadFrame(path string) (domain.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return domain.Frame{}, err
	}
	defer f.Close()

	ff, err := fitsio.Open(f)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("open fits %s: %w", path, err)
	}
	defer ff.Close()

	img, ok := ff.HDU(0).(fitsio.Image)
	if !ok {
		return domain.Frame{}, fmt.Errorf("%s: %w", path, domain.ErrNoPrimaryImage)
	}
	hdr := img.Header()

	nx, ny, err := planeShape(hdr.Axes())
	if err != nil {
		return domain.Frame{}, fmt.Errorf("%s: %w", path, err)
	}

	data, err := readPixels(img, hdr.Bitpix(), nx*ny)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("read %s: %w", path, err)
	}
	scale := floatCard(hdr, "BSCALE", 1)
	zero := floatCard(hdr, "BZERO", 0)
	if scale != 1 || zero != 0 {
		for i, v := range data {
			data[i] = v*scale + zero
		}
	}

	return domain.Frame{
		Nx:   nx,
		Ny:   ny,
		Data: data,
		Unit: stringCard(hdr, "BUNIT"),
		X:    axis(hdr, 1, nx),
		Y:    axis(hdr, 2, ny),
	}, nil
}

func planeShape(axes []int) (int, int, error) {
	switch {
	case len(axes) == 2:
	case len(axes) == 3 && axes[2] == 1:
	default:
		return 0, 0, fmt.Errorf("%w: axes %v", domain.ErrFrameShape, axes)
	}
	if axes[0] <= 0 || axes[1] <= 0 {
		return 0, 0, fmt.Errorf("%w: axes %v", domain.ErrFrameShape, axes)
	}
	return axes[0], axes[1], nil
}

// readPixels decodes n pixels into float64 regardless of BITPIX.
func readPixels(img fitsio.Image, bitpix, n int) ([]float64, error) {
	out := make([]float64, n)
	switch bitpix {
	case 8:
		raw := make([]uint8, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 16:
		raw := make([]int16, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 32:
		raw := make([]int32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case 64:
		raw := make([]int64, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case -32:
		raw := make([]float32, n)
		if err := img.Read(&raw); err != nil {
			return nil, err
		}
		for i, v := range raw {
			out[i] = float64(v)
		}
	case -64:
		if err := img.Read(&out); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported BITPIX %d", bitpix)
	}
	return out, nil
}

// axis builds the coordinate grid of FITS axis i (1-based):
// grid[k] = CRVALi + (k + 1 - CRPIXi) * CDELTi.
func axis(hdr *fitsio.Header, i, n int) domain.Axis {
	crpix := floatCard(hdr, fmt.Sprintf("CRPIX%d", i), 1)
	crval := floatCard(hdr, fmt.Sprintf("CRVAL%d", i), 0)
	cdelt := floatCard(hdr, fmt.Sprintf("CDELT%d", i), 1)

	grid := make([]float64, n)
	for k := range grid {
		grid[k] = crval + (float64(k)+1-crpix)*cdelt
	}
	return domain.Axis{Grid: grid, Unit: stringCard(hdr, fmt.Sprintf("CUNIT%d", i))}
}

func floatCard(hdr *fitsio.Header, key string, def float64) float64 {
	card := hdr.Get(key)
	if card == nil {
		return def
	}
	switch v := card.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func stringCard(hdr *fitsio.Header, key string) string {
	card := hdr.Get(key)
	if card == nil {
		return ""
	}
	if s, ok := card.Value.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}
