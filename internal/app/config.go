package app

import (
	"fmt"
	"strings"

	"github.com/skirt-tools/cutviz/internal/paths"
)

// SaveSuffixes lists the figure file extensions accepted by the plotting
// operations.
var SaveSuffixes = []string{".pdf", ".png"}

// Config controls how cut figures are rendered and where they are saved.
type Config struct {
	// Decades is the dynamic range of density figures: values below
	// max / 10^Decades are clipped.
	Decades float64

	// DensityFigSize is the size of a density figure in inches.
	DensityFigSize [2]float64

	// TemperatureFigSize is the size of a temperature figure in inches.
	// When unset it is 8 inches per cut wide and 6 inches high.
	TemperatureFigSize [2]float64

	DPI int

	// Format is the default file format, "pdf" or "png".
	Format string

	// Save overrides the default output location.
	Save paths.SaveOptions

	// Interactive overrides the process-wide interactive default when set.
	Interactive *bool
}

// DefaultConfig returns the settings of the toolkit's plotting functions.
func DefaultConfig() Config {
	return Config{
		Decades:            5,
		DensityFigSize:     [2]float64{18, 6},
		DPI:                100,
		Format:             "pdf",
	}
}

func (c Config) ext() string {
	if c.Format == "" {
		return "pdf"
	}
	return strings.TrimPrefix(strings.ToLower(c.Format), ".")
}

func (c Config) densitySize() [2]float64 {
	if c.DensityFigSize[0] <= 0 || c.DensityFigSize[1] <= 0 {
		return DefaultConfig().DensityFigSize
	}
	return c.DensityFigSize
}

func (c Config) temperatureSize(numCuts int) [2]float64 {
	if c.TemperatureFigSize[0] > 0 && c.TemperatureFigSize[1] > 0 {
		return c.TemperatureFigSize
	}
	return [2]float64{8 * float64(numCuts), 6}
}

// densitySettings and temperatureSettings describe everything besides the
// input files that shapes a saved figure; the render ledger compares them.
func (c Config) densitySettings() string {
	size := c.densitySize()
	return fmt.Sprintf("density decades=%g dpi=%d size=%gx%g format=%s",
		c.Decades, c.DPI, size[0], size[1], c.ext())
}

func (c Config) temperatureSettings() string {
	return fmt.Sprintf("temperature dpi=%d size=%gx%g format=%s",
		c.DPI, c.TemperatureFigSize[0], c.TemperatureFigSize[1], c.ext())
}
