package app

import (
	"fmt"
	"image"
	"math"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/paths"
	"github.com/skirt-tools/cutviz/internal/ports"
	"github.com/skirt-tools/cutviz/internal/render"
	"github.com/skirt-tools/cutviz/pkg/log"
)

// Figure is one rendered (or skipped) cut figure.
type Figure struct {
	Probe  string
	Medium domain.Medium
	// Cut is empty for temperature figures, which hold all cuts of a probe.
	Cut domain.Cut

	// Path is where the figure was saved; empty in interactive mode.
	Path string
	// Inputs are the FITS files the figure was rendered from.
	Inputs []string

	// Image is nil when the figure was skipped.
	Image *image.RGBA
	// Skipped is set when the ledger found the saved figure up to date.
	Skipped bool
}

// Plotter renders cut figures for simulations.
type Plotter struct {
	config  Config
	loader  ports.FrameLoader
	encoder ports.FigureEncoder
	ledger  ports.RenderLedger
	logger  ports.Logger

	// draw is render.Draw; replaced in tests.
	draw func(render.Spec) (*image.RGBA, error)
}

// NewPlotter creates a Plotter. A nil ledger disables incremental rendering
// and a nil logger discards messages.
func NewPlotter(
	config Config,
	loader ports.FrameLoader,
	encoder ports.FigureEncoder,
	ledger ports.RenderLedger,
	logger ports.Logger,
) *Plotter {
	if ledger == nil {
		ledger = NoopLedger{}
	}
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Plotter{
		config:  config,
		loader:  loader,
		encoder: encoder,
		ledger:  ledger,
		logger:  logger,
		draw:    render.Draw,
	}
}

// DisplayFloor returns the smallest value shown in a density figure.
func DisplayFloor(vmax, decades float64) float64 {
	return vmax / math.Pow(10, decades)
}

// DefaultSaveName returns the default figure file name, without the
// simulation prefix: "{probe}_{medium}_{cut}.{ext}".
func DefaultSaveName(probe string, medium domain.Medium, cut, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s", probe, medium, cut, ext)
}

// target resolves the save path of fig and consults the ledger with the
// render settings. It reports whether the figure is up to date and can be
// skipped.
func (p *Plotter) target(sim ports.Simulation, fig *Figure, cut, settings string) (bool, error) {
	if paths.Interactive(p.config.Interactive) {
		return false, nil
	}
	def := sim.OutFilePath(DefaultSaveName(fig.Probe, fig.Medium, cut, p.config.ext()))
	path, err := paths.SavePath(def, SaveSuffixes, p.config.Save)
	if err != nil {
		return false, err
	}
	fig.Path = path

	unchanged, err := p.ledger.Unchanged(path, settings, fig.Inputs)
	if err != nil {
		p.logger.Warn("ledger lookup failed", ports.String("figure", path), ports.Err(err))
		return false, nil
	}
	if unchanged {
		fig.Skipped = true
		p.logger.Debug("Unchanged "+path, ports.Strings("inputs", fig.Inputs))
	}
	return unchanged, nil
}

// finish renders spec into fig and saves it unless in interactive mode.
// The ledger records settings with the inputs.
func (p *Plotter) finish(fig *Figure, spec render.Spec, settings string) error {
	img, err := p.draw(spec)
	if err != nil {
		return fmt.Errorf("render %s: %w", fig.Probe, err)
	}
	fig.Image = img
	if fig.Path == "" {
		return nil
	}

	if err := p.encoder.Save(fig.Path, img); err != nil {
		return fmt.Errorf("save figure: %w", err)
	}
	p.logger.Info("Created " + fig.Path)

	if err := p.ledger.Record(fig.Path, settings, fig.Inputs); err != nil {
		p.logger.Warn("ledger update failed", ports.String("figure", fig.Path), ports.Err(err))
	}
	return nil
}

func (p *Plotter) load(path string) (domain.Frame, error) {
	frame, err := p.loader.LoadFrame(path)
	if err != nil {
		return domain.Frame{}, fmt.Errorf("load %s: %w", path, err)
	}
	return frame, nil
}
