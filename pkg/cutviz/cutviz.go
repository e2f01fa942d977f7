package cutviz

import (
	"context"
	"errors"
	"fmt"
	"sync"

	bboltAdapter "github.com/skirt-tools/cutviz/internal/adapters/bbolt"
	"github.com/skirt-tools/cutviz/internal/adapters/figure"
	"github.com/skirt-tools/cutviz/internal/adapters/fits"
	"github.com/skirt-tools/cutviz/internal/adapters/fs"
	"github.com/skirt-tools/cutviz/internal/app"
	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/paths"
	"github.com/skirt-tools/cutviz/internal/ports"
)

// Config holds the rendering and output settings of a Plotter.
// Use DefaultConfig() to get a Config with the toolkit's defaults.
type Config struct {
	// Decades is the dynamic range of density figures.
	Decades float64
	DPI     int

	// DensityFigSize is the density figure size in inches.
	DensityFigSize [2]float64
	// TemperatureFigSize is the temperature figure size in inches; when
	// unset it is 8 inches per cut wide and 6 inches high.
	TemperatureFigSize [2]float64

	// Format is "pdf" or "png".
	Format string

	OutDirPath  string
	OutFileName string
	OutFilePath string

	// Interactive overrides the process-wide default set by SetInteractive.
	Interactive *bool

	Incremental bool
	LedgerPath  string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	d := app.DefaultConfig()
	return Config{
		Decades:            d.Decades,
		DPI:                d.DPI,
		DensityFigSize:     d.DensityFigSize,
		TemperatureFigSize: d.TemperatureFigSize,
		Format:             d.Format,
	}
}

// Validate checks the configuration for errors.
func (c Config) Validate() error {
	if c.Decades <= 0 {
		return fmt.Errorf("%w: decades must be positive", domain.ErrInvalidConfig)
	}
	if c.DPI <= 0 {
		return fmt.Errorf("%w: dpi must be positive", domain.ErrInvalidConfig)
	}
	if c.Format != "pdf" && c.Format != "png" {
		return fmt.Errorf("%w: format must be pdf or png, got %q", domain.ErrInvalidConfig, c.Format)
	}
	return nil
}

// Figure is one rendered (or skipped) figure.
type Figure = app.Figure

// Simulation is a handle on the output of one simulation run.
// Any type exposing a probe list and path resolution can be plotted.
type Simulation = ports.Simulation

// Probe is a configured measurement instrument of a simulation.
type Probe = ports.Probe

// Operation is a plotting operation applied to one simulation.
type Operation func(p *Plotter, ctx context.Context, sim Simulation) ([]Figure, error)

// The plotting operations, for use with Run and Start.
var (
	MediaDensityCuts Operation = (*Plotter).PlotMediaDensityCuts
	TemperatureCuts  Operation = (*Plotter).PlotTemperatureCuts
)

// Plotter renders cut figures. Use New() to create one and Close() to
// release the render ledger.
type Plotter struct {
	config  Config
	plotter *app.Plotter
	ledger  ports.RenderLedger
	// ownsLedger is set when New opened the ledger.
	ownsLedger bool
	logger     ports.Logger
	plugins    []Plugin

	// runMu serializes plotting runs.
	runMu sync.Mutex

	// startMu serializes Start and Stop.
	startMu   sync.Mutex
	lifecycle *app.Lifecycle
}

// New creates a Plotter with the given configuration.
// Returns an error if configuration is invalid or the ledger cannot be opened.
func New(cfg Config, opts ...Option) (*Plotter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ledger := o.ledger
	owns := false
	if ledger == nil && cfg.Incremental {
		if cfg.LedgerPath == "" {
			return nil, fmt.Errorf("%w: ledger path is required in incremental mode", domain.ErrInvalidConfig)
		}
		l, err := bboltAdapter.NewLedger(cfg.LedgerPath)
		if err != nil {
			return nil, fmt.Errorf("open ledger: %w", err)
		}
		ledger, owns = l, true
	}
	if ledger == nil {
		ledger = app.NoopLedger{}
	}

	appCfg := app.Config{
		Decades:            cfg.Decades,
		DensityFigSize:     cfg.DensityFigSize,
		TemperatureFigSize: cfg.TemperatureFigSize,
		DPI:                cfg.DPI,
		Format:             cfg.Format,
		Save: paths.SaveOptions{
			OutDirPath:  cfg.OutDirPath,
			OutFileName: cfg.OutFileName,
			OutFilePath: cfg.OutFilePath,
		},
		Interactive: cfg.Interactive,
	}

	return &Plotter{
		config:     cfg,
		plotter:    app.NewPlotter(appCfg, fits.NewLoader(), figure.NewEncoder(cfg.DPI), ledger, o.logger),
		ledger:     ledger,
		ownsLedger: owns,
		logger:     o.logger,
		plugins:    o.plugins,
		lifecycle:  app.NewLifecycle(o.logger),
	}, nil
}

// PlotMediaDensityCuts plots the media density cuts of sim: for each density
// cuts probe, medium and coordinate plane with exactly one theoretical and
// one gridded file, a two-panel figure on a logarithmic scale spanning
// Config.Decades decades (linear when the maximum is not positive).
func (p *Plotter) PlotMediaDensityCuts(ctx context.Context, sim Simulation) ([]Figure, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.plotter.MediaDensityCuts(ctx, sim)
}

// PlotTemperatureCuts plots the temperature cuts of sim, one figure per
// temperature cuts probe holding its one to three cuts side by side.
func (p *Plotter) PlotTemperatureCuts(ctx context.Context, sim Simulation) ([]Figure, error) {
	p.runMu.Lock()
	defer p.runMu.Unlock()
	return p.plotter.TemperatureCuts(ctx, sim)
}

// Run applies ops to sim in order and returns all figures.
// Without ops, both density and temperature cuts are plotted.
func (p *Plotter) Run(ctx context.Context, sim Simulation, ops ...Operation) ([]Figure, error) {
	if len(ops) == 0 {
		ops = []Operation{MediaDensityCuts, TemperatureCuts}
	}
	var all []Figure
	for _, op := range ops {
		figs, err := op(p, ctx, sim)
		all = append(all, figs...)
		if err != nil {
			return all, fmt.Errorf("simulation %s: %w", sim.Prefix(), err)
		}
	}
	return all, nil
}

// Start initializes the registered plugins for the simulations in outDir.
// Plugins re-run ops when they detect new output. Returns immediately.
func (p *Plotter) Start(ctx context.Context, outDir string, ops ...Operation) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()

	runCtx, err := p.lifecycle.Begin(ctx)
	if err != nil {
		return err
	}

	pluginCfg := PluginConfig{
		OutDir: outDir,
		Logger: p.logger,
		Prefixes: func() ([]string, error) {
			return fs.Prefixes(outDir)
		},
		Replot: func(ctx context.Context, prefix string) error {
			sim, err := fs.FromOutputDir(outDir, prefix)
			if err != nil {
				return err
			}
			_, err = p.Run(ctx, sim, ops...)
			return err
		},
	}
	for i, pl := range p.plugins {
		if err := pl.Initialize(runCtx, pluginCfg); err != nil {
			p.logger.Error("plugin initialization failed",
				ports.String("plugin", pl.Name()),
				ports.Err(err))
			p.lifecycle.Abort()
			p.shutdownPlugins(p.plugins[:i])
			return err
		}
		p.logger.Info("plugin initialized", ports.String("plugin", pl.Name()))
	}

	p.lifecycle.Started()
	return nil
}

// Stop shuts the plugins down in reverse registration order.
// Returns ErrNotRunning when the plotter was not started.
func (p *Plotter) Stop() error {
	p.startMu.Lock()
	defer p.startMu.Unlock()

	if err := p.lifecycle.End(); err != nil {
		return err
	}
	p.shutdownPlugins(p.plugins)
	p.lifecycle.Stopped()
	return nil
}

func (p *Plotter) shutdownPlugins(plugins []Plugin) {
	ctx := context.Background()
	for i := len(plugins) - 1; i >= 0; i-- {
		pl := plugins[i]
		if err := pl.Shutdown(ctx); err != nil {
			p.logger.Error("plugin shutdown failed",
				ports.String("plugin", pl.Name()),
				ports.Err(err))
		} else {
			p.logger.Info("plugin shutdown complete", ports.String("plugin", pl.Name()))
		}
	}
}

// Close stops the plotter if needed and releases the render ledger.
func (p *Plotter) Close() error {
	if err := p.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		return err
	}
	if p.ownsLedger {
		return p.ledger.Close()
	}
	return nil
}
