package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/skirt-tools/cutviz/internal/cliconfig"
	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/pkg/cutviz"
	"github.com/skirt-tools/cutviz/pkg/log"
	"github.com/skirt-tools/cutviz/plugins/outputwatcher"
)

const helpDescription = `
Plot the planar cuts written by SKIRT simulations.

Highlights:
  - Media density cuts: theoretical and gridded density side by side, on a
    logarithmic scale spanning a configurable number of decades.
  - Temperature cuts: up to three coordinate planes per probe, linear scale.
  - Incremental mode skips figures whose input files did not change.
  - Watch mode re-plots while a simulation is still writing output.
  - Configure via file ($HOME/.cutviz/config.toml), CUTVIZ_* env, or flags.
`

var exampleUsage = strings.TrimSpace(`
  cutviz density --sim-dir ./run --prefix galaxy
  cutviz all --sim-dir ./run --format png --out-dir ./plots
  cutviz watch --sim-dir ./run --incremental
  cutviz probes --sim-dir ./run
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries the configuration shared by all subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}

	root := &cobra.Command{
		Use:               "cutviz",
		Short:             "Plot media density and temperature cuts of SKIRT simulations",
		Long:              strings.TrimSpace(helpDescription),
		Example:           exampleUsage,
		Version:           fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.load,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.cutviz/config.toml)")
	flags.StringVar(&c.cfg.SimDir, "sim-dir", c.cfg.SimDir, "simulation output directory")
	flags.StringVar(&c.cfg.Prefix, "prefix", c.cfg.Prefix, "simulation prefix (default: every simulation in sim-dir)")
	flags.StringVar(&c.cfg.OutDir, "out-dir", c.cfg.OutDir, "directory for figures (default: sim-dir)")
	flags.Float64Var(&c.cfg.Decades, "decades", c.cfg.Decades, "dynamic range of density figures in decades")
	flags.IntVar(&c.cfg.DPI, "dpi", c.cfg.DPI, "raster resolution in pixels per inch")
	flags.Var(&c.cfg.DensityFigSize, "density-fig-size", "density figure size in inches, WIDTHxHEIGHT")
	flags.Var(&c.cfg.TemperatureFigSize, "temperature-fig-size", "temperature figure size in inches, WIDTHxHEIGHT (default: 8 per cut x 6)")
	flags.StringVar(&c.cfg.Format, "format", c.cfg.Format, "figure format: pdf or png")
	flags.BoolVar(&c.cfg.Interactive, "interactive", c.cfg.Interactive, "render without saving figures")
	flags.BoolVar(&c.cfg.Incremental, "incremental", c.cfg.Incremental, "skip figures whose inputs did not change")
	flags.StringVar(&c.cfg.LedgerPath, "ledger", c.cfg.LedgerPath, "render ledger path (default: <out-dir>/.cutviz/ledger.db)")
	flags.DurationVar(&c.cfg.Debounce, "debounce", c.cfg.Debounce, "quiet period before re-plotting in watch mode")
	flags.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")

	root.AddCommand(
		c.plotCommand("density", "Plot media density cuts", cutviz.MediaDensityCuts),
		c.plotCommand("temperature", "Plot medium temperature cuts", cutviz.TemperatureCuts),
		c.plotCommand("all", "Plot density and temperature cuts", cutviz.MediaDensityCuts, cutviz.TemperatureCuts),
		c.watchCommand(),
		c.probesCommand(),
		rootCommand(),
	)

	if err := root.Execute(); err != nil {
		logger := cliconfig.Logger()
		logger.Error().Err(err).Msg("cutviz")
		os.Exit(1)
	}
}

// load applies the config file and CUTVIZ_* environment below explicitly
// set flags, then configures logging and the interactive default.
func (c *cli) load(cmd *cobra.Command, args []string) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	// Build set of changed flags
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}

	// These override file config but are overridden by flags (checked via changed map)
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := cliconfig.SetLogLevel(c.cfg.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	cutviz.SetInteractive(c.cfg.Interactive)
	return nil
}

// prepare validates the configuration and creates a plotter.
func (c *cli) prepare(opts ...cutviz.Option) (*cutviz.Plotter, error) {
	if err := c.cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cliconfig.Logger()
	logger.Debug().Interface("config", c.cfg).Msg("configuration")

	libCfg := cutviz.Config{
		Decades:            c.cfg.Decades,
		DPI:                c.cfg.DPI,
		DensityFigSize:     c.cfg.DensityFigSize,
		TemperatureFigSize: c.cfg.TemperatureFigSize,
		Format:             c.cfg.Format,
		OutDirPath:         c.cfg.OutDir,
		Incremental:        c.cfg.Incremental,
		LedgerPath:         c.cfg.LedgerPath,
	}
	opts = append([]cutviz.Option{cutviz.WithLogger(log.NewZerologAdapterWithLogger(logger))}, opts...)

	p, err := cutviz.New(libCfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create plotter: %w", err)
	}
	return p, nil
}

func (c *cli) plotCommand(use, short string, ops ...cutviz.Operation) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			if err := cliconfig.LoadSimInfo(&c.cfg); err != nil {
				return err
			}
			p, err := c.prepare()
			if err != nil {
				return err
			}
			defer p.Close()

			sims, err := cutviz.CreateSimulations(c.cfg.SimDir, c.cfg.Prefix)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := cliconfig.Logger()
			for _, sim := range sims {
				figs, err := p.Run(ctx, sim, ops...)
				if err != nil {
					return err
				}
				logSummary(sim.Prefix(), figs)
			}
			logger.Debug().Int("simulations", len(sims)).Msg("done")
			return nil
		},
	}
}

func logSummary(prefix string, figs []cutviz.Figure) {
	logger := cliconfig.Logger()
	rendered, skipped := 0, 0
	for _, f := range figs {
		if f.Skipped {
			skipped++
		} else {
			rendered++
		}
	}
	logger.Info().
		Str("prefix", prefix).
		Int("rendered", rendered).
		Int("skipped", skipped).
		Msg("plotted simulation")
}

func (c *cli) watchCommand() *cobra.Command {
	var densityOnly, temperatureOnly bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-plot simulations whenever they write new cut output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.cfg.Validate(); err != nil {
				return err
			}
			// The simulation may not have started yet.
			if err := cliconfig.LoadSimInfo(&c.cfg); err != nil && !errors.Is(err, domain.ErrNoSimulation) {
				return err
			}

			ops := []cutviz.Operation{cutviz.MediaDensityCuts, cutviz.TemperatureCuts}
			switch {
			case densityOnly && !temperatureOnly:
				ops = ops[:1]
			case temperatureOnly && !densityOnly:
				ops = ops[1:]
			}

			p, err := c.prepare(outputwatcher.WithOutputWatcher(outputwatcher.Config{
				DebounceDelay: c.cfg.Debounce,
				InitialPlot:   true,
			}))
			if err != nil {
				return err
			}
			defer p.Close()

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigCh)

			if err := p.Start(ctx, c.cfg.SimDir, ops...); err != nil {
				return fmt.Errorf("start watching: %w", err)
			}

			logger := cliconfig.Logger()
			logger.Info().Str("dir", c.cfg.SimDir).Msg("watching for new output")

			select {
			case <-sigCh:
				logger.Info().Msg("received signal, stopping...")
			case <-ctx.Done():
			}

			if err := p.Stop(); err != nil {
				return fmt.Errorf("stop watching: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&densityOnly, "density", false, "only re-plot density cuts")
	cmd.Flags().BoolVar(&temperatureOnly, "temperature", false, "only re-plot temperature cuts")
	return cmd
}

func (c *cli) probesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "probes",
		Short: "List the probes of the simulations in sim-dir",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if c.cfg.SimDir == "" {
				return fmt.Errorf("%w: sim-dir is required", domain.ErrInvalidConfig)
			}
			sims, err := cutviz.CreateSimulations(c.cfg.SimDir, c.cfg.Prefix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, sim := range sims {
				for _, probe := range sim.Probes() {
					fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", sim.Prefix(), probe.Name(), probe.Type(), probeKind(probe.Type()))
				}
			}
			return nil
		},
	}
}

func probeKind(probeType string) string {
	switch {
	case domain.IsDensityProbe(probeType):
		return "density"
	case domain.IsTemperatureProbe(probeType):
		return "temperature"
	}
	return "-"
}

func rootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the cutviz installation directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cutviz.Root()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}
