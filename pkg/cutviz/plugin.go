package cutviz

import "context"

// Plugin extends a started Plotter with background behavior.
type Plugin interface {
	// Name returns the plugin identifier used in logs.
	Name() string

	// Initialize starts the plugin. It must not block; background work
	// stops when ctx is canceled.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown stops background work and waits for it to finish.
	Shutdown(ctx context.Context) error
}

// PluginConfig is handed to plugins by Plotter.Start.
type PluginConfig struct {
	// OutDir is the simulation output directory.
	OutDir string

	Logger Logger

	// Prefixes lists the simulations currently present in OutDir.
	Prefixes func() ([]string, error)

	// Replot runs the plotter's operations for the simulation with the
	// given prefix.
	Replot func(ctx context.Context, prefix string) error
}
