package outputwatcher

import "github.com/skirt-tools/cutviz/pkg/cutviz"

// WithOutputWatcher returns a cutviz Option that enables output watching.
// When enabled, the plugin re-plots a simulation whenever it writes FITS
// output while the plotter is started.
//
// Usage:
//
//	p, err := cutviz.New(cfg,
//	    outputwatcher.WithOutputWatcher(outputwatcher.Config{
//	        DebounceDelay: time.Second,
//	    }),
//	)
func WithOutputWatcher(cfg Config) cutviz.Option {
	plugin := New(cfg)
	return cutviz.WithPlugin(plugin)
}

// WithDefaultOutputWatcher returns a cutviz Option that enables output
// watching with default settings (debounce 500ms, initial plot).
//
// Usage:
//
//	p, err := cutviz.New(cfg, outputwatcher.WithDefaultOutputWatcher())
func WithDefaultOutputWatcher() cutviz.Option {
	return WithOutputWatcher(DefaultConfig())
}
