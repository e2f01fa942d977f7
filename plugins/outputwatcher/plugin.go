// Package outputwatcher re-plots simulations while they write output.
// It watches a simulation output directory and, when a FITS file of a known
// simulation is created or rewritten, runs the plotter's operations for that
// simulation once the directory has been quiet for the debounce delay.
package outputwatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/skirt-tools/cutviz/pkg/cutviz"
	"github.com/skirt-tools/cutviz/pkg/log"
)

// Plugin implements output watching functionality.
type Plugin struct {
	mu sync.Mutex

	// Configuration
	debounceDelay time.Duration
	initialPlot   bool

	// Runtime state
	outDir   string
	logger   cutviz.Logger
	prefixes func() ([]string, error)
	replot   func(ctx context.Context, prefix string) error
	watcher  *fsnotify.Watcher
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	runs     sync.WaitGroup
	timers   map[string]*time.Timer
	closed   bool
}

// Config holds configuration options for the output watcher plugin.
type Config struct {
	// DebounceDelay is the quiet period after the last change to a
	// simulation's output before it is re-plotted.
	// Default: 500 milliseconds
	DebounceDelay time.Duration

	// InitialPlot plots every simulation present when the plugin starts.
	InitialPlot bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 500 * time.Millisecond,
		InitialPlot:   true,
	}
}

// New creates a new output watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 500 * time.Millisecond
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
		initialPlot:   cfg.InitialPlot,
		timers:        make(map[string]*time.Timer),
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "outputwatcher"
}

// Initialize starts watching cfg.OutDir.
func (p *Plugin) Initialize(ctx context.Context, cfg cutviz.PluginConfig) error {
	p.mu.Lock()
	p.outDir = cfg.OutDir
	p.logger = cfg.Logger
	p.prefixes = cfg.Prefixes
	p.replot = cfg.Replot
	p.closed = false
	p.mu.Unlock()

	if p.logger == nil {
		p.logger = log.NewNoopLogger()
	}
	if p.outDir == "" || p.replot == nil || p.prefixes == nil {
		p.logger.Warn("Output watcher disabled: output directory or replot hook not configured")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(p.outDir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", p.outDir, err)
	}
	p.watcher = watcher

	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Output watcher plugin initialized",
		log.String("dir", p.outDir),
		log.Duration("debounce", p.debounceDelay))

	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the watcher and waits for running plots to finish.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()

	p.mu.Lock()
	p.closed = true
	for prefix, t := range p.timers {
		t.Stop()
		delete(p.timers, prefix)
	}
	p.mu.Unlock()

	p.runs.Wait()
	return nil
}

// watchLoop dispatches file events until ctx is canceled.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()
	defer p.watcher.Close()

	if p.initialPlot {
		prefixes, err := p.prefixes()
		if err != nil {
			p.logger.Error("Output watcher: failed to list simulations", log.Err(err))
		}
		for _, prefix := range prefixes {
			if ctx.Err() != nil {
				return
			}
			p.run(ctx, prefix)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-p.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			prefix, ok := p.match(filepath.Base(event.Name))
			if !ok {
				continue
			}
			p.schedule(ctx, prefix)

		case err, ok := <-p.watcher.Errors:
			if !ok {
				return
			}
			p.logger.Error("Output watcher: watcher error", log.Err(err))
		}
	}
}

// match returns the prefix of the simulation that wrote the FITS file name.
func (p *Plugin) match(name string) (string, bool) {
	if !strings.EqualFold(filepath.Ext(name), ".fits") {
		return "", false
	}
	prefixes, err := p.prefixes()
	if err != nil {
		p.logger.Error("Output watcher: failed to list simulations", log.Err(err))
		return "", false
	}
	// Longest first, so that "run_2" wins over "run" for "run_2_dns_...".
	sort.Slice(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	for _, prefix := range prefixes {
		if strings.HasPrefix(name, prefix+"_") {
			return prefix, true
		}
	}
	return "", false
}

// schedule (re)arms the debounce timer of prefix.
func (p *Plugin) schedule(ctx context.Context, prefix string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	if t := p.timers[prefix]; t != nil {
		t.Stop()
	}
	p.timers[prefix] = time.AfterFunc(p.debounceDelay, func() {
		p.fire(ctx, prefix)
	})
}

func (p *Plugin) fire(ctx context.Context, prefix string) {
	p.mu.Lock()
	if p.closed || ctx.Err() != nil {
		p.mu.Unlock()
		return
	}
	delete(p.timers, prefix)
	p.runs.Add(1)
	p.mu.Unlock()
	defer p.runs.Done()

	p.run(ctx, prefix)
}

// run re-plots one simulation. Failures are logged; the watcher keeps going.
func (p *Plugin) run(ctx context.Context, prefix string) {
	p.logger.Debug("Output watcher: replotting", log.String("prefix", prefix))
	if err := p.replot(ctx, prefix); err != nil && !errors.Is(err, context.Canceled) {
		p.logger.Error("Output watcher: replot failed",
			log.String("prefix", prefix),
			log.Err(err))
	}
}
