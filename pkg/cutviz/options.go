package cutviz

import (
	"github.com/skirt-tools/cutviz/internal/ports"
	"github.com/skirt-tools/cutviz/pkg/log"
)

// Logger is the interface for structured logging.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// RenderLedger remembers the inputs each saved figure was rendered from.
type RenderLedger = ports.RenderLedger

// Option configures optional behavior of a Plotter.
type Option func(*options)

type options struct {
	logger  ports.Logger
	ledger  ports.RenderLedger
	plugins []Plugin
}

func defaultOptions() options {
	return options{logger: log.NewNoopLogger()}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLedger sets the render ledger, enabling incremental rendering
// regardless of Config.Incremental. The caller keeps ownership: Close does
// not close it.
func WithLedger(ledger RenderLedger) Option {
	return func(o *options) {
		o.ledger = ledger
	}
}

// WithPlugin registers a plugin to be initialized when the Plotter starts.
// Plugins are initialized in registration order and shutdown in reverse order.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
