package app

import (
	"context"
	"sync"

	"github.com/skirt-tools/cutviz/internal/domain"
	"github.com/skirt-tools/cutviz/internal/ports"
	"github.com/skirt-tools/cutviz/pkg/log"
)

// WatchState is the state of output watching.
type WatchState int

const (
	WatchIdle WatchState = iota
	WatchStarting
	Watching
	WatchStopping
)

// String returns a human-readable representation of the state.
func (s WatchState) String() string {
	switch s {
	case WatchIdle:
		return "Idle"
	case WatchStarting:
		return "Starting"
	case Watching:
		return "Watching"
	case WatchStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

// Lifecycle guards the start and stop of output watching. Only Begin and
// End may be called concurrently with each other; the callbacks that
// complete a transition belong to the caller that began it.
type Lifecycle struct {
	mu     sync.Mutex
	state  WatchState
	cancel context.CancelFunc
	logger ports.Logger
}

// NewLifecycle creates an idle lifecycle.
func NewLifecycle(logger ports.Logger) *Lifecycle {
	if logger == nil {
		logger = log.NoopLogger{}
	}
	return &Lifecycle{logger: logger}
}

// State returns the current state.
func (l *Lifecycle) State() WatchState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Begin moves an idle lifecycle to Starting and returns the context the
// watchers run under. Returns ErrAlreadyRunning in any other state.
func (l *Lifecycle) Begin(ctx context.Context) (context.Context, error) {
	l.mu.Lock()
	if l.state != WatchIdle {
		l.mu.Unlock()
		return nil, domain.ErrAlreadyRunning
	}
	runCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.set(WatchStarting)
	l.mu.Unlock()
	return runCtx, nil
}

// Started completes Begin.
func (l *Lifecycle) Started() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == WatchStarting {
		l.set(Watching)
	}
}

// Abort undoes Begin after a failed start.
func (l *Lifecycle) Abort() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != WatchStarting {
		return
	}
	l.cancel()
	l.cancel = nil
	l.set(WatchIdle)
}

// End cancels the watch context and moves to Stopping.
// Returns ErrNotRunning unless watching.
func (l *Lifecycle) End() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != Watching {
		return domain.ErrNotRunning
	}
	l.cancel()
	l.cancel = nil
	l.set(WatchStopping)
	return nil
}

// Stopped completes End.
func (l *Lifecycle) Stopped() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state == WatchStopping {
		l.set(WatchIdle)
	}
}

// set must be called with mu held.
func (l *Lifecycle) set(s WatchState) {
	l.logger.Debug("watch state",
		ports.String("from", l.state.String()),
		ports.String("to", s.String()),
	)
	l.state = s
}
