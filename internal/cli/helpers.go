package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/aretw0/dfacheck/internal/logging"
	"github.com/aretw0/dfacheck/pkg/domain"
)

// SignalContext wraps a context and captures the signal that cancelled it.
type SignalContext struct {
	context.Context
	Cancel func()
	start  sync.Once
	stop   sync.Once
	sigCh  chan os.Signal
	sigVal os.Signal
	mu     sync.Mutex
}

// NewSignalContext creates a context that is cancelled on SIGINT or SIGTERM.
// It acts as a drop-in replacement for signal.NotifyContext but allows retrieving the signal.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	sc := &SignalContext{
		Context: ctx,
		Cancel:  cancel,
		sigCh:   make(chan os.Signal, 1),
	}

	sc.start.Do(func() {
		signal.Notify(sc.sigCh, os.Interrupt, syscall.SIGTERM)
		go func() {
			select {
			case sig := <-sc.sigCh:
				sc.mu.Lock()
				sc.sigVal = sig
				sc.mu.Unlock()
				sc.Cancel()
			case <-sc.Context.Done():
				// Context cancelled elsewhere
			}
			sc.stop.Do(func() {
				signal.Stop(sc.sigCh)
			})
		}()
	})

	return sc
}

// Signal returns the signal that caused the context to be cancelled, or nil.
func (sc *SignalContext) Signal() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sigVal
}

// CreateLogger configures the application logger on w.
// Below warn level nothing but problems is reported.
func CreateLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(w, lvl), nil
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnLoad: func(ctx context.Context, e *domain.LoadEvent) {
			if e.Err != nil {
				logger.Debug("Load (Rejected)", "kind", e.Kind)
				return
			}
			logger.Debug("Load (Valid)", "states", e.States, "alphabet", e.Alphabet)
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			logger.Debug("Query", "mode", e.Mode, "accepted", e.Accepted, "cached", e.Cached, "kind", e.Kind, "duration", e.Duration)
		},
	}
}

// printDiagnostics writes every load failure on its own line.
func printDiagnostics(w io.Writer, err error) {
	for _, e := range domain.ValidationErrors(err) {
		fmt.Fprintf(w, "error: %v\n", e)
	}
	if n := domain.Omitted(err); n > 0 {
		fmt.Fprintf(w, "error: ... and %d more\n", n)
	}
}
