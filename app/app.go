// Package app is the composition root: it builds the pipeline with its
// source, sink and adapters and runs them as one unit.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/debug"
)

const (
	statsInterval   = 10 * time.Second
	debugInterval   = 15 * time.Second
	shutdownTimeout = 2 * time.Second
)

// ErrMissingSinkURL is returned by Start when the websocket sink has no URL.
var ErrMissingSinkURL = errors.New("app: websocket sink requires sink_url")

// App owns the lifecycle of the container's components.
type App struct {
	*Container

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
}

func New(cfg *config.Config, cfgPath string, logger *slog.Logger) *App {
	return &App{Container: BuildContainer(cfg, cfgPath, logger)}
}

// Start brings up the pipeline, sink connection, status server and frame
// source, in that order. A source that cannot capture fails Start with an
// error wrapping capture.ErrFrameSourceUnavailable; everything started so
// far is stopped again.
func (a *App) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.started {
		return nil
	}
	if a.WebSocket != nil && a.Config.SinkURL == "" {
		return ErrMissingSinkURL
	}
	ctx, cancel := context.WithCancel(ctx)
	if err := a.Pipeline.Start(ctx); err != nil {
		cancel()
		return fmt.Errorf("app: start pipeline: %w", err)
	}
	if a.WebSocket != nil {
		a.WebSocket.Start(ctx)
	}
	if a.Status != nil {
		if err := a.Status.Start(); err != nil {
			a.teardown(cancel)
			return fmt.Errorf("app: start status server: %w", err)
		}
	}
	if a.Config.Debug {
		debug.StartGoroutineLogger(ctx, debugInterval, a.Logger)
		debug.StartMemLogger(ctx, debugInterval, a.Logger)
	}
	if err := a.Source.Start(ctx, a.Pipeline); err != nil {
		a.teardown(cancel)
		return fmt.Errorf("app: start source: %w", err)
	}
	a.cancel = cancel
	a.started = true
	if a.Logger != nil {
		a.Logger.Info("app started", "session", a.Pipeline.Session().String(), "source", a.Config.Source, "sink", a.Config.Sink)
	}
	return nil
}

// Stop shuts everything down in reverse order. Idempotent.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.started {
		return
	}
	a.started = false
	a.teardown(a.cancel)
	a.cancel = nil
	if a.Logger != nil {
		a.Logger.Info("app stopped", "stats", a.Pipeline.Stats())
	}
}

func (a *App) teardown(cancel context.CancelFunc) {
	a.Source.Stop()
	if err := a.Pipeline.Stop(); err != nil && a.Logger != nil {
		a.Logger.Warn("pipeline stop", "error", err)
	}
	if a.WebSocket != nil {
		a.WebSocket.Close()
	}
	if a.Status != nil {
		ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := a.Status.Shutdown(ctx); err != nil && a.Logger != nil {
			a.Logger.Warn("status server shutdown", "error", err)
		}
		done()
	}
	if cancel != nil {
		cancel()
	}
}

// Run starts the app and blocks until ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.Stop()
	return nil
}
