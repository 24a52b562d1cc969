package gesture

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

// Emitter hands commands to a Sink without blocking the caller. Each
// dispatch runs on its own goroutine bounded by the gesture duration plus a
// timeout; its outcome goes to the completion callback and nowhere else.
// Failed dispatches are never retried.
type Emitter struct {
	sink       Sink
	logger     *slog.Logger
	timeout    time.Duration
	onComplete func(DispatchResult)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEmitter returns an emitter bound to sink. onComplete may be nil.
func NewEmitter(sink Sink, logger *slog.Logger, timeout time.Duration, onComplete func(DispatchResult)) *Emitter {
	ctx, cancel := context.WithCancel(context.Background())
	return &Emitter{sink: sink, logger: logger, timeout: timeout, onComplete: onComplete, ctx: ctx, cancel: cancel}
}

// Emit starts dispatching cmd and returns immediately.
func (e *Emitter) Emit(cmd ScrollCommand) {
	if e == nil || e.sink == nil {
		return
	}
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		start := time.Now()
		err := e.dispatch(cmd)
		res := DispatchResult{CommandID: cmd.ID, Direction: cmd.Direction, Err: err, Elapsed: time.Since(start)}
		if e.onComplete != nil {
			e.onComplete(res)
		}
	}()
	if e.logger != nil {
		e.logger.Info("scroll command emitted", "id", cmd.ID.String(), "direction", cmd.Direction.String(),
			"offset", cmd.OffsetPixels, "duration_ms", cmd.DurationMs)
	}
}

func (e *Emitter) dispatch(cmd ScrollCommand) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e.logger != nil {
				e.logger.Error("sink panic", "error", r, "stack", string(debug.Stack()))
			}
			err = fmt.Errorf("gesture: sink panic: %v", r)
		}
	}()
	ctx, cancel := context.WithTimeout(e.ctx, cmd.Duration()+e.timeout)
	defer cancel()
	return e.sink.Dispatch(ctx, cmd)
}

// Close cancels in-flight dispatches and waits for them to report.
func (e *Emitter) Close() {
	if e == nil {
		return
	}
	e.cancel()
	e.wg.Wait()
}
