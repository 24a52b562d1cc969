package gesture

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/gesture-scroll/domain/motion"
)

// State enumerates the cooldown gate states.
type State int

const (
	StateIdle State = iota
	StateCooldown
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// StateListener is called on each gate state transition.
type StateListener func(prev, next State)

// ScrollCommand is a one-shot directional scroll instruction. Direction is
// never motion.None.
type ScrollCommand struct {
	ID           uuid.UUID        `json:"id"`
	Direction    motion.Direction `json:"direction"`
	OffsetPixels int              `json:"offset_pixels"`
	DurationMs   int              `json:"duration_ms"`
	Timestamp    time.Time        `json:"timestamp"`
}

// Duration returns the gesture execution time.
func (c ScrollCommand) Duration() time.Duration {
	return time.Duration(c.DurationMs) * time.Millisecond
}

// DispatchResult is the completion notification of one dispatched command.
// It is recorded for observability only.
type DispatchResult struct {
	CommandID uuid.UUID
	Direction motion.Direction
	Err       error
	Elapsed   time.Duration
}

// Sink translates a command into a platform gesture. Dispatch may block for
// the duration of the gesture; the emitter runs it off the pipeline worker.
type Sink interface {
	Dispatch(ctx context.Context, cmd ScrollCommand) error
}

// SinkFunc adapts a plain function to Sink.
type SinkFunc func(ctx context.Context, cmd ScrollCommand) error

func (f SinkFunc) Dispatch(ctx context.Context, cmd ScrollCommand) error { return f(ctx, cmd) }
