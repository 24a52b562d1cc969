// Package action turns scroll commands into gestures: a logged no-op, a
// native pointer drag, or a message to a remote actuator.
package action

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/motion"
)

var (
	ErrNotConnected        = errors.New("action: sink not connected")
	ErrUnsupportedPlatform = errors.New("action: native gestures unsupported on this platform")
	ErrInvalidCommand      = errors.New("action: command has no direction")
)

// Swipe is the pointer path of one scroll gesture.
type Swipe struct {
	StartX, StartY int
	EndX, EndY     int
	Duration       time.Duration
}

// SwipeFor anchors cmd at (x, y). Down scrolls content down, which is a
// swipe towards the top of the screen; Up is the opposite.
func SwipeFor(cmd gesture.ScrollCommand, x, y int) Swipe {
	dy := cmd.OffsetPixels
	if cmd.Direction == motion.Down {
		dy = -dy
	}
	return Swipe{StartX: x, StartY: y, EndX: x, EndY: y + dy, Duration: cmd.Duration()}
}

// Point returns the linearly interpolated position at step i of n.
func (s Swipe) Point(i, n int) (int, int) {
	if n <= 0 || i >= n {
		return s.EndX, s.EndY
	}
	if i <= 0 {
		return s.StartX, s.StartY
	}
	x := s.StartX + (s.EndX-s.StartX)*i/n
	y := s.StartY + (s.EndY-s.StartY)*i/n
	return x, y
}

// Clamp keeps the end point inside a w x h screen.
func (s Swipe) Clamp(w, h int) Swipe {
	s.EndX = min(max(s.EndX, 0), max(w-1, 0))
	s.EndY = min(max(s.EndY, 0), max(h-1, 0))
	return s
}

// LogSink records commands in the log and performs no gesture.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink { return &LogSink{logger: logger} }

func (s *LogSink) Dispatch(ctx context.Context, cmd gesture.ScrollCommand) error {
	if cmd.Direction == motion.None {
		return ErrInvalidCommand
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.logger != nil {
		sw := SwipeFor(cmd, 0, 0)
		s.logger.Info("scroll gesture", "id", cmd.ID.String(), "direction", cmd.Direction.String(),
			"dy", sw.EndY-sw.StartY, "duration_ms", cmd.DurationMs)
	}
	return nil
}
