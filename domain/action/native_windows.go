package action

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sys/windows"

	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/motion"
)

const (
	smCxScreen          = 0
	smCyScreen          = 1
	mouseeventfLeftDown = 0x0002
	mouseeventfLeftUp   = 0x0004
	dragStepInterval    = 10 * time.Millisecond
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSetCursorPos     = user32.NewProc("SetCursorPos")
	procMouseEvent       = user32.NewProc("mouse_event")
	procGetSystemMetrics = user32.NewProc("GetSystemMetrics")
)

// NativeSink performs each command as a left-button drag from the centre of
// the primary screen.
type NativeSink struct {
	logger *slog.Logger
}

func NewNativeSink(logger *slog.Logger) *NativeSink { return &NativeSink{logger: logger} }

// Dispatch blocks for the gesture duration. The button is always released,
// also when ctx ends mid-drag.
func (s *NativeSink) Dispatch(ctx context.Context, cmd gesture.ScrollCommand) error {
	if cmd.Direction == motion.None {
		return ErrInvalidCommand
	}
	if err := procSetCursorPos.Find(); err != nil {
		return ErrUnsupportedPlatform
	}
	w, h := systemMetric(smCxScreen), systemMetric(smCyScreen)
	sw := SwipeFor(cmd, w/2, h/2).Clamp(w, h)

	moveCursor(sw.StartX, sw.StartY)
	_, _, _ = procMouseEvent.Call(mouseeventfLeftDown, 0, 0, 0, 0)
	defer func() { _, _, _ = procMouseEvent.Call(mouseeventfLeftUp, 0, 0, 0, 0) }()

	steps := max(int(sw.Duration/dragStepInterval), 1)
	tick := time.NewTicker(max(sw.Duration/time.Duration(steps), time.Millisecond))
	defer tick.Stop()
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
		}
		moveCursor(sw.Point(i, steps))
	}
	if s.logger != nil {
		s.logger.Debug("native drag done", "id", cmd.ID.String(), "from_y", sw.StartY, "to_y", sw.EndY)
	}
	return nil
}

func moveCursor(x, y int) {
	_, _, _ = procSetCursorPos.Call(uintptr(x), uintptr(y))
}

func systemMetric(idx int) int {
	v, _, _ := procGetSystemMetrics.Call(uintptr(idx))
	return int(int32(v))
}
