// Package gesture converts qualifying motion events into discrete scroll
// commands and hands them to an actuation sink.
package gesture

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/gesture-scroll/domain/motion"
)

// Gate is the two-state debounce machine between motion events and commands.
// In Idle a directional event produces a command and starts the cooldown; in
// Cooldown every event is discarded until the deadline passes. Discarded
// events are never replayed.
//
// Time values must come from time.Now (monotonic reading). Not safe for
// concurrent use; the pipeline worker owns it.
type Gate struct {
	state         State
	logger        *slog.Logger
	cooldown      time.Duration
	offsetPixels  int
	durationMs    int
	cooldownUntil time.Time
	listeners     []StateListener

	emitted    uint64
	suppressed uint64
	undirected uint64
}

// NewGate returns a gate in Idle.
func NewGate(logger *slog.Logger, cooldown time.Duration, offsetPixels, durationMs int) *Gate {
	return &Gate{state: StateIdle, logger: logger, cooldown: cooldown, offsetPixels: offsetPixels, durationMs: durationMs}
}

// AddListener registers l for state transitions.
func (g *Gate) AddListener(l StateListener) { g.listeners = append(g.listeners, l) }

// Current returns the current state.
func (g *Gate) Current() State { return g.state }

// CooldownUntil returns the end of the running cooldown, zero in Idle.
func (g *Gate) CooldownUntil() time.Time { return g.cooldownUntil }

// Offer feeds one motion event. It returns a command when the gate was Idle
// and the event carried a direction.
func (g *Gate) Offer(ev motion.Event, now time.Time) (ScrollCommand, bool) {
	g.Expire(now)
	if g.state == StateCooldown {
		g.suppressed++
		return ScrollCommand{}, false
	}
	if ev.Direction == motion.None {
		g.undirected++
		return ScrollCommand{}, false
	}
	cmd := ScrollCommand{
		ID:           uuid.New(),
		Direction:    ev.Direction,
		OffsetPixels: g.offsetPixels,
		DurationMs:   g.durationMs,
		Timestamp:    now,
	}
	g.emitted++
	g.cooldownUntil = now.Add(g.cooldown)
	g.transition(StateCooldown)
	return cmd, true
}

// Expire returns the gate to Idle when the cooldown deadline has passed.
// Calling it early or repeatedly is harmless.
func (g *Gate) Expire(now time.Time) bool {
	if g.state != StateCooldown || now.Before(g.cooldownUntil) {
		return false
	}
	g.cooldownUntil = time.Time{}
	g.transition(StateIdle)
	return true
}

// Reset cancels any running cooldown without emitting anything.
func (g *Gate) Reset() {
	g.cooldownUntil = time.Time{}
	g.transition(StateIdle)
}

// Counts returns emitted commands, events suppressed by the cooldown and
// directionless events seen while Idle.
func (g *Gate) Counts() (emitted, suppressed, undirected uint64) {
	return g.emitted, g.suppressed, g.undirected
}

func (g *Gate) transition(next State) {
	prev := g.state
	if prev == next {
		return
	}
	g.state = next
	if g.logger != nil {
		g.logger.Debug("gate state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range g.listeners {
		l(prev, next)
	}
}
