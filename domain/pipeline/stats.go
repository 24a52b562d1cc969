package pipeline

import (
	"sync/atomic"
	"time"

	"github.com/soocke/gesture-scroll/domain/gesture"
)

// counters are updated from Offer callers and the worker, read from anywhere.
type counters struct {
	offered        atomic.Uint64
	accepted       atomic.Uint64
	dropped        atomic.Uint64
	outOfOrder     atomic.Uint64
	rejected       atomic.Uint64
	processed      atomic.Uint64
	baselines      atomic.Uint64
	dimResets      atomic.Uint64
	motionEvents   atomic.Uint64
	indeterminate  atomic.Uint64
	commands       atomic.Uint64
	suppressed     atomic.Uint64
	dispatchOK     atomic.Uint64
	dispatchFailed atomic.Uint64
	resultsLost    atomic.Uint64

	state       atomic.Int32
	lastCommand atomic.Pointer[gesture.ScrollCommand]
}

// Stats is a point-in-time snapshot of pipeline counters.
type Stats struct {
	FramesOffered    uint64                 `json:"frames_offered"`
	FramesAccepted   uint64                 `json:"frames_accepted"`
	FramesDropped    uint64                 `json:"frames_dropped"`
	FramesOutOfOrder uint64                 `json:"frames_out_of_order"`
	FramesRejected   uint64                 `json:"frames_rejected"`
	FramesProcessed  uint64                 `json:"frames_processed"`
	Baselines        uint64                 `json:"baselines"`
	DimensionResets  uint64                 `json:"dimension_resets"`
	MotionEvents     uint64                 `json:"motion_events"`
	Indeterminate    uint64                 `json:"indeterminate"`
	CommandsEmitted  uint64                 `json:"commands_emitted"`
	EventsSuppressed uint64                 `json:"events_suppressed"`
	DispatchOK       uint64                 `json:"dispatch_ok"`
	DispatchFailed   uint64                 `json:"dispatch_failed"`
	ResultsLost      uint64                 `json:"results_lost"`
	State            string                 `json:"state"`
	LastCommand      *gesture.ScrollCommand `json:"last_command,omitempty"`
	LastCommandAge   time.Duration          `json:"last_command_age_ns,omitempty"`
}

// Stats returns a snapshot of the counters.
func (p *Pipeline) Stats() Stats {
	s := Stats{
		FramesOffered:    p.offered.Load(),
		FramesAccepted:   p.accepted.Load(),
		FramesDropped:    p.dropped.Load(),
		FramesOutOfOrder: p.outOfOrder.Load(),
		FramesRejected:   p.rejected.Load(),
		FramesProcessed:  p.processed.Load(),
		Baselines:        p.baselines.Load(),
		DimensionResets:  p.dimResets.Load(),
		MotionEvents:     p.motionEvents.Load(),
		Indeterminate:    p.indeterminate.Load(),
		CommandsEmitted:  p.commands.Load(),
		EventsSuppressed: p.suppressed.Load(),
		DispatchOK:       p.dispatchOK.Load(),
		DispatchFailed:   p.dispatchFailed.Load(),
		ResultsLost:      p.resultsLost.Load(),
		State:            p.State().String(),
	}
	if cmd := p.lastCommand.Load(); cmd != nil {
		c := *cmd
		s.LastCommand = &c
		s.LastCommandAge = p.now().Sub(c.Timestamp)
	}
	return s
}

func (p *Pipeline) logStats() {
	if p.logger == nil {
		return
	}
	s := p.Stats()
	p.logger.Debug("pipeline stats",
		"offered", s.FramesOffered,
		"accepted", s.FramesAccepted,
		"dropped", s.FramesDropped,
		"out_of_order", s.FramesOutOfOrder,
		"processed", s.FramesProcessed,
		"motion_events", s.MotionEvents,
		"indeterminate", s.Indeterminate,
		"commands", s.CommandsEmitted,
		"suppressed", s.EventsSuppressed,
		"dispatch_ok", s.DispatchOK,
		"dispatch_failed", s.DispatchFailed,
		"state", s.State,
	)
}
