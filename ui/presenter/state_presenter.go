package presenter

import (
	"time"

	"github.com/soocke/gesture-scroll/domain/pipeline"
)

// Counters is the subset of pipeline counters shown in the window.
type Counters struct {
	Processed  uint64
	Dropped    uint64
	Events     uint64
	Commands   uint64
	Suppressed uint64
	Failed     uint64
}

func countersOf(s pipeline.Stats) Counters {
	return Counters{
		Processed:  s.FramesProcessed,
		Dropped:    s.FramesDropped,
		Events:     s.MotionEvents,
		Commands:   s.CommandsEmitted,
		Suppressed: s.EventsSuppressed,
		Failed:     s.DispatchFailed,
	}
}

// StateView shows the gate state and pipeline counters.
type StateView interface {
	SetStateLabel(string)
	SetCounters(Counters)
}

// StatePresenter polls the pipeline on each tick and updates the view only
// when something changed.
type StatePresenter struct {
	src      StatsSource
	view     StateView
	state    string
	counters Counters
	primed   bool
}

func NewStatePresenter(src StatsSource, view StateView) *StatePresenter {
	return &StatePresenter{src: src, view: view}
}

func (p *StatePresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	st := p.src.Stats()
	if !p.primed || st.State != p.state {
		p.state = st.State
		p.view.SetStateLabel("State: " + st.State)
	}
	if c := countersOf(st); !p.primed || c != p.counters {
		p.counters = c
		p.view.SetCounters(c)
	}
	p.primed = true
}
