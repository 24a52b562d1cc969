package presenter

import (
	"time"

	"github.com/soocke/gesture-scroll/domain/pipeline"
	"github.com/soocke/gesture-scroll/ui/model"
)

// RunningSource reports whether frames are being captured.
type RunningSource interface{ Running() bool }

// StatsSource provides pipeline counters.
type StatsSource interface{ Stats() pipeline.Stats }

// SessionView displays session durations and command counts.
type SessionView interface {
	SetSession(session, total time.Duration)
	SetCommands(session, total uint64)
}

// SessionPresenter formats session values from the model to the view.
type SessionPresenter struct {
	sess  *model.SessionModel
	src   RunningSource
	stats StatsSource
	view  SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, src RunningSource, stats StatsSource, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, src: src, stats: stats, view: view}
}

// Tick advances the session model and pushes values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.src == nil || p.stats == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.src.Running(), p.stats.Stats().CommandsEmitted, now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
	sc, tc := p.sess.Commands()
	p.view.SetCommands(sc, tc)
}
