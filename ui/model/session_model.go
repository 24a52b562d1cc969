package model

import (
	"time"
)

// SessionModel tracks how long the pipeline has been capturing and how many
// commands it emitted, per session and in total. A session starts when
// capture is switched on and ends when it is switched off.
// It is decoupled from the UI; presenters should poll Values() and update views.
// The zero value is ready to use.
type SessionModel struct {
	active      bool
	start       time.Time
	duration    time.Duration
	accumulated time.Duration

	baseCommands    uint64 // pipeline counter when the session started
	sessionCommands uint64
	totalCommands   uint64
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick advances the model. commands is the pipeline's running command
// counter; it only ever grows.
func (m *SessionModel) OnTick(capturing bool, commands uint64, now time.Time) {
	if m == nil {
		return
	}
	if capturing {
		if !m.active { // off -> on
			m.active = true
			m.start = now
			m.duration = 0
			m.baseCommands = commands
			m.sessionCommands = 0
		}
		m.duration = now.Sub(m.start)
		m.sessionCommands = commands - m.baseCommands
	} else if m.active { // on -> off
		m.duration = now.Sub(m.start)
		m.sessionCommands = commands - m.baseCommands
		m.accumulated += m.duration
		m.totalCommands += m.sessionCommands
		m.active = false
	}
}

// Values returns the session and total durations. The total includes the
// ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.duration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}

// Commands returns the session and total command counts.
func (m *SessionModel) Commands() (session, total uint64) {
	if m == nil {
		return 0, 0
	}
	session = m.sessionCommands
	total = m.totalCommands
	if m.active {
		total += session
	}
	return
}
