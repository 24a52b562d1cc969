package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates session durations and command counts.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCommands(session, total uint64)
}

type sessionStats struct {
	sessionLbl  *LabelWidget
	totalLbl    *LabelWidget
	commandsLbl *LabelWidget
}

// NewSessionStats creates the session, total and command labels in one grid
// row starting at startCol. If parent is nil, labels are positioned relative
// to the App root.
func NewSessionStats(parent *FrameWidget, row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(14)), totalLbl: Label(Width(14)), commandsLbl: Label(Width(18))}
	for i, lbl := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.commandsLbl} {
		if parent != nil {
			Grid(lbl, In(parent), Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		} else {
			Grid(lbl, Row(row), Column(startCol+i), Sticky("w"), Padx("0.2m"))
		}
	}
	s.sessionLbl.Configure(Txt("Session: " + formatClock(0)))
	s.totalLbl.Configure(Txt("Total: " + formatClock(0)))
	s.commandsLbl.Configure(Txt(formatCommands(0, 0)))
	return s
}

// SetSession updates the session duration display.
func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Session: " + formatClock(d)))
}

// SetTotal updates the total duration display.
func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + formatClock(d)))
}

func (s *sessionStats) SetCommands(session, total uint64) {
	if s == nil || s.commandsLbl == nil {
		return
	}
	s.commandsLbl.Configure(Txt(formatCommands(session, total)))
}

func formatClock(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func formatCommands(session, total uint64) string {
	return fmt.Sprintf("Scrolls: %d / %d", session, total)
}
