package capture

import (
	"sync/atomic"
	"time"
)

// SourceStats summarises capture loop behaviour for instrumentation.
type SourceStats struct {
	Captures         uint64        `json:"captures"`
	Skipped          uint64        `json:"skipped"`
	Offered          uint64        `json:"offered"`
	Rejected         uint64        `json:"rejected"`
	AvgCapture       time.Duration `json:"avg_capture_ns"`
	AvgCaptureMicros float64       `json:"avg_capture_us"`
	LastCapture      time.Time     `json:"last_capture"`
	LatestFrameAge   time.Duration `json:"latest_frame_age_ns"`
	Sequence         uint64        `json:"sequence"`
}

// sourceMetrics is embedded by sources; every field is safe for concurrent use.
type sourceMetrics struct {
	captures     atomic.Uint64
	skipped      atomic.Uint64
	offered      atomic.Uint64
	rejected     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
	lastCapture  atomic.Int64 // unix nanos
}

func (m *sourceMetrics) record(elapsed time.Duration, at time.Time) {
	m.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	m.captures.Add(1)
	m.lastCapture.Store(at.UnixNano())
}

func (m *sourceMetrics) countOffer(ok bool) {
	if ok {
		m.offered.Add(1)
		return
	}
	m.rejected.Add(1)
}

func (m *sourceMetrics) snapshot() SourceStats {
	captures := m.captures.Load()
	total := m.captureNanos.Load()
	var avg time.Duration
	avgMicros := 0.0
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
		avgMicros = float64(avg) / float64(time.Microsecond)
	}
	s := SourceStats{
		Captures:         captures,
		Skipped:          m.skipped.Load(),
		Offered:          m.offered.Load(),
		Rejected:         m.rejected.Load(),
		AvgCapture:       avg,
		AvgCaptureMicros: avgMicros,
		Sequence:         m.sequence.Load(),
	}
	if ns := m.lastCapture.Load(); ns != 0 {
		s.LastCapture = time.Unix(0, ns)
		s.LatestFrameAge = time.Since(s.LastCapture)
	}
	return s
}
