package model

import (
	"sync"
	"sync/atomic"

	"github.com/soocke/gesture-scroll/domain/pipeline"
)

// MaskSnapshot is a copy of one cycle's difference mask.
type MaskSnapshot struct {
	Seq      uint64
	Width    int
	Height   int
	Mask     []byte
	Changed  int
	Fraction float64
	Shift    float64
}

// MaskModel keeps the latest difference mask for the preview. It is fed from
// the pipeline worker and read from the UI tick, so the mask is copied.
// Copies are skipped while the model is disabled.
type MaskModel struct {
	enabled atomic.Bool
	mu      sync.Mutex
	latest  MaskSnapshot
	buf     []byte
}

func NewMaskModel() *MaskModel {
	m := &MaskModel{}
	m.enabled.Store(true)
	return m
}

// SetEnabled turns mask copying on or off.
func (m *MaskModel) SetEnabled(b bool) {
	if m != nil {
		m.enabled.Store(b)
	}
}

// ObserveCycle implements pipeline.Observer.
func (m *MaskModel) ObserveCycle(r pipeline.CycleReport) {
	if m == nil || !m.enabled.Load() || len(r.Mask) == 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if cap(m.buf) < len(r.Mask) {
		m.buf = make([]byte, len(r.Mask))
	}
	m.buf = m.buf[:len(r.Mask)]
	copy(m.buf, r.Mask)
	m.latest = MaskSnapshot{
		Seq:      r.Seq,
		Width:    r.Width,
		Height:   r.Height,
		Changed:  r.Diff.Changed,
		Fraction: r.Diff.Fraction(),
		Shift:    r.Diff.CentroidShift,
	}
}

// Latest returns a copy of the newest mask; ok is false before the first one.
func (m *MaskModel) Latest() (snap MaskSnapshot, ok bool) {
	if m == nil {
		return MaskSnapshot{}, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.latest.Seq == 0 {
		return MaskSnapshot{}, false
	}
	snap = m.latest
	snap.Mask = append([]byte(nil), m.buf...)
	return snap, true
}
