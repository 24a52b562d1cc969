package pipeline

import (
	"github.com/soocke/gesture-scroll/domain/frame"
)

// Offer hands f to the worker if it is idle and returns true. Otherwise the
// frame is released and counted as dropped. Offer never blocks the caller
// and takes ownership of f in both cases.
//
// Frames whose sequence is not above the last admitted one are dropped as
// well, so the worker never sees frames out of order.
func (p *Pipeline) Offer(f *frame.Frame) bool {
	if f == nil {
		return false
	}
	p.offered.Add(1)

	p.admitMu.RLock()
	defer p.admitMu.RUnlock()
	if !p.running {
		p.rejected.Add(1)
		frame.Release(f)
		return false
	}
	if !p.busy.CompareAndSwap(false, true) {
		p.dropped.Add(1)
		frame.Release(f)
		return false
	}
	if p.seqSeen.Load() && f.Seq <= p.lastSeq.Load() {
		p.busy.Store(false)
		p.outOfOrder.Add(1)
		frame.Release(f)
		return false
	}
	select {
	case p.mailbox <- msgFrame{f: f}:
		p.lastSeq.Store(f.Seq)
		p.seqSeen.Store(true)
		p.accepted.Add(1)
		return true
	default:
		p.busy.Store(false)
		p.dropped.Add(1)
		frame.Release(f)
		return false
	}
}

// Busy reports whether a frame is currently admitted and not yet processed.
func (p *Pipeline) Busy() bool { return p.busy.Load() }
