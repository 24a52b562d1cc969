package pipeline

import (
	"errors"

	"github.com/soocke/gesture-scroll/domain/frame"
	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/motion"
)

// cycle is the worker's processing context. At most one previous frame is
// retained; it is released the moment a newer frame replaces it.
type cycle struct {
	detector   *motion.Detector
	classifier *motion.Classifier
	gate       *gesture.Gate
	previous   *frame.Frame
}

func (c *cycle) promote(cur *frame.Frame) {
	old := c.previous
	c.previous = cur
	if old != nil && old != cur {
		frame.Release(old)
	}
}

func (c *cycle) release() {
	if c.previous != nil {
		frame.Release(c.previous)
		c.previous = nil
	}
}

// CycleReport describes one processed frame pair.
type CycleReport struct {
	Seq       uint64
	Width     int
	Height    int
	Diff      motion.DiffResult
	Mask      []byte
	Qualified bool
	Event     *motion.Event
	Command   *gesture.ScrollCommand
	State     gesture.State
}

// handleFrame runs one cycle for f. The busy flag is cleared on every exit
// path, including a panic in an observer or the detector.
func (p *Pipeline) handleFrame(c *cycle, f *frame.Frame) {
	defer p.busy.Store(false)
	defer recoverLog(p.logger, "pipeline cycle panic")
	p.processed.Add(1)

	if c.previous == nil {
		c.previous = f
		p.baselines.Add(1)
		return
	}
	defer c.promote(f)

	res, mask, err := c.detector.Diff(c.previous, f)
	if err != nil {
		if errors.Is(err, motion.ErrDimensionMismatch) {
			p.dimResets.Add(1)
			c.classifier.Reset()
			if p.logger != nil {
				p.logger.Warn("frame dimensions changed, resetting baseline",
					"prev_width", c.previous.Width, "prev_height", c.previous.Height,
					"width", f.Width, "height", f.Height)
			}
			return
		}
		if p.logger != nil {
			p.logger.Error("frame diff failed", "seq", f.Seq, "error", err)
		}
		return
	}

	report := CycleReport{Seq: f.Seq, Width: f.Width, Height: f.Height, Diff: res, Mask: mask}
	defer func() {
		report.State = c.gate.Current()
		p.notify(report)
	}()

	if !c.detector.Qualifies(res) {
		return
	}
	report.Qualified = true
	// The rolling estimate only advances for samples that become a command.
	dir, shift, centroid, _ := c.classifier.Measure(mask, f.Width, f.Height)
	report.Diff.CentroidShift = shift
	ev := motion.Event{Magnitude: res.Fraction(), Direction: dir, Timestamp: f.Timestamp}
	report.Event = &ev
	p.motionEvents.Add(1)
	if dir == motion.None {
		p.indeterminate.Add(1)
	}

	cmd, ok := c.gate.Offer(ev, p.now())
	_, suppressed, _ := c.gate.Counts()
	p.suppressed.Store(suppressed)
	if !ok {
		return
	}
	c.classifier.Commit(centroid, f.Height)
	p.commands.Add(1)
	p.lastCommand.Store(&cmd)
	report.Command = &cmd
	p.armCooldown(p.cfg.Cooldown())
	p.emitter.Emit(cmd)
}

func (p *Pipeline) notify(r CycleReport) {
	for _, o := range p.observers {
		o.ObserveCycle(r)
	}
}
