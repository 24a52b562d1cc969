package motion

import (
	"errors"
	"fmt"

	"github.com/soocke/gesture-scroll/domain/frame"
)

// ErrDimensionMismatch is returned when two frames of different sizes are compared.
var ErrDimensionMismatch = errors.New("motion: frame dimensions differ")

// Detector computes the absolute per-pixel difference between two frames,
// applies a binary threshold and counts the changed pixels.
// Not safe for concurrent use; the mask buffer is reused between calls.
type Detector struct {
	threshold int
	fraction  float64
	mask      []byte
}

// NewDetector returns a detector with the given intensity threshold (pixels
// change when |delta| > threshold) and motion fraction.
func NewDetector(threshold int, fraction float64) *Detector {
	return &Detector{threshold: threshold, fraction: fraction}
}

// Diff compares cur against prev. The returned mask has one entry per
// pixel, 1 where the pixel changed, and stays valid until the next call.
func (d *Detector) Diff(prev, cur *frame.Frame) (DiffResult, []byte, error) {
	if prev == nil || cur == nil {
		return DiffResult{}, nil, fmt.Errorf("motion: nil frame")
	}
	if !prev.SameSize(cur) {
		return DiffResult{}, nil, fmt.Errorf("%w: previous %dx%d, current %dx%d",
			ErrDimensionMismatch, prev.Width, prev.Height, cur.Width, cur.Height)
	}
	n := cur.Len()
	if len(prev.Pix) < n || len(cur.Pix) < n {
		return DiffResult{}, nil, frame.ErrInvalidFrame
	}
	if cap(d.mask) < n {
		d.mask = make([]byte, n)
	}
	d.mask = d.mask[:n]

	changed := 0
	a, b := prev.Pix[:n], cur.Pix[:n]
	for i := 0; i < n; i++ {
		delta := int(b[i]) - int(a[i])
		if delta < 0 {
			delta = -delta
		}
		if delta > d.threshold {
			d.mask[i] = 1
			changed++
		} else {
			d.mask[i] = 0
		}
	}
	return DiffResult{Changed: changed, Total: n}, d.mask, nil
}

// Qualifies reports whether res carries enough change to count as motion.
// Equality with the fraction does not qualify.
func (d *Detector) Qualifies(res DiffResult) bool {
	if res.Total <= 0 {
		return false
	}
	return float64(res.Changed) > d.fraction*float64(res.Total)
}

// Threshold returns the intensity threshold.
func (d *Detector) Threshold() int { return d.threshold }
