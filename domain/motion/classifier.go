package motion

import "math"

// Classifier estimates the vertical direction of motion from a difference
// mask. It tracks a rolling estimate of the mask's vertical centroid; the
// shift of the current centroid against that estimate decides the direction.
// Measure reads the estimate and Commit advances it, so a caller can leave
// out samples it discards.
//
// Sign convention: rows grow downward. A positive shift (changed pixels sit
// lower in the frame than the estimate) classifies as Down, a negative shift
// as Up. |shift| below the noise floor is None.
//
// Not safe for concurrent use.
type Classifier struct {
	noiseFloor float64
	smoothing  float64
	estimate   float64
	height     int
	seeded     bool
}

// NewClassifier returns a classifier. smoothing in (0,1] is the weight of the
// newest centroid in the rolling estimate; 1 tracks the previous sample exactly.
func NewClassifier(noiseFloor, smoothing float64) *Classifier {
	if smoothing <= 0 || smoothing > 1 {
		smoothing = 0.5
	}
	if noiseFloor < 0 {
		noiseFloor = 0
	}
	return &Classifier{noiseFloor: noiseFloor, smoothing: smoothing}
}

// Classify measures mask (width x height, 1 marks a changed pixel) and
// folds its centroid into the rolling estimate. An empty mask yields None and
// leaves the estimate untouched.
func (c *Classifier) Classify(mask []byte, width, height int) (Direction, float64) {
	dir, shift, centroid, ok := c.Measure(mask, width, height)
	if ok {
		c.Commit(centroid, height)
	}
	return dir, shift
}

// Measure returns the direction, the shift against the current estimate and
// the centroid of mask. The estimate is not changed; ok is false for an empty
// or malformed mask.
func (c *Classifier) Measure(mask []byte, width, height int) (dir Direction, shift, centroid float64, ok bool) {
	if width <= 0 || height <= 0 || len(mask) < width*height {
		return None, 0, 0, false
	}
	centroid, ok = VerticalCentroid(mask, width, height)
	if !ok {
		return None, 0, 0, false
	}
	shift = centroid - c.reference(height)
	switch {
	case shift == 0 || math.Abs(shift) < c.noiseFloor:
		return None, shift, centroid, true
	case shift > 0:
		return Down, shift, centroid, true
	default:
		return Up, shift, centroid, true
	}
}

// Commit folds centroid into the rolling estimate. A first sample, or one
// of a different height, re-seeds the estimate at the frame centre first.
func (c *Classifier) Commit(centroid float64, height int) {
	if height <= 0 {
		return
	}
	if !c.seeded || c.height != height {
		c.estimate = float64(height-1) / 2
		c.height = height
		c.seeded = true
	}
	c.estimate += c.smoothing * (centroid - c.estimate)
}

func (c *Classifier) reference(height int) float64 {
	if c.seeded && c.height == height {
		return c.estimate
	}
	return float64(height-1) / 2
}

// Estimate returns the current rolling centroid estimate and whether it has
// been seeded.
func (c *Classifier) Estimate() (float64, bool) { return c.estimate, c.seeded }

// Reset drops the rolling estimate; the next sample is measured against the
// frame centre again.
func (c *Classifier) Reset() {
	c.estimate = 0
	c.height = 0
	c.seeded = false
}

// VerticalCentroid returns the mean row index of the set mask pixels.
func VerticalCentroid(mask []byte, width, height int) (float64, bool) {
	var rowSum, count int
	for y := 0; y < height; y++ {
		row := mask[y*width : (y+1)*width]
		n := 0
		for _, v := range row {
			if v != 0 {
				n++
			}
		}
		rowSum += n * y
		count += n
	}
	if count == 0 {
		return 0, false
	}
	return float64(rowSum) / float64(count), true
}
