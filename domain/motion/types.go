// Package motion turns pairs of grayscale frames into motion events: a
// thresholded difference mask, a changed-pixel count and a coarse vertical
// direction.
package motion

import (
	"time"
)

// Direction enumerates the coarse vertical direction of a motion sample.
type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case None:
		return "none"
	default:
		return "unknown"
	}
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DiffResult summarises one frame pair. It lives for a single pipeline cycle.
type DiffResult struct {
	Changed       int     // pixels whose delta exceeded the threshold
	Total         int     // width*height
	CentroidShift float64 // filled by the classifier for qualifying samples
}

// Fraction returns Changed/Total.
func (r DiffResult) Fraction() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Changed) / float64(r.Total)
}

// Event is a qualifying motion sample paired with its classified direction.
// Samples below the motion fraction never produce an Event.
type Event struct {
	Magnitude float64 // fraction of pixels changed
	Direction Direction
	Timestamp time.Time
}
