// Package frame defines the grayscale sensor frame exchanged between the
// frame sources and the pipeline, plus the pooled pixel buffers behind it.
package frame

import (
	"errors"
	"fmt"
	"image"
	"time"
)

// ErrInvalidFrame reports a frame whose pixel buffer does not match its size.
var ErrInvalidFrame = errors.New("frame: invalid frame")

// Frame is one grayscale image sample. Pix holds Width*Height 8-bit
// luminance values in row-major order.
//
// A Frame is immutable once handed to a consumer and has exactly one owner
// at a time; passing the pointer transfers ownership.
type Frame struct {
	Width     int
	Height    int
	Pix       []byte
	Timestamp time.Time
	Seq       uint64
}

// New wraps pix as a frame after checking its length. The slice is not copied.
func New(width, height int, pix []byte, ts time.Time, seq uint64) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidFrame, width, height)
	}
	if len(pix) != width*height {
		return nil, fmt.Errorf("%w: %d samples for %dx%d", ErrInvalidFrame, len(pix), width, height)
	}
	return &Frame{Width: width, Height: height, Pix: pix, Timestamp: ts, Seq: seq}, nil
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return f.Width * f.Height
}

// SameSize reports whether both frames have identical dimensions.
func (f *Frame) SameSize(o *Frame) bool {
	return f != nil && o != nil && f.Width == o.Width && f.Height == o.Height
}

// FromRGBA converts src to a pooled grayscale frame of w x h using
// nearest-neighbour sampling. Luminance uses integer BT.601 weights.
func FromRGBA(src *image.RGBA, w, h int, ts time.Time, seq uint64) (*Frame, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidFrame)
	}
	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	if sw <= 0 || sh <= 0 || w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: cannot sample %dx%d into %dx%d", ErrInvalidFrame, sw, sh, w, h)
	}
	f := Acquire(w, h)
	f.Timestamp = ts
	f.Seq = seq
	idx := 0
	for y := 0; y < h; y++ {
		sy := y * sh / h
		row := src.Pix[sy*src.Stride:]
		for x := 0; x < w; x++ {
			i := (x * sw / w) * 4
			r, g, bb := row[i], row[i+1], row[i+2]
			f.Pix[idx] = byte((77*uint32(r) + 150*uint32(g) + 29*uint32(bb)) >> 8)
			idx++
		}
	}
	return f, nil
}
