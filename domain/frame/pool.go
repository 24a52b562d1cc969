package frame

import (
	"sync"
	"time"
)

// Reusable pixel buffer pool. Sources acquire a frame per capture and the
// pipeline releases it when the frame is dropped or retired as the previous
// baseline, so steady state runs with two or three live buffers regardless of
// the delivery rate. Frames that are never released are simply collected.

var pixPool sync.Pool // stores *Frame

// Acquire returns a frame whose Pix length is exactly w*h. Timestamp and Seq
// are zeroed; pixel contents are unspecified and must be overwritten.
func Acquire(w, h int) *Frame {
	if w <= 0 || h <= 0 {
		return &Frame{}
	}
	needed := w * h
	var f *Frame
	if v := pixPool.Get(); v != nil {
		f = v.(*Frame)
	}
	if f == nil || cap(f.Pix) < needed {
		f = &Frame{Pix: make([]byte, needed)}
	} else {
		f.Pix = f.Pix[:needed]
	}
	f.Width, f.Height = w, h
	f.Timestamp = time.Time{}
	f.Seq = 0
	return f
}

// Release returns the frame to the pool. The caller must not access f
// afterwards.
func Release(f *Frame) {
	if f == nil || f.Pix == nil {
		return
	}
	pixPool.Put(f)
}
