package capture

import (
	"context"
	"errors"
	"image"

	"github.com/soocke/gesture-scroll/domain/frame"
)

// ErrFrameSourceUnavailable is returned by Start when no frame can be
// captured at all (no display, permission denied).
var ErrFrameSourceUnavailable = errors.New("capture: frame source unavailable")

// FrameSink receives captured frames. Offer must not block and takes
// ownership of the frame whether or not it is accepted.
type FrameSink interface {
	Offer(f *frame.Frame) bool
}

// Source produces grayscale frames and pushes them into a FrameSink until
// its context is cancelled or Stop is called.
type Source interface {
	Start(ctx context.Context, sink FrameSink) error
	Stop()
	Running() bool
	Stats() SourceStats
	SetSelectionProvider(func() *image.Rectangle)
}
