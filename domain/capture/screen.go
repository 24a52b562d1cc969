package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/gesture-scroll/domain/frame"
)

const (
	captureStatsLogInterval = 5 * time.Second
	captureRetryDelay       = 50 * time.Millisecond
)

// GrabFunc captures sel, or the full screen when sel is nil.
type GrabFunc func(sel *image.Rectangle) (*image.RGBA, error)

// ScreenSource captures the screen (or the selection rectangle), converts
// each capture to a downsampled grayscale frame and offers it to the sink.
// Use NewScreenSource to construct an instance.
type ScreenSource struct {
	logger   *slog.Logger
	width    int
	height   int
	interval time.Duration
	grab     GrabFunc

	selMu sync.RWMutex
	selFn func() *image.Rectangle // user selection rectangle (optional)

	mu      sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	sourceMetrics
}

// NewScreenSource returns a source producing width x height frames every
// interval.
func NewScreenSource(logger *slog.Logger, width, height int, interval time.Duration, selectionFn func() *image.Rectangle) *ScreenSource {
	return &ScreenSource{
		logger:   logger,
		width:    width,
		height:   height,
		interval: interval,
		grab:     Grab,
		selFn:    selectionFn,
	}
}

func (s *ScreenSource) SetSelectionProvider(fn func() *image.Rectangle) {
	s.selMu.Lock()
	s.selFn = fn
	s.selMu.Unlock()
}

func (s *ScreenSource) Running() bool { return s.running.Load() }

func (s *ScreenSource) Stats() SourceStats { return s.snapshot() }

// Start probes one capture and then runs the capture loop until ctx is done
// or Stop is called. A failing probe returns ErrFrameSourceUnavailable.
func (s *ScreenSource) Start(ctx context.Context, sink FrameSink) error {
	if sink == nil {
		return errors.New("capture: nil frame sink")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return nil
	}
	if _, err := s.capture(); err != nil {
		return fmt.Errorf("%w: %v", ErrFrameSourceUnavailable, err)
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running.Store(true)
	s.wg.Add(1)
	go s.loop(ctx, sink)
	if s.logger != nil {
		s.logger.Info("screen capture started", "width", s.width, "height", s.height, "interval", s.interval)
	}
	return nil
}

// Stop cancels the capture loop and waits for it to exit. Idempotent.
func (s *ScreenSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
}

func (s *ScreenSource) capture() (*image.RGBA, error) {
	s.selMu.RLock()
	selFn := s.selFn
	s.selMu.RUnlock()
	if selFn != nil {
		if r := selFn(); r != nil && !r.Empty() {
			img, err := s.grab(r)
			if err == nil {
				return img, nil
			}
			if s.logger != nil {
				s.logger.Error("capture selection", "error", err)
			}
		}
	}
	img, err := s.grab(nil)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New("capture: empty image")
	}
	return img, nil
}

func (s *ScreenSource) loop(ctx context.Context, sink FrameSink) {
	defer s.wg.Done()
	defer s.running.Store(false)
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	for ctx.Err() == nil {
		start := time.Now()
		img, err := s.capture()
		if err != nil {
			s.skipped.Add(1)
			if s.logger != nil {
				s.logger.Error("capture full", "error", err)
			}
			if !sleepCtx(ctx, captureRetryDelay) {
				return
			}
			continue
		}
		now := time.Now()
		s.record(now.Sub(start), now)
		f, err := frame.FromRGBA(img, s.width, s.height, now, s.sequence.Add(1))
		if err != nil {
			s.skipped.Add(1)
			if s.logger != nil {
				s.logger.Error("capture convert", "error", err)
			}
		} else {
			s.countOffer(sink.Offer(f))
		}

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}
		if !sleepCtx(ctx, s.interval) {
			return
		}
	}
}

func (s *ScreenSource) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"offered", stats.Offered,
		"rejected", stats.Rejected,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}

// sleepCtx waits d and reports whether ctx is still live.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
