package capture

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/gesture-scroll/domain/frame"
)

const (
	syntheticBackground = 40
	syntheticBand       = 200
)

// SyntheticSource renders a bright horizontal band sweeping down and back up
// over a dark background. It needs no display and produces the same frame
// sequence on every run.
type SyntheticSource struct {
	logger   *slog.Logger
	width    int
	height   int
	interval time.Duration
	bandRows int
	step     int

	genMu sync.Mutex
	pos   int
	dir   int

	mu      sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	sourceMetrics
}

// NewSyntheticSource returns a source producing width x height frames every
// interval. The band moves height/30 rows per frame.
func NewSyntheticSource(logger *slog.Logger, width, height int, interval time.Duration) *SyntheticSource {
	if width <= 0 {
		width = 320
	}
	if height <= 0 {
		height = 240
	}
	return &SyntheticSource{
		logger:   logger,
		width:    width,
		height:   height,
		interval: interval,
		bandRows: max(height/5, 1),
		step:     max(height/30, 1),
		dir:      1,
	}
}

// SetSelectionProvider is a no-op; synthetic frames cover the whole canvas.
func (s *SyntheticSource) SetSelectionProvider(func() *image.Rectangle) {}

func (s *SyntheticSource) Running() bool { return s.running.Load() }

func (s *SyntheticSource) Stats() SourceStats { return s.snapshot() }

// Next renders the next frame of the sweep. The caller owns the frame.
func (s *SyntheticSource) Next() *frame.Frame {
	s.genMu.Lock()
	defer s.genMu.Unlock()
	start := time.Now()
	f := frame.Acquire(s.width, s.height)
	f.Seq = s.sequence.Add(1)
	for i := range f.Pix {
		f.Pix[i] = syntheticBackground
	}
	for y := s.pos; y < s.pos+s.bandRows && y < s.height; y++ {
		row := f.Pix[y*s.width : (y+1)*s.width]
		for x := range row {
			row[x] = syntheticBand
		}
	}
	s.pos += s.dir * s.step
	if s.pos+s.bandRows >= s.height {
		s.pos = s.height - s.bandRows
		s.dir = -1
	}
	if s.pos <= 0 {
		s.pos = 0
		s.dir = 1
	}
	now := time.Now()
	f.Timestamp = now
	s.record(now.Sub(start), now)
	return f
}

func (s *SyntheticSource) Start(ctx context.Context, sink FrameSink) error {
	if sink == nil {
		return errors.New("capture: nil frame sink")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running.Load() {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running.Store(true)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.running.Store(false)
		for ctx.Err() == nil {
			s.countOffer(sink.Offer(s.Next()))
			if !sleepCtx(ctx, s.interval) {
				return
			}
		}
	}()
	if s.logger != nil {
		s.logger.Info("synthetic source started", "width", s.width, "height", s.height, "interval", s.interval)
	}
	return nil
}

// Stop cancels the generator and waits for it to exit. Idempotent.
func (s *SyntheticSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.wg.Wait()
	s.cancel = nil
}
