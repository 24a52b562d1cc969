package presenter

import (
	"context"
	"log/slog"

	"github.com/soocke/gesture-scroll/domain/capture"
)

// SourceControl narrows what the presenter needs from the frame source.
type SourceControl interface {
	Start(ctx context.Context, sink capture.FrameSink) error
	Stop()
	Running() bool
}

// CaptureView updates UI elements affected by capture toggling.
type CaptureView interface {
	PreviewReset()
	SetCaptureActive(bool)
}

// CapturePresenter owns presentation logic for toggling capture.
type CapturePresenter struct {
	ctx     context.Context
	source  SourceControl
	sink    capture.FrameSink
	preview *PreviewPresenter
	view    CaptureView
	logger  *slog.Logger
}

func NewCapturePresenter(ctx context.Context, source SourceControl, sink capture.FrameSink, preview *PreviewPresenter, view CaptureView, logger *slog.Logger) *CapturePresenter {
	return &CapturePresenter{ctx: ctx, source: source, sink: sink, preview: preview, view: view, logger: logger}
}

// Enable starts the source feeding the pipeline. Idempotent.
func (c *CapturePresenter) Enable() error {
	if c == nil || c.source == nil || c.view == nil {
		return nil
	}
	if c.source.Running() {
		return nil
	}
	if err := c.source.Start(c.ctx, c.sink); err != nil {
		if c.logger != nil {
			c.logger.Error("capture start failed", "error", err)
		}
		return err
	}
	c.view.SetCaptureActive(true)
	return nil
}

// Disable stops the source and clears the preview. Idempotent.
func (c *CapturePresenter) Disable() {
	if c == nil || c.source == nil || c.view == nil {
		return
	}
	if !c.source.Running() {
		return
	}
	c.source.Stop()
	c.preview.Reset()
	c.view.PreviewReset()
	c.view.SetCaptureActive(false)
}

// Toggle flips the capture state delegating to Enable/Disable.
func (c *CapturePresenter) Toggle() error {
	if c == nil || c.source == nil {
		return nil
	}
	if c.source.Running() {
		c.Disable()
		return nil
	}
	return c.Enable()
}
