package app

import (
	"image"
	"log/slog"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/domain/action"
	"github.com/soocke/gesture-scroll/domain/capture"
	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/pipeline"
	"github.com/soocke/gesture-scroll/status"
	"github.com/soocke/gesture-scroll/ui/model"
)

// Container assembles the source, sink, pipeline and optional adapters.
type Container struct {
	Config     *config.Config
	ConfigPath string
	Logger     *slog.Logger

	Source    capture.Source
	Sink      gesture.Sink
	WebSocket *action.WebSocketSink // nil unless the websocket sink is selected
	Masks     *model.MaskModel      // nil unless the preview window is enabled
	Pipeline  *pipeline.Pipeline
	Status    *status.Server // nil when StatusAddr is empty
}

// BuildContainer constructs all components. Nothing is started.
func BuildContainer(cfg *config.Config, cfgPath string, logger *slog.Logger) *Container {
	c := &Container{Config: cfg, ConfigPath: cfgPath, Logger: logger}
	c.Source = newSource(cfg, logger)
	c.Sink, c.WebSocket = newSink(cfg, logger)

	var opts []pipeline.Option
	if cfg.Preview {
		c.Masks = model.NewMaskModel()
		opts = append(opts, pipeline.WithObserver(c.Masks))
	}
	if cfg.Debug {
		opts = append(opts, pipeline.WithStatsInterval(statsInterval))
	}
	c.Pipeline = pipeline.New(logger, cfg, c.Sink, opts...)
	if cfg.StatusAddr != "" {
		c.Status = status.New(logger, cfg.StatusAddr, c.Pipeline, c.Source)
	}
	return c
}

func newSource(cfg *config.Config, logger *slog.Logger) capture.Source {
	if cfg.Source == config.SourceSynthetic {
		return capture.NewSyntheticSource(logger, cfg.FrameWidth, cfg.FrameHeight, cfg.CaptureInterval())
	}
	sel := cfg.Selection()
	return capture.NewScreenSource(logger, cfg.FrameWidth, cfg.FrameHeight, cfg.CaptureInterval(), func() *image.Rectangle { return sel })
}

func newSink(cfg *config.Config, logger *slog.Logger) (gesture.Sink, *action.WebSocketSink) {
	switch cfg.Sink {
	case config.SinkNative:
		return action.NewNativeSink(logger), nil
	case config.SinkWebSocket:
		ws := action.NewWebSocketSink(logger, cfg.SinkURL)
		return ws, ws
	default:
		return action.NewLogSink(logger), nil
	}
}
