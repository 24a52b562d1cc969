package app

import (
	"context"
	"errors"
	"image"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/domain/action"
	"github.com/soocke/gesture-scroll/domain/capture"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func syntheticConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Source = config.SourceSynthetic
	cfg.FrameWidth, cfg.FrameHeight = 160, 120
	cfg.CaptureIntervalMs = 5
	cfg.CooldownMs, cfg.ScrollDurationMs = 50, 20
	return cfg
}

type brokenSource struct{ stopped int }

func (b *brokenSource) Start(context.Context, capture.FrameSink) error {
	return capture.ErrFrameSourceUnavailable
}
func (b *brokenSource) Stop()                                        { b.stopped++ }
func (b *brokenSource) Running() bool                                { return false }
func (b *brokenSource) Stats() capture.SourceStats                   { return capture.SourceStats{} }
func (b *brokenSource) SetSelectionProvider(func() *image.Rectangle) {}

func TestBuildContainer_SelectsAdapters(t *testing.T) {
	cfg := syntheticConfig()
	cfg.Sink = config.SinkWebSocket
	cfg.SinkURL = "ws://127.0.0.1:1/scroll"
	cfg.Preview = true
	cfg.StatusAddr = "127.0.0.1:0"
	c := BuildContainer(cfg, "", discard)
	if _, ok := c.Source.(*capture.SyntheticSource); !ok {
		t.Fatalf("source %T", c.Source)
	}
	if c.WebSocket == nil || c.Sink != c.WebSocket {
		t.Fatalf("sink %T", c.Sink)
	}
	if c.Masks == nil || c.Status == nil {
		t.Fatal("preview model and status server expected")
	}

	c = BuildContainer(config.DefaultConfig(), "", discard)
	if _, ok := c.Source.(*capture.ScreenSource); !ok {
		t.Fatalf("default source %T", c.Source)
	}
	if _, ok := c.Sink.(*action.LogSink); !ok {
		t.Fatalf("default sink %T", c.Sink)
	}
	if c.Masks != nil || c.Status != nil || c.WebSocket != nil {
		t.Fatal("optional adapters should be off by default")
	}
}

func TestApp_SyntheticRunEmitsCommands(t *testing.T) {
	cfg := syntheticConfig()
	cfg.StatusAddr = "127.0.0.1:0"
	a := New(cfg, "", discard)
	if err := a.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	defer a.Stop()
	if err := a.Start(context.Background()); err != nil {
		t.Fatalf("second start: %v", err)
	}

	deadline := time.Now().Add(3 * time.Second)
	for a.Pipeline.Stats().CommandsEmitted == 0 {
		if time.Now().After(deadline) {
			t.Fatalf("no command emitted, stats %+v", a.Pipeline.Stats())
		}
		time.Sleep(10 * time.Millisecond)
	}
	resp, err := http.Get("http://" + a.Status.Addr() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health status %d", resp.StatusCode)
	}

	a.Stop()
	if a.Source.Running() {
		t.Fatal("source still running after Stop")
	}
	emitted := a.Pipeline.Stats().CommandsEmitted
	time.Sleep(50 * time.Millisecond)
	if got := a.Pipeline.Stats().CommandsEmitted; got != emitted {
		t.Fatalf("commands after stop: %d -> %d", emitted, got)
	}
	a.Stop()
}

func TestApp_StartFailsWhenSourceUnavailable(t *testing.T) {
	a := New(syntheticConfig(), "", discard)
	src := &brokenSource{}
	a.Source = src
	err := a.Start(context.Background())
	if !errors.Is(err, capture.ErrFrameSourceUnavailable) {
		t.Fatalf("expected ErrFrameSourceUnavailable, got %v", err)
	}
	if src.stopped != 1 {
		t.Fatalf("source stop calls %d", src.stopped)
	}
	a.Stop() // not started; no-op
}

func TestApp_WebSocketSinkNeedsURL(t *testing.T) {
	cfg := syntheticConfig()
	cfg.Sink = config.SinkWebSocket
	a := New(cfg, "", discard)
	if err := a.Start(context.Background()); !errors.Is(err, ErrMissingSinkURL) {
		t.Fatalf("expected ErrMissingSinkURL, got %v", err)
	}
}

func TestApp_RunReturnsOnCancel(t *testing.T) {
	a := New(syntheticConfig(), "", discard)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()
	time.Sleep(30 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
