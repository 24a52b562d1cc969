package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig_MatchesDocumentedDefaults(t *testing.T) {
	c := DefaultConfig()
	if c.DiffThreshold != 25 || c.MotionFraction != 0.05 {
		t.Fatalf("unexpected detection defaults: threshold=%d fraction=%v", c.DiffThreshold, c.MotionFraction)
	}
	if c.CooldownMs != 300 || c.ScrollOffsetPixels != 500 || c.ScrollDurationMs != 300 {
		t.Fatalf("unexpected command defaults: %+v", c)
	}
	if c.FrameWidth != 320 || c.FrameHeight != 240 {
		t.Fatalf("unexpected frame size %dx%d", c.FrameWidth, c.FrameHeight)
	}
	if c.Cooldown() != 300*time.Millisecond {
		t.Fatalf("cooldown duration %v", c.Cooldown())
	}
}

func TestValidate_ClampsInvalidValues(t *testing.T) {
	c := &Config{
		DiffThreshold:      -3,
		MotionFraction:     1.5,
		DirectionSmoothing: 0,
		Source:             "camera",
		Sink:               "carrier-pigeon",
		LogLevel:           "LOUD",
		SelectionW:         -1,
	}
	_ = c.Validate()
	if c.DiffThreshold != 25 || c.MotionFraction != 0.05 || c.DirectionSmoothing != 0.5 {
		t.Fatalf("detection values not clamped: %+v", c)
	}
	if c.Source != SourceScreen || c.Sink != SinkLog || c.LogLevel != "info" {
		t.Fatalf("identifiers not normalised: source=%q sink=%q level=%q", c.Source, c.Sink, c.LogLevel)
	}
	if c.SelectionW != 0 || c.SelectionH != 0 {
		t.Fatalf("selection not cleared: %dx%d", c.SelectionW, c.SelectionH)
	}
}

func TestValidate_CooldownNotShorterThanGesture(t *testing.T) {
	c := DefaultConfig()
	c.CooldownMs = 100
	c.ScrollDurationMs = 450
	_ = c.Validate()
	if c.CooldownMs != 450 {
		t.Fatalf("expected cooldown raised to 450ms, got %d", c.CooldownMs)
	}
}

func TestSelection(t *testing.T) {
	c := DefaultConfig()
	if c.Selection() != nil {
		t.Fatalf("expected nil selection by default")
	}
	c.SelectionX, c.SelectionY, c.SelectionW, c.SelectionH = 10, 20, 100, 50
	r := c.Selection()
	if r == nil || r.Min.X != 10 || r.Min.Y != 20 || r.Dx() != 100 || r.Dy() != 50 {
		t.Fatalf("unexpected selection %v", r)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DiffThreshold != 25 {
		t.Fatalf("expected defaults, got %+v", c)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if c == nil || c.CooldownMs != 300 {
		t.Fatalf("expected defaults alongside error, got %+v", c)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	c := DefaultConfig()
	c.CooldownMs = 750
	c.Sink = SinkWebSocket
	c.SinkURL = "ws://127.0.0.1:9000/gesture"
	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.CooldownMs != 750 || got.Sink != SinkWebSocket || got.SinkURL != c.SinkURL {
		t.Fatalf("values not persisted: %+v", got)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range cases {
		c := Config{LogLevel: in}
		if got := c.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
