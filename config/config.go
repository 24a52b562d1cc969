package config

import (
	"encoding/json"
	"image"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Source and sink identifiers recognised by the composition root.
const (
	SourceScreen    = "screen"
	SourceSynthetic = "synthetic"

	SinkLog       = "log"
	SinkNative    = "native"
	SinkWebSocket = "websocket"
)

// Config holds runtime configuration for the frame-to-command pipeline and
// the adapters around it. Fields may be loaded from a JSON file and
// overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`

	// Motion detection
	DiffThreshold       int     `json:"diff_threshold"`
	MotionFraction      float64 `json:"motion_fraction"`
	DirectionNoiseFloor float64 `json:"direction_noise_floor"`
	DirectionSmoothing  float64 `json:"direction_smoothing"`

	// Gate and command shape
	CooldownMs         int `json:"cooldown_ms"`
	ScrollOffsetPixels int `json:"scroll_offset_pixels"`
	ScrollDurationMs   int `json:"scroll_duration_ms"`
	DispatchTimeoutMs  int `json:"dispatch_timeout_ms"`

	// Frame source
	Source            string `json:"source"`
	FrameWidth        int    `json:"frame_width"`
	FrameHeight       int    `json:"frame_height"`
	CaptureIntervalMs int    `json:"capture_interval_ms"`

	// Screen region sampled by the screen source; zero size means full screen.
	SelectionX int `json:"selection_x"`
	SelectionY int `json:"selection_y"`
	SelectionW int `json:"selection_w"`
	SelectionH int `json:"selection_h"`

	// Actuation sink
	Sink    string `json:"sink"`
	SinkURL string `json:"sink_url"`

	// Surfaces
	StatusAddr string `json:"status_addr"`
	Preview    bool   `json:"preview"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		LogLevel:            "info",
		DiffThreshold:       25,
		MotionFraction:      0.05,
		DirectionNoiseFloor: 2.0,
		DirectionSmoothing:  0.5,
		CooldownMs:          300,
		ScrollOffsetPixels:  500,
		ScrollDurationMs:    300,
		DispatchTimeoutMs:   1000,
		Source:              SourceScreen,
		FrameWidth:          320,
		FrameHeight:         240,
		CaptureIntervalMs:   33,
		Sink:                SinkLog,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.DiffThreshold < 0 || c.DiffThreshold > 254 {
		c.DiffThreshold = 25
	}
	if c.MotionFraction <= 0 || c.MotionFraction >= 1 {
		c.MotionFraction = 0.05
	}
	if c.DirectionNoiseFloor < 0 {
		c.DirectionNoiseFloor = 2.0
	}
	if c.DirectionSmoothing <= 0 || c.DirectionSmoothing > 1 {
		c.DirectionSmoothing = 0.5
	}
	if c.ScrollOffsetPixels <= 0 {
		c.ScrollOffsetPixels = 500
	}
	if c.ScrollDurationMs <= 0 {
		c.ScrollDurationMs = 300
	}
	if c.CooldownMs <= 0 {
		c.CooldownMs = 300
	}
	// A new gesture must never start while the previous one is still executing.
	if c.CooldownMs < c.ScrollDurationMs {
		c.CooldownMs = c.ScrollDurationMs
	}
	if c.DispatchTimeoutMs <= 0 {
		c.DispatchTimeoutMs = 1000
	}
	if c.FrameWidth <= 0 {
		c.FrameWidth = 320
	}
	if c.FrameHeight <= 0 {
		c.FrameHeight = 240
	}
	if c.CaptureIntervalMs < 0 {
		c.CaptureIntervalMs = 33
	}
	switch c.Source {
	case SourceScreen, SourceSynthetic:
	default:
		c.Source = SourceScreen
	}
	switch c.Sink {
	case SinkLog, SinkNative, SinkWebSocket:
	default:
		c.Sink = SinkLog
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
	if c.SelectionW < 0 || c.SelectionH < 0 {
		c.SelectionW, c.SelectionH = 0, 0
	}
	return nil
}

// Cooldown returns the gate cooldown as a duration.
func (c *Config) Cooldown() time.Duration {
	return time.Duration(c.CooldownMs) * time.Millisecond
}

// ScrollDuration returns the gesture execution time as a duration.
func (c *Config) ScrollDuration() time.Duration {
	return time.Duration(c.ScrollDurationMs) * time.Millisecond
}

// DispatchTimeout returns the extra time a sink gets beyond the gesture duration.
func (c *Config) DispatchTimeout() time.Duration {
	return time.Duration(c.DispatchTimeoutMs) * time.Millisecond
}

// CaptureInterval returns the pause between two screen captures.
func (c *Config) CaptureInterval() time.Duration {
	return time.Duration(c.CaptureIntervalMs) * time.Millisecond
}

// SlogLevel maps LogLevel to a slog level; unknown names are info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Selection returns the configured capture rectangle, or nil for full screen.
func (c *Config) Selection() *image.Rectangle {
	if c.SelectionW <= 0 || c.SelectionH <= 0 {
		return nil
	}
	r := image.Rect(c.SelectionX, c.SelectionY, c.SelectionX+c.SelectionW, c.SelectionY+c.SelectionH)
	return &r
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
