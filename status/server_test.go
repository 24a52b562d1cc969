package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/domain/capture"
	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/pipeline"
)

type fakePipeline struct {
	session uuid.UUID
	state   gesture.State
	stats   pipeline.Stats
	cfg     config.Config
}

func (f *fakePipeline) Session() uuid.UUID    { return f.session }
func (f *fakePipeline) State() gesture.State  { return f.state }
func (f *fakePipeline) Stats() pipeline.Stats { return f.stats }
func (f *fakePipeline) Config() config.Config { return f.cfg }

type fakeSource struct{ stats capture.SourceStats }

func (f fakeSource) Stats() capture.SourceStats { return f.stats }

func newFake() *fakePipeline {
	return &fakePipeline{
		session: uuid.New(),
		state:   gesture.StateCooldown,
		stats:   pipeline.Stats{FramesProcessed: 42, CommandsEmitted: 3, State: "cooldown"},
		cfg:     *config.DefaultConfig(),
	}
}

func get(t *testing.T, s *Server, path string, out any) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return rec
}

func TestHealth(t *testing.T) {
	p := newFake()
	s := New(nil, "127.0.0.1:0", p, nil)
	var h healthResponse
	rec := get(t, s, "/health", &h)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if h.Status != "ok" || h.Session != p.session.String() || h.State != "cooldown" {
		t.Fatalf("health %+v", h)
	}
}

func TestStatsIncludesSource(t *testing.T) {
	s := New(nil, "", newFake(), fakeSource{stats: capture.SourceStats{Captures: 7}})
	var resp struct {
		Pipeline map[string]any `json:"pipeline"`
		Source   map[string]any `json:"source"`
	}
	get(t, s, "/stats", &resp)
	if resp.Pipeline["frames_processed"] != float64(42) || resp.Pipeline["commands_emitted"] != float64(3) {
		t.Fatalf("pipeline stats %v", resp.Pipeline)
	}
	if resp.Source == nil || resp.Source["captures"] != float64(7) {
		t.Fatalf("source stats %v", resp.Source)
	}
}

func TestConfigAndMethods(t *testing.T) {
	s := New(nil, "", newFake(), nil)
	var cfg config.Config
	get(t, s, "/config", &cfg)
	if cfg.DiffThreshold != 25 || cfg.CooldownMs != 300 {
		t.Fatalf("config %+v", cfg)
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/config", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /config status %d", rec.Code)
	}
}

func TestStartAndShutdown(t *testing.T) {
	s := New(nil, "127.0.0.1:0", newFake(), nil)
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Fatal(err)
	}
	if err := s.Shutdown(ctx); err != nil {
		t.Fatalf("second shutdown: %v", err)
	}
}
