// Package status serves a small read-only HTTP API describing the running
// pipeline.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/domain/capture"
	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/pipeline"
)

// Pipeline is the view of the pipeline the server reports on.
type Pipeline interface {
	Session() uuid.UUID
	State() gesture.State
	Stats() pipeline.Stats
	Config() config.Config
}

// SourceStats reports frame source counters. May be nil.
type SourceStats interface {
	Stats() capture.SourceStats
}

type healthResponse struct {
	Status  string `json:"status"`
	Session string `json:"session"`
	State   string `json:"state"`
	Uptime  string `json:"uptime"`
}

type statsResponse struct {
	Pipeline pipeline.Stats       `json:"pipeline"`
	Source   *capture.SourceStats `json:"source,omitempty"`
}

// Server exposes /health, /stats and /config.
type Server struct {
	logger   *slog.Logger
	addr     string
	pipeline Pipeline
	source   SourceStats
	started  time.Time

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

func New(logger *slog.Logger, addr string, p Pipeline, source SourceStats) *Server {
	return &Server{logger: logger, addr: addr, pipeline: p, source: source, started: time.Now()}
}

// Router returns the route table; used directly by tests.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/config", s.handleConfig).Methods("GET")
	return r
}

// Start binds the address and serves in the background.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.srv != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.srv = &http.Server{Handler: s.Router(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) && s.logger != nil {
			s.logger.Error("status server", "error", err)
		}
	}()
	if s.logger != nil {
		s.logger.Info("status server listening", "addr", ln.Addr().String())
	}
	return nil
}

// Addr returns the bound address once started.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:  "ok",
		Session: s.pipeline.Session().String(),
		State:   s.pipeline.State().String(),
		Uptime:  time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Pipeline: s.pipeline.Stats()}
	if s.source != nil {
		st := s.source.Stats()
		resp.Source = &st
	}
	writeJSON(w, resp)
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.pipeline.Config())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
