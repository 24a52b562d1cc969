// Package pipeline runs the frame-to-command pipeline: a single worker
// goroutine that diffs each admitted frame against the previous one,
// classifies the motion direction, passes the event through the cooldown
// gate and emits scroll commands.
//
// Frames enter through Offer, which never blocks: a frame is admitted only
// while the worker is idle and dropped otherwise. Everything else the worker
// reacts to (dispatch completions, cooldown timer) arrives as a message on
// the same ordered mailbox, so pipeline state is only ever touched by the
// worker.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/soocke/gesture-scroll/config"
	"github.com/soocke/gesture-scroll/domain/frame"
	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/motion"
)

const (
	defaultStatsInterval = 5 * time.Second
	mailboxSize          = 64
)

var (
	ErrAlreadyStarted = errors.New("pipeline: already started")
	ErrStopped        = errors.New("pipeline: stopped")
)

// Observer receives a report for every processed frame pair. It runs on the
// worker goroutine and must return quickly; the report's Mask is only valid
// during the call.
type Observer interface {
	ObserveCycle(CycleReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(CycleReport)

func (f ObserverFunc) ObserveCycle(r CycleReport) { f(r) }

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClock replaces time.Now for the gate. The clock must be monotonic.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithObserver registers an observer for processed cycles.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) {
		if o != nil {
			p.observers = append(p.observers, o)
		}
	}
}

// WithStatsInterval sets how often the worker logs its counters.
func WithStatsInterval(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.statsInterval = d
		}
	}
}

// events
type (
	msgFrame           struct{ f *frame.Frame }
	msgDispatchResult  struct{ res gesture.DispatchResult }
	msgCooldownElapsed struct{}
)

// Pipeline is the frame-to-command actor. Use New to construct it.
type Pipeline struct {
	cfg           *config.Config
	logger        *slog.Logger
	session       uuid.UUID
	now           func() time.Time
	observers     []Observer
	statsInterval time.Duration

	mailbox chan any
	busy    atomic.Bool
	lastSeq atomic.Uint64
	seqSeen atomic.Bool // lastSeq is valid

	// admitMu orders Offer against Stop so no frame is sent after shutdown began.
	admitMu sync.RWMutex
	running bool

	lifeMu  sync.Mutex
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	// worker-owned
	cyc           *cycle
	emitter       *gesture.Emitter
	cooldownTimer *time.Timer

	counters
}

// New builds a pipeline dispatching to sink. cfg nil means defaults.
func New(logger *slog.Logger, cfg *config.Config, sink gesture.Sink, opts ...Option) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	local := *cfg
	_ = local.Validate()
	session := uuid.New()
	if logger != nil {
		logger = logger.With("session", session.String())
	}
	p := &Pipeline{
		cfg:           &local,
		logger:        logger,
		session:       session,
		now:           time.Now,
		statsInterval: defaultStatsInterval,
		mailbox:       make(chan any, mailboxSize),
	}
	for _, o := range opts {
		o(p)
	}
	gate := gesture.NewGate(logger, local.Cooldown(), local.ScrollOffsetPixels, local.ScrollDurationMs)
	gate.AddListener(func(prev, next gesture.State) { p.state.Store(int32(next)) })
	p.cyc = &cycle{
		detector:   motion.NewDetector(local.DiffThreshold, local.MotionFraction),
		classifier: motion.NewClassifier(local.DirectionNoiseFloor, local.DirectionSmoothing),
		gate:       gate,
	}
	p.emitter = gesture.NewEmitter(sink, logger, local.DispatchTimeout(), p.onDispatchResult)
	return p
}

// Session returns the id attached to this pipeline's logs.
func (p *Pipeline) Session() uuid.UUID { return p.session }

// Config returns the effective (validated) configuration.
func (p *Pipeline) Config() config.Config { return *p.cfg }

// State returns the cooldown gate state.
func (p *Pipeline) State() gesture.State { return gesture.State(p.state.Load()) }

// Start spawns the worker and begins accepting frames. It returns
// immediately; the worker runs until ctx is done or Stop is called.
func (p *Pipeline) Start(ctx context.Context) error {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	if p.stopped {
		return ErrStopped
	}
	if p.started {
		return ErrAlreadyStarted
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true

	p.wg.Add(1)
	go p.loop()

	p.admitMu.Lock()
	p.running = true
	p.admitMu.Unlock()
	if p.logger != nil {
		p.logger.Info("pipeline started", "cooldown_ms", p.cfg.CooldownMs, "diff_threshold", p.cfg.DiffThreshold,
			"motion_fraction", p.cfg.MotionFraction)
	}
	return nil
}

// Stop stops accepting frames, lets the in-flight cycle finish, cancels the
// cooldown timer and in-flight dispatches, and releases every held frame.
// No command is emitted after Stop returns. Idempotent.
func (p *Pipeline) Stop() error {
	p.lifeMu.Lock()
	defer p.lifeMu.Unlock()
	if p.stopped {
		return nil
	}
	p.stopped = true

	p.closeAdmission()

	if p.started {
		p.cancel()
		p.wg.Wait()
	}
	if p.cooldownTimer != nil {
		p.cooldownTimer.Stop()
	}
	p.cyc.release()
	p.cyc.gate.Reset()
	p.emitter.Close()
	p.drain()
	if p.logger != nil {
		st := p.Stats()
		p.logger.Info("pipeline stopped", "processed", st.FramesProcessed, "dropped", st.FramesDropped,
			"commands", st.CommandsEmitted)
	}
	return nil
}

// closeAdmission makes every later Offer fail. It runs on Stop and when the
// worker exits because its context ended.
func (p *Pipeline) closeAdmission() {
	p.admitMu.Lock()
	p.running = false
	p.admitMu.Unlock()
}

// drain releases frames still queued in the mailbox after the worker exited.
func (p *Pipeline) drain() {
	for {
		select {
		case m := <-p.mailbox:
			if mf, ok := m.(msgFrame); ok {
				frame.Release(mf.f)
			}
		default:
			return
		}
	}
}

// post delivers a non-frame message without blocking.
func (p *Pipeline) post(m any) bool {
	select {
	case p.mailbox <- m:
		return true
	default:
		return false
	}
}

func (p *Pipeline) onDispatchResult(res gesture.DispatchResult) {
	if !p.post(msgDispatchResult{res: res}) {
		p.resultsLost.Add(1)
	}
}

func (p *Pipeline) loop() {
	defer p.wg.Done()
	ticker := time.NewTicker(p.statsInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.ctx.Done():
			p.closeAdmission()
			return
		case m := <-p.mailbox:
			switch e := m.(type) {
			case msgFrame:
				p.handleFrame(p.cyc, e.f)
			case msgDispatchResult:
				p.handleDispatchResult(e.res)
			case msgCooldownElapsed:
				p.cyc.gate.Expire(p.now())
			}
		case <-ticker.C:
			p.logStats()
		}
	}
}

func (p *Pipeline) handleDispatchResult(res gesture.DispatchResult) {
	if res.Err != nil {
		p.dispatchFailed.Add(1)
		if p.logger != nil {
			p.logger.Warn("scroll dispatch failed", "id", res.CommandID.String(), "direction", res.Direction.String(),
				"elapsed", res.Elapsed, "error", res.Err)
		}
		return
	}
	p.dispatchOK.Add(1)
	if p.logger != nil {
		p.logger.Debug("scroll dispatch completed", "id", res.CommandID.String(), "elapsed", res.Elapsed)
	}
}

// armCooldown schedules a mailbox message for the end of the cooldown so the
// gate state is reported as idle even when no further frames arrive.
func (p *Pipeline) armCooldown(d time.Duration) {
	if p.cooldownTimer == nil {
		p.cooldownTimer = time.AfterFunc(d, func() { p.post(msgCooldownElapsed{}) })
		return
	}
	p.cooldownTimer.Reset(d)
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r, "stack", string(debug.Stack()))
		}
	}
}
