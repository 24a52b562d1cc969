package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/soocke/gesture-scroll/domain/gesture"
	"github.com/soocke/gesture-scroll/domain/motion"
)

const (
	TypeScroll = "scroll"
	TypeAck    = "ack"

	wsWriteWait     = 5 * time.Second
	wsPingInterval  = 30 * time.Second
	wsReadLimit     = 4096
	wsReconnectWait = 2 * time.Second
)

// Message is the envelope of every frame exchanged with the actuator.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ScrollPayload is sent for each command.
type ScrollPayload struct {
	ID           string `json:"id"`
	Direction    string `json:"direction"`
	OffsetPixels int    `json:"offset_pixels"`
	DurationMs   int    `json:"duration_ms"`
	Timestamp    int64  `json:"timestamp_ms"`
}

// AckPayload is the actuator's reply once the gesture finished.
type AckPayload struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// WebSocketSink forwards commands to a remote actuator and waits for its
// acknowledgement. The connection is re-established in the background;
// commands dispatched while disconnected fail with ErrNotConnected.
type WebSocketSink struct {
	url    string
	logger *slog.Logger
	dialer *websocket.Dialer
	retry  time.Duration

	mu      sync.Mutex
	conn    *websocket.Conn
	pending map[uuid.UUID]chan error
	writeMu sync.Mutex

	lifeMu sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWebSocketSink(logger *slog.Logger, url string) *WebSocketSink {
	return &WebSocketSink{
		url:     url,
		logger:  logger,
		dialer:  websocket.DefaultDialer,
		retry:   wsReconnectWait,
		pending: make(map[uuid.UUID]chan error),
	}
}

// Start launches the connect loop. It returns immediately.
func (s *WebSocketSink) Start(ctx context.Context) {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.wg.Add(1)
	go s.loop(ctx)
}

// Close drops the connection and stops reconnecting. Idempotent.
func (s *WebSocketSink) Close() {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()
	if s.cancel == nil {
		return
	}
	s.cancel()
	s.mu.Lock()
	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.mu.Unlock()
	s.wg.Wait()
	s.cancel = nil
}

// Connected reports whether a connection is currently established.
func (s *WebSocketSink) Connected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn != nil
}

func (s *WebSocketSink) Dispatch(ctx context.Context, cmd gesture.ScrollCommand) error {
	if cmd.Direction == motion.None {
		return ErrInvalidCommand
	}
	payload, err := json.Marshal(ScrollPayload{
		ID:           cmd.ID.String(),
		Direction:    cmd.Direction.String(),
		OffsetPixels: cmd.OffsetPixels,
		DurationMs:   cmd.DurationMs,
		Timestamp:    cmd.Timestamp.UnixMilli(),
	})
	if err != nil {
		return err
	}
	data, err := json.Marshal(Message{Type: TypeScroll, Payload: payload})
	if err != nil {
		return err
	}

	ack := make(chan error, 1)
	s.mu.Lock()
	conn := s.conn
	if conn == nil {
		s.mu.Unlock()
		return ErrNotConnected
	}
	s.pending[cmd.ID] = ack
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.pending, cmd.ID)
		s.mu.Unlock()
	}()

	if err := s.write(conn, websocket.TextMessage, data); err != nil {
		return fmt.Errorf("action: websocket write: %w", err)
	}
	select {
	case err := <-ack:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *WebSocketSink) write(conn *websocket.Conn, kind int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(kind, data)
}

func (s *WebSocketSink) loop(ctx context.Context) {
	defer s.wg.Done()
	for {
		s.connect(ctx)
		select {
		case <-ctx.Done():
			return
		case <-time.After(s.retry):
			if s.logger != nil {
				s.logger.Debug("websocket sink reconnecting", "url", s.url)
			}
		}
	}
}

func (s *WebSocketSink) connect(ctx context.Context) {
	conn, _, err := s.dialer.DialContext(ctx, s.url, nil)
	if err != nil {
		if s.logger != nil && ctx.Err() == nil {
			s.logger.Warn("websocket sink connect failed", "url", s.url, "error", err)
		}
		return
	}
	s.mu.Lock()
	if ctx.Err() != nil {
		s.mu.Unlock()
		_ = conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("websocket sink connected", "url", s.url)
	}

	connDone := make(chan struct{})
	pingDone := make(chan struct{})
	go func() {
		defer close(pingDone)
		s.pingLoop(conn, connDone)
	}()

	s.readLoop(conn)

	close(connDone)
	<-pingDone
	_ = conn.Close()
	s.mu.Lock()
	s.conn = nil
	for id, ch := range s.pending {
		ch <- fmt.Errorf("%w: connection lost", ErrNotConnected)
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if s.logger != nil {
		s.logger.Info("websocket sink disconnected", "url", s.url)
	}
}

func (s *WebSocketSink) readLoop(conn *websocket.Conn) {
	conn.SetReadLimit(wsReadLimit)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && s.logger != nil {
				s.logger.Warn("websocket sink read", "error", err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			if s.logger != nil {
				s.logger.Warn("websocket sink invalid message", "error", err)
			}
			continue
		}
		if msg.Type != TypeAck {
			continue
		}
		var ack AckPayload
		if err := json.Unmarshal(msg.Payload, &ack); err != nil {
			continue
		}
		id, err := uuid.Parse(ack.ID)
		if err != nil {
			continue
		}
		s.resolve(id, ack)
	}
}

func (s *WebSocketSink) resolve(id uuid.UUID, ack AckPayload) {
	s.mu.Lock()
	ch, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()
	if !ok {
		return
	}
	if ack.OK {
		ch <- nil
		return
	}
	msg := ack.Error
	if msg == "" {
		msg = "rejected"
	}
	ch <- errors.New("action: actuator: " + msg)
}

func (s *WebSocketSink) pingLoop(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := s.write(conn, websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
