package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/Guliveer/vitalis/monitor/internal/models"
	"github.com/Guliveer/vitalis/monitor/internal/poller"
	"github.com/Guliveer/vitalis/monitor/internal/provider"
)

const (
	// Message types sent to stream subscribers.
	MessageSnapshot = "snapshot"
	MessageError    = "error"

	// MessageRefresh is the only message a subscriber may send.
	MessageRefresh = "refresh"

	sendBuffer   = 8
	writeTimeout = 5 * time.Second
)

// Message is one stream update. Error messages still carry the last
// accepted snapshot, if any, so late joiners can render degraded data.
type Message struct {
	Type      string                    `json:"type"`
	Snapshot  *models.TelemetrySnapshot `json:"snapshot,omitempty"`
	Error     string                    `json:"error,omitempty"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

type clientMessage struct {
	Type string `json:"type"`
}

type subscriber struct {
	send chan []byte
}

// Stream fans the updates of one shared poller out to every websocket
// subscriber. The poller runs only while at least one subscriber is
// connected.
type Stream struct {
	provider provider.Provider
	interval time.Duration
	logger   *zap.Logger
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
	poller      *poller.Poller
	epoch       uint64
	closed      bool
}

// NewStream creates a Stream polling p every interval.
func NewStream(p provider.Provider, interval time.Duration, logger *zap.Logger) *Stream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stream{
		provider:    p,
		interval:    interval,
		logger:      logger,
		subscribers: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the request and streams updates until either side
// closes the connection.
func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		http.Error(w, "stream closed", http.StatusServiceUnavailable)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("Websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sub := &subscriber{send: make(chan []byte, sendBuffer)}
	if !s.subscribe(sub) {
		return
	}
	defer s.unsubscribe(sub)

	go s.writePump(conn, sub)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == MessageRefresh {
			s.refresh()
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (s *Stream) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}

// Close stops the poller and disconnects every subscriber.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	p := s.poller
	s.poller = nil
	s.epoch++
	for sub := range s.subscribers {
		delete(s.subscribers, sub)
		close(sub.send)
	}
	s.mu.Unlock()

	if p != nil {
		p.Stop()
	}
}

func (s *Stream) subscribe(sub *subscriber) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.subscribers[sub] = struct{}{}

	if s.poller == nil {
		s.epoch++
		epoch := s.epoch
		s.poller = poller.Start(context.Background(), s.interval, s.provider.GetSystemStats,
			poller.WithName("stream"),
			poller.WithLogger(s.logger),
			poller.WithOnUpdate(func(state poller.State) { s.broadcast(epoch, state) }))
		s.logger.Debug("Stream poller started", zap.Duration("interval", s.poller.Interval()))
		return true
	}

	// Late joiners get the current state right away.
	if state := s.poller.State(); !state.Loading {
		if data, err := encodeState(state); err == nil {
			sub.send <- data
		}
	}
	return true
}

func (s *Stream) unsubscribe(sub *subscriber) {
	s.mu.Lock()
	if _, ok := s.subscribers[sub]; !ok {
		s.mu.Unlock()
		return
	}
	delete(s.subscribers, sub)
	close(sub.send)

	var p *poller.Poller
	if len(s.subscribers) == 0 {
		p = s.poller
		s.poller = nil
		s.epoch++
	}
	s.mu.Unlock()

	if p != nil {
		p.Stop()
		s.logger.Debug("Stream poller stopped")
	}
}

func (s *Stream) refresh() {
	s.mu.Lock()
	p := s.poller
	s.mu.Unlock()
	if p != nil {
		p.Refresh()
	}
}

// broadcast queues state for every subscriber. Slow subscribers miss
// updates instead of blocking the poller.
func (s *Stream) broadcast(epoch uint64, state poller.State) {
	data, err := encodeState(state)
	if err != nil {
		s.logger.Error("Encoding stream message failed", zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	for sub := range s.subscribers {
		select {
		case sub.send <- data:
		default:
			s.logger.Debug("Dropping update for slow subscriber")
		}
	}
}

func (s *Stream) writePump(conn *websocket.Conn, sub *subscriber) {
	for data := range sub.send {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			// Drain so unsubscribe can close the channel.
			for range sub.send {
			}
			return
		}
	}
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

func encodeState(state poller.State) ([]byte, error) {
	msg := Message{
		Type:      MessageSnapshot,
		Snapshot:  state.Snapshot,
		UpdatedAt: state.UpdatedAt,
	}
	if state.LastError != nil {
		msg.Type = MessageError
		msg.Error = state.LastError.Error()
	}
	return json.Marshal(msg)
}
