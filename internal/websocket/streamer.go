package websocket

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/govlayer/backend/internal/events"
)

// Streamer fans pipeline events out to WebSocket clients. It mirrors
// the SSE stream for consumers that want every decision's progress on
// one connection instead of per-decision streams.
type Streamer struct {
	bus        *events.Bus
	clients    map[*websocket.Conn]bool
	broadcast  chan *events.CloudEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.RWMutex
	upgrader   websocket.Upgrader
}

func NewStreamer(bus *events.Bus) *Streamer {
	return &Streamer{
		bus:        bus,
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan *events.CloudEvent, 256),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run pumps bus events to connected clients until the bus subscription
// closes. Call in a goroutine.
func (s *Streamer) Run() {
	sub := s.bus.Subscribe(
		events.TypeDecisionSubmitted,
		events.TypeDecisionStep,
		events.TypeDecisionComplete,
		events.TypeDecisionFailed,
	)

	go func() {
		for ev := range sub {
			s.broadcast <- ev
		}
	}()

	for {
		select {
		case client := <-s.register:
			s.mu.Lock()
			s.clients[client] = true
			n := len(s.clients)
			s.mu.Unlock()
			slog.Info("websocket client connected", "total", n)

		case client := <-s.unregister:
			s.mu.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				client.Close()
			}
			n := len(s.clients)
			s.mu.Unlock()
			slog.Info("websocket client disconnected", "total", n)

		case ev := <-s.broadcast:
			s.mu.Lock()
			for client := range s.clients {
				if err := client.WriteJSON(ev); err != nil {
					slog.Warn("websocket write failed, dropping client", "error", err)
					client.Close()
					delete(s.clients, client)
				}
			}
			s.mu.Unlock()
		}
	}
}

// HandleWebSocket upgrades the connection and registers the client.
// Inbound messages are discarded; the socket is read only to detect
// disconnect.
func (s *Streamer) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err)
		return
	}

	s.register <- conn

	go func() {
		defer func() { s.unregister <- conn }()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Statistics reports connection counts for the health endpoint.
func (s *Streamer) Statistics() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]interface{}{
		"connected_clients": len(s.clients),
		"broadcast_queue":   len(s.broadcast),
	}
}
