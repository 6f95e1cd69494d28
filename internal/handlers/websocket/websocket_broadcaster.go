package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/hadefuwa/osrs-wilderness/internal/app/dto"
	"github.com/hadefuwa/osrs-wilderness/internal/domain/model"
)

// WebSocketBroadcaster pushes aggregate statistics to every connected
// dashboard. Clients receive the current stats on connect and a fresh
// push after each dataset rebuild.
type WebSocketBroadcaster struct {
	clients  map[*websocket.Conn]struct{}
	mu       sync.Mutex
	upgrader websocket.Upgrader
	snapshot func() *model.AggregateStats
}

// NewWebSocketBroadcaster creates a broadcaster. snapshot supplies the
// current statistics for the initial push on connect; it may be nil.
func NewWebSocketBroadcaster(snapshot func() *model.AggregateStats) *WebSocketBroadcaster {
	return &WebSocketBroadcaster{
		clients:  make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		snapshot: snapshot,
	}
}

func (b *WebSocketBroadcaster) BroadcastStatistics(stats *model.AggregateStats) {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg, err := json.Marshal(dto.FromStats(stats))
	if err != nil {
		log.Printf("failed to marshal stats: %v", err)
		return
	}
	for c := range b.clients {
		if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
			log.Printf("websocket write error: %v", err)
			c.Close()
			delete(b.clients, c)
		}
	}
}

// Handler returns an http.HandlerFunc to accept websocket connections.
func (b *WebSocketBroadcaster) Handler() func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := b.upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("websocket upgrade error: %v", err)
			return
		}
		b.mu.Lock()
		b.clients[conn] = struct{}{}
		b.mu.Unlock()

		b.sendSnapshot(conn)

		// Read loop to detect closed connections.
		go func() {
			defer func() {
				b.mu.Lock()
				delete(b.clients, conn)
				b.mu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					break
				}
			}
		}()
	}
}

func (b *WebSocketBroadcaster) sendSnapshot(conn *websocket.Conn) {
	if b.snapshot == nil {
		return
	}
	stats := b.snapshot()
	if stats == nil {
		return
	}
	msg, err := json.Marshal(dto.FromStats(stats))
	if err != nil {
		log.Printf("failed to marshal stats snapshot: %v", err)
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Printf("websocket snapshot write error: %v", err)
	}
}
