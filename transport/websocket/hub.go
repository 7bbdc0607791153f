package websocket

import (
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/arcade-backend/internal/tictactoe"
)

// Hub maps connection ids to live clients and delivers router notifications.
type Hub struct {
	logger *slog.Logger

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:  logger.With("component", "ws-hub"),
		clients: make(map[string]*client),
	}
}

// Send enqueues msg for its connection. A client whose queue is full is dropped;
// its read loop then disconnects it from the room.
func (that *Hub) Send(msg tictactoe.Outbound) {
	log := that.logger.With("method", "Send", "connID", msg.ConnID, "action", msg.Event)

	that.mu.RLock()
	c, ok := that.clients[msg.ConnID]
	that.mu.RUnlock()

	if !ok {
		log.Debug("connection is gone")
		return
	}

	data, err := encodeMessage(msg.Event, msg.Payload)
	if err != nil {
		log.Error("failed to encode message", "error", err)
		return
	}

	if !c.enqueue(data) {
		log.Warn("send buffer is full, dropping connection")
		c.close()
	}
}

func (that *Hub) register(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.clients[c.id] = c
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	if that.clients[c.id] == c {
		delete(that.clients, c.id)
	}
	that.mu.Unlock()

	c.close()
}

func (that *Hub) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.clients)
}

// Close drops every client.
func (that *Hub) Close() {
	that.mu.Lock()
	clients := that.clients
	that.clients = make(map[string]*client)
	that.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
