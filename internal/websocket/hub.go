package websocket

import (
	"context"
	"sync"

	"lesson-notes-be/internal/pkg/logger"
)

// Hub tracks the open chat sockets so they can be closed on shutdown.
type Hub struct {
	clients map[string]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	mu     sync.RWMutex
	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[string]*Client),
		logger:     log,
	}
}

// Run processes registrations until ctx is cancelled, then closes every
// remaining client.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			h.logger.Debug("Hub", "Client registered", map[string]interface{}{"client_id": client.ID})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				client.Close()
			}
			h.mu.Unlock()
			h.logger.Debug("Hub", "Client unregistered", map[string]interface{}{"client_id": client.ID})

		case <-ctx.Done():
			h.mu.Lock()
			for id, client := range h.clients {
				client.Close()
				delete(h.clients, id)
			}
			h.mu.Unlock()
			h.logger.Info("Hub", "Hub stopped", nil)
			h.drain()
			return
		}
	}
}

// drain keeps accepting registrations after shutdown so that handlers
// still finishing never block.
func (h *Hub) drain() {
	go func() {
		for {
			select {
			case client := <-h.register:
				client.Close()
			case <-h.unregister:
			}
		}
	}()
}

// Active returns the number of open chat sockets.
func (h *Hub) Active() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
