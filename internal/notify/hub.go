// internal/notify/hub.go
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// Notification is a transient operator-visible toast.
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub fans notifications out to every connected UI client. It satisfies the
// auth controller's Notifier interface, so login/logout confirmations reach
// the operator's open tabs.
type Hub struct {
	clients map[*Client]bool
	mu      sync.RWMutex

	Register   chan *Client
	unregister chan *Client
	broadcast  chan *Notification

	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Notification, 256),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.shutdown()
			return

		case client := <-h.Register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case n := <-h.broadcast:
			h.broadcastNotification(n)
		}
	}
}

// Publish queues a notification for every connected client. A full queue
// drops the notification rather than blocking a lifecycle operation; toasts
// are transient by nature.
func (h *Hub) Publish(level Level, message string) {
	n := &Notification{
		ID:        ulid.Make().String(),
		Level:     level,
		Message:   message,
		Timestamp: time.Now(),
	}
	select {
	case h.broadcast <- n:
	default:
		h.logger.Warn("notification queue full, dropping",
			zap.String("level", string(level)),
			zap.String("message", message),
		)
	}
}

// Success implements the controller's Notifier interface.
func (h *Hub) Success(message string) { h.Publish(LevelSuccess, message) }

// Error implements the controller's Notifier interface.
func (h *Hub) Error(message string) { h.Publish(LevelError, message) }

// Warning implements the controller's Notifier interface.
func (h *Hub) Warning(message string) { h.Publish(LevelWarning, message) }

func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client] = true
	h.logger.Info("notification client connected", zap.Int("total", len(h.clients)))
}

func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.clients[client]; exists {
		delete(h.clients, client)
		client.Close()
		h.logger.Info("notification client disconnected", zap.Int("total", len(h.clients)))
	}
}

func (h *Hub) broadcastNotification(n *Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients {
		client.Send(n)
	}
}

// TotalClients returns the number of connected clients.
func (h *Hub) TotalClients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		client.Close()
	}
	h.clients = make(map[*Client]bool)
}
