// internal/handlers/ws/websocket.go
package ws

import (
	"net/http"
	"time"

	"lenddesk-service/internal/notify"
	"lenddesk-service/internal/pkg/response"
	authsvc "lenddesk-service/internal/service/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// The service binds to the operator's own host; origin checks
		// would only lock out local tooling.
		return true
	},
}

type WebSocketHandler struct {
	hub        *notify.Hub
	controller *authsvc.Controller
	logger     *zap.Logger
}

func NewWebSocketHandler(hub *notify.Hub, controller *authsvc.Controller, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:        hub,
		controller: controller,
		logger:     logger,
	}
}

// HandleConnection upgrades an authenticated request to a notification stream.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	state := h.controller.State()
	if !state.IsAuthenticated {
		response.Unauthorized(c, "not authenticated")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := notify.NewClient(h.hub, conn, h.logger)
	h.hub.Register <- client

	h.logger.Info("notification client connected", zap.String("ip", c.ClientIP()))

	go client.WritePump()
	go client.ReadPump()
}

// GetStats reports connection counts for diagnostics.
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	}
	response.Success(c, http.StatusOK, "notification stream stats", stats)
}
