package ws

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/middleware"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: restrict to the frontend origin before exposing publicly
	},
}

type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// ServeWS upgrades an authenticated request to a websocket connection and
// registers it under the requester's user id, the equivalent of joining a
// per-user room.
func (h *Handler) ServeWS(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.WithError(err).Warn("ws upgrade failed", "user_id", userID)
		return
	}

	client := NewClient(userID, conn, h.manager)
	h.manager.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
