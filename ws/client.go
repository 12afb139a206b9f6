package ws

import (
	"time"

	"github.com/gorilla/websocket"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/services/dto"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client is one websocket connection of an authenticated user.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan dto.WSEvent

	manager *Manager
}

func NewClient(userID string, conn *websocket.Conn, manager *Manager) *Client {
	return &Client{
		UserID:  userID,
		Conn:    conn,
		Send:    make(chan dto.WSEvent, sendBufferSize),
		manager: manager,
	}
}

// ReadPump drains the connection so control frames are processed; the server
// never acts on client payloads. Exits on close or error and unregisters.
func (c *Client) ReadPump() {
	defer func() {
		c.manager.Unregister(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("ws read error", "user_id", c.UserID, "error", err.Error())
			}
			return
		}
	}
}

// WritePump serializes queued events to the connection and keeps it alive
// with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
