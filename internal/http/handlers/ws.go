package handlers

import (
	"net/http"

	"chat_economy/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// EventFeed upgrades the connection and streams economy events.
func (h *Handler) EventFeed(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("ws: upgrade failed", "error", err)
		return
	}
	h.Hub.Serve(conn)
}
