package handlers

import (
	"net/http"

	"asset_bridge/internal/logger"
	"asset_bridge/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// public read-only feed
		return true
	},
}

// FeedWS upgrades the connection and subscribes it to the market event stream.
func (h *Handler) FeedWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	client := ws.NewClient(conn, h.Feed)
	go client.Serve()
}
