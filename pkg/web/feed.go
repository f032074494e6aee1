// Package web - live punishment feed over websockets.
package web

import (
	"net/http"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/AtlasStudios/AtlasModGo/pkg/logger"
	"github.com/AtlasStudios/AtlasModGo/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// host filtering already happens in logsMiddleware
	CheckOrigin: func(r *http.Request) bool { return true },
}

// FeedHub fans recorded punishments out to connected websocket clients.
// Slow or dead clients are dropped on the first failed write.
type FeedHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
}

// NewFeedHub creates an empty hub
func NewFeedHub() *FeedHub {
	return &FeedHub{
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// add registers a connection with the hub
func (h *FeedHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()
}

// remove drops a connection and closes it
func (h *FeedHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// ClientCount returns the number of connected feed clients
func (h *FeedHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends one punishment record to every connected client
func (h *FeedHub) Broadcast(p *models.Punishment) {
	data, err := json.Marshal(p)
	if err != nil {
		logger.Error("Failed to marshal feed event: "+err.Error(), "WebFeed")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.conns, conn)
			conn.Close()
		}
	}
}

// BroadcastPunishment fans a record out through the global server, if running
func BroadcastPunishment(p *models.Punishment) {
	if server == nil {
		return
	}
	server.feed.Broadcast(p)
}

// feedHandler upgrades the request to a websocket and keeps it attached to
// the hub until the client goes away. The feed is write-only; inbound
// messages are read and discarded to service control frames.
func feedHandler(c *gin.Context) {
	s := Get()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "feed unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed: "+err.Error(), "WebFeed")
		return
	}

	s.feed.add(conn)
	logger.Info("Feed client connected: "+c.ClientIP(), "WebFeed")

	go func() {
		defer s.feed.remove(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
