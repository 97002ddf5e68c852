package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/mapmark/pinpoint/internal/infrastructure/realtime"
)

// ConnectionAttacher takes ownership of an upgraded websocket connection.
type ConnectionAttacher interface {
	Attach(conn *websocket.Conn) *realtime.Client
}

type RealtimeHandler struct {
	hub      ConnectionAttacher
	upgrader websocket.Upgrader
}

// NewRealtimeHandler creates a handler that accepts sockets from allowedOrigins.
func NewRealtimeHandler(hub ConnectionAttacher, allowedOrigins []string) *RealtimeHandler {
	return &RealtimeHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// Connect upgrades the request. Authentication happens over the socket with
// the authenticate event.
func (h *RealtimeHandler) Connect(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response.
		_ = c.Error(err)
		return
	}
	if h.hub.Attach(conn) == nil {
		_ = conn.Close()
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
