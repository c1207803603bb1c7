// WebSocket upgrade endpoint.
package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WebSocketHandler upgrades HTTP requests to WebSocket connections and hands
// them to the hub, which takes ownership for the connection's lifetime.
type WebSocketHandler struct {
	hub      *Hub
	handler  *Handler
	cfg      *Config
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

// NewWebSocketHandler builds the upgrade endpoint with the configured origin
// policy applied at handshake time.
func NewWebSocketHandler(hub *Hub, handler *Handler, cfg *Config, log zerolog.Logger) *WebSocketHandler {
	policy := newOriginPolicy(cfg.AllowedOrigins, log)
	return &WebSocketHandler{
		hub:     hub,
		handler: handler,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     policy.check,
		},
		log: log,
	}
}

func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Str("addr", r.RemoteAddr).Msg("websocket upgrade failed")
		return
	}

	client := NewClient(conn, h.hub, h.handler, r.RemoteAddr, h.cfg, h.log)
	// The hub launches the client's pump goroutines on registration.
	h.hub.Register(client)
}
