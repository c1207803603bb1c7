// HTTP server construction and graceful shutdown helpers.
package server

import (
	"context"
	"net/http"
	"time"
)

// CreateServer creates an HTTP server with production timeout defaults.
// ReadTimeout covers the upgrade handshake only; once a connection is
// hijacked for WebSocket traffic the client pumps manage their own
// deadlines.
func CreateServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// ShutdownServer gracefully shuts down the HTTP server, waiting for active
// requests to finish or the timeout to elapse.
func ShutdownServer(server *http.Server, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.Shutdown(ctx)
}
