// The Hub coordinates client registration, event broadcast, and connection
// cleanup.
package server

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"chathub/internal/metrics"
)

// Hub owns the set of live client connections. Registration, unregistration,
// and broadcast all flow through its event loop, so the client map is only
// iterated on snapshots and a concurrent disconnect can never corrupt an
// in-flight fan-out.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	done       chan struct{}
	log        zerolog.Logger
}

// NewHub creates a Hub ready to manage connections. Call Run in its own
// goroutine before registering clients.
func NewHub(log zerolog.Logger) *Hub {
	ctx, cancel := context.WithCancel(context.Background())
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		log:        log,
	}
}

// Register adds a connection to the broadcast set, effective for all
// subsequent broadcasts. The hub launches the client's pump goroutines.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.ctx.Done():
	}
}

// Unregister removes a connection from the broadcast set. Idempotent.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.ctx.Done():
	}
}

// Broadcast queues a frame for delivery to every currently registered
// client, including the one that caused it. A no-op when nobody is
// connected.
func (h *Hub) Broadcast(frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-h.ctx.Done():
	}
}

// SendTo queues a frame for one client, reporting whether it was accepted.
// A false return means the client is gone or its buffer is full; its own
// disconnect path takes care of cleanup.
func (h *Hub) SendTo(c *Client, frame []byte) bool {
	return h.safeSend(c, frame)
}

// ClientCount returns the number of currently registered clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) safeSend(client *Client, frame []byte) (sent bool) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Warn().Interface("panic", r).Msg("recovered sending to closing client")
			sent = false
		}
	}()

	// Hold the lock across the send so unregister cannot close the channel
	// mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()

	if _, exists := h.clients[client]; !exists || client.closed {
		return false
	}
	select {
	case client.send <- frame:
		return true
	default:
		return false
	}
}

// Run is the hub's event loop. It should be called in a separate goroutine
// and runs until Shutdown.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.closeAllClients()
			return

		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mu.Lock()
			client.closed = false
			h.clients[client] = true
			count := len(h.clients)
			h.mu.Unlock()
			metrics.Connections.Set(float64(count))
			h.log.Info().Str("client", client.id).Str("addr", client.addr).Int("total", count).Msg("client connected")

			h.wg.Add(2)
			go func() {
				defer h.wg.Done()
				client.writePump()
			}()
			go func() {
				defer h.wg.Done()
				client.readPump()
			}()

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closed = true
				count := len(h.clients)
				h.mu.Unlock()
				close(client.send)
				metrics.Connections.Set(float64(count))
				h.log.Info().Str("client", client.id).Int("total", count).Msg("client disconnected")
			} else {
				h.mu.Unlock()
			}

		case frame := <-h.broadcast:
			h.fanOut(frame)
		}
	}
}

// fanOut delivers one frame to every client in a snapshot of the registry.
// A client that cannot accept the frame is evicted; the others are
// unaffected.
func (h *Hub) fanOut(frame []byte) {
	clients := h.snapshot()

	var failed []*Client
	for _, client := range clients {
		if !h.safeSend(client, frame) {
			failed = append(failed, client)
		}
	}
	h.evict(failed)
}

func (h *Hub) snapshot() []*Client {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	return clients
}

func (h *Hub) evict(failed []*Client) {
	if len(failed) == 0 {
		return
	}

	h.mu.Lock()
	var channels []chan []byte
	for _, client := range failed {
		if _, exists := h.clients[client]; exists {
			delete(h.clients, client)
			client.closed = true
			channels = append(channels, client.send)
			h.log.Warn().Str("client", client.id).Msg("client evicted due to full send buffer")
		}
	}
	count := len(h.clients)
	h.mu.Unlock()

	metrics.Connections.Set(float64(count))
	for _, ch := range channels {
		close(ch)
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		client.closed = true
		clients = append(clients, client)
	}
	h.clients = make(map[*Client]bool)
	h.mu.Unlock()

	metrics.Connections.Set(0)
	for _, client := range clients {
		// Closing the send channel lets writePump deliver the close
		// message and return without waiting on its ping ticker.
		close(client.send)
		if client.conn != nil {
			if err := client.conn.Close(); err != nil && !isExpectedCloseError(err) {
				h.log.Debug().Err(err).Str("client", client.id).Msg("error closing client connection")
			}
		}
	}
	h.log.Info().Int("count", len(clients)).Msg("closed all client connections")
}

// Shutdown stops the event loop, closes every connection, and waits for the
// pump goroutines to finish or the timeout to elapse.
func (h *Hub) Shutdown(timeout time.Duration) error {
	h.cancel()
	<-h.done

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.log.Info().Msg("hub shutdown completed")
		return nil
	case <-time.After(timeout):
		h.log.Warn().Msg("hub shutdown timeout reached")
		return context.DeadlineExceeded
	}
}
