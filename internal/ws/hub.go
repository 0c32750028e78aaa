// Package ws pushes relayed log lines to connected WebSocket viewers.
package ws

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/followscope/followscope/internal/metrics"
)

// Hub channel buffer sizes.
const (
	broadcastBuffer = 256
	registerBuffer  = 64
	maxClients      = 1000
)

// shutdownLine is the last line every client receives on a graceful drain.
const shutdownLine = "server shutting down"

// Backlog supplies the lines replayed to a client when it connects.
type Backlog interface {
	Lines() []string
}

// Hub manages connected log viewers and broadcasts lines to them.
// All client map mutations happen exclusively in the Run goroutine.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	shutdown   chan struct{} // signals Run to begin graceful drain
	done       chan struct{} // closed when Run has finished draining
	count      atomic.Int64
	log        *logrus.Logger
	backlog    Backlog
}

// NewHub creates a Hub. backlog may be nil.
func NewHub(log *logrus.Logger, backlog Backlog) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client, registerBuffer),
		unregister: make(chan *Client, registerBuffer),
		broadcast:  make(chan []byte, broadcastBuffer),
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		log:        log,
		backlog:    backlog,
	}
}

// drainTimeout is how long the hub waits for clients to flush after shutdown.
const drainTimeout = 3 * time.Second

// Run starts the hub event loop. It should be run as a goroutine.
// It exits when Shutdown is called or the context is cancelled.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.drainClients()

			return
		case <-h.shutdown:
			h.drainClients()

			return

		case client := <-h.register:
			if len(h.clients) >= maxClients {
				h.log.Warn("connection limit reached, dropping log viewer")
				client.closeSend()

				continue
			}

			h.clients[client] = true
			h.replay(client)
			h.updateCount()
			h.log.WithField("total", len(h.clients)).Info("log viewer connected")

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				client.closeSend()
			}

			h.updateCount()
			h.log.WithField("total", len(h.clients)).Info("log viewer disconnected")

		case msg := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- msg:
				default:
					// Too slow; the viewer reconnects and gets the backlog.
					client.closeSend()
					delete(h.clients, client)
				}
			}

			h.updateCount()
		}
	}
}

func (h *Hub) updateCount() {
	h.count.Store(int64(len(h.clients)))
	metrics.WSConnections.Set(float64(len(h.clients)))
}

// replay queues the backlog on a newly registered client.
func (h *Hub) replay(client *Client) {
	if h.backlog == nil {
		return
	}

	for _, line := range h.backlog.Lines() {
		select {
		case client.send <- []byte(line):
		default:
			return
		}
	}
}

// Publish queues a line for every connected client. It never blocks and
// never logs: the log relay calls it from inside a logger hook.
func (h *Hub) Publish(line string) {
	select {
	case h.broadcast <- []byte(line):
	default:
		metrics.LogLinesDropped.Inc()
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	default:
		h.log.Warn("register channel full, dropping log viewer")
		c.closeSend()
	}
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	default:
		// Run loop already exited; client cleanup happened in Run shutdown.
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	return int(h.count.Load())
}

// Shutdown sends a final line to every client, waits for their write pumps
// to flush, then closes all connections. It blocks until the drain is
// complete or the timeout expires.
func (h *Hub) Shutdown() {
	close(h.shutdown)
	<-h.done
}

// drainClients notifies every client and waits for buffers to flush.
func (h *Hub) drainClients() {
	if len(h.clients) == 0 {
		return
	}

	h.log.WithField("clients", len(h.clients)).Info("draining log viewers")

	for client := range h.clients {
		select {
		case client.send <- []byte(shutdownLine):
		default:
		}
	}

	deadline := time.After(drainTimeout)
	ticker := time.NewTicker(50 * time.Millisecond) //nolint:mnd // poll interval
	defer ticker.Stop()

drain:
	for {
		allDrained := true

		for client := range h.clients {
			if len(client.send) > 0 {
				allDrained = false

				break
			}
		}

		if allDrained {
			break
		}

		select {
		case <-deadline:
			h.log.Warn("WebSocket drain timeout, closing remaining viewers")

			break drain
		case <-ticker.C:
		}
	}

	for client := range h.clients {
		client.closeSend()
		delete(h.clients, client)
	}

	h.updateCount()
}
