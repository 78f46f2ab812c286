// Package stream pushes snapshots to WebSocket subscribers.
package stream

import (
	"context"
	"encoding/json"

	"github.com/MatBureau/sysmonitor/internal/refresh"
	"github.com/MatBureau/sysmonitor/internal/system"
	"go.uber.org/zap"
)

// Feed starts a sampling loop that publishes to the hub until ctx ends.
// The hub runs it only while at least one client is connected, so the
// process-wide CPU cursor is left alone when nobody is streaming.
type Feed func(ctx context.Context) *refresh.Loop

type Hub struct {
	clients map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}

	feed     Feed
	loop     *refresh.Loop
	stopLoop context.CancelFunc

	log *zap.Logger
}

func NewHub(log *zap.Logger, feed Feed) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		done:       make(chan struct{}),
		feed:       feed,
		log:        log,
	}
}

// Run owns the client set until ctx is done, then closes every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true
			h.log.Debug("stream: client registered", zap.String("remote", c.remote), zap.Int("total_clients", len(h.clients)))
			if len(h.clients) == 1 {
				h.startFeed(ctx)
			} else {
				h.sendLatest(c)
			}

		case c := <-h.unregister:
			if h.clients[c] {
				h.drop(c)
				h.log.Debug("stream: client unregistered", zap.String("remote", c.remote), zap.Int("total_clients", len(h.clients)))
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					h.log.Warn("stream: client too slow, dropping", zap.String("remote", c.remote))
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	delete(h.clients, c)
	close(c.send)
	if len(h.clients) == 0 {
		h.stopFeed()
	}
}

func (h *Hub) startFeed(ctx context.Context) {
	if h.feed == nil || h.stopLoop != nil {
		return
	}
	loopCtx, cancel := context.WithCancel(ctx)
	h.stopLoop = cancel
	h.loop = h.feed(loopCtx)
	h.log.Debug("stream: sampling started")
}

func (h *Hub) stopFeed() {
	if h.stopLoop == nil {
		return
	}
	h.stopLoop()
	h.stopLoop, h.loop = nil, nil
	h.log.Debug("stream: sampling stopped")
}

// sendLatest gives a client joining a running stream the last good snapshot
// instead of making it wait for the next tick.
func (h *Hub) sendLatest(c *Client) {
	if h.loop == nil {
		return
	}
	snap, _, _ := h.loop.Latest()
	if snap == nil {
		return
	}
	msg, err := json.Marshal(snap)
	if err != nil {
		h.log.Error("stream: marshal snapshot", zap.Error(err))
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// Publish queues a snapshot for every connected client. When the queue is
// full the snapshot is discarded; the next tick brings a fresher one.
func (h *Hub) Publish(snap system.Snapshot) {
	msg, err := json.Marshal(snap)
	if err != nil {
		h.log.Error("stream: marshal snapshot", zap.Error(err))
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		h.log.Warn("stream: broadcast queue full, snapshot skipped")
	}
}
