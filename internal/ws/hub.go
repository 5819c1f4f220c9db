// Package ws provides the websocket transport: connection acceptance, the
// inbound event dispatcher, and room-scoped broadcasting.
package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/GitGRG/dragonshoard/internal/game"
)

// pingInterval is how often the writer goroutine pings an idle connection.
const pingInterval = 15 * time.Second

// Hub accepts websocket connections and routes their events into the game
// Store. One read loop per connection applies events in arrival order, and
// the per-session lock in the game package serializes concurrent rooms'
// overlapping connections; the hub itself holds no game state.
type Hub struct {
	store          *game.Store
	logger         *zap.Logger
	allowedOrigins map[string]bool

	mu      sync.RWMutex
	rooms   map[string]map[*client]struct{}
	closers map[*client]func()
}

// NewHub creates a Hub backed by the given store.
//
// Precondition: store and logger must be non-nil. An empty allowedOrigins
// accepts any origin.
func NewHub(store *game.Store, allowedOrigins []string, logger *zap.Logger) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o != "" {
			origins[o] = true
		}
	}
	return &Hub{
		store:          store,
		logger:         logger,
		allowedOrigins: origins,
		rooms:          make(map[string]map[*client]struct{}),
		closers:        make(map[*client]func()),
	}
}

// ServeWS upgrades the request to a websocket and runs the connection's read
// loop until the client disconnects. Malformed frames are dropped; they
// never terminate the connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin != "" && len(h.allowedOrigins) > 0 && !h.allowedOrigins[origin] {
		http.Error(w, "forbidden origin", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.logger.Debug("websocket accept failed", zap.Error(err))
		return
	}

	c := newClient()
	ctx, cancel := context.WithCancel(r.Context())

	h.mu.Lock()
	h.closers[c] = cancel
	h.mu.Unlock()

	h.logger.Info("client connected", zap.String("conn", c.id))

	// Writer: drains the send queue and keeps the connection alive.
	go func() {
		ping := time.NewTicker(pingInterval)
		defer func() {
			ping.Stop()
			_ = conn.Close(websocket.StatusNormalClosure, "bye")
		}()
		for {
			select {
			case msg, ok := <-c.send:
				if !ok {
					return
				}
				_ = conn.Write(ctx, websocket.MessageText, msg)
			case <-ping.C:
				_ = conn.Ping(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Reader: events are applied strictly in arrival order.
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			break
		}
		var env envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.logger.Debug("dropping malformed frame",
				zap.String("conn", c.id),
				zap.Error(err),
			)
			continue
		}
		h.dispatch(c, env)
	}

	cancel()
	h.disconnect(c)
	h.logger.Info("client disconnected", zap.String("conn", c.id))
}

// Stop force-closes every live connection. Used during shutdown, after the
// HTTP listener stops accepting; hijacked websocket connections are not
// covered by http.Server.Shutdown.
func (h *Hub) Stop() {
	h.mu.RLock()
	closers := make([]func(), 0, len(h.closers))
	for _, cancel := range h.closers {
		closers = append(closers, cancel)
	}
	h.mu.RUnlock()

	for _, cancel := range closers {
		cancel()
	}
}

// disconnect applies the implicit leave: roster removal, hand discard,
// eviction of the room when it empties, and a hand-counts broadcast to the
// remaining members.
func (h *Hub) disconnect(c *client) {
	if c.room != "" {
		counts, evicted, ok := h.store.Leave(c.room, c.id)

		h.mu.Lock()
		if members, exists := h.rooms[c.room]; exists {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, c.room)
			}
		}
		h.mu.Unlock()

		if ok && !evicted {
			h.broadcast(c.room, "hand-counts", counts)
		}
		c.room = ""
	}

	h.mu.Lock()
	delete(h.closers, c)
	h.mu.Unlock()
	close(c.send)
}

// sendTo queues one frame for a single client. A full queue drops the frame.
func (h *Hub) sendTo(c *client, event string, payload any) {
	msg, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding frame", zap.String("event", event), zap.Error(err))
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

// broadcast queues one frame for every member of the room. The frame is
// marshalled once; slow members drop it rather than stalling the room.
func (h *Hub) broadcast(roomID, event string, payload any) {
	msg, err := encode(event, payload)
	if err != nil {
		h.logger.Error("encoding frame", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for member := range h.rooms[roomID] {
		select {
		case member.send <- msg:
		default:
		}
	}
}
