package ws

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/GitGRG/dragonshoard/internal/game"
)

// dispatch applies one inbound event. Events arriving before a successful
// join-room, events with stale indices or absent cards, and unknown events
// are all dropped without a broadcast: clients race against in-flight
// deltas, and a stale mutation is not an error.
func (h *Hub) dispatch(c *client, env envelope) {
	if env.T == "join-room" {
		h.handleJoin(c, env.D)
		return
	}
	if c.room == "" {
		h.drop(c, env.T, "no room joined")
		return
	}

	sess, exists := h.store.Get(c.room)
	if !exists {
		h.drop(c, env.T, "room gone")
		return
	}

	if layer, isMove := moveEvents[env.T]; isMove {
		h.handleMoveObject(c, sess, layer, env.D)
		return
	}
	if layer, isUpdate := updateEvents[env.T]; isUpdate {
		h.handleUpdateValue(c, sess, layer, env.D)
		return
	}

	switch env.T {
	case "draw-card":
		h.handleDraw(c, sess)
	case "shuffle-main-deck":
		sess.ShuffleDeck()
	case "play-card":
		h.handlePlay(c, sess, env.D)
	case "move-table-card":
		h.handleMoveTableCard(c, sess, env.D)
	case "return-card-from-hand":
		h.handleReturnFromHand(c, sess, env.D)
	case "return-card-from-table":
		h.handleReturnFromTable(c, sess, env.D)
	default:
		h.drop(c, env.T, "unknown event")
	}
}

func (h *Hub) handleJoin(c *client, data json.RawMessage) {
	if c.room != "" {
		h.drop(c, "join-room", "already joined")
		return
	}
	var p joinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Room == "" {
		h.drop(c, "join-room", "bad payload")
		return
	}

	_, snap, err := h.store.Join(p.Room, c.id)
	if errors.Is(err, game.ErrRoomFull) {
		h.sendTo(c, "room-full", nil)
		return
	}
	if err != nil {
		h.drop(c, "join-room", err.Error())
		return
	}

	c.room = p.Room
	h.mu.Lock()
	if h.rooms[p.Room] == nil {
		h.rooms[p.Room] = make(map[*client]struct{})
	}
	h.rooms[p.Room][c] = struct{}{}
	h.mu.Unlock()

	// Private full-state snapshot; the only resnapshot a connection ever
	// receives. Everything after this is deltas.
	h.sendTo(c, "joined", snap.Count)
	h.sendTo(c, "your-hand", snap.Hand)
	h.sendTo(c, "table-update", snap.Table)
	for _, layer := range snap.Layers {
		h.sendTo(c, layerUpdateEvent(layer.Name), layer.Objects)
	}
	h.broadcast(c.room, "hand-counts", snap.Counts)
}

func (h *Hub) handleDraw(c *client, sess *game.Session) {
	hand, counts, ok := sess.Draw(c.id)
	if !ok {
		h.drop(c, "draw-card", "deck empty")
		return
	}
	h.sendTo(c, "your-hand", hand)
	h.broadcast(c.room, "hand-counts", counts)
}

func (h *Hub) handlePlay(c *client, sess *game.Session, data json.RawMessage) {
	var p playCardPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Card == "" {
		h.drop(c, "play-card", "bad payload")
		return
	}
	hand, table, counts, ok := sess.Play(c.id, game.Card(p.Card), p.X, p.Y)
	if !ok {
		h.drop(c, "play-card", "not a participant")
		return
	}
	h.broadcast(c.room, "table-update", table)
	h.sendTo(c, "your-hand", hand)
	h.broadcast(c.room, "hand-counts", counts)
}

func (h *Hub) handleMoveTableCard(c *client, sess *game.Session, data json.RawMessage) {
	var p moveTableCardPayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.drop(c, "move-table-card", "bad payload")
		return
	}
	table, ok := sess.MoveTableCard(p.Index, p.X, p.Y)
	if !ok {
		h.drop(c, "move-table-card", "stale index")
		return
	}
	h.broadcast(c.room, "table-update", table)
}

func (h *Hub) handleReturnFromHand(c *client, sess *game.Session, data json.RawMessage) {
	var p returnFromHandPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Card == "" {
		h.drop(c, "return-card-from-hand", "bad payload")
		return
	}
	hand, counts, ok := sess.ReturnFromHand(c.id, game.Card(p.Card))
	if !ok {
		h.drop(c, "return-card-from-hand", "card not in hand")
		return
	}
	h.sendTo(c, "your-hand", hand)
	h.broadcast(c.room, "hand-counts", counts)
}

func (h *Hub) handleReturnFromTable(c *client, sess *game.Session, data json.RawMessage) {
	var p returnFromTablePayload
	if err := json.Unmarshal(data, &p); err != nil || p.Card == "" {
		h.drop(c, "return-card-from-table", "bad payload")
		return
	}
	table, counts, ok := sess.ReturnFromTable(p.Index, game.Card(p.Card))
	if !ok {
		h.drop(c, "return-card-from-table", "stale index or card")
		return
	}
	h.broadcast(c.room, "table-update", table)
	h.broadcast(c.room, "hand-counts", counts)
}

func (h *Hub) handleMoveObject(c *client, sess *game.Session, layer string, data json.RawMessage) {
	var p moveObjectPayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.drop(c, "move "+layer, "bad payload")
		return
	}
	objects, ok := sess.MoveObject(layer, p.Index, p.X, p.Y)
	if !ok {
		h.drop(c, "move "+layer, "stale index")
		return
	}
	h.broadcast(c.room, layerUpdateEvent(layer), objects)
}

func (h *Hub) handleUpdateValue(c *client, sess *game.Session, layer string, data json.RawMessage) {
	var p updateValuePayload
	if err := json.Unmarshal(data, &p); err != nil {
		h.drop(c, "update "+layer, "bad payload")
		return
	}
	objects, ok := sess.UpdateValue(layer, p.Index, p.Value)
	if !ok {
		h.drop(c, "update "+layer, "stale index")
		return
	}
	h.broadcast(c.room, layerUpdateEvent(layer), objects)
}

func (h *Hub) drop(c *client, event, reason string) {
	h.logger.Debug("dropping event",
		zap.String("conn", c.id),
		zap.String("event", event),
		zap.String("reason", reason),
	)
}
