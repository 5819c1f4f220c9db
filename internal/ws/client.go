package ws

import "github.com/google/uuid"

// sendBuffer is the per-client outbound queue length. A client that falls
// further behind than this drops frames rather than stalling its room.
const sendBuffer = 64

// client is one websocket connection. The id is transient and scoped to the
// connection; it doubles as the participant identifier inside a room.
type client struct {
	id   string
	send chan []byte

	// room is the identifier of the joined room, or "" before a successful
	// join-room. Written and read only by the connection's own read loop.
	room string
}

func newClient() *client {
	return &client{
		id:   uuid.NewString(),
		send: make(chan []byte, sendBuffer),
	}
}
