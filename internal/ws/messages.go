package ws

import "encoding/json"

// envelope is the wire frame: an event name plus an event-specific payload.
type envelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// outEnvelope mirrors envelope for marshalling outbound frames.
type outEnvelope struct {
	T string `json:"t"`
	D any    `json:"d,omitempty"`
}

// Inbound payloads.

type joinRoomPayload struct {
	Room string `json:"room"`
}

type playCardPayload struct {
	Card string  `json:"card"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type moveTableCardPayload struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type returnFromHandPayload struct {
	Card string `json:"card"`
}

type returnFromTablePayload struct {
	Index int    `json:"index"`
	Card  string `json:"card"`
}

type moveObjectPayload struct {
	Index int     `json:"index"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type updateValuePayload struct {
	Index int `json:"index"`
	Value any `json:"value"`
}

// moveEvents maps inbound move events to their layer names. One move event
// per layer.
var moveEvents = map[string]string{
	"move-dot":      "dots",
	"move-hex":      "hexes",
	"move-square":   "squares",
	"move-image":    "images",
	"move-c-image":  "c-images",
	"move-g-image":  "g-images",
	"move-cs-image": "cs-images",
	"move-d-image":  "d-images",
}

// updateEvents maps inbound value-update events to their layer names. Only
// the value-bearing layers have one.
var updateEvents = map[string]string{
	"update-hex":    "hexes",
	"update-square": "squares",
}

// layerUpdateEvent returns the outbound event name carrying a layer's state.
func layerUpdateEvent(layer string) string {
	return layer + "-update"
}

func encode(event string, payload any) ([]byte, error) {
	return json.Marshal(outEnvelope{T: event, D: payload})
}
