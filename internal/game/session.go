package game

import (
	"errors"
	"fmt"
	"sync"
)

// MaxPlayers is the participant capacity of a room.
const MaxPlayers = 4

// ErrRoomFull is returned by Join when the roster already holds MaxPlayers.
var ErrRoomFull = errors.New("room is full")

// Session is the authoritative state for one room. Every operation takes the
// session mutex, so all mutations within a room are totally ordered; sessions
// share no state, so distinct rooms proceed in parallel.
//
// Invariant: the multiset deck ∪ hands ∪ table card fields always equals the
// DeckSize-card universe, provided clients only move cards through the
// protocol operations.
type Session struct {
	mu  sync.Mutex
	id  string
	src Source

	players []string          // join order; len <= MaxPlayers
	hands   map[string][]Card // player id -> hand
	deck    []Card
	table   []PlacedCard
	layers  map[string]*Layer
}

// newSession creates a session with a freshly shuffled deck, an empty table,
// and seeded object layers. Callers go through Store.Join; sessions are
// never created directly.
func newSession(id string, src Source) *Session {
	layers := make(map[string]*Layer)
	for _, l := range seedLayers() {
		layers[l.Name()] = l
	}
	return &Session{
		id:     id,
		src:    src,
		hands:  make(map[string][]Card),
		deck:   newDeck(src),
		layers: layers,
	}
}

// JoinSnapshot is the full private state sent to a connection immediately
// after a successful join. All later updates are deltas.
type JoinSnapshot struct {
	Count  int
	Hand   []Card
	Table  []PlacedCard
	Layers []LayerSnapshot
	Counts []HandCount
}

// LayerSnapshot is one layer's name and current entries.
type LayerSnapshot struct {
	Name    string
	Objects []Object
}

// join appends connID to the roster with an empty hand.
//
// Postcondition: On ErrRoomFull no state changes. On success the returned
// snapshot reflects the post-join state.
func (s *Session) join(connID string) (JoinSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.hands[connID]; exists {
		return JoinSnapshot{}, fmt.Errorf("connection %q already joined room %q", connID, s.id)
	}
	if len(s.players) >= MaxPlayers {
		return JoinSnapshot{}, ErrRoomFull
	}

	s.players = append(s.players, connID)
	s.hands[connID] = nil

	snap := JoinSnapshot{
		Count:  len(s.players),
		Hand:   []Card{},
		Table:  s.tableCopy(),
		Counts: s.handCounts(),
	}
	for _, name := range layerNames {
		snap.Layers = append(snap.Layers, LayerSnapshot{
			Name:    name,
			Objects: s.layers[name].snapshot(),
		})
	}
	return snap, nil
}

// leave removes connID from the roster and discards its hand. The discarded
// cards are gone for the session's remaining lifetime; they are not returned
// to the deck. Idempotent for unknown connections.
//
// Postcondition: empty is true iff the roster is empty after removal.
func (s *Session) leave(connID string) (counts []HandCount, empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, member := s.hands[connID]; member {
		delete(s.hands, connID)
		for i, id := range s.players {
			if id == connID {
				s.players = append(s.players[:i], s.players[i+1:]...)
				break
			}
		}
	}
	return s.handCounts(), len(s.players) == 0
}

// Draw pops one card off the top of the deck into connID's hand. No-op when
// the deck is empty or connID is not a participant.
func (s *Session) Draw(connID string) (hand []Card, counts []HandCount, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, member := s.hands[connID]
	if !member || len(s.deck) == 0 {
		return nil, nil, false
	}

	card := s.deck[len(s.deck)-1]
	s.deck = s.deck[:len(s.deck)-1]
	s.hands[connID] = append(h, card)

	return s.handCopy(connID), s.handCounts(), true
}

// ShuffleDeck reorders the deck in place. Deck membership never changes and
// nothing is broadcast; the deck is face-down and no event exposes it.
func (s *Session) ShuffleDeck() {
	s.mu.Lock()
	defer s.mu.Unlock()
	shuffle(s.deck, s.src)
}

// Play places card on the table at (x, y). The card is removed from connID's
// hand when present, but the table is appended unconditionally: clients may
// race against in-flight broadcasts and a stale hand view must not lose the
// placement.
func (s *Session) Play(connID string, card Card, x, y float64) (hand []Card, table []PlacedCard, counts []HandCount, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, member := s.hands[connID]
	if !member {
		return nil, nil, nil, false
	}

	for i, c := range h {
		if c == card {
			s.hands[connID] = append(h[:i], h[i+1:]...)
			break
		}
	}
	s.table = append(s.table, PlacedCard{Card: card, X: x, Y: y})

	return s.handCopy(connID), s.tableCopy(), s.handCounts(), true
}

// MoveTableCard overwrites the position of the table entry at index. No-op
// for out-of-range indices.
func (s *Session) MoveTableCard(index int, x, y float64) (table []PlacedCard, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.table) {
		return nil, false
	}
	s.table[index].X = x
	s.table[index].Y = y
	return s.tableCopy(), true
}

// ReturnFromHand moves card from connID's hand back into the deck and
// reshuffles. No-op when the card is not in that hand.
func (s *Session) ReturnFromHand(connID string, card Card) (hand []Card, counts []HandCount, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, member := s.hands[connID]
	if !member {
		return nil, nil, false
	}

	found := false
	for i, c := range h {
		if c == card {
			s.hands[connID] = append(h[:i], h[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil, nil, false
	}

	s.deck = append(s.deck, card)
	shuffle(s.deck, s.src)

	return s.handCopy(connID), s.handCounts(), true
}

// ReturnFromTable removes the table entry at index and returns its card to
// the deck, reshuffling. The card must still match what the client saw at
// that index; a mismatch means the table changed under the client and the
// request is dropped.
func (s *Session) ReturnFromTable(index int, card Card) (table []PlacedCard, counts []HandCount, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.table) || s.table[index].Card != card {
		return nil, nil, false
	}

	s.table = append(s.table[:index], s.table[index+1:]...)
	s.deck = append(s.deck, card)
	shuffle(s.deck, s.src)

	return s.tableCopy(), s.handCounts(), true
}

// MoveObject overwrites the position of one entry in the named layer, value
// untouched. No-op for unknown layers and out-of-range indices.
func (s *Session) MoveObject(layer string, index int, x, y float64) (objects []Object, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, exists := s.layers[layer]
	if !exists || !l.move(index, x, y) {
		return nil, false
	}
	return l.snapshot(), true
}

// UpdateValue overwrites the value of one entry in the named layer. No-op
// for unknown or non-value-bearing layers and out-of-range indices.
func (s *Session) UpdateValue(layer string, index int, value any) (objects []Object, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, exists := s.layers[layer]
	if !exists || !l.setValue(index, value) {
		return nil, false
	}
	return l.snapshot(), true
}

// ID returns the room identifier.
func (s *Session) ID() string { return s.id }

// Occupancy returns the current roster size.
func (s *Session) Occupancy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.players)
}

// HandCounts returns the current per-player hand sizes in join order.
func (s *Session) HandCounts() []HandCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handCounts()
}

// DeckLen returns the number of cards currently in the deck.
func (s *Session) DeckLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deck)
}

// Hand returns a copy of connID's hand, or nil if not a participant.
func (s *Session) Hand(connID string) []Card {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, member := s.hands[connID]; !member {
		return nil
	}
	return s.handCopy(connID)
}

// Table returns a copy of the current table.
func (s *Session) Table() []PlacedCard {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tableCopy()
}

// LayerObjects returns a copy of the named layer's entries.
func (s *Session) LayerObjects(layer string) ([]Object, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, exists := s.layers[layer]
	if !exists {
		return nil, false
	}
	return l.snapshot(), true
}

// Callers must hold s.mu.

func (s *Session) handCounts() []HandCount {
	counts := make([]HandCount, 0, len(s.players))
	for _, id := range s.players {
		counts = append(counts, HandCount{ID: id, Count: len(s.hands[id])})
	}
	return counts
}

func (s *Session) handCopy(connID string) []Card {
	h := s.hands[connID]
	out := make([]Card, len(h))
	copy(out, h)
	return out
}

func (s *Session) tableCopy() []PlacedCard {
	out := make([]PlacedCard, len(s.table))
	copy(out, s.table)
	return out
}
