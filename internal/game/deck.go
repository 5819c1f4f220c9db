// Package game holds the authoritative per-room tabletop state: the deck,
// per-player hands, the shared table surface, and the draggable object
// layers, plus the Store that owns session lifecycle.
package game

import "fmt"

// Card is an opaque card identifier. The server never interprets it.
type Card string

// DeckSize is the fixed size of the card universe.
const DeckSize = 36

// PlacedCard is a card lying face-up on the shared table.
type PlacedCard struct {
	Card Card    `json:"card"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// HandCount pairs a player id with the size of their hand. Hand contents
// are never included; room-wide messages carry counts only.
type HandCount struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

// newDeck builds the full card universe "01".."36" and shuffles it.
//
// Postcondition: Returns DeckSize distinct cards in random order.
func newDeck(src Source) []Card {
	deck := make([]Card, 0, DeckSize)
	for i := 1; i <= DeckSize; i++ {
		deck = append(deck, Card(fmt.Sprintf("%02d", i)))
	}
	shuffle(deck, src)
	return deck
}
