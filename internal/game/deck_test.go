package game

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSource() Source {
	return rand.New(rand.NewSource(1))
}

func TestNewDeckUniverse(t *testing.T) {
	deck := newDeck(testSource())
	require.Len(t, deck, DeckSize)

	seen := make(map[Card]bool, DeckSize)
	for _, c := range deck {
		assert.Len(t, string(c), 2, "card ids are zero-padded to two digits")
		assert.False(t, seen[c], "card %s duplicated", c)
		seen[c] = true
	}
	assert.True(t, seen["01"])
	assert.True(t, seen["36"])
}

func TestShufflePreservesMembership(t *testing.T) {
	deck := newDeck(testSource())
	before := make([]Card, len(deck))
	copy(before, deck)

	shuffle(deck, testSource())

	sortCards := func(cards []Card) []Card {
		out := make([]Card, len(cards))
		copy(out, cards)
		sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
		return out
	}
	assert.Equal(t, sortCards(before), sortCards(deck))
}

func TestCryptoSourceRange(t *testing.T) {
	src := NewCryptoSource()
	for i := 0; i < 100; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

func TestCryptoSourcePanicsOnNonPositive(t *testing.T) {
	src := NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}
