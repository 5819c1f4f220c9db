package game

import (
	"crypto/rand"
	"math/big"
)

// Source produces random ints for deck shuffling. Tests substitute a
// deterministic implementation.
type Source interface {
	// Intn returns a random int in [0, n).
	Intn(n int) int
}

// cryptoSource implements Source using crypto/rand.
//
// Invariant: All values produced are uniformly distributed in [0, n)
// for any n > 0.
type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: Every value returned by Intn is in [0, n).
func NewCryptoSource() Source {
	return &cryptoSource{}
}

// Intn returns a cryptographically secure random int in [0, n).
//
// Precondition: n > 0. Panics with "game: Intn called with n <= 0" if n <= 0.
// Panics with "game: crypto/rand failure: <err>" if crypto/rand fails.
func (c *cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("game: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("game: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

// shuffle performs an in-place Fisher-Yates shuffle of cards.
//
// Postcondition: cards holds the same multiset of values, reordered.
func shuffle(cards []Card, src Source) {
	for i := len(cards) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
