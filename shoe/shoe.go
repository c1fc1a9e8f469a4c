// Package shoe models the remaining-card composition the evaluator recurses
// over: an 11-bucket count array, small enough to pass and copy by value on
// every recursion frame.
package shoe

import "tableev/cards"

// NumRanks is the number of rank buckets: Ace, 2..10, Face.
const NumRanks = 11

// Shoe is the full 11-tuple of remaining per-rank counts. It is a plain
// comparable array, so a Shoe value can be used directly as part of a map
// key with exact structural equality — no hashing, no collision risk (see
// the memoization discussion in evaluator).
type Shoe [NumRanks]int32

// New builds a Shoe from an explicit count tuple.
func New(counts [NumRanks]int32) Shoe { return Shoe(counts) }

// NewStandard builds the canonical shoe for the given deck count: 4 Aces,
// 4 of each Number(2..10), and 12 Face cards (J, Q, K at 4 suits each) per
// deck.
func NewStandard(decks int) Shoe {
	var s Shoe
	s[0] = int32(4 * decks)
	for i := 1; i <= 9; i++ {
		s[i] = int32(4 * decks)
	}
	s[10] = int32(12 * decks)
	return s
}

// FromCardCounts lowers the boundary cards.Card counts to an 11-bucket Shoe.
func FromCardCounts(counts map[cards.Card]int32) Shoe {
	var s Shoe
	for c, n := range counts {
		if n < 0 {
			continue
		}
		s[c.RankIndex()] += n
	}
	return s
}

// Count returns the remaining count for a rank bucket.
func (s Shoe) Count(rank int) int32 { return s[rank] }

// Total returns the total number of cards remaining in the shoe.
func (s Shoe) Total() int32 {
	var t int32
	for _, c := range s {
		t += c
	}
	return t
}

// Remove returns a new Shoe with one card of the given rank removed. The
// caller must only call this for a rank with Count(rank) > 0; the shoe
// composition is otherwise immutable, conceptually copied on every descent.
func (s Shoe) Remove(rank int) Shoe {
	ns := s
	ns[rank]--
	return ns
}

// DrawProb returns the hypergeometric probability of drawing the given rank
// next, given the shoe's current total. Callers must not call this against
// an empty shoe (guard with Total() > 0 first).
func (s Shoe) DrawProb(rank int) float64 {
	return float64(s[rank]) / float64(s.Total())
}
