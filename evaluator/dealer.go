package evaluator

import (
	"tableev/hand"
	"tableev/shoe"
)

// dealerKey memoizes dealer-play resolution on the dealer's current hand
// state and the remaining shoe, independent of whatever player hand is
// being compared against it: the dealer's eventual total distribution
// doesn't depend on the player's total at all.
type dealerKey struct {
	total int
	soft  bool
	s     shoe.Shoe
}

// dealerFinal is the dealer's probability distribution over how its hand
// resolves: a bust probability, plus one probability per final total, hard
// or soft, from 17 through 21 (the only totals the dealer can stand on).
type dealerFinal struct {
	Bust    float64
	Totals  [5]float64 // index 0 = 17, ..., index 4 = 21
}

func dealerFinalFromTotal(total int) dealerFinal {
	var f dealerFinal
	idx := total - 17
	if idx < 0 || idx > 4 {
		// Unreachable for a non-busted dealer hand under standard rules,
		// but fall back to treating it as a bust rather than panicking.
		f.Bust = 1
		return f
	}
	f.Totals[idx] = 1
	return f
}

func (f dealerFinal) add(other dealerFinal, weight float64) dealerFinal {
	f.Bust += other.Bust * weight
	for i := range f.Totals {
		f.Totals[i] += other.Totals[i] * weight
	}
	return f
}

// dealerPlay resolves the dealer's hand to a final-total distribution by
// recursively drawing per rules.MustDrawOn, memoized on dealer state and
// shoe composition alone.
func (e *Evaluator) dealerPlay(dh hand.Hand, s shoe.Shoe) dealerFinal {
	if dh.IsBust() {
		return dealerFinal{Bust: 1}
	}
	if !e.rules.MustDrawOn(dh.Total, dh.Soft) {
		return dealerFinalFromTotal(dh.Total)
	}

	key := dealerKey{total: dh.Total, soft: dh.Soft, s: s}
	if cached, ok := e.dealerMemo[key]; ok {
		return cached
	}

	var result dealerFinal
	total := s.Total()
	if total > 0 {
		for rank := 0; rank < shoe.NumRanks; rank++ {
			c := s.Count(rank)
			if c == 0 {
				continue
			}
			p := float64(c) / float64(total)
			sub := e.dealerPlay(dh.AddCard(rank), s.Remove(rank))
			result = result.add(sub, p)
		}
	}
	// An exhausted shoe mid-draw contributes nothing further; every
	// reachable branch above already skips zero-count ranks, so result
	// stays at its zero value in that degenerate case.

	e.dealerMemo[key] = result
	return result
}
