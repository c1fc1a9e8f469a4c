package evaluator

import (
	"tableev/hand"
	"tableev/rules"
	"tableev/shoe"
	"tableev/strategy"
)

// playerKey memoizes a full player-turn resolution on every piece of state
// that decision depends on: the player's current hand shape, the dealer's
// up-card (which basic strategy branches on) and full current hand (needed
// to resolve Stand once the player's turn ends), and the remaining shoe.
type playerKey struct {
	total       int
	soft        bool
	cardCount   int
	dealerUp    int
	dealerTotal int
	dealerSoft  bool
	s           shoe.Shoe
}

// Evaluator runs the exact recursive probability computation for a single
// table configuration. It owns the memoization tables for the life of one
// CalculateTableEV call; callers should construct a fresh Evaluator per
// call rather than reusing one across shoe compositions.
type Evaluator struct {
	rules      rules.GameRules
	playerMemo map[playerKey]Outcome
	dealerMemo map[dealerKey]dealerFinal
}

// New returns an Evaluator configured with the given table rules.
func New(r rules.GameRules) *Evaluator {
	return &Evaluator{
		rules:      r,
		playerMemo: make(map[playerKey]Outcome),
		dealerMemo: make(map[dealerKey]dealerFinal),
	}
}

// MemoSize reports the number of distinct player-turn states memoized so
// far, used by the tests to check that repeated calls reuse the memo.
func (e *Evaluator) MemoSize() int { return len(e.playerMemo) }

// Evaluate computes the full Outcome distribution for a player hand against
// a fully-known dealer hand (up-card plus hole card) and remaining shoe,
// following basic strategy's restricted-mode decision at every branch
// point. The player hand must not already be resolved (not bust, not a
// natural) when this is called from outside the package.
func (e *Evaluator) Evaluate(h hand.Hand, dealerUpRank int, dealerHand hand.Hand, s shoe.Shoe) Outcome {
	// A dealer natural settles the hand immediately, before any further
	// player action: Evaluate's precondition guarantees h is not itself a
	// natural (that case is resolved by the caller at the initial deal),
	// so this is always a player loss, tracked on its own DealerBlackjack
	// axis rather than folded into DealerWin. Checked ahead of the bust
	// case to match the terminal-case precedence: naturals settle before
	// a later bust is even considered.
	if dealerHand.IsNatural() {
		return Outcome{DealerBlackjack: 1}
	}
	if h.IsBust() {
		return Outcome{DealerWin: 1}
	}

	key := playerKey{
		total:       h.Total,
		soft:        h.Soft,
		cardCount:   h.CardCount,
		dealerUp:    dealerUpRank,
		dealerTotal: dealerHand.Total,
		dealerSoft:  dealerHand.Soft,
		s:           s,
	}
	if cached, ok := e.playerMemo[key]; ok {
		return cached
	}

	if e.rules.AllowSurrender && strategy.ShouldSurrender(h, dealerUpRank) {
		result := Outcome{Surrendered: 1}
		e.playerMemo[key] = result
		return result
	}

	action := strategy.LookupRestricted(h, dealerUpRank)
	var result Outcome
	switch action {
	case strategy.Stand:
		result = e.resolveStand(h, dealerHand, s)
	case strategy.Double:
		result = e.resolveDouble(h, dealerUpRank, dealerHand, s)
	default: // Hit, and any table gap defaults to Hit
		result = e.resolveHit(h, dealerUpRank, dealerHand, s)
	}

	e.playerMemo[key] = result
	return result
}

// resolveHit draws one card for every remaining rank bucket, weighting each
// branch's recursive Evaluate result by its hypergeometric draw
// probability.
func (e *Evaluator) resolveHit(h hand.Hand, dealerUpRank int, dealerHand hand.Hand, s shoe.Shoe) Outcome {
	var result Outcome
	total := s.Total()
	for rank := 0; rank < shoe.NumRanks; rank++ {
		c := s.Count(rank)
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		sub := e.Evaluate(h.AddCard(rank), dealerUpRank, dealerHand, s.Remove(rank))
		result = result.Add(sub, p)
	}
	return result
}

// resolveDouble draws exactly one card, then stands (win/loss is resolved
// against the dealer immediately), with all resulting mass relabeled into
// the Outcome's doubled fields.
func (e *Evaluator) resolveDouble(h hand.Hand, dealerUpRank int, dealerHand hand.Hand, s shoe.Shoe) Outcome {
	var combined Outcome
	total := s.Total()
	for rank := 0; rank < shoe.NumRanks; rank++ {
		c := s.Count(rank)
		if c == 0 {
			continue
		}
		p := float64(c) / float64(total)
		drawn := h.AddCard(rank).AsDoubled()
		var sub Outcome
		if drawn.IsBust() {
			sub = Outcome{DealerWin: 1}
		} else {
			sub = e.resolveStand(drawn, dealerHand, s.Remove(rank))
		}
		combined = combined.Add(sub, p)
	}
	return combined.AsDoubled()
}

// resolveStand resolves a final player hand against the dealer's eventual
// total distribution.
func (e *Evaluator) resolveStand(h hand.Hand, dealerHand hand.Hand, s shoe.Shoe) Outcome {
	dist := e.dealerPlay(dealerHand, s)

	var o Outcome
	o.PlayerWin = dist.Bust
	for i, p := range dist.Totals {
		if p == 0 {
			continue
		}
		dealerTotal := i + 17
		switch {
		case h.Total > dealerTotal:
			o.PlayerWin += p
		case h.Total == dealerTotal:
			o.Push += p
		default:
			o.DealerWin += p
		}
	}
	return o
}
