// Package evaluator implements the exact recursive probability engine: for
// a given player hand, dealer up-card, and remaining shoe composition, it
// computes the full probability distribution over terminal outcomes when
// the player takes the action basic strategy picks at each decision point.
// Splits are not modeled: pairs are played as ordinary totals.
package evaluator

// Outcome is the probability-vector value type the evaluator threads
// through every recursive call. It is deliberately a plain struct of
// float64 fields rather than an interface with virtual dispatch: the
// evaluator calls Add and AsDoubled millions of times per table, and a
// concrete value type keeps those calls allocation-free and inlinable.
//
// A bust settles the round immediately against whichever side didn't bust,
// so it is folded directly into PlayerWin or DealerWin rather than tracked
// as its own axis: a dealer bust is a player win, a player bust is a
// dealer win.
type Outcome struct {
	// PlayerWin is the probability the player wins the round at even
	// money: either both hands stand and the player's total is higher, or
	// the dealer busts.
	PlayerWin float64

	// DealerWin is the probability the dealer wins the round at even
	// money: either both hands stand and the dealer's total is higher, or
	// the player busts.
	DealerWin float64

	// Push is the probability both hands stand on equal totals.
	Push float64

	// PlayerBlackjack is the probability the player holds a two-card 21
	// that is paid at the blackjack payout (the dealer does not also hold
	// a natural; that case is a Push instead).
	PlayerBlackjack float64

	// DealerBlackjack is the probability the dealer holds a two-card 21
	// against a player hand that is not itself a natural. Kept distinct
	// from DealerWin because it is settled before any player action and
	// the EV aggregator prices it as its own axis (both carry the same
	// -1 payoff today, but they are not the same event).
	DealerBlackjack float64

	// Surrendered is the probability the player surrendered, forfeiting
	// the configured penalty fraction of the bet. Surrender has no
	// doubled counterpart: the option is only offered on the original,
	// undoubled two-card hand.
	Surrendered float64

	// Doubled* mirror the five fields above, but for mass that accrued
	// after a successful Double: the bet is twice the original, so EV
	// aggregation must track it separately. DoubledPlayerBlackjack and
	// DoubledDealerBlackjack are always zero in practice — a natural can
	// only occur on the original two cards, before any Double is taken —
	// but are tracked anyway so the vector's shape doesn't silently rely
	// on that invariant.
	DoubledPlayerWin       float64
	DoubledDealerWin       float64
	DoubledPush            float64
	DoubledPlayerBlackjack float64
	DoubledDealerBlackjack float64
}

// Add accumulates a weighted copy of other into o, scaling every field by
// weight. This is the single aggregation primitive every branch in the
// evaluator uses to fold a sub-outcome back into its caller's total.
func (o Outcome) Add(other Outcome, weight float64) Outcome {
	o.PlayerWin += other.PlayerWin * weight
	o.DealerWin += other.DealerWin * weight
	o.Push += other.Push * weight
	o.PlayerBlackjack += other.PlayerBlackjack * weight
	o.DealerBlackjack += other.DealerBlackjack * weight
	o.Surrendered += other.Surrendered * weight
	o.DoubledPlayerWin += other.DoubledPlayerWin * weight
	o.DoubledDealerWin += other.DoubledDealerWin * weight
	o.DoubledPush += other.DoubledPush * weight
	o.DoubledPlayerBlackjack += other.DoubledPlayerBlackjack * weight
	o.DoubledDealerBlackjack += other.DoubledDealerBlackjack * weight
	return o
}

// AsDoubled relabels all of this outcome's non-doubled mass into the
// corresponding doubled fields. It is applied once to the combined result
// of a Double action's one-card draw, after all of that draw's branches
// have already been summed together. Relabeling each branch before summing
// would be mathematically equivalent, but would repeat the relabeling work
// once per branch instead of doing it once.
func (o Outcome) AsDoubled() Outcome {
	return Outcome{
		DoubledPlayerWin:       o.PlayerWin + o.DoubledPlayerWin,
		DoubledDealerWin:       o.DealerWin + o.DoubledDealerWin,
		DoubledPush:            o.Push + o.DoubledPush,
		DoubledPlayerBlackjack: o.PlayerBlackjack + o.DoubledPlayerBlackjack,
		DoubledDealerBlackjack: o.DealerBlackjack + o.DoubledDealerBlackjack,
		Surrendered:            o.Surrendered,
	}
}

// Total sums every field; a correctly computed Outcome always totals 1.0
// (within floating-point tolerance) for a reachable hand/shoe state.
func (o Outcome) Total() float64 {
	return o.PlayerWin + o.DealerWin + o.Push + o.PlayerBlackjack + o.DealerBlackjack +
		o.Surrendered +
		o.DoubledPlayerWin + o.DoubledDealerWin + o.DoubledPush +
		o.DoubledPlayerBlackjack + o.DoubledDealerBlackjack
}

// KahanOutcome accumulates a running Outcome sum with Kahan compensated
// summation, used only by the orchestrator's top-level four-deep
// enumeration where up to 14,641 weighted branches are summed and
// ordinary float64 accumulation would otherwise lose precision. Inner
// recursion uses plain Outcome.Add, matching the baseline precision the
// rest of the engine needs.
type KahanOutcome struct {
	sum Outcome
	c   Outcome
}

// Add folds in weight*other using Kahan's compensation technique, applied
// independently to each field.
func (k *KahanOutcome) Add(other Outcome, weight float64) {
	k.sum, k.c = kahanAddOutcome(k.sum, k.c, other, weight)
}

// Sum returns the compensated running total.
func (k *KahanOutcome) Sum() Outcome { return k.sum }

func kahanAddOutcome(sum, c, other Outcome, weight float64) (Outcome, Outcome) {
	var result, comp Outcome
	result.PlayerWin, comp.PlayerWin = kahanStep(sum.PlayerWin, c.PlayerWin, other.PlayerWin*weight)
	result.DealerWin, comp.DealerWin = kahanStep(sum.DealerWin, c.DealerWin, other.DealerWin*weight)
	result.Push, comp.Push = kahanStep(sum.Push, c.Push, other.Push*weight)
	result.PlayerBlackjack, comp.PlayerBlackjack = kahanStep(sum.PlayerBlackjack, c.PlayerBlackjack, other.PlayerBlackjack*weight)
	result.DealerBlackjack, comp.DealerBlackjack = kahanStep(sum.DealerBlackjack, c.DealerBlackjack, other.DealerBlackjack*weight)
	result.Surrendered, comp.Surrendered = kahanStep(sum.Surrendered, c.Surrendered, other.Surrendered*weight)
	result.DoubledPlayerWin, comp.DoubledPlayerWin = kahanStep(sum.DoubledPlayerWin, c.DoubledPlayerWin, other.DoubledPlayerWin*weight)
	result.DoubledDealerWin, comp.DoubledDealerWin = kahanStep(sum.DoubledDealerWin, c.DoubledDealerWin, other.DoubledDealerWin*weight)
	result.DoubledPush, comp.DoubledPush = kahanStep(sum.DoubledPush, c.DoubledPush, other.DoubledPush*weight)
	result.DoubledPlayerBlackjack, comp.DoubledPlayerBlackjack = kahanStep(sum.DoubledPlayerBlackjack, c.DoubledPlayerBlackjack, other.DoubledPlayerBlackjack*weight)
	result.DoubledDealerBlackjack, comp.DoubledDealerBlackjack = kahanStep(sum.DoubledDealerBlackjack, c.DoubledDealerBlackjack, other.DoubledDealerBlackjack*weight)
	return result, comp
}

// kahanStep performs one field's compensated addition step, returning the
// new running sum and the new compensation term.
func kahanStep(sum, c, addend float64) (newSum, newC float64) {
	y := addend - c
	t := sum + y
	newC = (t - sum) - y
	newSum = t
	return newSum, newC
}
