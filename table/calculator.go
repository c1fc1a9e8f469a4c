// Package table implements the orchestrator: the top-level enumeration
// that drives the evaluator across every possible initial deal and rolls
// the results up into a table-wide expected value.
package table

import (
	"tableev/ev"
	"tableev/evaluator"
	"tableev/hand"
	"tableev/rules"
	"tableev/shoe"
)

// Calculator runs CalculateTableEV. It holds no state between calls; a new
// evaluator.Evaluator (and its memo tables) is built fresh for every call.
type Calculator struct{}

// NewCalculator returns a ready-to-use Calculator.
func NewCalculator() *Calculator { return &Calculator{} }

// perHandKey groups the per-hand EV breakdown by the player's resulting
// two-card hand shape and the dealer's up-card.
type perHandKey struct {
	total int
	soft  bool
	up    int
}

// CalculateTableEV enumerates every initial deal explicitly four cards
// deep (player card 1, dealer up-card, player card 2, dealer hole card)
// rather than through uniform recursion, because the evaluator's memo key
// only cares about the player's resulting hand shape, not which specific
// two ranks produced it: enumerating the four draws directly avoids ever
// building a generic "deal N cards" recursion that the memo table would
// immediately collapse anyway.
//
// The outer sum (14,641 branches for an 11-rank shoe) is accumulated with
// Kahan compensated summation; everything inside the evaluator itself uses
// plain summation, matching the precision tradeoff spec.md calls for.
func (c *Calculator) CalculateTableEV(r rules.GameRules, s shoe.Shoe) ev.TableEVResult {
	if s.Total() < 4 {
		return ev.TableEVResult{Rules: r}
	}

	e := evaluator.New(r)

	var overall evaluator.KahanOutcome
	perHand := make(map[perHandKey]*evaluator.KahanOutcome)
	perHandWeight := make(map[perHandKey]float64)

	total1 := s.Total()
	for p1 := 0; p1 < shoe.NumRanks; p1++ {
		c1 := s.Count(p1)
		if c1 == 0 {
			continue
		}
		w1 := float64(c1) / float64(total1)
		s1 := s.Remove(p1)

		total2 := s1.Total()
		for dUp := 0; dUp < shoe.NumRanks; dUp++ {
			c2 := s1.Count(dUp)
			if c2 == 0 {
				continue
			}
			w2 := float64(c2) / float64(total2)
			s2 := s1.Remove(dUp)

			total3 := s2.Total()
			for p2 := 0; p2 < shoe.NumRanks; p2++ {
				c3 := s2.Count(p2)
				if c3 == 0 {
					continue
				}
				w3 := float64(c3) / float64(total3)
				s3 := s2.Remove(p2)

				playerHand := hand.FromTwoCards(p1, p2)

				total4 := s3.Total()
				for dHole := 0; dHole < shoe.NumRanks; dHole++ {
					c4 := s3.Count(dHole)
					if c4 == 0 {
						continue
					}
					w4 := float64(c4) / float64(total4)
					s4 := s3.Remove(dHole)

					weight := w1 * w2 * w3 * w4
					dealerHand := hand.FromTwoCards(dUp, dHole)

					branch := resolveInitialDeal(e, playerHand, dUp, dealerHand, s4)

					overall.Add(branch, weight)

					key := perHandKey{total: playerHand.Total, soft: playerHand.Soft, up: dUp}
					acc, ok := perHand[key]
					if !ok {
						acc = &evaluator.KahanOutcome{}
						perHand[key] = acc
					}
					acc.Add(branch, weight)
					perHandWeight[key] += weight
				}
			}
		}
	}

	result := ev.Aggregate(overall.Sum(), r)
	for key, acc := range perHand {
		w := perHandWeight[key]
		if w == 0 {
			continue
		}
		handEV := ev.Aggregate(acc.Sum(), r).EV / w
		result.PerHand = append(result.PerHand, ev.Result{
			HandTotal:     key.total,
			HandSoft:      key.soft,
			DealerUp:      strategyDealerUp(key.up),
			ExpectedValue: handEV,
		})
	}
	return result
}

// resolveInitialDeal classifies the two-card naturals case before handing
// off to the evaluator for every other hand shape.
func resolveInitialDeal(e *evaluator.Evaluator, playerHand hand.Hand, dealerUpRank int, dealerHand hand.Hand, s shoe.Shoe) evaluator.Outcome {
	switch {
	case playerHand.IsNatural() && dealerHand.IsNatural():
		return evaluator.Outcome{Push: 1}
	case playerHand.IsNatural():
		return evaluator.Outcome{PlayerBlackjack: 1}
	case dealerHand.IsNatural():
		return evaluator.Outcome{DealerBlackjack: 1}
	default:
		return e.Evaluate(playerHand, dealerUpRank, dealerHand, s)
	}
}

// strategyDealerUp converts a shoe rank bucket back to the dealer up-card
// value (2..10, 11 for Ace) used in reported per-hand breakdowns.
func strategyDealerUp(rank int) int {
	if rank == 0 {
		return 11
	}
	if rank == 10 {
		return 10
	}
	return rank + 1
}
