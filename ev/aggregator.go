// Package ev converts an evaluator.Outcome probability distribution into a
// single expected-value number per unit bet, applying each table's payout
// rules (blackjack payout multiplier, doubled-bet multiplier, surrender
// penalty), and exposes the breakdown callers need to sanity-check the
// result: separate normal/double/surrender EV figures and a flattened
// probability distribution.
package ev

import (
	"fmt"

	"tableev/evaluator"
	"tableev/rules"
)

// Result is the EV figure for one player hand/dealer up-card combination,
// expressed per unit of original bet.
type Result struct {
	HandTotal     int
	HandSoft      bool
	DealerUp      int
	ExpectedValue float64
}

// String renders the result the way a strategy trainer's EV table would.
func (r Result) String() string {
	soft := ""
	if r.HandSoft {
		soft = " (soft)"
	}
	return fmt.Sprintf("%d%s vs %d: %+.4f", r.HandTotal, soft, r.DealerUp, r.ExpectedValue)
}

// TableEVResult is the external view of one table configuration's EV:
// a scalar EV, its breakdown by bet branch (normal / double / surrender),
// a flattened probability distribution (normal and doubled variants merged
// per outcome, surrender kept separate), plus the per-hand figures the
// orchestrator accumulated along the way.
//
// Callers can run two health checks against a result: ev should equal
// EVNormal+EVDouble+EVSurrender exactly, and the six probability fields
// should sum to 1.0 +/- 1e-6 for any shoe with at least four cards.
type TableEVResult struct {
	Rules rules.GameRules

	EV          float64
	EVNormal    float64
	EVDouble    float64
	EVSurrender float64

	PlayerWinProb       float64
	DealerWinProb       float64
	PushProb            float64
	PlayerBlackjackProb float64
	DealerBlackjackProb float64
	SurrenderProb       float64

	PerHand []Result

	// OverallEV is kept as an alias for EV for the snapshot decoder's
	// existing call site; both always carry the same value.
	OverallEV float64
}

// Aggregate folds an Outcome distribution and a table's payout rules into a
// TableEVResult, following the same branch-by-branch formulas as the
// per-branch EV it totals:
//
//	ev_normal    = player_win*1 + player_bj*payout - dealer_win*1 - dealer_bj*1
//	ev_double    = player_win_d*2 + player_bj_d*(payout*2) - dealer_win_d*2 - dealer_bj_d*2
//	ev_surrender = surrender * -penalty
//	ev           = ev_normal + ev_double + ev_surrender
//
// Display probabilities merge the normal and doubled variant of each
// outcome; surrender_prob is reported on its own.
func Aggregate(o evaluator.Outcome, r rules.GameRules) TableEVResult {
	evNormal := o.PlayerWin + o.PlayerBlackjack*r.BlackjackPayout - o.DealerWin - o.DealerBlackjack
	evDouble := 2*o.DoubledPlayerWin + o.DoubledPlayerBlackjack*(r.BlackjackPayout*2) - 2*o.DoubledDealerWin - 2*o.DoubledDealerBlackjack
	evSurrender := -o.Surrendered * r.SurrenderPenalty

	return TableEVResult{
		Rules: r,

		EV:          evNormal + evDouble + evSurrender,
		EVNormal:    evNormal,
		EVDouble:    evDouble,
		EVSurrender: evSurrender,

		PlayerWinProb:       o.PlayerWin + o.DoubledPlayerWin,
		DealerWinProb:       o.DealerWin + o.DoubledDealerWin,
		PushProb:            o.Push + o.DoubledPush,
		PlayerBlackjackProb: o.PlayerBlackjack + o.DoubledPlayerBlackjack,
		DealerBlackjackProb: o.DealerBlackjack + o.DoubledDealerBlackjack,
		SurrenderProb:       o.Surrendered,

		OverallEV: evNormal + evDouble + evSurrender,
	}
}

// ProbabilitySum returns the sum of the six mandated probability fields,
// the health check callers run against a TableEVResult: it should equal
// 1.0 +/- 1e-6 for any shoe with at least four cards, or identically 0 for
// a degenerate shoe.
func (t TableEVResult) ProbabilitySum() float64 {
	return t.PlayerWinProb + t.DealerWinProb + t.PushProb +
		t.PlayerBlackjackProb + t.DealerBlackjackProb + t.SurrenderProb
}

// Normalize rescales every EV and probability figure, plus every per-hand
// figure, so they read as "per $1 bet" regardless of how the caller
// weighted its accumulation, dividing through by totalWeight. Callers pass
// the sum of every enumerated branch's probability mass, which should
// already be 1.0 for a correctly enumerated initial deal; this guards
// against minor floating-point drift rather than any real renormalization
// need. Per spec, the EV calculation itself is never renormalized
// silently — this is an opt-in display helper only.
func (t TableEVResult) Normalize(totalWeight float64) TableEVResult {
	if totalWeight == 0 {
		return t
	}
	t.EV /= totalWeight
	t.EVNormal /= totalWeight
	t.EVDouble /= totalWeight
	t.EVSurrender /= totalWeight
	t.OverallEV /= totalWeight
	t.PlayerWinProb /= totalWeight
	t.DealerWinProb /= totalWeight
	t.PushProb /= totalWeight
	t.PlayerBlackjackProb /= totalWeight
	t.DealerBlackjackProb /= totalWeight
	t.SurrenderProb /= totalWeight
	for i := range t.PerHand {
		t.PerHand[i].ExpectedValue /= totalWeight
	}
	return t
}
