package table

import (
	"math"
	"testing"

	"tableev/rules"
	"tableev/shoe"
)

func TestCalculateTableEVProducesAPlausibleHouseEdge(t *testing.T) {
	c := NewCalculator()
	r := rules.NewStandardRules()
	s := shoe.NewStandard(1) // single deck keeps the enumeration small

	result := c.CalculateTableEV(r, s)

	// A single-deck H17 3:2 table's basic-strategy house edge is a few
	// tenths of a percent either way; this is a sanity bound, not a
	// precision check against a published constant.
	if math.Abs(result.EV) > 0.05 {
		t.Errorf("EV = %v, expected a small EV per unit bet (within +/-5%%)", result.EV)
	}
}

func TestCalculateTableEVPerHandBreakdownIsPopulated(t *testing.T) {
	c := NewCalculator()
	r := rules.NewStandardRules()
	s := shoe.NewStandard(1)

	result := c.CalculateTableEV(r, s)
	if len(result.PerHand) == 0 {
		t.Fatalf("expected a non-empty per-hand EV breakdown")
	}
	for _, hr := range result.PerHand {
		if hr.DealerUp < 2 || hr.DealerUp > 11 {
			t.Errorf("DealerUp = %d, want a value in [2, 11]", hr.DealerUp)
		}
	}
}

// TestCanonicalEightDeckEVMatchesTextbookHouseEdge is scenario E1: the
// canonical full 8-deck shoe under default rules should land in the
// textbook house-edge range for a no-split basic-strategy table, with the
// probability breakdown summing to 1.
func TestCanonicalEightDeckEVMatchesTextbookHouseEdge(t *testing.T) {
	c := NewCalculator()
	r := rules.NewStandardRules()
	s := shoe.NewStandard(8)

	result := c.CalculateTableEV(r, s)

	if result.EV < -0.010 || result.EV > -0.002 {
		t.Errorf("EV = %v, want in [-0.010, -0.002] for the canonical 8-deck table", result.EV)
	}
	if bj := result.PlayerBlackjackProb + result.DealerBlackjackProb; bj < 0.08 {
		t.Errorf("player_bj+dealer_bj = %v, want something close to 0.095", bj)
	}
	if result.PushProb <= 0.08 {
		t.Errorf("PushProb = %v, want > 0.08", result.PushProb)
	}
	if got := result.ProbabilitySum(); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("ProbabilitySum() = %v, want 1.0 +/- 1e-6", got)
	}
}

// TestEmptyShoeIsZero is scenario E2: a shoe with fewer than four cards
// returns the zero TableEVResult rather than attempting to enumerate a
// deal it can't actually make.
func TestEmptyShoeIsZero(t *testing.T) {
	c := NewCalculator()
	r := rules.NewStandardRules()

	result := c.CalculateTableEV(r, shoe.Shoe{})

	if result.EV != 0 {
		t.Errorf("EV = %v, want 0 for an empty shoe", result.EV)
	}
	if got := result.ProbabilitySum(); got != 0 {
		t.Errorf("ProbabilitySum() = %v, want 0 for an empty shoe", got)
	}
	if result.PerHand != nil {
		t.Errorf("expected no per-hand breakdown for an empty shoe, got %v", result.PerHand)
	}
}

// TestSixToFivePayoutIsWorseThanThreeToTwo is scenario E6: switching the
// canonical 8-deck shoe from 3:2 to 6:5 blackjack strictly lowers EV, by
// roughly 0.3 times the blackjack probability.
func TestSixToFivePayoutIsWorseThanThreeToTwo(t *testing.T) {
	c := NewCalculator()
	s := shoe.NewStandard(8)

	threeToTwo := rules.NewStandardRules()
	sixToFive := threeToTwo
	sixToFive.BlackjackPayout = 1.2

	resultA := c.CalculateTableEV(threeToTwo, s)
	resultB := c.CalculateTableEV(sixToFive, s)

	if resultB.EV >= resultA.EV {
		t.Errorf("6:5 EV (%v) should be strictly less than 3:2 EV (%v)", resultB.EV, resultA.EV)
	}

	diff := resultB.EV - resultA.EV
	expected := -0.3 * resultA.PlayerBlackjackProb
	if math.Abs(diff-expected) > 0.01 {
		t.Errorf("EV difference = %v, want close to %v (-0.3 * player_bj_prob)", diff, expected)
	}
}

// TestDisallowingSurrenderZeroesSurrenderProbability is property #10:
// disabling surrender in the rules must drive surrender_prob to exactly 0,
// since the evaluator is gated on the rules flag before it ever consults
// the surrender chart.
func TestDisallowingSurrenderZeroesSurrenderProbability(t *testing.T) {
	c := NewCalculator()
	r := rules.NewStandardRules()
	r.AllowSurrender = false
	s := shoe.NewStandard(2)

	result := c.CalculateTableEV(r, s)

	if result.SurrenderProb != 0 {
		t.Errorf("SurrenderProb = %v, want exactly 0 when surrender is disallowed", result.SurrenderProb)
	}
	if got := result.ProbabilitySum(); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("ProbabilitySum() = %v, want 1.0 +/- 1e-6", got)
	}
}
