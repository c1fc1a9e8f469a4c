package ev

import (
	"math"
	"testing"

	"tableev/evaluator"
	"tableev/rules"
)

func TestAggregateSimpleWinLoss(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{PlayerWin: 0.5, DealerWin: 0.5}
	if got := Aggregate(o, r).EV; got != 0 {
		t.Errorf("EV = %v, want 0 for a 50/50 win/loss split", got)
	}
}

func TestAggregateNaturalUsesPayout(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{PlayerBlackjack: 1}
	if got := Aggregate(o, r).EV; got != 1.5 {
		t.Errorf("EV = %v, want 1.5 for a certain natural at 3:2", got)
	}
}

func TestAggregateDealerBlackjackLosesTheBet(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{DealerBlackjack: 1}
	if got := Aggregate(o, r).EV; got != -1 {
		t.Errorf("EV = %v, want -1 for a certain dealer blackjack", got)
	}
	if got := Aggregate(o, r).DealerBlackjackProb; got != 1 {
		t.Errorf("DealerBlackjackProb = %v, want 1", got)
	}
}

func TestAggregateSurrenderUsesPenalty(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{Surrendered: 1}
	result := Aggregate(o, r)
	if result.EV != -0.5 {
		t.Errorf("EV = %v, want -0.5 for a certain surrender", result.EV)
	}
	if result.EVSurrender != -0.5 {
		t.Errorf("EVSurrender = %v, want -0.5", result.EVSurrender)
	}
	if result.SurrenderProb != 1 {
		t.Errorf("SurrenderProb = %v, want 1", result.SurrenderProb)
	}
}

func TestAggregateDoubledMassDoublesThePayoff(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{DoubledPlayerWin: 1}
	result := Aggregate(o, r)
	if result.EV != 2 {
		t.Errorf("EV = %v, want 2 for a certain doubled win", result.EV)
	}
	if result.EVNormal != 0 {
		t.Errorf("EVNormal = %v, want 0 when all mass is doubled", result.EVNormal)
	}
	if result.PlayerWinProb != 1 {
		t.Errorf("PlayerWinProb = %v, want 1 (doubled mass still merges into the display total)", result.PlayerWinProb)
	}
}

func TestAggregateEVIsExactlyTheSumOfItsBranches(t *testing.T) {
	r := rules.NewStandardRules()
	r.BlackjackPayout = 1.2
	o := evaluator.Outcome{
		PlayerWin:        0.3,
		DealerWin:        0.25,
		Push:             0.05,
		PlayerBlackjack:  0.04,
		DealerBlackjack:  0.03,
		Surrendered:      0.02,
		DoubledPlayerWin: 0.2,
		DoubledDealerWin: 0.11,
	}
	result := Aggregate(o, r)
	if got := result.EVNormal + result.EVDouble + result.EVSurrender; got != result.EV {
		t.Errorf("EVNormal+EVDouble+EVSurrender = %v, want exactly EV = %v", got, result.EV)
	}
}

func TestAggregateProbabilitySumMatchesOutcomeTotal(t *testing.T) {
	r := rules.NewStandardRules()
	o := evaluator.Outcome{
		PlayerWin:        0.3,
		DealerWin:        0.25,
		Push:             0.05,
		PlayerBlackjack:  0.04,
		DealerBlackjack:  0.03,
		Surrendered:      0.02,
		DoubledPlayerWin: 0.2,
		DoubledDealerWin: 0.11,
	}
	result := Aggregate(o, r)
	if got, want := result.ProbabilitySum(), o.Total(); math.Abs(got-want) > 1e-12 {
		t.Errorf("ProbabilitySum() = %v, want %v (Outcome.Total())", got, want)
	}
}

func TestNormalizeRescalesEverything(t *testing.T) {
	result := TableEVResult{
		EV:        10,
		OverallEV: 10,
		PerHand: []Result{
			{HandTotal: 20, DealerUp: 6, ExpectedValue: 4},
		},
	}
	got := result.Normalize(2)
	if got.EV != 5 {
		t.Errorf("EV = %v, want 5", got.EV)
	}
	if got.OverallEV != 5 {
		t.Errorf("OverallEV = %v, want 5", got.OverallEV)
	}
	if got.PerHand[0].ExpectedValue != 2 {
		t.Errorf("PerHand[0].ExpectedValue = %v, want 2", got.PerHand[0].ExpectedValue)
	}
}

func TestNormalizeByZeroIsNoOp(t *testing.T) {
	result := TableEVResult{EV: 10, OverallEV: 10}
	got := result.Normalize(0)
	if got.EV != 10 {
		t.Errorf("Normalize(0) should leave EV unchanged, got %v", got.EV)
	}
}
