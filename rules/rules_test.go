package rules

import "testing"

func TestNewStandardRules(t *testing.T) {
	r := NewStandardRules()
	if r.DealerStandsOnSoft17 {
		t.Errorf("canonical default should hit soft 17, not stand")
	}
	if r.BlackjackPayout != 1.5 {
		t.Errorf("BlackjackPayout = %v, want 1.5", r.BlackjackPayout)
	}
	if r.Decks != 8 {
		t.Errorf("Decks = %d, want 8", r.Decks)
	}
	if !r.AllowSurrender {
		t.Errorf("canonical default should allow late surrender")
	}
	if r.AllowSplit || r.AllowResplit || r.AllowDoubleAfterSplit {
		t.Errorf("canonical default should leave split rules disabled")
	}
}

func TestMustDrawOn(t *testing.T) {
	cases := []struct {
		name  string
		rules GameRules
		total int
		soft  bool
		want  bool
	}{
		{"hard 16 must draw", NewStandardRules(), 16, false, true},
		{"hard 17 stands", NewStandardRules(), 17, false, false},
		{"soft 17 draws under H17", NewStandardRules(), 17, true, true},
		{"soft 17 stands under S17", GameRules{DealerStandsOnSoft17: true}, 17, true, false},
		{"hard 18 stands", NewStandardRules(), 18, false, false},
		{"soft 18 stands", NewStandardRules(), 18, true, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.rules.MustDrawOn(c.total, c.soft); got != c.want {
				t.Errorf("MustDrawOn(%d, %v) = %v, want %v", c.total, c.soft, got, c.want)
			}
		})
	}
}
