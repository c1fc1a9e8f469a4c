package hand

import "testing"

func TestFromTwoCards(t *testing.T) {
	cases := []struct {
		name       string
		r1, r2     int
		wantTotal  int
		wantSoft   bool
		wantNatrl  bool
	}{
		{"hard twenty", 9, 9, 20, false, false},
		{"soft blackjack", 0, 9, 21, true, true},
		{"soft twelve", 0, 0, 12, true, false},
		{"pair of eights", 7, 7, 16, false, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h := FromTwoCards(c.r1, c.r2)
			if h.Total != c.wantTotal {
				t.Errorf("Total = %d, want %d", h.Total, c.wantTotal)
			}
			if h.Soft != c.wantSoft {
				t.Errorf("Soft = %v, want %v", h.Soft, c.wantSoft)
			}
			if h.IsNatural() != c.wantNatrl {
				t.Errorf("IsNatural() = %v, want %v", h.IsNatural(), c.wantNatrl)
			}
		})
	}
}

func TestMultipleAceReduction(t *testing.T) {
	h := FromTwoCards(0, 0) // A, A -> soft 12
	h = h.AddCard(0)        // + A -> would be 23, reduce one ace -> 13
	if h.Total != 13 {
		t.Errorf("Total = %d, want 13", h.Total)
	}
	if !h.Soft {
		t.Errorf("expected hand to remain soft with one ace still counted as 11")
	}
	h = h.AddCard(9) // + 10 -> would be 23, reduce remaining ace -> 13
	if h.Total != 13 {
		t.Errorf("Total = %d, want 13", h.Total)
	}
	if h.Soft {
		t.Errorf("expected hand to go hard once the last ace is reduced")
	}
}

func TestBustAndDoubleEligibility(t *testing.T) {
	h := FromTwoCards(9, 9) // 20
	h = h.AddCard(9)        // 30, bust
	if !h.IsBust() {
		t.Errorf("expected bust")
	}
	if h.CanDouble() {
		t.Errorf("a three-card hand should not be eligible to double")
	}

	h2 := FromTwoCards(4, 4) // two fives, 10
	if !h2.CanDouble() {
		t.Errorf("expected two-card hand to be double-eligible")
	}
	if !h2.CanSurrender() {
		t.Errorf("expected two-card hand to be surrender-eligible")
	}
	d := h2.AsDoubled()
	if !d.Doubled || d.CanDouble() {
		t.Errorf("AsDoubled should mark the hand as doubled and disable re-doubling")
	}
}

func TestIsPair(t *testing.T) {
	h := FromTwoCards(7, 7)
	if !h.IsPair(7, 7) {
		t.Errorf("expected pair detection to succeed")
	}
	h2 := FromTwoCards(7, 8)
	if h2.IsPair(7, 8) {
		t.Errorf("mismatched ranks should not report as a pair")
	}
}

func TestString(t *testing.T) {
	if got := FromTwoCards(0, 9).String(); got != "21 (soft)" {
		t.Errorf("String() = %q, want %q", got, "21 (soft)")
	}
	if got := FromTwoCards(9, 9).String(); got != "20" {
		t.Errorf("String() = %q, want %q", got, "20")
	}
}
