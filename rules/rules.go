// Package rules holds the table-rule configuration the evaluator plays
// against: dealer draw behavior and payout multipliers.
package rules

// GameRules is the configuration record for a single table variant. It is
// built by direct struct-literal construction or via NewStandardRules,
// matching the teacher's plain-struct configuration style.
type GameRules struct {
	// DealerStandsOnSoft17 selects the dealer's draw rule on a soft 17.
	// The canonical default for this engine is false: the dealer hits
	// soft 17 (H17), not stands (S17).
	DealerStandsOnSoft17 bool

	// BlackjackPayout is the multiplier paid on a player natural, e.g.
	// 1.5 for 3:2 or 1.2 for 6:5.
	BlackjackPayout float64

	// AllowSurrender permits late surrender on the player's original
	// two-card hand. When false, the evaluator never offers Surrender as
	// an action, regardless of what the strategy chart calls for.
	AllowSurrender bool

	// SurrenderPenalty is the fraction of the original bet forfeited on a
	// late surrender, e.g. 0.5.
	SurrenderPenalty float64

	// AllowSplit, AllowResplit, and AllowDoubleAfterSplit describe a
	// table's split rules. The core evaluator disables splits outright
	// (see strategy.LookupRestricted and the evaluator package docs), so
	// these flags are not yet consulted by any action dispatch; they are
	// still part of the rules record so a GameRules value fully describes
	// the table it names, ahead of split support landing.
	AllowSplit            bool
	AllowResplit          bool
	AllowDoubleAfterSplit bool

	// Decks is the number of 52-card decks the shoe is built from.
	Decks int
}

// NewStandardRules returns the canonical table configuration: H17, 3:2
// blackjack, late surrender allowed, splits disabled, 8 decks.
func NewStandardRules() GameRules {
	return GameRules{
		DealerStandsOnSoft17:  false,
		BlackjackPayout:       1.5,
		AllowSurrender:        true,
		SurrenderPenalty:      0.5,
		AllowSplit:            false,
		AllowResplit:          false,
		AllowDoubleAfterSplit: false,
		Decks:                 8,
	}
}

// MustDrawOn reports whether the dealer is required to draw another card
// given the current total and softness, per these rules.
func (r GameRules) MustDrawOn(total int, soft bool) bool {
	if total < 17 {
		return true
	}
	if total == 17 && soft && !r.DealerStandsOnSoft17 {
		return true
	}
	return false
}
