package strategy

// totalKey indexes the hit/stand/double/surrender charts by player total,
// softness, and dealer up-card value (2..10, 11 for Ace).
type totalKey struct {
	total int
	soft  bool
	up    int
}

// pairKey indexes the split chart by pair rank bucket (0=Ace, 1..9=2..10,
// 10=Face) and dealer up-card value.
type pairKey struct {
	rank int
	up   int
}

var (
	hardHitStandTable = map[totalKey]Action{}
	softHitStandTable = map[totalKey]Action{}
	doubleTable       = map[totalKey]Action{}
	surrenderTable    = map[totalKey]Action{}
	pairTable         = map[pairKey]Action{}
)

// addHardRange marks hard totals [total] against dealer up-cards in
// [from, to] (inclusive; callers pass values within 2..11) with the given action in the
// hit/stand fallback chart.
func addHardRange(total int, action Action, from, to int) {
	for up := from; up <= to; up++ {
		hardHitStandTable[totalKey{total: total, soft: false, up: up}] = action
	}
}

func addSoftRange(total int, action Action, from, to int) {
	for up := from; up <= to; up++ {
		softHitStandTable[totalKey{total: total, soft: true, up: up}] = action
	}
}

func addDoubleRange(total int, soft bool, from, to int) {
	for up := from; up <= to; up++ {
		doubleTable[totalKey{total: total, soft: soft, up: up}] = Double
	}
}

func addSurrenderRange(total int, soft bool, from, to int) {
	for up := from; up <= to; up++ {
		surrenderTable[totalKey{total: total, soft: soft, up: up}] = Surrender
	}
}

func addSplitRange(rank int, from, to int) {
	for up := from; up <= to; up++ {
		pairTable[pairKey{rank: rank, up: up}] = Split
	}
}

func init() {
	// Hard totals: hit/stand fallback, tabulated for every hard total from
	// 4 through 20; only 12..16 actually vary by dealer up-card. Totals of
	// 21 and above are handled by hitStandFallback before the table.
	for total := 4; total <= 11; total++ {
		addHardRange(total, Hit, 2, 11)
	}
	addHardRange(12, Stand, 4, 6)
	addHardRange(12, Hit, 2, 3)
	addHardRange(12, Hit, 7, 11)
	for total := 13; total <= 16; total++ {
		addHardRange(total, Stand, 2, 6)
		addHardRange(total, Hit, 7, 11)
	}
	for total := 17; total <= 20; total++ {
		addHardRange(total, Stand, 2, 11)
	}

	// Soft totals: hit/stand fallback.
	for total := 12; total <= 17; total++ {
		addSoftRange(total, Hit, 2, 11)
	}
	addSoftRange(18, Stand, 2, 8)
	addSoftRange(18, Hit, 9, 11)
	addSoftRange(19, Stand, 2, 11)
	addSoftRange(20, Stand, 2, 11)

	// Two-card hard doubles.
	addDoubleRange(9, false, 3, 6)
	addDoubleRange(10, false, 2, 9)
	addDoubleRange(11, false, 2, 11)

	// Two-card soft doubles.
	addDoubleRange(13, true, 5, 6)
	addDoubleRange(14, true, 5, 6)
	addDoubleRange(15, true, 4, 6)
	addDoubleRange(16, true, 4, 6)
	addDoubleRange(17, true, 3, 6)
	addDoubleRange(18, true, 3, 6)

	// Late surrender.
	addSurrenderRange(15, false, 10, 10)
	addSurrenderRange(16, false, 9, 11)

	// Pair splits. Ranks follow the 0=Ace,1..9=2..10,10=Face bucket
	// indexing used throughout.
	addSplitRange(0, 2, 11)  // A,A
	addSplitRange(1, 2, 7)   // 2,2
	addSplitRange(2, 2, 7)   // 3,3
	addSplitRange(5, 2, 6)   // 6,6
	addSplitRange(6, 2, 7)   // 7,7
	addSplitRange(7, 2, 11)  // 8,8
	addSplitRange(8, 2, 6)   // 9,9
	pairTable[pairKey{rank: 8, up: 8}] = Split
	pairTable[pairKey{rank: 8, up: 9}] = Split
}
