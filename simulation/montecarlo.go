// Package simulation is an external collaborator to the exact evaluator,
// not part of it: it plays sampled rounds against the same rules.GameRules
// and strategy table the exact engine uses, so its observed frequencies can
// be checked against evaluator/table's exact probabilities in tests and
// benchmarks. CalculateTableEV never calls into this package.
package simulation

import (
	"context"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"tableev/hand"
	"tableev/rules"
	"tableev/shoe"
	"tableev/strategy"
)

// RoundResult is the outcome of one sampled round. Its classification is
// not the same as evaluator.Outcome's: player and dealer busts get their
// own buckets instead of being folded into a win or loss, a dealer natural
// is recorded as a DealerWin, and doubled rounds are only flagged, not
// split into separate buckets.
type RoundResult struct {
	PlayerBust      bool
	DealerBust      bool
	PlayerWin       bool
	Push            bool
	DealerWin       bool
	PlayerNatural   bool
	PushNatural     bool
	Surrendered     bool
	Doubled         bool
	NetUnitsWagered float64
}

// AggregatedFrequencies summarizes a batch of sampled rounds as observed
// frequencies, the Monte Carlo counterpart to an evaluator.Outcome.
type AggregatedFrequencies struct {
	Rounds        int
	PlayerBust    float64
	DealerBust    float64
	PlayerWin     float64
	Push          float64
	DealerWin     float64
	PlayerNatural float64
	Surrendered   float64
	ObservedEV    float64
}

// RunBatch plays numRounds sampled rounds, fanning the work out across
// workers workers with errgroup, and returns the aggregated frequencies.
// Each worker owns its own *rand.Rand seeded from the shared seed plus its
// worker index, so results are reproducible for a given (seed, workers)
// pair regardless of scheduling order within a worker.
func RunBatch(r rules.GameRules, decks int, numRounds int, workers int, seed int64) AggregatedFrequencies {
	if workers <= 0 {
		workers = 1
	}

	perWorker := distributeRounds(numRounds, workers)
	partials := make([]AggregatedFrequencies, workers)

	g, _ := errgroup.WithContext(context.Background())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(w)))
			partials[w] = runRounds(r, decks, perWorker[w], rng)
			return nil
		})
	}
	// RunBatch's workers never produce an error; the shared rand.Rand
	// avoided here by construction is the only real failure mode errgroup
	// would otherwise need to report.
	_ = g.Wait()

	return mergeFrequencies(partials)
}

func distributeRounds(numRounds, workers int) []int {
	out := make([]int, workers)
	base := numRounds / workers
	remainder := numRounds % workers
	for i := range out {
		out[i] = base
		if i < remainder {
			out[i]++
		}
	}
	return out
}

func runRounds(r rules.GameRules, decks int, n int, rng *rand.Rand) AggregatedFrequencies {
	var agg AggregatedFrequencies
	for i := 0; i < n; i++ {
		res := playRound(r, decks, rng)
		agg.Rounds++
		agg.ObservedEV += res.NetUnitsWagered
		switch {
		case res.PushNatural:
			// no win/loss bucket, counted only in ObservedEV
		case res.Surrendered:
			agg.Surrendered++
		case res.PlayerNatural:
			agg.PlayerNatural++
		case res.PlayerBust:
			agg.PlayerBust++
		case res.DealerBust:
			agg.DealerBust++
		case res.PlayerWin:
			agg.PlayerWin++
		case res.Push:
			agg.Push++
		case res.DealerWin:
			agg.DealerWin++
		}
	}
	return agg
}

// playRound deals a fresh shoe of the given deck count and plays one round
// to completion using the restricted basic-strategy table, mirroring the
// exact evaluator's decision logic but by direct sampling instead of
// exhaustive enumeration.
func playRound(r rules.GameRules, decks int, rng *rand.Rand) RoundResult {
	s := shoe.NewStandard(decks)

	p1, s := drawRank(s, rng)
	dUp, s := drawRank(s, rng)
	p2, s := drawRank(s, rng)
	dHole, s := drawRank(s, rng)

	player := hand.FromTwoCards(p1, p2)
	dealer := hand.FromTwoCards(dUp, dHole)

	switch {
	case player.IsNatural() && dealer.IsNatural():
		return RoundResult{PushNatural: true}
	case player.IsNatural():
		return RoundResult{PlayerNatural: true, NetUnitsWagered: r.BlackjackPayout}
	case dealer.IsNatural():
		return RoundResult{DealerWin: true, NetUnitsWagered: -1}
	}

	doubled := false
playerTurn:
	for {
		if r.AllowSurrender && strategy.ShouldSurrender(player, dUp) {
			return RoundResult{Surrendered: true, NetUnitsWagered: -r.SurrenderPenalty}
		}
		action := strategy.LookupRestricted(player, dUp)
		switch action {
		case strategy.Double:
			doubled = true
			var rank int
			rank, s = drawRank(s, rng)
			player = player.AddCard(rank).AsDoubled()
			break playerTurn
		case strategy.Hit:
			var rank int
			rank, s = drawRank(s, rng)
			player = player.AddCard(rank)
			if player.IsBust() {
				wager := -1.0
				if doubled {
					wager = -2.0
				}
				return RoundResult{PlayerBust: true, Doubled: doubled, NetUnitsWagered: wager}
			}
		default: // Stand
			break playerTurn
		}
	}

	for r.MustDrawOn(dealer.Total, dealer.Soft) {
		var rank int
		rank, s = drawRank(s, rng)
		dealer = dealer.AddCard(rank)
	}

	wager := 1.0
	if doubled {
		wager = 2.0
	}
	switch {
	case dealer.IsBust():
		return RoundResult{DealerBust: true, Doubled: doubled, NetUnitsWagered: wager}
	case player.Total > dealer.Total:
		return RoundResult{PlayerWin: true, Doubled: doubled, NetUnitsWagered: wager}
	case player.Total == dealer.Total:
		return RoundResult{Push: true, Doubled: doubled}
	default:
		return RoundResult{DealerWin: true, Doubled: doubled, NetUnitsWagered: -wager}
	}
}

// drawRank samples one rank index weighted by the shoe's remaining counts
// and returns the shoe with that card removed.
func drawRank(s shoe.Shoe, rng *rand.Rand) (int, shoe.Shoe) {
	total := s.Total()
	pick := rng.Int31n(total)
	var running int32
	for rank := 0; rank < shoe.NumRanks; rank++ {
		running += s.Count(rank)
		if pick < running {
			return rank, s.Remove(rank)
		}
	}
	// Unreachable for a well-formed non-empty shoe.
	return shoe.NumRanks - 1, s
}

func mergeFrequencies(partials []AggregatedFrequencies) AggregatedFrequencies {
	var total AggregatedFrequencies
	for _, p := range partials {
		total.Rounds += p.Rounds
		total.PlayerBust += p.PlayerBust
		total.DealerBust += p.DealerBust
		total.PlayerWin += p.PlayerWin
		total.Push += p.Push
		total.DealerWin += p.DealerWin
		total.PlayerNatural += p.PlayerNatural
		total.Surrendered += p.Surrendered
		total.ObservedEV += p.ObservedEV
	}
	if total.Rounds > 0 {
		n := float64(total.Rounds)
		total.PlayerBust /= n
		total.DealerBust /= n
		total.PlayerWin /= n
		total.Push /= n
		total.DealerWin /= n
		total.PlayerNatural /= n
		total.Surrendered /= n
		total.ObservedEV /= n
	}
	return total
}
