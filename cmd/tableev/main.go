// Package main provides the tableev CLI for computing exact blackjack
// table expected value under a given rule configuration.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"tableev/ev"
	"tableev/rules"
	"tableev/shoe"
	"tableev/simulation"
	"tableev/table"
	"tableev/table/snapshot"
)

// Version information (set by build flags).
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// CLI flags
var (
	decks            int
	standsOnSoft17   bool
	blackjackPayout  float64
	noSurrender      bool
	surrenderPenalty float64
	savePath         string
	loadPath         string
	crossCheck       bool
	crossCheckRounds int
	workers          int
	seed             int64
	showVersion      bool
)

func init() {
	flag.IntVar(&decks, "decks", 8, "Number of 52-card decks in the shoe")
	flag.BoolVar(&standsOnSoft17, "s17", false, "Dealer stands on soft 17 (default hits, H17)")
	flag.Float64Var(&blackjackPayout, "bj-payout", 1.5, "Blackjack payout multiplier (e.g. 1.5 for 3:2, 1.2 for 6:5)")
	flag.BoolVar(&noSurrender, "no-surrender", false, "Disallow late surrender (default allows it)")
	flag.Float64Var(&surrenderPenalty, "surrender-penalty", 0.5, "Fraction of the bet forfeited on late surrender")
	flag.StringVar(&savePath, "save", "", "Path to write a binary snapshot of the computed result")
	flag.StringVar(&loadPath, "load", "", "Path to a snapshot to load and print instead of computing")
	flag.BoolVar(&crossCheck, "cross-check", false, "Also run a Monte Carlo cross-check and print observed vs. exact EV")
	flag.IntVar(&crossCheckRounds, "cross-check-rounds", 200000, "Number of sampled rounds for the Monte Carlo cross-check")
	flag.IntVar(&workers, "workers", 0, "Worker count for the cross-check (0 = auto-detect)")
	flag.Int64Var(&seed, "seed", 1, "Random seed for the Monte Carlo cross-check")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
}

func main() {
	flag.Parse()

	if showVersion {
		fmt.Printf("tableev %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	if loadPath != "" {
		if err := loadAndPrint(loadPath); err != nil {
			fmt.Fprintf(os.Stderr, "tableev: %v\n", err)
			os.Exit(1)
		}
		return
	}

	r := rules.GameRules{
		DealerStandsOnSoft17: standsOnSoft17,
		BlackjackPayout:      blackjackPayout,
		AllowSurrender:       !noSurrender,
		SurrenderPenalty:     surrenderPenalty,
		Decks:                decks,
	}

	s := shoe.NewStandard(decks)
	c := table.NewCalculator()
	result := c.CalculateTableEV(r, s)

	printResult(result)

	if crossCheck {
		printCrossCheck(r, decks)
	}

	if savePath != "" {
		if err := save(savePath, result); err != nil {
			fmt.Fprintf(os.Stderr, "tableev: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("saved snapshot to %s\n", savePath)
	}
}

func printResult(result ev.TableEVResult) {
	fmt.Printf("decks=%d s17=%v bj-payout=%.2f allow-surrender=%v surrender-penalty=%.2f\n",
		result.Rules.Decks, result.Rules.DealerStandsOnSoft17,
		result.Rules.BlackjackPayout, result.Rules.AllowSurrender, result.Rules.SurrenderPenalty)
	fmt.Printf("ev=%+.5f (normal=%+.5f double=%+.5f surrender=%+.5f)\n",
		result.EV, result.EVNormal, result.EVDouble, result.EVSurrender)
	fmt.Printf("house edge: %+.3f%%\n", -result.EV*100)
	fmt.Printf("player_win=%.5f dealer_win=%.5f push=%.5f player_bj=%.5f dealer_bj=%.5f surrender=%.5f (sum=%.6f)\n",
		result.PlayerWinProb, result.DealerWinProb, result.PushProb,
		result.PlayerBlackjackProb, result.DealerBlackjackProb, result.SurrenderProb,
		result.ProbabilitySum())
}

func printCrossCheck(r rules.GameRules, decks int) {
	w := workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	agg := simulation.RunBatch(r, decks, crossCheckRounds, w, seed)
	fmt.Printf("\nMonte Carlo cross-check (%d rounds):\n", agg.Rounds)
	fmt.Printf("  observed EV per unit bet: %+.5f\n", agg.ObservedEV)
}

func save(path string, result ev.TableEVResult) error {
	buf := snapshot.Encode(result)
	return os.WriteFile(path, buf, 0o644)
}

func loadAndPrint(path string) error {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	snap, err := snapshot.Decode(buf)
	if err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}
	fmt.Printf("run %s\n", snap.RunID)
	printResult(snap.Result)
	return nil
}
