// Package simulate estimates hand category frequencies by dealing many
// random showdowns in parallel.
package simulate

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/lox/fivecardstud/internal/randutil"
	"github.com/lox/fivecardstud/poker"
)

// maxWorkers caps the default worker count.
const maxWorkers = 8

// Options configures a simulation run.
type Options struct {
	Deals   int
	Players int
	Workers int // 0 picks runtime.NumCPU(), capped at 8
	Seed    int64
}

// Tally counts categories across every dealt hand, and the category of the
// winning hand of each deal.
type Tally struct {
	Deals  int
	Hands  int
	Counts [poker.NumHandRanks]int
	Wins   [poker.NumHandRanks]int
}

// Add merges o into t.
func (t *Tally) Add(o Tally) {
	t.Deals += o.Deals
	t.Hands += o.Hands
	for i := range t.Counts {
		t.Counts[i] += o.Counts[i]
		t.Wins[i] += o.Wins[i]
	}
}

// Frequency returns the share of dealt hands in category r.
func (t Tally) Frequency(r poker.HandRank) float64 {
	if t.Hands == 0 {
		return 0
	}
	return float64(t.Counts[r]) / float64(t.Hands)
}

// WinShare returns the share of deals won by a hand in category r.
func (t Tally) WinShare(r poker.HandRank) float64 {
	if t.Deals == 0 {
		return 0
	}
	return float64(t.Wins[r]) / float64(t.Deals)
}

// Run deals opts.Deals showdowns split across workers. Each worker owns its
// random source, seeded from opts.Seed, so a given seed and worker count
// always produce the same tally. Cancelling ctx stops all workers.
func Run(ctx context.Context, opts Options) (Tally, error) {
	if opts.Deals < 1 {
		return Tally{}, fmt.Errorf("deals must be positive, got %d", opts.Deals)
	}
	if opts.Players < 1 || opts.Players > poker.MaxPlayers {
		return Tally{}, fmt.Errorf("players must be between 1 and %d, got %d", poker.MaxPlayers, opts.Players)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = min(runtime.NumCPU(), maxWorkers)
	}
	workers = min(workers, opts.Deals)

	seeds := randutil.Split(opts.Seed, workers)
	results := make([]Tally, workers)

	g, ctx := errgroup.WithContext(ctx)
	perWorker, extra := opts.Deals/workers, opts.Deals%workers
	for w := range workers {
		deals := perWorker
		if w < extra {
			deals++
		}
		g.Go(func() error {
			t, err := runWorker(ctx, seeds[w], deals, opts.Players)
			results[w] = t
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Tally{}, err
	}

	var total Tally
	for _, t := range results {
		total.Add(t)
	}
	return total, nil
}

func runWorker(ctx context.Context, seed int64, deals, players int) (Tally, error) {
	var t Tally
	deck := poker.NewDeck(randutil.New(seed))
	evals := make([]poker.Evaluation, players)

	for i := range deals {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return t, err
			}
		}

		deck.Reset()
		hands, err := deck.DealHands(players)
		if err != nil {
			return t, err
		}

		best := 0
		for p, h := range hands {
			evals[p] = poker.Evaluate(h)
			t.Counts[evals[p].Rank()]++
			if p > 0 && evals[p].IsStronger(evals[best]) {
				best = p
			}
		}
		t.Wins[evals[best].Rank()]++
		t.Hands += players
		t.Deals++
	}
	return t, nil
}
