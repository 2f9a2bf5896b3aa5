package main

import (
	"github.com/lox/fivecardstud/cmd/shared"
	"github.com/lox/fivecardstud/internal/randutil"
	"github.com/lox/fivecardstud/internal/simulate"
)

// SimulateCmd deals many random showdowns and tallies hand categories.
type SimulateCmd struct {
	Deals   int    `default:"100000" help:"Number of deals to simulate"`
	Players int    `short:"n" help:"Hands per deal (default from config)"`
	Workers int    `help:"Parallel workers (0 = number of CPUs)"`
	Seed    *int64 `help:"RNG seed for reproducible results (default from config, 0 = time based)"`
}

func (c *SimulateCmd) Run(a *app) error {
	opts := simulate.Options{
		Deals:   c.Deals,
		Players: c.Players,
		Workers: c.Workers,
		Seed:    a.cfg.Analyzer.Seed,
	}
	if opts.Players == 0 {
		opts.Players = a.cfg.Analyzer.Players
	}
	if c.Seed != nil {
		opts.Seed = *c.Seed
	}

	ctx := shared.SetupSignalHandler()
	start := a.clock.Now()
	opts.Seed = randutil.Resolve(opts.Seed, start)
	a.logger.Info("Simulating", "deals", opts.Deals, "players", opts.Players, "seed", opts.Seed)

	tally, err := simulate.Run(ctx, opts)
	if err != nil {
		return err
	}

	a.printer.Tally(tally, a.clock.Since(start))
	return nil
}
