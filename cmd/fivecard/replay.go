package main

import (
	"fmt"

	"github.com/lox/fivecardstud/internal/history"
	"github.com/lox/fivecardstud/poker"
)

// ReplayCmd re-ranks stored showdowns and checks them against the file.
type ReplayCmd struct {
	File  string `arg:"" type:"existingfile" help:"TOML history file"`
	Quiet bool   `short:"q" help:"Only print verification results"`
}

func (c *ReplayCmd) Run(a *app) error {
	f, err := history.Load(c.File)
	if err != nil {
		return err
	}
	a.logger.Debug("Loaded history", "file", c.File, "showdowns", len(f.Showdowns))

	failed := 0
	for _, rec := range f.Showdowns {
		if !c.Quiet {
			hands, err := rec.ParseHands()
			if err != nil {
				return fmt.Errorf("showdown %s: %w", rec.ID, err)
			}
			a.printer.Hands(hands)
			a.printer.Ranking(poker.SortDescending(hands))
		}

		err := rec.Verify()
		if err != nil {
			failed++
		}
		a.printer.Verified(rec.ID, err)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d showdowns failed verification", failed, len(f.Showdowns))
	}
	return nil
}
