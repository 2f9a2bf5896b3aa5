package main

import (
	"errors"
	"fmt"

	"github.com/lox/fivecardstud/internal/showdown"
	"github.com/lox/fivecardstud/poker"
)

// RankCmd ranks hands given as arguments.
type RankCmd struct {
	Hands []string `arg:"" help:"Five-card hands, each quoted (e.g. \"AS KS QS JS 10S\" \"2D,2C,5H,9S,KD\")"`
}

func (c *RankCmd) Run(a *app) error {
	hands := make([]poker.Hand, len(c.Hands))
	for i, arg := range c.Hands {
		h, err := poker.ParseHand(arg)
		if err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = h
	}

	dealer, err := a.dealer(0)
	if err != nil {
		return err
	}
	s, err := dealer.FromHands(showdown.SourceManual, hands)
	if err != nil {
		var dup *poker.DuplicateCardError
		if errors.As(err, &dup) {
			a.printer.Duplicate(dup.Card)
		}
		return err
	}

	a.printer.Showdown(s)
	return nil
}
