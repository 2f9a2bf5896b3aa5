package main

import (
	"errors"

	"github.com/lox/fivecardstud/internal/history"
	"github.com/lox/fivecardstud/internal/showdown"
	"github.com/lox/fivecardstud/poker"
)

// DealCmd shuffles a deck and ranks a fresh deal.
type DealCmd struct {
	Seed    *int64 `help:"Shuffle seed for a reproducible deal (default from config, 0 = time based)"`
	Players int    `short:"n" help:"Number of hands to deal (default from config)"`
	History string `help:"Append the showdown to this TOML history file (default from config)"`
}

func (c *DealCmd) Run(a *app) error {
	seed := a.cfg.Analyzer.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}

	dealer, err := a.dealer(c.Players)
	if err != nil {
		return err
	}
	s, err := dealer.Random(seed)
	if err != nil {
		return err
	}
	a.logger.Debug("Dealt showdown", "id", s.ID, "seed", s.Seed, "players", dealer.Players())

	a.printer.Banner()
	a.printer.Showdown(s)
	return a.record(s, c.History)
}

// FileCmd ranks the hands read from a test deck file.
type FileCmd struct {
	Path    string `arg:"" type:"existingfile" help:"Test deck file, one comma separated hand per line"`
	Players int    `short:"n" help:"Number of hands to read (default from config)"`
	History string `help:"Append the showdown to this TOML history file (default from config)"`
}

func (c *FileCmd) Run(a *app) error {
	dealer, err := a.dealer(c.Players)
	if err != nil {
		return err
	}

	a.printer.Banner()
	s, err := dealer.FromFile(c.Path)
	if err != nil {
		if s != nil {
			a.printer.TestDeck(s.File, s.Lines)
		}
		var dup *poker.DuplicateCardError
		if errors.As(err, &dup) {
			a.printer.Duplicate(dup.Card)
		}
		return err
	}
	a.logger.Debug("Read test deck", "id", s.ID, "file", c.Path, "lines", len(s.Lines))

	a.printer.Showdown(s)
	return a.record(s, c.History)
}

func (a *app) dealer(players int) (*showdown.Dealer, error) {
	if players == 0 {
		players = a.cfg.Analyzer.Players
	}
	return showdown.NewDealer(players, showdown.WithClock(a.clock))
}

// record appends s to the history file named by the flag or the config.
func (a *app) record(s *showdown.Showdown, path string) error {
	if path == "" {
		path = a.cfg.Analyzer.History
	}
	if path == "" {
		return nil
	}
	if err := history.Append(path, history.NewRecord(s)); err != nil {
		return err
	}
	a.logger.Info("Saved showdown", "id", s.ID, "file", path)
	return nil
}
