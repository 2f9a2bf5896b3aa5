package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/fivecardstud/internal/config"
	"github.com/lox/fivecardstud/internal/report"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config string `short:"c" default:"fivecard.hcl" help:"Path to HCL config file (optional)"`
	Debug  bool   `help:"Enable debug logging"`
	Plain  bool   `help:"Disable colored output"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Deal     DealCmd          `cmd:"" default:"1" help:"Shuffle a deck, deal hands and rank them"`
	File     FileCmd          `cmd:"" help:"Rank the hands in a test deck file"`
	Rank     RankCmd          `cmd:"" help:"Rank hands given on the command line"`
	Replay   ReplayCmd        `cmd:"" help:"Print and verify showdowns from a history file"`
	Simulate SimulateCmd      `cmd:"" help:"Estimate hand category frequencies"`
}

// app carries what commands need at run time.
type app struct {
	cfg     *config.Config
	out     io.Writer
	logger  *log.Logger
	clock   quartz.Clock
	printer *report.Printer
}

func newApp(g Globals, stdout, stderr io.Writer) (*app, error) {
	logger := log.NewWithOptions(stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "fivecard",
	})
	if g.Debug {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	logger.Debug("Loaded config", "path", g.Config, "players", cfg.Analyzer.Players, "history", cfg.Analyzer.History)

	return &app{
		cfg:     cfg,
		out:     stdout,
		logger:  logger,
		clock:   quartz.NewReal(),
		printer: report.New(stdout, g.Plain || cfg.Analyzer.Plain),
	}, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fivecard"),
		kong.Description("Deal, rank and compare five-card stud hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	a, err := newApp(cli.Globals, os.Stdout, os.Stderr)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(a)
	ctx.FatalIfErrorf(err)
}
