package main

import (
	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/lox/fivecardstud/cmd/shared"
	"github.com/lox/fivecardstud/internal/config"
	"github.com/lox/fivecardstud/internal/server"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"fivecard.hcl" help:"Path to HCL config file (optional)"`
	Addr     string           `help:"Server address (overrides config)"`
	Debug    bool             `help:"Enable debug logging"`
	JSONLogs bool             `name:"json-logs" help:"Write structured JSON logs"`
}

func (c *CLI) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.Server.Address = c.Addr
	}

	logger := c.logger(cfg.Server.LogLevel)
	logger.Info().
		Str("address", cfg.Server.Address).
		Str("config", c.Config).
		Dur("read_timeout", cfg.Server.ReadTimeout).
		Dur("write_timeout", cfg.Server.WriteTimeout).
		Int("max_hands", cfg.Server.MaxHands).
		Str("version", version).
		Msg("Starting fivecard rank server")

	s, err := server.New(cfg.Server, logger)
	if err != nil {
		return err
	}

	// Setup graceful shutdown
	ctx := shared.SetupSignalHandlerWithLogger(logger)
	return s.ListenAndServe(ctx)
}

func (c *CLI) logger(level string) zerolog.Logger {
	lvl := shared.ParseLevel(level, c.Debug)
	if c.JSONLogs {
		return shared.SetupStructuredLogger(lvl)
	}
	return shared.SetupLogger(lvl)
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("fivecard-server"),
		kong.Description("HTTP and WebSocket service that ranks five-card stud hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
