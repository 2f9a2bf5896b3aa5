// Package config loads analyzer and server settings from an HCL file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gitlab.com/efronlicht/enve"

	"github.com/lox/fivecardstud/poker"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "fivecard.hcl"

// Environment variables that override file settings.
const (
	EnvPlayers      = "FIVECARD_PLAYERS"
	EnvSeed         = "FIVECARD_SEED"
	EnvHistory      = "FIVECARD_HISTORY"
	EnvPort         = "FIVECARD_PORT"
	EnvLogLevel     = "FIVECARD_LOG_LEVEL"
	EnvReadTimeout  = "FIVECARD_READ_TIMEOUT"
	EnvWriteTimeout = "FIVECARD_WRITE_TIMEOUT"
	EnvMaxHands     = "FIVECARD_MAX_HANDS"
)

// Config is the resolved configuration.
type Config struct {
	Analyzer Analyzer
	Server   Server
}

// Analyzer holds settings for dealing and reporting.
type Analyzer struct {
	Players int
	Seed    int64 // 0 picks a time-based seed per deal
	History string
	Plain   bool
}

// Server holds settings for the rank service.
type Server struct {
	Address      string
	LogLevel     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MaxHands     int
}

// file mirrors the HCL layout. Both blocks are optional.
type file struct {
	Analyzer *analyzerBlock `hcl:"analyzer,block"`
	Server   *serverBlock   `hcl:"server,block"`
}

type analyzerBlock struct {
	Players int    `hcl:"players,optional"`
	Seed    int64  `hcl:"seed,optional"`
	History string `hcl:"history,optional"`
	Plain   bool   `hcl:"plain,optional"`
}

type serverBlock struct {
	Address      string `hcl:"address,optional"`
	LogLevel     string `hcl:"log_level,optional"`
	ReadTimeout  string `hcl:"read_timeout,optional"`
	WriteTimeout string `hcl:"write_timeout,optional"`
	MaxHands     int    `hcl:"max_hands,optional"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Analyzer: Analyzer{
			Players: 6,
		},
		Server: Server{
			Address:      ":8080",
			LogLevel:     "info",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			MaxHands:     poker.MaxPlayers,
		},
	}
}

// Load reads the HCL file at filename, applies environment overrides and
// validates the result. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	cfg, err := LoadFile(filename)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads the HCL file at filename over the defaults without
// consulting the environment.
func LoadFile(filename string) (*Config, error) {
	cfg := Default()
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	if a := raw.Analyzer; a != nil {
		if a.Players != 0 {
			cfg.Analyzer.Players = a.Players
		}
		cfg.Analyzer.Seed = a.Seed
		cfg.Analyzer.History = a.History
		cfg.Analyzer.Plain = a.Plain
	}

	if s := raw.Server; s != nil {
		if s.Address != "" {
			cfg.Server.Address = s.Address
		}
		if s.LogLevel != "" {
			cfg.Server.LogLevel = s.LogLevel
		}
		if s.MaxHands != 0 {
			cfg.Server.MaxHands = s.MaxHands
		}
		if err := parseDuration("read_timeout", s.ReadTimeout, &cfg.Server.ReadTimeout); err != nil {
			return nil, err
		}
		if err := parseDuration("write_timeout", s.WriteTimeout, &cfg.Server.WriteTimeout); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func parseDuration(name, value string, dst *time.Duration) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	*dst = d
	return nil
}

// ApplyEnv overrides settings from FIVECARD_* environment variables. Unset or
// empty variables leave the current value in place; a value that does not
// parse is an error.
func (c *Config) ApplyEnv() error {
	port := 0
	err := errors.Join(
		lookupEnv(strconv.Atoi, EnvPlayers, &c.Analyzer.Players),
		lookupEnv(parseSeed, EnvSeed, &c.Analyzer.Seed),
		lookupEnv(identity, EnvHistory, &c.Analyzer.History),
		lookupEnv(strconv.Atoi, EnvPort, &port),
		lookupEnv(identity, EnvLogLevel, &c.Server.LogLevel),
		lookupEnv(time.ParseDuration, EnvReadTimeout, &c.Server.ReadTimeout),
		lookupEnv(time.ParseDuration, EnvWriteTimeout, &c.Server.WriteTimeout),
		lookupEnv(strconv.Atoi, EnvMaxHands, &c.Server.MaxHands),
	)
	if err != nil {
		return err
	}
	if port != 0 {
		c.Server.Address = fmt.Sprintf(":%d", port)
	}
	return nil
}

// lookupEnv parses key into dst when it is set and non-empty.
func lookupEnv[T any](parse func(string) (T, error), key string, dst *T) error {
	if os.Getenv(key) == "" {
		return nil
	}
	v, err := enve.Lookup(parse, key)
	if err != nil {
		return fmt.Errorf("invalid %s value: %w", key, err)
	}
	*dst = v
	return nil
}

func parseSeed(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) }

func identity(s string) (string, error) { return s, nil }

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Analyzer.Players < 1 || c.Analyzer.Players > poker.MaxPlayers {
		return fmt.Errorf("players must be between 1 and %d, got %d", poker.MaxPlayers, c.Analyzer.Players)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if !validLogLevels[c.Server.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("read timeout must be positive, got %s", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("write timeout must be positive, got %s", c.Server.WriteTimeout)
	}
	if c.Server.MaxHands < 1 || c.Server.MaxHands > poker.MaxPlayers {
		return fmt.Errorf("max hands must be between 1 and %d, got %d", poker.MaxPlayers, c.Server.MaxHands)
	}
	return nil
}
