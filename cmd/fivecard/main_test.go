package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecardstud/internal/history"
	"github.com/lox/fivecardstud/internal/report"
	"github.com/lox/fivecardstud/poker"
)

const royalDeck = "../../internal/testdeck/testdata/royal.txt"

// run parses args like the real binary and runs the selected command with
// plain output captured.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("fivecard"),
		kong.Vars{"version": "test"},
		kong.Exit(func(code int) { t.Fatalf("unexpected exit %d", code) }),
	)
	require.NoError(t, err)

	args = append([]string{"--plain", "--config", filepath.Join(t.TempDir(), "missing.hcl")}, args...)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)

	var out bytes.Buffer
	a, err := newApp(cli.Globals, &out, io.Discard)
	require.NoError(t, err)

	err = ctx.Run(a)
	return out.String(), err
}

func winningOrder(t *testing.T, out string) []string {
	t.Helper()
	_, after, ok := strings.Cut(out, report.WinningHeader+"\n")
	require.True(t, ok, "no winning order in output:\n%s", out)

	var lines []string
	for _, line := range strings.Split(after, "\n") {
		if line == "" {
			break
		}
		lines = append(lines, line)
	}
	return lines
}

func TestDealCommand(t *testing.T) {
	t.Parallel()
	out, err := run(t, "deal", "--seed", "42")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, report.Banner+"\n"), out)
	assert.Contains(t, out, "*** USING RANDOMIZED DECK OF CARDS ***")
	assert.Contains(t, out, "*** Here are the six hands...")
	assert.Len(t, winningOrder(t, out), 6)

	again, err := run(t, "deal", "--seed", "42")
	require.NoError(t, err)
	assert.Equal(t, out, again, "same seed must deal the same showdown")
}

func TestDealIsDefaultCommand(t *testing.T) {
	t.Parallel()
	out, err := run(t)
	require.NoError(t, err)
	assert.Contains(t, out, "*** USING RANDOMIZED DECK OF CARDS ***")
}

func TestDealPlayers(t *testing.T) {
	t.Parallel()
	out, err := run(t, "deal", "--seed", "3", "-n", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "*** Here are the two hands...")
	assert.Len(t, winningOrder(t, out), 2)

	_, err = run(t, "deal", "-n", "11")
	assert.Error(t, err)
}

func TestDealRecordsHistory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "hands", "history.toml")

	_, err := run(t, "deal", "--seed", "1", "--history", path)
	require.NoError(t, err)
	_, err = run(t, "deal", "--seed", "2", "--history", path)
	require.NoError(t, err)

	f, err := history.Load(path)
	require.NoError(t, err)
	require.Len(t, f.Showdowns, 2)
	assert.Equal(t, int64(1), f.Showdowns[0].Seed)
	assert.Equal(t, int64(2), f.Showdowns[1].Seed)

	out, err := run(t, "replay", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK "+f.Showdowns[0].ID)
	assert.Contains(t, out, "OK "+f.Showdowns[1].ID)
	assert.Contains(t, out, report.WinningHeader)

	out, err = run(t, "replay", "--quiet", path)
	require.NoError(t, err)
	assert.NotContains(t, out, report.WinningHeader)
}

func TestReplayDetectsTampering(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "history.toml")
	_, err := run(t, "deal", "--seed", "9", "--history", path)
	require.NoError(t, err)

	f, err := history.Load(path)
	require.NoError(t, err)
	rec := &f.Showdowns[0]
	rec.Ranking[0], rec.Ranking[1] = rec.Ranking[1], rec.Ranking[0]

	var buf bytes.Buffer
	require.NoError(t, history.Encode(&buf, f))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	out, err := run(t, "replay", "-q", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 showdowns failed verification")
	assert.Contains(t, out, "MISMATCH "+rec.ID)
}

func TestFileCommand(t *testing.T) {
	t.Parallel()
	out, err := run(t, "file", royalDeck)
	require.NoError(t, err)

	assert.Contains(t, out, "*** USING TEST DECK ***")
	assert.Contains(t, out, "*** File: "+royalDeck)
	assert.Contains(t, out, "10S, JS, QS, KS, AS")
	assert.Equal(t, []string{
		"10S JS QS KS AS - Royal Straight Flush",
		"2D 3D 4D 5D AD - Straight Flush",
		"7H 7C 7S 2H 2C - Full House",
		"AH AC 3C 9S 4H - Pair",
		"KH KD 5C 6S 8H - Pair",
		"9C 8D 6C 4C 3H - High Card",
	}, winningOrder(t, out))
}

func TestFileCommandDuplicate(t *testing.T) {
	t.Parallel()
	out, err := run(t, "file", "../../internal/testdeck/testdata/duplicate.txt")

	var dup *poker.DuplicateCardError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Contains(t, out, "*** DUPLICATE: QS ***")

	// the file is echoed in full before the error block
	header := strings.Index(out, "*** File: ../../internal/testdeck/testdata/duplicate.txt")
	first := strings.Index(out, "10S, JS, QS, KS, AS\n")
	last := strings.Index(out, "9C, 8D, 6C, 4C, QS\n")
	errBlock := strings.Index(out, "*** ERROR - DUPLICATED CARD FOUND IN DECK ***")
	require.NotEqual(t, -1, header)
	require.NotEqual(t, -1, errBlock)
	assert.True(t, header < first && first < last && last < errBlock, "out:\n%s", out)
	assert.NotContains(t, out, report.WinningHeader)
}

func TestRankCommand(t *testing.T) {
	t.Parallel()
	out, err := run(t, "rank", "AH 9D 5C 3S 2H", "7h,7c,7s,8d,8c", "KH KD 2C 4S 6H")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"7H 7C 7S 8D 8C - Full House",
		"KH KD 2C 4S 6H - Pair",
		"AH 9D 5C 3S 2H - High Card",
	}, winningOrder(t, out))

	_, err = run(t, "rank", "AH 9D 5C 3S")
	require.ErrorIs(t, err, poker.ErrHandSize)
	assert.Contains(t, err.Error(), "hand 1")

	out, err = run(t, "rank", "AH 9D 5C 3S 2H", "AH KD 2C 4S 6H")
	var dup *poker.DuplicateCardError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Contains(t, out, "*** DUPLICATE: AH ***")
}

func TestSimulateCommand(t *testing.T) {
	t.Parallel()
	out, err := run(t, "simulate", "--deals", "500", "--players", "4", "--workers", "2", "--seed", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Royal Straight Flush")
	assert.Contains(t, out, "500 deals, 2000 hands")

	_, err = run(t, "simulate", "--deals", "0")
	assert.Error(t, err)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "fivecard.hcl")
	histPath := filepath.Join(dir, "history.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
analyzer {
  players = 3
  seed    = 77
  history = "`+filepath.ToSlash(histPath)+`"
  plain   = true
}
`), 0o644))

	var cli CLI
	parser, err := kong.New(&cli, kong.Name("fivecard"), kong.Vars{"version": "test"})
	require.NoError(t, err)
	ctx, err := parser.Parse([]string{"--config", cfgPath, "deal"})
	require.NoError(t, err)

	var out bytes.Buffer
	a, err := newApp(cli.Globals, &out, io.Discard)
	require.NoError(t, err)
	require.NoError(t, ctx.Run(a))

	assert.Contains(t, out.String(), "*** Here are the three hands...")
	f, err := history.Load(histPath)
	require.NoError(t, err)
	require.Len(t, f.Showdowns, 1)
	assert.Equal(t, int64(77), f.Showdowns[0].Seed)
}
