// Package history stores showdowns in TOML files and replays them.
package history

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lox/fivecardstud/internal/fileutil"
	"github.com/lox/fivecardstud/internal/randutil"
	"github.com/lox/fivecardstud/internal/showdown"
	"github.com/lox/fivecardstud/poker"
)

// File is a history document: a list of [[showdown]] tables.
type File struct {
	Showdowns []Record `toml:"showdown"`
}

// Record is one stored showdown.
type Record struct {
	ID        string     `toml:"id"`
	Source    string     `toml:"source"`
	Seed      int64      `toml:"seed,omitempty"`
	File      string     `toml:"file,omitempty"`
	CreatedAt time.Time  `toml:"created_at"`
	Deck      []string   `toml:"deck,omitempty"`
	Hands     [][]string `toml:"hands"`
	Ranking   []Entry    `toml:"ranking"`
}

// Entry is one line of a stored winning order.
type Entry struct {
	Cards []string `toml:"cards"`
	Rank  string   `toml:"rank"`
}

// NewRecord converts a showdown for storage.
func NewRecord(s *showdown.Showdown) Record {
	rec := Record{
		ID:        s.ID,
		Source:    string(s.Source),
		Seed:      s.Seed,
		File:      s.File,
		CreatedAt: s.CreatedAt.UTC(),
		Hands:     make([][]string, len(s.Hands)),
		Ranking:   make([]Entry, len(s.Ranking)),
	}
	if len(s.Deck) > 0 {
		rec.Deck = cardStrings(s.Deck)
	}
	for i, h := range s.Hands {
		rec.Hands[i] = h.Strings()
	}
	for i, r := range s.Ranking {
		rec.Ranking[i] = Entry{Cards: r.Hand.Strings(), Rank: r.Rank.String()}
	}
	return rec
}

// Encode writes the history document to w.
func Encode(w io.Writer, f *File) error {
	if f == nil {
		return errors.New("history: file is nil")
	}
	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(f)
}

// Decode reads a history document from r.
func Decode(r io.Reader) (*File, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return &f, nil
}

// Load reads the history file at path.
func Load(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Append adds rec to the history file at path, creating the file if needed.
// The file is rewritten atomically, so a crash never leaves a truncated history.
func Append(path string, rec Record) error {
	f, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		f, err = &File{}, nil
	}
	if err != nil {
		return err
	}
	f.Showdowns = append(f.Showdowns, rec)

	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	return fileutil.WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// ParseHands parses the stored hands in deal order.
func (r Record) ParseHands() ([]poker.Hand, error) {
	hands := make([]poker.Hand, len(r.Hands))
	for i, tokens := range r.Hands {
		h, err := poker.ParseHand(strings.Join(tokens, " "))
		if err != nil {
			return nil, fmt.Errorf("showdown %s hand %d: %w", r.ID, i+1, err)
		}
		hands[i] = h
	}
	return hands, nil
}

// ErrUnknownRank is returned by Verify for a stored label that names no hand
// category.
var ErrUnknownRank = errors.New("unknown hand rank")

// MismatchError reports a stored result that no longer matches what the
// current engine computes.
type MismatchError struct {
	ID       string
	Position int // 1-based; 0 means the deck
	Stored   string
	Computed string
}

func (e *MismatchError) Error() string {
	if e.Position == 0 {
		return fmt.Sprintf("showdown %s: stored deck does not match seed: stored %q, computed %q", e.ID, e.Stored, e.Computed)
	}
	return fmt.Sprintf("showdown %s position %d: stored %q, computed %q", e.ID, e.Position, e.Stored, e.Computed)
}

// Verify re-ranks the stored hands and checks the stored winning order and
// labels. For random deals it also checks that the seed reproduces the
// stored deck. The first difference is returned as a *MismatchError.
func (r Record) Verify() error {
	hands, err := r.ParseHands()
	if err != nil {
		return err
	}

	if r.Source == string(showdown.SourceRandom) && r.Seed != 0 && len(r.Deck) > 0 {
		deck := poker.NewDeck(randutil.New(r.Seed))
		deck.Shuffle()
		stored, computed := strings.Join(r.Deck, " "), strings.Join(cardStrings(deck.Remaining()), " ")
		if stored != computed {
			return &MismatchError{ID: r.ID, Stored: stored, Computed: computed}
		}
	}

	ranking := poker.SortDescending(hands)
	if len(ranking) != len(r.Ranking) {
		return &MismatchError{
			ID:       r.ID,
			Position: min(len(ranking), len(r.Ranking)) + 1,
			Stored:   fmt.Sprintf("%d entries", len(r.Ranking)),
			Computed: fmt.Sprintf("%d entries", len(ranking)),
		}
	}
	for i, got := range ranking {
		want := r.Ranking[i]
		if _, ok := poker.ParseHandRank(want.Rank); !ok {
			return fmt.Errorf("showdown %s position %d: %w %q", r.ID, i+1, ErrUnknownRank, want.Rank)
		}
		stored := strings.Join(want.Cards, " ") + " - " + want.Rank
		if computed := got.String(); computed != stored {
			return &MismatchError{ID: r.ID, Position: i + 1, Stored: stored, Computed: computed}
		}
	}
	return nil
}

func cardStrings(cards []poker.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}
