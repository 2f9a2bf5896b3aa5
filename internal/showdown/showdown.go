// Package showdown deals and ranks a complete round of five-card hands.
package showdown

import (
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/fivecardstud/internal/randutil"
	"github.com/lox/fivecardstud/internal/testdeck"
	"github.com/lox/fivecardstud/poker"
)

// Source records where a showdown's hands came from.
type Source string

const (
	SourceRandom Source = "random"
	SourceFile   Source = "file"
	SourceManual Source = "manual"
)

// ErrNoHands is returned when a showdown is requested for an empty set of hands.
var ErrNoHands = errors.New("no hands to rank")

// Showdown is one evaluated deal.
type Showdown struct {
	ID        string
	Source    Source
	Seed      int64  // random deals only
	File      string // file deals only
	CreatedAt time.Time

	// Deck is the full shuffled deck before dealing (random deals only).
	Deck []poker.Card
	// Hands are in deal order.
	Hands []poker.Hand
	// Remaining is what is left in the deck after dealing (random deals only).
	Remaining []poker.Card
	// Ranking is Hands sorted strongest first.
	Ranking []poker.Ranked

	// Lines is the raw file content (file deals only).
	Lines []string
}

// Winner returns the strongest hand.
func (s *Showdown) Winner() poker.Ranked {
	return s.Ranking[0]
}

// Dealer creates showdowns for a fixed number of players.
type Dealer struct {
	players int
	clock   quartz.Clock
}

// Option configures a Dealer.
type Option func(*Dealer)

// WithClock sets the clock used for timestamps and time-derived seeds.
func WithClock(clock quartz.Clock) Option {
	return func(d *Dealer) {
		d.clock = clock
	}
}

// NewDealer returns a dealer for players hands per deal.
func NewDealer(players int, opts ...Option) (*Dealer, error) {
	if players < 1 || players > poker.MaxPlayers {
		return nil, fmt.Errorf("players must be between 1 and %d, got %d", poker.MaxPlayers, players)
	}
	d := &Dealer{players: players, clock: quartz.NewReal()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Players returns the number of hands dealt per showdown.
func (d *Dealer) Players() int { return d.players }

// Random shuffles a fresh deck and deals one hand per player. A zero seed is
// replaced by one derived from the clock; the seed actually used is recorded
// so the deal can be reproduced.
func (d *Dealer) Random(seed int64) (*Showdown, error) {
	now := d.clock.Now()
	seed = randutil.Resolve(seed, now)

	deck := poker.NewDeck(randutil.New(seed))
	deck.Shuffle()
	shuffled := deck.Remaining()

	hands, err := deck.DealHands(d.players)
	if err != nil {
		return nil, err
	}

	s := d.newShowdown(SourceRandom, now, hands)
	s.Seed = seed
	s.Deck = shuffled
	s.Remaining = deck.Remaining()
	return s, nil
}

// FromFile reads the dealer's number of hands from a test-deck file and
// ranks them. If the file was read but its hands are invalid, the error
// comes with an unranked Showdown carrying File and Lines for echoing.
func (d *Dealer) FromFile(path string) (*Showdown, error) {
	deal, err := testdeck.ReadFile(path, d.players)
	if err != nil {
		if deal == nil {
			return nil, err
		}
		return &Showdown{Source: SourceFile, File: path, Lines: deal.Lines}, err
	}
	s := d.newShowdown(SourceFile, d.clock.Now(), deal.Hands)
	s.File = path
	s.Lines = deal.Lines
	return s, nil
}

// FromHands ranks caller-supplied hands. Any number of hands up to
// poker.MaxPlayers is accepted, regardless of the dealer's player count.
// A card repeated across hands fails with *poker.DuplicateCardError.
func (d *Dealer) FromHands(source Source, hands []poker.Hand) (*Showdown, error) {
	if len(hands) == 0 {
		return nil, ErrNoHands
	}
	if len(hands) > poker.MaxPlayers {
		return nil, fmt.Errorf("at most %d hands can come from one deck, got %d", poker.MaxPlayers, len(hands))
	}
	if err := poker.CheckDistinct(hands...); err != nil {
		return nil, err
	}
	return d.newShowdown(source, d.clock.Now(), hands), nil
}

func (d *Dealer) newShowdown(source Source, now time.Time, hands []poker.Hand) *Showdown {
	dealt := make([]poker.Hand, len(hands))
	copy(dealt, hands)
	return &Showdown{
		ID:        newID(),
		Source:    source,
		CreatedAt: now,
		Hands:     dealt,
		Ranking:   poker.SortDescending(dealt),
	}
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
