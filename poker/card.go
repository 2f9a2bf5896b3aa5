// Package poker classifies five-card poker hands into the ten standard
// categories and orders any set of hands from strongest to weakest.
package poker

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidRank is returned when a card token carries unknown rank text.
	ErrInvalidRank = errors.New("invalid rank")
	// ErrInvalidSuit is returned when a card token carries an unknown suit letter.
	ErrInvalidSuit = errors.New("invalid suit")
)

// Suit represents a card suit. Declaration order is the deterministic
// tie-break order used when two cards share a rank: D < C < H < S.
type Suit uint8

const (
	Diamonds Suit = iota
	Clubs
	Hearts
	Spades
)

// Suits lists every suit in tie-break order.
var Suits = [...]Suit{Diamonds, Clubs, Hearts, Spades}

// String returns the single-letter suit code.
func (s Suit) String() string {
	switch s {
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s <= Spades
}

// Rank represents a card rank from Two (2) to Ace (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the display form of the rank ("2".."10", "J", "Q", "K", "A").
func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r.Valid() {
			return strconv.Itoa(int(r))
		}
		return "?"
	}
}

// Valid reports whether r lies in Two..Ace.
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// Card is an immutable playing card.
type Card struct {
	rank Rank
	suit Suit
}

// NewCard creates a card, rejecting ranks and suits outside the standard deck.
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	if !suit.Valid() {
		return Card{}, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	return Card{rank: rank, suit: suit}, nil
}

// MustCard creates a card and panics on invalid input (for tables and tests).
func MustCard(rank Rank, suit Suit) Card {
	c, err := NewCard(rank, suit)
	if err != nil {
		panic(err)
	}
	return c
}

// Rank returns the card's rank.
func (c Card) Rank() Rank { return c.rank }

// Suit returns the card's suit.
func (c Card) Suit() Suit { return c.suit }

// IsZero reports whether c is the zero Card, which is never a valid card.
func (c Card) IsZero() bool { return c == Card{} }

// String returns the compact token form, e.g. "AS", "10D", "7H".
func (c Card) String() string {
	return c.rank.String() + c.suit.String()
}

// ParseCard parses a compact token such as "AS", "10d" or "7H".
// The rank is one of 2-10, J, Q, K, A and the suit one of D, C, H, S;
// both are case-insensitive.
func ParseCard(token string) (Card, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if len(token) < 2 || len(token) > 3 {
		return Card{}, fmt.Errorf("invalid card %q: want 2 or 3 characters", token)
	}

	rankText, suitText := token[:len(token)-1], token[len(token)-1]

	rank, err := parseRank(rankText)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", token, err)
	}
	suit, err := parseSuit(suitText)
	if err != nil {
		return Card{}, fmt.Errorf("card %q: %w", token, err)
	}

	return Card{rank: rank, suit: suit}, nil
}

// ParseCards parses tokens separated by whitespace and/or commas.
func ParseCards(s string) ([]Card, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := ParseCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

func parseRank(s string) (Rank, error) {
	switch s {
	case "2", "3", "4", "5", "6", "7", "8", "9", "10":
		n, _ := strconv.Atoi(s)
		return Rank(n), nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidRank, s)
	}
}

func parseSuit(c byte) (Suit, error) {
	switch c {
	case 'D':
		return Diamonds, nil
	case 'C':
		return Clubs, nil
	case 'H':
		return Hearts, nil
	case 'S':
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w %q", ErrInvalidSuit, c)
	}
}

// CompareCards orders two cards by rank, then by suit (D < C < H < S).
// The suit step carries no poker meaning; it only makes orderings deterministic.
func CompareCards(a, b Card) int {
	switch {
	case a.rank < b.rank:
		return -1
	case a.rank > b.rank:
		return 1
	case a.suit < b.suit:
		return -1
	case a.suit > b.suit:
		return 1
	}
	return 0
}
