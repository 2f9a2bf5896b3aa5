package poker

import (
	"errors"
	"fmt"
	"strings"
)

// HandSize is the number of cards in a hand.
const HandSize = 5

// ErrHandSize is returned when a hand is built from anything other than five cards.
var ErrHandSize = errors.New("hand must contain exactly 5 cards")

// Hand is an unordered group of five cards. It is a value type: passing a Hand
// copies it, so nothing in this package can reorder the caller's cards.
type Hand [HandSize]Card

// NewHand builds a hand from exactly five cards.
func NewHand(cards ...Card) (Hand, error) {
	var h Hand
	if len(cards) != HandSize {
		return h, fmt.Errorf("%w, got %d", ErrHandSize, len(cards))
	}
	for i, c := range cards {
		if c.IsZero() {
			return h, fmt.Errorf("card %d: %w", i+1, ErrInvalidRank)
		}
		h[i] = c
	}
	return h, nil
}

// ParseHand parses five card tokens separated by whitespace and/or commas.
func ParseHand(s string) (Hand, error) {
	cards, err := ParseCards(s)
	if err != nil {
		return Hand{}, err
	}
	return NewHand(cards...)
}

// MustParseHand parses a hand and panics on error (for tests).
func MustParseHand(s string) Hand {
	h, err := ParseHand(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse hand '%s': %v", s, err))
	}
	return h
}

// Cards returns the hand's cards as a new slice in their original order.
func (h Hand) Cards() []Card {
	cards := make([]Card, HandSize)
	copy(cards, h[:])
	return cards
}

// Strings returns the card tokens in their original order.
func (h Hand) Strings() []string {
	tokens := make([]string, HandSize)
	for i, c := range h {
		tokens[i] = c.String()
	}
	return tokens
}

// String returns the card tokens joined by spaces, e.g. "AS KS QS JS 10S".
func (h Hand) String() string {
	return strings.Join(h.Strings(), " ")
}
