// Package testdeck reads fixed deals from text files. Each line holds one
// five-card hand as comma-separated tokens, for example:
//
//	AS, 10D, 7H, 7C, 2S
package testdeck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lox/fivecardstud/poker"
)

// DefaultPlayers is the number of hands read when the caller does not ask
// for a specific count.
const DefaultPlayers = 6

// ErrTooFewHands is returned when the file holds fewer hand lines than requested.
var ErrTooFewHands = errors.New("not enough hands in test deck")

// Deal is the content of a test-deck file.
type Deal struct {
	// Lines holds every line of the file exactly as read, for echoing.
	Lines []string
	// Hands holds one hand per player in file order.
	Hands []poker.Hand
}

// LineError locates a parse or duplicate error in the file.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// ReadFile reads players hands from the file at path.
func ReadFile(path string, players int) (*Deal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open test deck: %w", err)
	}
	defer f.Close()
	return Read(f, players)
}

// Read reads players hands from r. The first players non-blank lines each
// must hold exactly five cards, and no card may appear twice across those
// hands. A repeated card fails with an error wrapping *poker.DuplicateCardError.
// Lines after the last hand are kept in Lines but otherwise ignored.
//
// Once r has been read in full the Deal is returned even on error, with
// Lines complete and Hands holding the hands parsed before the failure.
func Read(r io.Reader, players int) (*Deal, error) {
	if players < 1 || players > poker.MaxPlayers {
		return nil, fmt.Errorf("players must be between 1 and %d, got %d", poker.MaxPlayers, players)
	}

	deal := &Deal{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		deal.Lines = append(deal.Lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read test deck: %w", err)
	}

	var seen [poker.Ace + 1][len(poker.Suits)]bool
	for i, line := range deal.Lines {
		if len(deal.Hands) == players {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		tokens := strings.Split(strings.TrimSpace(line), ",")
		cards := make([]poker.Card, 0, len(tokens))
		for _, token := range tokens {
			card, err := poker.ParseCard(token)
			if err != nil {
				return deal, &LineError{Line: i + 1, Err: err}
			}
			if seen[card.Rank()][card.Suit()] {
				return deal, &LineError{Line: i + 1, Err: &poker.DuplicateCardError{Card: card}}
			}
			seen[card.Rank()][card.Suit()] = true
			cards = append(cards, card)
		}

		hand, err := poker.NewHand(cards...)
		if err != nil {
			return deal, &LineError{Line: i + 1, Err: err}
		}
		deal.Hands = append(deal.Hands, hand)
	}

	if len(deal.Hands) < players {
		return deal, fmt.Errorf("%w: want %d, found %d", ErrTooFewHands, players, len(deal.Hands))
	}
	return deal, nil
}
