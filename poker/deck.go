package poker

import (
	"fmt"
	rand "math/rand/v2"
)

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// MaxPlayers is the largest number of five-card hands one deck can deal.
const MaxPlayers = DeckSize / HandSize

// Deck represents a standard 52-card deck
type Deck struct {
	cards [DeckSize]Card // Fixed size array
	next  int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates an unshuffled deck that shuffles with rng.
// Cards are laid out suit by suit (D, C, H, S), each from Two to Ace.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{rng: rng}
	d.fill()
	return d
}

func (d *Deck) fill() {
	i := 0
	for _, suit := range Suits {
		for rank := Two; rank <= Ace; rank++ {
			d.cards[i] = Card{rank: rank, suit: suit}
			i++
		}
	}
	d.next = 0
}

// Shuffle shuffles the undealt cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > d.next; i-- {
		var j int
		if d.rng != nil {
			j = d.next + d.rng.IntN(i-d.next+1)
		} else {
			j = d.next + rand.IntN(i-d.next+1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal deals n cards from the top of the deck. It returns nil when fewer
// than n cards remain.
func (d *Deck) Deal(n int) []Card {
	if n < 0 || d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealHands deals one five-card hand per player, one card at a time around
// the table: every player receives a first card before anyone gets a second.
func (d *Deck) DealHands(players int) ([]Hand, error) {
	if players < 1 || players > MaxPlayers {
		return nil, fmt.Errorf("players must be between 1 and %d, got %d", MaxPlayers, players)
	}
	if need := players * HandSize; need > d.CardsRemaining() {
		return nil, fmt.Errorf("need %d cards to deal %d hands, %d remaining", need, players, d.CardsRemaining())
	}

	hands := make([]Hand, players)
	for round := range HandSize {
		for p := range hands {
			hands[p][round] = d.cards[d.next]
			d.next++
		}
	}
	return hands, nil
}

// Remaining returns a copy of the undealt cards in deck order.
func (d *Deck) Remaining() []Card {
	cards := make([]Card, len(d.cards)-d.next)
	copy(cards, d.cards[d.next:])
	return cards
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Reset restores all 52 cards in their original order and reshuffles them.
func (d *Deck) Reset() {
	d.fill()
	d.Shuffle()
}

// DuplicateCardError reports a card that appears more than once in a deal.
type DuplicateCardError struct {
	Card Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card %s", e.Card)
}

// CheckDistinct returns a *DuplicateCardError for the first card, in deal
// order, that repeats an earlier card in any of the hands.
func CheckDistinct(hands ...Hand) error {
	var seen [Ace + 1][Spades + 1]bool
	for _, h := range hands {
		for _, c := range h {
			if !c.rank.Valid() || !c.suit.Valid() {
				continue
			}
			if seen[c.rank][c.suit] {
				return &DuplicateCardError{Card: c}
			}
			seen[c.rank][c.suit] = true
		}
	}
	return nil
}
