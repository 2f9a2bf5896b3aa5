package poker

import "slices"

// Evaluation is a classified hand together with the facts its tie-breaks need.
// It is computed once per hand and reused for both sorting and display.
type Evaluation struct {
	hand    Hand
	rank    HandRank
	ordered Hand // descending by rank, then suit
	counts  [Ace + 1]uint8
	wheel   bool
}

// Classify returns the category of a five-card hand.
func Classify(h Hand) HandRank {
	return Evaluate(h).rank
}

// Evaluate classifies h and records its rank and suit structure.
func Evaluate(h Hand) Evaluation {
	e := Evaluation{hand: h, ordered: h}
	slices.SortFunc(e.ordered[:], func(a, b Card) int {
		return CompareCards(b, a)
	})

	var suits [Spades + 1]uint8
	for _, c := range h {
		if c.rank <= Ace {
			e.counts[c.rank]++
		}
		if c.suit <= Spades {
			suits[c.suit]++
		}
	}

	flush := false
	for _, n := range suits {
		if n == HandSize {
			flush = true
			break
		}
	}

	straight, wheel := detectStraight(&e.counts)
	e.wheel = wheel
	e.rank = categorize(&e.counts, flush, straight)
	return e
}

// detectStraight reports whether the distinct ranks form five consecutive
// values, and whether that straight is the ace-low wheel (A-2-3-4-5).
// Any repeated rank leaves fewer than five distinct ranks, so paired hands
// never qualify.
func detectStraight(counts *[Ace + 1]uint8) (straight, wheel bool) {
	var distinct [HandSize]Rank
	n := 0
	for r := Two; r <= Ace; r++ {
		if counts[r] == 0 {
			continue
		}
		if n == HandSize {
			return false, false
		}
		distinct[n] = r
		n++
	}
	if n != HandSize {
		return false, false
	}

	if distinct[0] == Two && distinct[1] == Three && distinct[2] == Four &&
		distinct[3] == Five && distinct[4] == Ace {
		return true, true
	}
	return distinct[4]-distinct[0] == HandSize-1, false
}

func categorize(counts *[Ace + 1]uint8, flush, straight bool) HandRank {
	if flush && straight {
		if counts[Ten] == 1 && counts[Jack] == 1 && counts[Queen] == 1 &&
			counts[King] == 1 && counts[Ace] == 1 {
			return RoyalFlush
		}
		return StraightFlush
	}

	threes, pairs := 0, 0
	for r := Two; r <= Ace; r++ {
		switch counts[r] {
		case 4:
			return FourOfAKind
		case 3:
			threes++
		case 2:
			pairs++
		}
	}

	switch {
	case threes == 1 && pairs == 1:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case threes == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1:
		return Pair
	}
	return HighCard
}

// Hand returns the evaluated hand in its original card order.
func (e Evaluation) Hand() Hand { return e.hand }

// Rank returns the hand's category.
func (e Evaluation) Rank() HandRank { return e.rank }

// Ordered returns the cards sorted by rank, then suit, strongest first.
func (e Evaluation) Ordered() []Card { return e.ordered.Cards() }

// IsWheel reports whether the hand is the ace-low straight A-2-3-4-5
// (flush or not).
func (e Evaluation) IsWheel() bool { return e.wheel }

// HighCard returns the highest card by rank, then suit.
func (e Evaluation) HighCard() Card { return e.ordered[0] }

// StraightHigh returns the card that tops a straight or straight flush. For the
// wheel that is the five, not the ace. ok is false for non-straight categories.
func (e Evaluation) StraightHigh() (card Card, ok bool) {
	switch e.rank {
	case Straight, StraightFlush, RoyalFlush:
	default:
		return Card{}, false
	}
	if e.wheel {
		// ordered is A,5,4,3,2 for a wheel
		return e.ordered[1], true
	}
	return e.ordered[0], true
}

// QuadRank returns the rank held four times, if any.
func (e Evaluation) QuadRank() (Rank, bool) { return e.highestWithCount(4) }

// TripletRank returns the rank held exactly three times, if any.
func (e Evaluation) TripletRank() (Rank, bool) { return e.highestWithCount(3) }

// PairRanks returns the ranks held exactly twice, highest first.
func (e Evaluation) PairRanks() []Rank {
	var pairs []Rank
	for r := Ace; r >= Two; r-- {
		if e.counts[r] == 2 {
			pairs = append(pairs, r)
		}
	}
	return pairs
}

// Kicker returns the highest card whose rank appears only once in the hand,
// i.e. the best card outside every pair, triplet and quad. ok is false when
// every card is part of a group, as in a full house.
func (e Evaluation) Kicker() (Card, bool) {
	for _, c := range e.ordered {
		if e.counts[c.rank] == 1 {
			return c, true
		}
	}
	return Card{}, false
}

func (e Evaluation) highestWithCount(n uint8) (Rank, bool) {
	for r := Ace; r >= Two; r-- {
		if e.counts[r] == n {
			return r, true
		}
	}
	return 0, false
}
