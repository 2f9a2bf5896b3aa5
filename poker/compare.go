package poker

import (
	"cmp"
	"fmt"
)

// Compare returns 1 if a beats b, -1 if b beats a, and 0 only when both hands
// hold exactly the same cards.
//
// Categories are compared first. Within a category the category's own rule
// decides (pair rank, kicker, top of the straight, ...). If that rule still
// leaves the hands level, both hands are walked card by card from the top
// using CompareCards, so every pair of distinct hands has a strict winner.
func Compare(a, b Hand) int {
	return Evaluate(a).Compare(Evaluate(b))
}

// IsStronger reports whether a strictly outranks b.
func IsStronger(a, b Hand) bool {
	return Compare(a, b) > 0
}

// Compare orders two evaluations. See Compare for the rules.
func (e Evaluation) Compare(other Evaluation) int {
	if e.rank != other.rank {
		return cmp.Compare(e.rank, other.rank)
	}
	if c := compareWithinCategory(e, other); c != 0 {
		return c
	}
	return compareOrdered(e, other)
}

// IsStronger reports whether e strictly outranks other.
func (e Evaluation) IsStronger(other Evaluation) bool {
	return e.Compare(other) > 0
}

func compareWithinCategory(a, b Evaluation) int {
	switch a.rank {
	// A straight flush is topped by its highest card, ace included.
	case Flush, StraightFlush, RoyalFlush, HighCard:
		return CompareCards(a.HighCard(), b.HighCard())

	// The wheel plays the ace low, so a six-high straight beats it.
	case Straight:
		return CompareCards(a.mustStraightHigh(), b.mustStraightHigh())

	case TwoPair:
		ap, bp := a.mustPairs(2), b.mustPairs(2)
		if c := cmp.Compare(ap[0], bp[0]); c != 0 {
			return c
		}
		if c := cmp.Compare(ap[1], bp[1]); c != 0 {
			return c
		}
		return CompareCards(a.mustKicker(), b.mustKicker())

	case Pair:
		if c := cmp.Compare(a.mustPairs(1)[0], b.mustPairs(1)[0]); c != 0 {
			return c
		}
		return CompareCards(a.mustKicker(), b.mustKicker())

	case FourOfAKind:
		return cmp.Compare(a.mustQuad(), b.mustQuad())

	case ThreeOfAKind:
		return cmp.Compare(a.mustTriplet(), b.mustTriplet())

	case FullHouse:
		if c := cmp.Compare(a.mustTriplet(), b.mustTriplet()); c != 0 {
			return c
		}
		return cmp.Compare(a.mustPairs(1)[0], b.mustPairs(1)[0])
	}

	panic(fmt.Sprintf("poker: unknown hand rank %d", a.rank))
}

// compareOrdered walks both hands from their highest card down.
func compareOrdered(a, b Evaluation) int {
	for i := range a.ordered {
		if c := CompareCards(a.ordered[i], b.ordered[i]); c != 0 {
			return c
		}
	}
	return 0
}

// The must* accessors back the comparator. A missing value means the hand
// does not have the shape its category claims, which is a bug, not bad input.

func (e Evaluation) mustStraightHigh() Card {
	c, ok := e.StraightHigh()
	if !ok {
		e.invariant("straight high card")
	}
	return c
}

func (e Evaluation) mustKicker() Card {
	c, ok := e.Kicker()
	if !ok {
		e.invariant("kicker")
	}
	return c
}

func (e Evaluation) mustQuad() Rank {
	r, ok := e.QuadRank()
	if !ok {
		e.invariant("quad")
	}
	return r
}

func (e Evaluation) mustTriplet() Rank {
	r, ok := e.TripletRank()
	if !ok {
		e.invariant("triplet")
	}
	return r
}

func (e Evaluation) mustPairs(n int) []Rank {
	pairs := e.PairRanks()
	if len(pairs) != n {
		e.invariant(fmt.Sprintf("%d pair(s)", n))
	}
	return pairs
}

func (e Evaluation) invariant(what string) {
	panic(fmt.Sprintf("poker: %s hand %s has no %s", e.rank, e.hand, what))
}
