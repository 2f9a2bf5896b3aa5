package poker

import "slices"

// Ranked pairs a hand with its category for reporting.
type Ranked struct {
	Hand Hand
	Rank HandRank
}

// String renders the hand followed by its label, e.g. "7H 7C 7S 2D 2C - Full House".
func (r Ranked) String() string {
	return r.Hand.String() + " - " + r.Rank.String()
}

// SortDescending orders hands from strongest to weakest. Each hand is
// classified exactly once and the sort is stable, so hands that Compare
// reports as equal keep their input order. The input slice is not modified.
func SortDescending(hands []Hand) []Ranked {
	evals := make([]Evaluation, len(hands))
	for i, h := range hands {
		evals[i] = Evaluate(h)
	}
	SortEvaluations(evals)

	ranked := make([]Ranked, len(evals))
	for i, e := range evals {
		ranked[i] = Ranked{Hand: e.hand, Rank: e.rank}
	}
	return ranked
}

// SortEvaluations stable-sorts evaluations in place, strongest first.
func SortEvaluations(evals []Evaluation) {
	slices.SortStableFunc(evals, func(a, b Evaluation) int {
		return b.Compare(a)
	})
}
