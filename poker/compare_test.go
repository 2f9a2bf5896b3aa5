package poker

import (
	rand "math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"aces beat kings", "AH AD 2C 3S 4H", "KH KD 2C 3S 4H", 1},
		{"higher straight flush", "4D 5D 6D 7D 8D", "3C 4C 5C 6C 7C", 1},
		{"six high straight beats wheel", "2H 3D 4C 5S 6H", "AH 2D 3C 4S 5H", 1},
		{"broadway beats king high straight", "10D JC QH KS AD", "9H 10S JD QC KH", 1},
		{"wheel straight flush ace plays high", "AS 2S 3S 4S 5S", "2H 3H 4H 5H 6H", 1},
		{"wheel straight flush beats king high", "AD 2D 3D 4D 5D", "9C 10C JC QC KC", 1},
		{"wheel straight flush ace suit", "AH 2H 3H 4H 5H", "AS 2S 3S 4S 5S", -1},
		{"royal beats king high straight flush", "10S JS QS KS AS", "9H 10H JH QH KH", 1},
		{"royal flush suit tie-break", "10S JS QS KS AS", "10H JH QH KH AH", 1},
		{"quad rank decides", "9S 9H 9D 9C 2D", "8S 8H 8D 8C AD", 1},
		{"full house triplet decides", "3H 3C 3S 2D 2C", "2H 2S 2D AC AH", 1},
		{"full house pair decides", "7H 7C 7S KD KC", "7H 7C 7S QD QC", 1},
		{"flush top card", "2H 7H 9H JH AH", "3C 8C 10C QC KC", 1},
		{"flush top card suit", "2H 7H 9H JH AH", "3S 8S 10S QS AS", -1},
		{"trips rank decides", "QH QD QC 2S 3H", "JH JD JC AS KH", 1},
		{"two pair high pair", "KH KD 2C 2S 3H", "QH QD JC JS AH", 1},
		{"two pair low pair", "KH KD 5C 5S 3H", "KC KS 4C 4S AH", 1},
		{"two pair kicker", "KH KD 5C 5S AH", "KC KS 5D 5H QH", 1},
		{"two pair kicker suit", "KH KD 5C 5S 9H", "KC KS 5D 5H 9D", 1},
		{"pair kicker", "AH AD KC 3S 2H", "AC AS QC JS 10H", 1},
		{"pair kicker suit", "8H 8D KC 3S 2H", "8C 8S KS 3D 2D", -1},
		{"high card cascades to last card", "AH 9D 5C 3S 2H", "AH 9D 5C 3S 2D", 1},
		{"high card top card", "KH 9D 5C 3S 2H", "AH 8D 5C 3S 2D", -1},
		{"identical hands", "AH KD 5C 3S 2H", "2H 3S 5C KD AH", 0},
		{"pair beats high card", "2H 2D 3C 4S 6H", "AH KD QC JS 9H", 1},
		{"flush beats straight", "2H 7H 9H JH KH", "10D JC QH KS AD", 1},
		{"full house beats flush", "2H 2C 2S 3D 3C", "AH KH QH JH 9H", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParseHand(tt.a), MustParseHand(tt.b)

			assert.Equal(t, tt.want, Compare(a, b), "Compare(%s, %s)", tt.a, tt.b)
			assert.Equal(t, -tt.want, Compare(b, a), "Compare(%s, %s)", tt.b, tt.a)
			assert.Equal(t, tt.want > 0, IsStronger(a, b))
			assert.Equal(t, tt.want < 0, IsStronger(b, a))
		})
	}
}

func TestCompareCategoryOrder(t *testing.T) {
	t.Parallel()
	// One weak example per category, weakest first.
	examples := []string{
		"AH KD QC JS 9H",
		"2H 2D 3C 4S 6H",
		"2H 2D 3C 3S 4H",
		"2H 2D 2C 3S 4H",
		"AH 2D 3C 4S 5H",
		"2H 3H 4H 5H 7H",
		"2H 2D 2C 3S 3H",
		"2H 2D 2C 2S 3H",
		"AD 2D 3D 4D 5D",
		"10C JC QC KC AC",
	}
	require.Len(t, examples, NumHandRanks)

	for i := range examples {
		a := MustParseHand(examples[i])
		require.Equal(t, HandRanks[i], Classify(a), examples[i])
		for j := range examples {
			b := MustParseHand(examples[j])
			want := 0
			switch {
			case i > j:
				want = 1
			case i < j:
				want = -1
			}
			assert.Equal(t, want, Compare(a, b), "Compare(%s, %s)", examples[i], examples[j])
		}
	}
}

func TestCompareIsStrictTotalOrder(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(42, 1337))

	hands := make([]Hand, 0, 300)
	for len(hands) < cap(hands) {
		hands = append(hands, randomHand(rng))
	}
	evals := make([]Evaluation, len(hands))
	for i, h := range hands {
		evals[i] = Evaluate(h)
	}

	for i := range evals {
		for j := range evals {
			ab := evals[i].Compare(evals[j])
			ba := evals[j].Compare(evals[i])
			if ab != -ba {
				t.Fatalf("antisymmetry broken: %s vs %s gave %d and %d", hands[i], hands[j], ab, ba)
			}
			if ab == 0 && !sameCards(hands[i], hands[j]) {
				t.Fatalf("distinct hands %s and %s compare equal", hands[i], hands[j])
			}
		}
	}

	for i := 0; i < 20000; i++ {
		a, b, c := evals[rng.IntN(len(evals))], evals[rng.IntN(len(evals))], evals[rng.IntN(len(evals))]
		if a.Compare(b) > 0 && b.Compare(c) > 0 && a.Compare(c) <= 0 {
			t.Fatalf("transitivity broken: %s > %s > %s but not %s > %s",
				a.Hand(), b.Hand(), c.Hand(), a.Hand(), c.Hand())
		}
	}
}

func TestCompareDoesNotMutate(t *testing.T) {
	t.Parallel()
	a := MustParseHand("2C AH 9D 3S 5C")
	b := MustParseHand("KS 4D 4H 10C JD")
	origA, origB := a, b

	_ = Compare(a, b)
	_ = IsStronger(b, a)

	assert.Equal(t, origA, a)
	assert.Equal(t, origB, b)
}

func TestCompareMalformedEvaluationPanics(t *testing.T) {
	t.Parallel()
	e := Evaluate(MustParseHand("AH AD 2C 3S 4H"))
	broken := e
	broken.rank = TwoPair

	assert.PanicsWithValue(t,
		"poker: Two Pair hand AH AD 2C 3S 4H has no 2 pair(s)",
		func() { _ = broken.Compare(broken) })
}

// randomHand deals five distinct cards from a freshly shuffled deck.
func randomHand(rng *rand.Rand) Hand {
	d := NewDeck(rng)
	d.Shuffle()
	h, err := NewHand(d.Deal(HandSize)...)
	if err != nil {
		panic(err)
	}
	return h
}

func sameCards(a, b Hand) bool {
	ea, eb := Evaluate(a), Evaluate(b)
	return ea.ordered == eb.ordered
}

func BenchmarkCompare(b *testing.B) {
	x := MustParseHand("KH KD 5C 5S AH")
	y := MustParseHand("KC KS 5D 5H QH")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Compare(x, y)
	}
}
