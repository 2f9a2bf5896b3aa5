package poker

// HandRank is the category of a five-card hand. Ordinal position is strength:
// HighCard is the weakest and RoyalFlush the strongest.
type HandRank uint8

const (
	HighCard HandRank = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// NumHandRanks is the number of hand categories.
const NumHandRanks = int(RoyalFlush) + 1

// HandRanks lists every category from weakest to strongest.
var HandRanks = [NumHandRanks]HandRank{
	HighCard, Pair, TwoPair, ThreeOfAKind, Straight,
	Flush, FullHouse, FourOfAKind, StraightFlush, RoyalFlush,
}

// String returns the display label of the category.
func (hr HandRank) String() string {
	switch hr {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three Of A Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four Of A Kind"
	case StraightFlush:
		return "Straight Flush"
	case RoyalFlush:
		return "Royal Straight Flush"
	default:
		return "Unknown"
	}
}

// Valid reports whether hr is one of the ten categories.
func (hr HandRank) Valid() bool {
	return hr <= RoyalFlush
}

// ParseHandRank maps a display label back to its category.
func ParseHandRank(label string) (HandRank, bool) {
	for _, hr := range HandRanks {
		if hr.String() == label {
			return hr, true
		}
	}
	return 0, false
}
