package poker

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHand(t *testing.T) {
	t.Parallel()
	cards, err := ParseCards("AS KS QS JS 10S")
	require.NoError(t, err)

	h, err := NewHand(cards...)
	require.NoError(t, err)
	assert.Equal(t, "AS KS QS JS 10S", h.String())
	assert.Equal(t, []string{"AS", "KS", "QS", "JS", "10S"}, h.Strings())

	for _, n := range []int{0, 4, 6} {
		_, err := NewHand(make([]Card, n)...)
		assert.True(t, errors.Is(err, ErrHandSize), "len %d: %v", n, err)
	}

	_, err = NewHand(cards[0], cards[1], cards[2], cards[3], Card{})
	assert.ErrorIs(t, err, ErrInvalidRank)
}

func TestParseHand(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "spaces", input: "2D 3D 4D 5D AD", want: "2D 3D 4D 5D AD"},
		{name: "commas", input: "10S,JS,QS,KS,AS", want: "10S JS QS KS AS"},
		{name: "mixed case", input: "7h, 7C 7s,2d 2C", want: "7H 7C 7S 2D 2C"},
		{name: "too few", input: "AS KS QS JS", wantErr: ErrHandSize},
		{name: "too many", input: "AS KS QS JS 10S 9S", wantErr: ErrHandSize},
		{name: "bad suit", input: "AS KS QS JS 10X", wantErr: ErrInvalidSuit},
		{name: "bad rank", input: "AS KS QS JS 1S", wantErr: ErrInvalidRank},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, err := ParseHand(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.String())
		})
	}
}

func TestMustParseHandPanics(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { MustParseHand("AS KS") })
}

func TestHandCardsIsCopy(t *testing.T) {
	t.Parallel()
	h := MustParseHand("AS KS QS JS 10S")
	cards := h.Cards()
	cards[0] = MustCard(Two, Clubs)

	assert.Equal(t, MustCard(Ace, Spades), h[0])
}
