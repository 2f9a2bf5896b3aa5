package testdeck

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/fivecardstud/poker"
)

func TestReadFile(t *testing.T) {
	t.Parallel()
	deal, err := ReadFile("testdata/royal.txt", DefaultPlayers)
	require.NoError(t, err)

	require.Len(t, deal.Lines, 6)
	assert.Equal(t, "10S, JS, QS, KS, AS", deal.Lines[0])
	require.Len(t, deal.Hands, 6)
	assert.Equal(t, poker.MustParseHand("10S JS QS KS AS"), deal.Hands[0])
	assert.Equal(t, poker.MustParseHand("9C 8D 6C 4C 3H"), deal.Hands[5])
}

func TestReadFileDuplicate(t *testing.T) {
	t.Parallel()
	deal, err := ReadFile("testdata/duplicate.txt", DefaultPlayers)

	var dup *poker.DuplicateCardError
	require.True(t, errors.As(err, &dup), "got %v", err)
	assert.Equal(t, "QS", dup.Card.String())

	var lineErr *LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 6, lineErr.Line)

	require.NotNil(t, deal)
	assert.Len(t, deal.Lines, 6)
	assert.Equal(t, "10S, JS, QS, KS, AS", deal.Lines[0])
	assert.Len(t, deal.Hands, 5)
}

func TestReadFileMissing(t *testing.T) {
	t.Parallel()
	deal, err := ReadFile("testdata/does-not-exist.txt", DefaultPlayers)
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.Nil(t, deal)
}

func TestRead(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		players int
		wantErr error
		hands   int
	}{
		{
			name:    "fewer players",
			input:   "AS,KS,QS,JS,10S\n2D,3D,4D,5D,6D\n",
			players: 1,
			hands:   1,
		},
		{
			name:    "blank lines skipped",
			input:   "\nAS,KS,QS,JS,10S\n   \n2D,3D,4D,5D,6D\n",
			players: 2,
			hands:   2,
		},
		{
			name:    "lower case with spaces",
			input:   " as , ks,qs , js,10s \n",
			players: 1,
			hands:   1,
		},
		{
			name:    "too few lines",
			input:   "AS,KS,QS,JS,10S\n",
			players: 2,
			wantErr: ErrTooFewHands,
		},
		{
			name:    "short hand",
			input:   "AS,KS,QS,JS\n",
			players: 1,
			wantErr: poker.ErrHandSize,
		},
		{
			name:    "bad suit",
			input:   "AS,KS,QS,JS,10X\n",
			players: 1,
			wantErr: poker.ErrInvalidSuit,
		},
		{
			name:    "bad rank",
			input:   "AS,KS,QS,JS,1S\n",
			players: 1,
			wantErr: poker.ErrInvalidRank,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			deal, err := Read(strings.NewReader(tt.input), tt.players)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, deal.Hands, tt.hands)
		})
	}
}

func TestReadDuplicateWithinHand(t *testing.T) {
	t.Parallel()
	_, err := Read(strings.NewReader("AS,KS,AS,JS,10S\n"), 1)

	var dup *poker.DuplicateCardError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, poker.MustCard(poker.Ace, poker.Spades), dup.Card)
	assert.EqualError(t, err, "line 1: duplicate card AS")
}

func TestReadRejectsPlayerCount(t *testing.T) {
	t.Parallel()
	_, err := Read(strings.NewReader(""), 0)
	assert.Error(t, err)
	_, err = Read(strings.NewReader(""), poker.MaxPlayers+1)
	assert.Error(t, err)
}
