// Package protocol defines the messages exchanged with the rank service.
// Messages travel as JSON over HTTP and WebSocket text frames, and as
// msgpack over WebSocket binary frames.
package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/fivecardstud/poker"
)

// Message types.
const (
	// Client -> Server
	TypeRank = "rank"

	// Server -> Client
	TypeResult = "result"
	TypeError  = "error"
)

// Error codes.
const (
	CodeBadRequest    = "bad_request"
	CodeInvalidCard   = "invalid_card"
	CodeHandSize      = "hand_size"
	CodeDuplicateCard = "duplicate_card"
	CodeNoHands       = "no_hands"
	CodeTooManyHands  = "too_many_hands"
	CodeInternal      = "internal"
)

var (
	// ErrNoHands is returned for a request without hands.
	ErrNoHands = errors.New("request has no hands")
	// ErrTooManyHands is returned for a request above the server's hand limit.
	ErrTooManyHands = errors.New("request has too many hands")
)

// RankRequest asks the server to rank a set of hands. Each hand is a list
// of five card tokens such as "AS" or "10D".
type RankRequest struct {
	Type  string     `json:"type" msg:"type"`
	ID    string     `json:"id,omitempty" msg:"id"`
	Hands [][]string `json:"hands" msg:"hands"`
}

// Placement is one hand's position in a ranking.
type Placement struct {
	Position int      `json:"position" msg:"position"` // 1 is the winner
	Cards    []string `json:"cards" msg:"cards"`
	Rank     string   `json:"rank" msg:"rank"`
	Category int      `json:"category" msg:"category"` // 0 High Card .. 9 Royal Straight Flush
}

// RankResult is the server's answer to a RankRequest.
type RankResult struct {
	Type    string      `json:"type" msg:"type"`
	ID      string      `json:"id" msg:"id"`
	Ranking []Placement `json:"ranking" msg:"ranking"`
}

// Error reports a request the server could not process.
type Error struct {
	Type    string `json:"type" msg:"type"`
	ID      string `json:"id,omitempty" msg:"id"`
	Code    string `json:"code" msg:"code"`
	Message string `json:"message" msg:"message"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// ParseHands validates the request and converts it to hands. maxHands caps
// the number of hands accepted.
func (r *RankRequest) ParseHands(maxHands int) ([]poker.Hand, error) {
	if len(r.Hands) == 0 {
		return nil, ErrNoHands
	}
	if len(r.Hands) > maxHands {
		return nil, fmt.Errorf("%w: %d hands, limit is %d", ErrTooManyHands, len(r.Hands), maxHands)
	}

	hands := make([]poker.Hand, len(r.Hands))
	for i, tokens := range r.Hands {
		h, err := poker.ParseHand(strings.Join(tokens, " "))
		if err != nil {
			return nil, fmt.Errorf("hand %d: %w", i+1, err)
		}
		hands[i] = h
	}
	if err := poker.CheckDistinct(hands...); err != nil {
		return nil, err
	}
	return hands, nil
}

// NewResult builds a result from a ranking, strongest first.
func NewResult(id string, ranking []poker.Ranked) *RankResult {
	res := &RankResult{
		Type:    TypeResult,
		ID:      id,
		Ranking: make([]Placement, len(ranking)),
	}
	for i, r := range ranking {
		res.Ranking[i] = Placement{
			Position: i + 1,
			Cards:    r.Hand.Strings(),
			Rank:     r.Rank.String(),
			Category: int(r.Rank),
		}
	}
	return res
}

// NewError builds an error message.
func NewError(id, code, message string) *Error {
	return &Error{Type: TypeError, ID: id, Code: code, Message: message}
}

// ErrorFor maps a request error to an error message with the matching code.
func ErrorFor(id string, err error) *Error {
	var dup *poker.DuplicateCardError
	code := CodeBadRequest
	switch {
	case errors.Is(err, ErrNoHands):
		code = CodeNoHands
	case errors.Is(err, ErrTooManyHands):
		code = CodeTooManyHands
	case errors.Is(err, poker.ErrHandSize):
		code = CodeHandSize
	case errors.Is(err, poker.ErrInvalidRank), errors.Is(err, poker.ErrInvalidSuit):
		code = CodeInvalidCard
	case errors.As(err, &dup):
		code = CodeDuplicateCard
	}
	return NewError(id, code, err.Error())
}
