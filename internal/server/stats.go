package server

import (
	"sync"

	"github.com/lox/fivecardstud/poker"
)

// Stats counts requests served and the categories of every ranked hand.
type Stats struct {
	mu       sync.Mutex
	requests int
	errors   int
	hands    int
	winners  [poker.NumHandRanks]int
	ranks    [poker.NumHandRanks]int
}

// Snapshot is a point-in-time copy of Stats.
type Snapshot struct {
	Requests   int            `json:"requests"`
	Errors     int            `json:"errors"`
	Hands      int            `json:"hands"`
	Categories map[string]int `json:"categories"`
	Winners    map[string]int `json:"winners"`
}

// NewStats returns empty counters.
func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) recordRanking(ranking []poker.Ranked) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.hands += len(ranking)
	for _, r := range ranking {
		s.ranks[r.Rank]++
	}
	if len(ranking) > 0 {
		s.winners[ranking[0].Rank]++
	}
}

func (s *Stats) recordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests++
	s.errors++
}

// Snapshot copies the counters. Categories with no hands are omitted.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Requests:   s.requests,
		Errors:     s.errors,
		Hands:      s.hands,
		Categories: make(map[string]int),
		Winners:    make(map[string]int),
	}
	for _, r := range poker.HandRanks {
		if n := s.ranks[r]; n > 0 {
			snap.Categories[r.String()] = n
		}
		if n := s.winners[r]; n > 0 {
			snap.Winners[r.String()] = n
		}
	}
	return snap
}
