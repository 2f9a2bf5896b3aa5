// Package randutil derives reproducible random sources for shuffling decks.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. The same seed
// always yields the same sequence, so a recorded seed replays the same deal.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Resolve returns seed unchanged unless it is zero, in which case a seed is
// derived from now. The result is never zero.
func Resolve(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	s := int64(mix(uint64(now.UnixNano())) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Split derives n independent seeds from seed, one per worker.
func Split(seed int64, n int) []int64 {
	seeds := make([]int64, n)
	u := uint64(seed)
	for i := range seeds {
		u += goldenRatio64
		seeds[i] = int64(mix(u))
	}
	return seeds
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
