package core

import (
	"math/rand"
	"time"
)

// NewRand returns the pseudo-random source for one simulation instance.
// A zero seed falls back to the current time; tests and replays pass an
// explicit seed. The source is threaded to spawners and rule modules by
// handle — nothing in the engine touches the global generator, which is
// what keeps replays byte-identical.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// RandSign returns -1 or +1 with equal probability.
func RandSign(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}

// RandEdge picks a horizontal spawn edge: the left edge with direction +1
// or the right edge with direction -1, with equal probability.
func RandEdge(rng *rand.Rand, cols int) (col, dir int) {
	if rng.Intn(2) == 0 {
		return 0, 1
	}
	return cols - 1, -1
}

// RandBetween returns a uniform integer in [lo, hi].
func RandBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
