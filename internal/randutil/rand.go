// Package randutil builds independently seeded random sources so that
// concurrent simulation tasks never share or correlate a generator.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Derive returns the generator for stream n of a run seeded with seed.
// Distinct streams of the same seed are statistically independent.
func Derive(seed int64, stream uint64) *rand.Rand {
	base := mix(uint64(seed))
	s := mix(base ^ mix(stream+goldenRatio64))
	return rand.New(rand.NewPCG(s, mix(s+goldenRatio64)))
}

// Seed returns seed unchanged unless it is zero, in which case a time-based
// seed is chosen.
func Seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
