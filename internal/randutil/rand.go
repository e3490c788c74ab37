// Package randutil derives reproducible random sources from integer seeds.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. Every shuffle
// and bot decision in the game goes through a source built here, so a seed
// fully reproduces a deal.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// Seed returns seed unchanged, or a wall-clock derived seed when seed is 0.
// Zero is reserved to mean "pick one for me" in config files and flags.
func Seed(seed int64, now time.Time) int64 {
	if seed != 0 {
		return seed
	}
	s := int64(mix(uint64(now.UnixNano())) >> 1)
	if s == 0 {
		s = 1
	}
	return s
}

// Next draws a fresh non-zero seed from rng, used when a game restarts
func Next(rng *rand.Rand) int64 {
	for {
		if s := rng.Int64(); s != 0 {
			return s
		}
	}
}

// mix is the splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
