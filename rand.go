package schemagen

import (
	"math"
	"math/rand/v2"
)

// Rand is the randomness source consumed by the samplers. *rand.Rand from
// math/rand/v2 satisfies it. Implementations need not be safe for concurrent
// use.
type Rand interface {
	Uint64() uint64
	Uint64N(n uint64) uint64
	Float64() float64
}

// NewRand returns a PCG-backed source. Equal seeds yield equal sequences.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// alphabet is the 62-symbol character set for generated strings.
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// randomInt draws uniformly over [min, max]. Callers guarantee min <= max.
func randomInt(r Rand, min, max int64) int64 {
	span := uint64(max) - uint64(min)
	if span == math.MaxUint64 {
		return int64(r.Uint64())
	}
	return int64(uint64(min) + r.Uint64N(span+1))
}

// randomFloat draws uniformly over [min, max). min == max yields min.
func randomFloat(r Rand, min, max float64) float64 {
	if min == max {
		return min
	}
	f := r.Float64()
	v := min + f*(max-min)
	if math.IsInf(max-min, 0) {
		v = min*(1-f) + max*f
	}
	if v >= max {
		// rounding can land on max for wide ranges
		v = math.Nextafter(max, min)
	}
	if v < min {
		v = min
	}
	return v
}

// randomString draws a length over [minLen, maxLen] and fills it from the
// alphabet.
func randomString(r Rand, minLen, maxLen int) string {
	n := int(randomInt(r, int64(minLen), int64(maxLen)))
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[randomInt(r, 0, int64(len(alphabet)-1))]
	}
	return string(b)
}

// chooseOne draws a member of set uniformly. p locates the set in the schema
// for the error.
func chooseOne[T any](r Rand, p pathRef, set []T) (T, error) {
	if len(set) == 0 {
		var zero T
		return zero, Issues{p.Issue(CodeEmptyChoice)}
	}
	return set[r.Uint64N(uint64(len(set)))], nil
}

// coinFlip is true with probability 0.5.
func coinFlip(r Rand) bool { return r.Float64() < 0.5 }
