package prime

import "math"

// MaxFactorizable is the largest value Factorize is meant to handle. Its
// square root bounds the sieve at 2^26 entries.
const MaxFactorizable uint64 = 1 << 52

// Factorize decomposes v into its prime factors with multiplicity, ascending.
// The product of the returned primes equals v for every v >= 2.
//
// 0 and 1 have no prime factors and yield an empty slice.
//
// Callers should keep v at or below MaxFactorizable; the sieve grows with
// sqrt(v).
//
// Trial division only needs sieve primes up to floor(sqrt(v)); whatever is
// left after dividing those out is 1 or a single prime larger than sqrt(v).
func Factorize(v uint64) []uint64 {
	factors := []uint64{}
	if v < 2 {
		return factors
	}

	rest := v
	for _, p := range Sieve(isqrt(v) + 1) {
		if p*p > rest {
			break
		}
		for rest%p == 0 {
			factors = append(factors, p)
			rest /= p
		}
	}
	if rest > 1 {
		factors = append(factors, rest)
	}
	return factors
}

// Product multiplies factors together. An empty slice yields 1.
func Product(factors []uint64) uint64 {
	out := uint64(1)
	for _, f := range factors {
		out *= f
	}
	return out
}

// isqrt returns floor(sqrt(v)) exactly, correcting float rounding at the edges.
func isqrt(v uint64) uint64 {
	r := uint64(math.Sqrt(float64(v)))
	if r >= 1<<32 {
		r = 1<<32 - 1
	}
	for r > 0 && r*r > v {
		r--
	}
	for r+1 < 1<<32 && (r+1)*(r+1) <= v {
		r++
	}
	return r
}
