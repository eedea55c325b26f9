package prime

// Sieve returns the primes strictly less than n in ascending order.
//
// 0 and 1 are never prime, so Sieve(0), Sieve(1) and Sieve(2) are empty.
// The outer loop stops once i*i reaches n; every composite below n has a
// prime factor no larger than its square root and is marked by that factor.
func Sieve(n uint64) []uint64 {
	if n <= 2 {
		return []uint64{}
	}

	composite := make([]bool, n)
	composite[0] = true
	composite[1] = true

	for i := uint64(2); i*i < n; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j < n; j += i {
			composite[j] = true
		}
	}

	primes := make([]uint64, 0, estimateCount(n))
	for i, c := range composite {
		if !c {
			primes = append(primes, uint64(i))
		}
	}
	return primes
}

// estimateCount is a cheap upper-ish guess for the prime count below n,
// used only to size the result slice.
func estimateCount(n uint64) int {
	switch {
	case n < 100:
		return 25
	case n < 10_000:
		return int(n / 6)
	default:
		return int(n / 10)
	}
}
