package infer

import (
	"fmt"
	"slices"

	"github.com/roach88/hosei/internal/combo"
	"github.com/roach88/hosei/internal/prime"
)

const (
	// RatioScale is the fixed-point scale applied to a damage ratio
	// (four decimal digits, truncated).
	RatioScale = 10_000

	// FactorScale converts a winning co-factor to the Hosei.Base multiplier.
	FactorScale = 100
)

// Pair is a candidate co-factor split: A*B equals the scaled ratio.
type Pair struct {
	A uint64 `json:"a"`
	B uint64 `json:"b"`
}

// key orders the pair so that swapped splits collide.
func (p Pair) key() [2]uint64 {
	if p.A <= p.B {
		return [2]uint64{p.A, p.B}
	}
	return [2]uint64{p.B, p.A}
}

// ScaledRatio returns trunc(((dm[1]-dm[0]) / dm[0]) * RatioScale) for a
// multi-step combo. The returned error has Combo set to -1.
//
// A scaled ratio above prime.MaxFactorizable is degenerate.
func ScaledRatio(c combo.Combo) (uint64, error) {
	if !c.IsMultiStep() {
		return 0, NewDegenerateError(-1, "combo has no follow-up waza")
	}
	base, next := c.Base(), c.FollowUp()
	if base.DM == 0 {
		return 0, NewDegenerateError(-1, "base waza has zero damage", base.ID)
	}
	if next.DM < base.DM {
		return 0, NewDegenerateError(-1,
			fmt.Sprintf("follow-up damage %d is below base damage %d", next.DM, base.DM),
			base.ID, next.ID)
	}

	ratio := float64(next.DM-base.DM) / float64(base.DM)
	scaled := ratio * RatioScale
	if scaled > float64(prime.MaxFactorizable) {
		return 0, NewDegenerateError(-1,
			fmt.Sprintf("scaled ratio %.0f exceeds the factorization limit of %d", scaled, prime.MaxFactorizable),
			base.ID, next.ID)
	}
	return uint64(scaled), nil
}

// SplitPairs returns every non-trivial split of n = prime.Product(factors)
// as (d, n/d) with 1 < d <= n/d, ordered by d ascending.
//
// Each split of the factors into two groups yields a divisor, so walking the
// divisors of n gives the same pairs as walking the assignments, once each
// up to swap.
func SplitPairs(factors []uint64) []Pair {
	n := prime.Product(factors)
	pairs := []Pair{}
	for _, d := range divisors(factors) {
		if d == 1 {
			continue
		}
		if d > n/d {
			break
		}
		pairs = append(pairs, Pair{A: d, B: n / d})
	}
	return pairs
}

// divisors returns every divisor of prime.Product(factors), ascending.
func divisors(factors []uint64) []uint64 {
	sorted := slices.Clone(factors)
	slices.Sort(sorted)

	divs := []uint64{1}
	for i := 0; i < len(sorted); {
		p := sorted[i]
		j := i
		for j < len(sorted) && sorted[j] == p {
			j++
		}

		// Multiply every divisor found so far by p^1 .. p^exp.
		known := len(divs)
		pow := uint64(1)
		for e := i; e < j; e++ {
			pow *= p
			for _, d := range divs[:known] {
				divs = append(divs, d*pow)
			}
		}
		i = j
	}
	slices.Sort(divs)
	return divs
}

// Candidates factors scaled and returns its candidate pairs.
func Candidates(scaled uint64) []Pair {
	return SplitPairs(prime.Factorize(scaled))
}
