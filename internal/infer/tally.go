package infer

import "sort"

// Vote is one factor and the number of pair sides it appeared on.
type Vote struct {
	Factor uint64 `json:"factor"`
	Count  int    `json:"count"`
}

// Tally accumulates candidate votes across observations.
// The zero value is not usable; create one with NewTally.
type Tally struct {
	counts map[uint64]int
}

// NewTally returns an empty tally.
func NewTally() Tally {
	return Tally{counts: make(map[uint64]int)}
}

// Add counts both sides of every pair. A pair with A == B counts twice.
func (t Tally) Add(pairs []Pair) Tally {
	for _, p := range pairs {
		t.counts[p.A]++
		t.counts[p.B]++
	}
	return t
}

// count returns the votes recorded for factor.
func (t Tally) count(factor uint64) int {
	return t.counts[factor]
}

// Len returns the number of distinct factors voted for.
func (t Tally) Len() int {
	return len(t.counts)
}

// Ranking returns up to n votes ordered by count descending, then factor
// ascending. n <= 0 returns every vote.
func (t Tally) Ranking(n int) []Vote {
	votes := make([]Vote, 0, len(t.counts))
	for f, c := range t.counts {
		votes = append(votes, Vote{Factor: f, Count: c})
	}
	sort.Slice(votes, func(i, j int) bool {
		if votes[i].Count != votes[j].Count {
			return votes[i].Count > votes[j].Count
		}
		return votes[i].Factor < votes[j].Factor
	})
	if n > 0 && len(votes) > n {
		votes = votes[:n]
	}
	return votes
}

// Select returns the factor with the most votes. Ties resolve to the
// smallest factor. An empty tally is a NoInference error.
func (t Tally) Select() (Vote, error) {
	if len(t.counts) == 0 {
		return Vote{}, NewNoInferenceError("no candidate factors were produced")
	}
	best := Vote{}
	for f, c := range t.counts {
		if c > best.Count || (c == best.Count && f < best.Factor) {
			best = Vote{Factor: f, Count: c}
		}
	}
	return best, nil
}
