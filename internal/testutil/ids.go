package testutil

import "fmt"

// SequentialRunIDs returns "run-0001", "run-0002", ... on successive calls.
//
// This keeps stored run ids stable across test executions so that listings
// can be compared exactly.
//
// Not safe for concurrent use.
type SequentialRunIDs struct {
	prefix string
	n      int
}

// NewSequentialRunIDs creates a generator. An empty prefix defaults to "run".
func NewSequentialRunIDs(prefix string) *SequentialRunIDs {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialRunIDs{prefix: prefix}
}

// Generate returns the next id.
func (g *SequentialRunIDs) Generate() string {
	g.n++
	return fmt.Sprintf("%s-%04d", g.prefix, g.n)
}
