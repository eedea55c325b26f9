// Package prime provides the sieve and trial-division factorization used to
// split a scaled damage ratio into its prime components.
//
// Both functions are pure and deterministic. Results are always ascending.
package prime
