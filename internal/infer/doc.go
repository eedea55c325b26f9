// Package infer recovers the combo-wide base correction factor from a combo
// dataset.
//
// PIPELINE:
//
//  1. BuildResultMap collects every waza that starts a multi-step combo and
//     checks closure: each follow-up waza must itself start some combo.
//  2. For each multi-step combo, ScaledRatio computes
//     trunc(((dm[1]-dm[0]) / dm[0]) * 10000) and SplitPairs proposes every
//     non-trivial two-way split of its prime factors as candidate co-factors.
//  3. A Tally counts each co-factor once per pair side. The factor with the
//     most votes wins; ties go to the smallest factor.
//  4. The winner divided by 100 is written as Hosei.Base into every entry.
//
// The ×10000 scaling truncates rather than rounds, and the division happens
// before the multiplication. Both are load-bearing: candidate factors depend
// on the exact integer produced.
//
// The package is single-threaded and holds no state between calls.
package infer
