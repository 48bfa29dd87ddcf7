// Package prng implements the deterministic SplitMix64 workload generator
// used by all benchmark models. It is the correctness anchor for
// reproducibility: given the same initial state, every implementation of
// the benchmark (in any language) must produce a bit-identical stream.
//
// The package focuses on:
//   - A minimal, allocation-free 64-bit generator (Source)
//   - Per-worker stream derivation (NewSource: base seed + worker id)
//   - The derived key and read/write decision draws used by the
//     workload driver
//
// The modulo-based Key and Decision reductions carry a slight bias when
// the divisor does not evenly divide 2^64. This is deliberate: the bias
// is part of the cross-target workload contract and correcting it would
// make results incomparable with other implementations.
package prng
