package prng

// --------------------------------------------------------------------------
// Constants
// --------------------------------------------------------------------------

// SplitMix64 mixing constants. These values are fixed by the workload
// contract: every execution target must produce bit-identical streams,
// so they must never be changed.
const (
	increment = 0x9E3779B97F4A7C15 // golden-ratio increment (odd)
	mult1     = 0xBF58476D1CE4E5B9 // first mixing multiplier (odd)
	mult2     = 0x94D049BB133111EB // second mixing multiplier (odd)
)

// --------------------------------------------------------------------------
// Source Type
// --------------------------------------------------------------------------

// Source is a deterministic SplitMix64 pseudo-random generator.
// Each worker owns exactly one Source; a Source must never be shared
// between goroutines.
type Source struct {
	state uint64
}

// NewSource creates a Source for a worker. The initial state is
// base+workerID (wrapping), so one configured seed yields a distinct,
// reproducible stream per worker.
func NewSource(base, workerID uint64) *Source {
	return &Source{state: base + workerID}
}

// Next advances the generator and returns the next 64-bit value.
// All arithmetic wraps modulo 2^64.
func (s *Source) Next() uint64 {
	s.state += increment
	z := s.state
	z = (z ^ (z >> 30)) * mult1
	z = (z ^ (z >> 27)) * mult2
	return z ^ (z >> 31)
}

// --------------------------------------------------------------------------
// Derived Draws
// --------------------------------------------------------------------------

// Key draws a key in [0, keySpace) via modulo reduction.
// The slight modulo bias is intentional: the reduction must match the
// other execution targets bit for bit, so it is kept as-is instead of
// being replaced by an unbiased sampler.
func (s *Source) Key(keySpace uint64) uint64 {
	return s.Next() % keySpace
}

// Decision draws a per-mille decision value in [0, 1000). The caller
// treats the operation as a read iff the value is below
// floor(readRatio*1000).
func (s *Source) Decision() uint64 {
	return s.Next() % 1000
}
