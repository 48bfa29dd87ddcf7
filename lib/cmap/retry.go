package cmap

import (
	"fmt"
	"math"
	"runtime"
)

// --------------------------------------------------------------------------
// Bounded CAS Retry
// --------------------------------------------------------------------------

// casRetryLimit bounds the compare-and-swap retry loop of the syncmap
// model. The policy is deliberately effectively unbounded: a CAS on a
// single map slot always succeeds eventually (some competitor made
// progress on every failed attempt), so the bound only exists to turn a
// hypothetical livelock into a loud failure instead of a silent hang.
const casRetryLimit = math.MaxInt32

// retryCAS runs attempt until it reports success, yielding the processor
// between attempts, for at most limit attempts. It returns an error only
// if the limit is exhausted, which callers treat as a defect in the map
// implementation rather than a normal outcome.
func retryCAS(limit int, attempt func() bool) error {
	for i := 0; i < limit; i++ {
		if attempt() {
			return nil
		}
		runtime.Gosched()
	}
	return fmt.Errorf("compare-and-swap did not succeed after %d attempts", limit)
}
