package bench

import (
	"fmt"
	"time"
)

// --------------------------------------------------------------------------
// Run Failures
// --------------------------------------------------------------------------

// WorkerFailure reports that a worker goroutine panicked or otherwise
// failed during the parallel section. A run with any worker failure
// produces no sample.
type WorkerFailure struct {
	WorkerID int
	Cause    any
}

func (e *WorkerFailure) Error() string {
	return fmt.Sprintf("worker %d failed: %v", e.WorkerID, e.Cause)
}

// TimeoutFailure reports that the run exceeded its deadline or was
// cancelled. The run is abandoned and produces no sample; still-running
// workers finish on their own and their results are discarded.
type TimeoutFailure struct {
	Elapsed time.Duration
	Cause   error
}

func (e *TimeoutFailure) Error() string {
	return fmt.Sprintf("run abandoned after %v: %v", e.Elapsed, e.Cause)
}

func (e *TimeoutFailure) Unwrap() error {
	return e.Cause
}
