package workload

import (
	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/ValentinKolb/mapbench/lib/prng"
)

// --------------------------------------------------------------------------
// Worker Context
// --------------------------------------------------------------------------

// WorkerContext is the exclusively-owned state of one workload worker.
// It is created by the run coordinator and never shared between
// goroutines.
type WorkerContext struct {
	WorkerID   int
	Iterations int // iterations assigned to this worker (floor division share)
	Source     *prng.Source
}

// NewWorkerContext derives a worker's context from the run configuration.
// Each worker draws from its own PRNG stream seeded with base+workerID.
func NewWorkerContext(workerID, iterations int, seed uint64) *WorkerContext {
	return &WorkerContext{
		WorkerID:   workerID,
		Iterations: iterations,
		Source:     prng.NewSource(seed, uint64(workerID)),
	}
}

// --------------------------------------------------------------------------
// Driver
// --------------------------------------------------------------------------

// Run executes exactly ctx.Iterations operations against the shared map
// model. Each operation draws a key and a read/write decision from the
// worker's PRNG stream: key first, then decision, matching the shared
// cross-target workload contract.
//
// readThreshold is floor(readRatio*1000); a draw below it is a read.
//
// The hot loop deliberately contains no timers, counters, or logging:
// the only blocking point is the model's own synchronization.
func Run(ctx *WorkerContext, model cmap.Model, keySpace uint64, readThreshold uint64) {
	src := ctx.Source
	for i := 0; i < ctx.Iterations; i++ {
		key := src.Key(keySpace)
		if src.Decision() < readThreshold {
			model.Get(key)
		} else {
			model.Increment(key)
		}
	}
}

// ReadThreshold converts a read ratio in [0,1] to the per-mille decision
// threshold used by Run.
func ReadThreshold(readRatio float64) uint64 {
	return uint64(readRatio * 1000.0)
}
