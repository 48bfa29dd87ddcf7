package cmap

import "fmt"

// --------------------------------------------------------------------------
// Helper Types
// --------------------------------------------------------------------------

// ModelType identifies a concurrent-access strategy. The set of models is
// closed: selection happens once at run construction, never by open-ended
// dynamic lookup.
type ModelType string

const (
	// ModelSharded is the sharded lock-protected map: shardCount
	// independent shards, each guarded by its own mutex.
	ModelSharded ModelType = "sharded"

	// ModelSyncMap is the standard library sync.Map accessed through a
	// compare-and-swap retry loop.
	ModelSyncMap ModelType = "syncmap"

	// ModelXSync is an xsync.MapOf with atomic per-key compute.
	ModelXSync ModelType = "xsync"
)

// ModelTypes lists all supported models in a stable order.
func ModelTypes() []ModelType {
	return []ModelType{ModelSharded, ModelSyncMap, ModelXSync}
}

// ParseModelType validates a model label.
func ParseModelType(s string) (ModelType, error) {
	switch ModelType(s) {
	case ModelSharded, ModelSyncMap, ModelXSync:
		return ModelType(s), nil
	default:
		return "", fmt.Errorf("unknown map model %q (expected one of: %s, %s, %s)",
			s, ModelSharded, ModelSyncMap, ModelXSync)
	}
}

// --------------------------------------------------------------------------
// Model Interface
// --------------------------------------------------------------------------

// Model is the capability interface every concurrent map variant
// implements. A Model instance is created fresh per benchmark run,
// prefilled single-threaded, hammered concurrently by the workload
// drivers, drained for verification, and then discarded.
type Model interface {

	// Prefill inserts keys 0..keys-1 with counter value 0. It is called
	// exactly once before any worker starts and must not be called
	// concurrently with any other method.
	Prefill(keys int)

	// Get returns the counter for a key and whether the key is present.
	// A miss has no side effects.
	//
	// Thread-safety: This method is thread-safe and can be called concurrently.
	Get(key uint64) (uint64, bool)

	// Increment atomically adds one to the counter for a key (treating an
	// absent key as 0). The read-modify-write is atomic with respect to
	// all other operations on the same key.
	//
	// Thread-safety: This method is thread-safe and can be called concurrently.
	Increment(key uint64)

	// Drain returns the sum of all counters. The total number of
	// increments applied to the map is exactly recoverable from this sum
	// (no lost updates). Drain must only be called once all workers have
	// completed.
	Drain() uint64

	// Name returns the model's stable label.
	Name() string
}

// New creates a fresh model instance for one benchmark run.
// The shards parameter is used by the sharded model only.
func New(model ModelType, shards int) (Model, error) {
	switch model {
	case ModelSharded:
		if shards < 1 {
			return nil, fmt.Errorf("sharded model requires shards >= 1, got %d", shards)
		}
		return newShardedModel(shards), nil
	case ModelSyncMap:
		return newSyncMapModel(), nil
	case ModelXSync:
		return newXSyncModel(), nil
	default:
		return nil, fmt.Errorf("unknown map model %q", model)
	}
}
