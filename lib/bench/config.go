package bench

import (
	"fmt"

	"github.com/ValentinKolb/mapbench/lib/cmap"
)

// --------------------------------------------------------------------------
// Run Configuration
// --------------------------------------------------------------------------

// Config holds the parameters of a single benchmark run. It is treated as
// immutable once validated.
type Config struct {
	// Model selects the concurrent map implementation under test.
	Model cmap.ModelType

	// Threads is the number of concurrent workers (>= 1).
	Threads int

	// Iterations is the requested total operation count across all
	// workers. The count is partitioned evenly; a remainder that does not
	// divide by Threads is dropped, never redistributed.
	Iterations int

	// Keys is the key space size. All keys are drawn modulo this value.
	Keys int

	// ReadRatio is the fraction of read operations in [0, 1].
	ReadRatio float64

	// Seed is the base seed. Worker i draws from the stream seeded with
	// Seed + i.
	Seed uint64

	// Shards is the shard count for the sharded model (>= 1). Ignored by
	// the other models.
	Shards int
}

// ConfigError reports an invalid configuration value. Invalid values are
// rejected before any run work starts; they are never clamped or defaulted.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s %s", e.Field, e.Reason)
}

// Validate checks all parameters and returns a *ConfigError describing the
// first violation found.
func (c Config) Validate() error {
	if _, err := cmap.ParseModelType(string(c.Model)); err != nil {
		return &ConfigError{Field: "model", Reason: err.Error()}
	}
	if c.Threads < 1 {
		return &ConfigError{Field: "threads", Reason: fmt.Sprintf("must be >= 1, got %d", c.Threads)}
	}
	if c.Iterations < 0 {
		return &ConfigError{Field: "iterations", Reason: fmt.Sprintf("must be >= 0, got %d", c.Iterations)}
	}
	if c.Keys < 1 {
		return &ConfigError{Field: "keys", Reason: fmt.Sprintf("must be >= 1, got %d", c.Keys)}
	}
	if c.ReadRatio < 0 || c.ReadRatio > 1 {
		return &ConfigError{Field: "read_ratio", Reason: fmt.Sprintf("must be in [0, 1], got %v", c.ReadRatio)}
	}
	if c.Model == cmap.ModelSharded && c.Shards < 1 {
		return &ConfigError{Field: "shards", Reason: fmt.Sprintf("must be >= 1, got %d", c.Shards)}
	}
	return nil
}

// PerWorker returns the per-worker iteration count (floor division).
func (c Config) PerWorker() int {
	return c.Iterations / c.Threads
}

// EffectiveIterations returns the operation count actually executed:
// PerWorker() * Threads. This is the value reported in run samples, not
// the requested Iterations.
func (c Config) EffectiveIterations() int {
	return c.PerWorker() * c.Threads
}
