// Package workload implements the per-worker benchmark loop: draw
// (key, read-or-write) pairs from a worker-owned deterministic PRNG
// stream and apply them to a shared map model. The driver has no result
// beyond completion; measurement is the run coordinator's concern.
package workload
