// Package cmap implements the concurrent key-value map variants the
// benchmark compares. All variants store 64-bit counters under integer
// keys and satisfy the common Model capability interface (Prefill, Get,
// Increment, Drain), so the rest of the engine is indifferent to which
// access strategy a run exercises.
//
// The package focuses on:
//   - A closed, tagged set of variants selected at run construction time
//   - Per-variant atomicity for the read-modify-write increment: no
//     increment is ever lost regardless of worker interleaving
//   - Fresh instances per run: no state survives between runs
//
// Variants:
//
//   - sharded: a fixed number of independent shards, each a plain map
//     guarded by its own mutex. A key k always routes to shard
//     k % shardCount; this routing is an invariant of the instance.
//     Operations on different shards never block each other and the
//     critical section is a single map access.
//
//   - syncmap: the standard library sync.Map with the increment expressed
//     as a read/compare-and-swap loop through an explicit bounded-retry
//     combinator (see retry.go for the retry policy).
//
//   - xsync: an xsync.MapOf using murmur3 key hashing and the map's
//     atomic Compute for the increment, representing the lock-free
//     ecosystem alternative to explicit sharding.
//
// None of the variants support deletion, resizing hints, or iteration
// beyond the single post-run Drain sweep; they exist to produce
// comparable performance numbers, not to be general-purpose containers.
package cmap
