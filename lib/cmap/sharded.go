package cmap

import (
	"sync"

	"github.com/ValentinKolb/mapbench/lib/util"
)

// --------------------------------------------------------------------------
// Shard Type (partition of the key space)
// --------------------------------------------------------------------------

// lockShard is one partition of the key space. Each shard owns its data
// map and the single mutex that guards it; shards never block each other.
type lockShard struct {
	mu   sync.Mutex
	data map[uint64]uint64
}

// --------------------------------------------------------------------------
// Sharded Model
// --------------------------------------------------------------------------

// shardedModel implements Model with a fixed number of mutex-guarded
// shards. A key k always routes to shard k % len(shards); this assignment
// never changes for the lifetime of the instance.
type shardedModel struct {
	shards []*lockShard
}

func newShardedModel(shards int) *shardedModel {
	s := make([]*lockShard, shards)
	for i := range s {
		s[i] = &lockShard{data: make(map[uint64]uint64)}
	}
	return &shardedModel{shards: s}
}

// shard returns the shard responsible for a key.
//
// Thread-safety: This method is thread-safe and can be called concurrently.
func (m *shardedModel) shard(key uint64) *lockShard {
	return m.shards[key%uint64(len(m.shards))]
}

// Prefill inserts keys 0..keys-1 with value 0.
func (m *shardedModel) Prefill(keys int) {
	for i := 0; i < keys; i++ {
		s := m.shard(uint64(i))
		s.mu.Lock()
		s.data[uint64(i)] = 0
		s.mu.Unlock()
	}
}

func (m *shardedModel) Get(key uint64) (uint64, bool) {
	s := m.shard(key)
	s.mu.Lock()
	v, ok := s.data[key]
	s.mu.Unlock()
	return v, ok
}

func (m *shardedModel) Increment(key uint64) {
	s := m.shard(key)
	s.mu.Lock()
	s.data[key]++
	s.mu.Unlock()
}

func (m *shardedModel) Drain() uint64 {
	var total uint64
	for _, s := range m.shards {
		s.mu.Lock()
		for _, v := range s.data {
			total += v
		}
		s.mu.Unlock()
	}
	return total
}

func (m *shardedModel) Name() string {
	return string(ModelSharded)
}

// ShardStats reports per-shard key occupancy as distribution statistics.
func (m *shardedModel) ShardStats() util.DistributionStats {
	sizes := make([]float64, len(m.shards))
	for i, s := range m.shards {
		s.mu.Lock()
		sizes[i] = float64(len(s.data))
		s.mu.Unlock()
	}
	return util.NewDistributionStats(sizes)
}
