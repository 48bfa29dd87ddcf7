package cmap

import (
	"encoding/binary"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/spaolacci/murmur3"
)

// --------------------------------------------------------------------------
// XSync Model
// --------------------------------------------------------------------------

// xsyncModel implements Model on an xsync.MapOf with an atomic per-key
// Compute for the increment path. Keys are hashed with murmur3 so the
// map's internal distribution does not depend on the benchmark's
// sequential key layout.
type xsyncModel struct {
	data *xsync.MapOf[uint64, uint64]
}

// hashKey combines a key with the map seed for internal distribution
func hashKey(key uint64, mapSeed uint64) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], key)
	return murmur3.Sum64WithSeed(b[:], uint32(mapSeed))
}

func newXSyncModel() *xsyncModel {
	return &xsyncModel{
		data: xsync.NewMapOfWithHasher[uint64, uint64](hashKey),
	}
}

func (m *xsyncModel) Prefill(keys int) {
	for i := 0; i < keys; i++ {
		m.data.Store(uint64(i), 0)
	}
}

func (m *xsyncModel) Get(key uint64) (uint64, bool) {
	return m.data.Load(key)
}

func (m *xsyncModel) Increment(key uint64) {
	m.data.Compute(key, func(old uint64, _ bool) (uint64, bool) {
		return old + 1, false
	})
}

func (m *xsyncModel) Drain() uint64 {
	var total uint64
	m.data.Range(func(_ uint64, v uint64) bool {
		total += v
		return true
	})
	return total
}

func (m *xsyncModel) Name() string {
	return string(ModelXSync)
}
