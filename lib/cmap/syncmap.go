package cmap

import "sync"

// --------------------------------------------------------------------------
// Sync.Map Model
// --------------------------------------------------------------------------

// syncMapModel implements Model on the standard library sync.Map. The
// increment is a lock-free read/compare-and-swap loop expressed through
// the retryCAS combinator.
type syncMapModel struct {
	data sync.Map // uint64 -> uint64
}

func newSyncMapModel() *syncMapModel {
	return &syncMapModel{}
}

func (m *syncMapModel) Prefill(keys int) {
	for i := 0; i < keys; i++ {
		m.data.Store(uint64(i), uint64(0))
	}
}

func (m *syncMapModel) Get(key uint64) (uint64, bool) {
	v, ok := m.data.Load(key)
	if !ok {
		return 0, false
	}
	return v.(uint64), true
}

func (m *syncMapModel) Increment(key uint64) {
	err := retryCAS(casRetryLimit, func() bool {
		v, ok := m.data.Load(key)
		if !ok {
			// ensure presence so the CAS below has a slot to swap
			v, _ = m.data.LoadOrStore(key, uint64(0))
		}
		old := v.(uint64)
		return m.data.CompareAndSwap(key, old, old+1)
	})
	if err != nil {
		// a CAS loop on a single slot cannot starve forever unless the
		// map itself is broken
		panic(err)
	}
}

func (m *syncMapModel) Drain() uint64 {
	var total uint64
	m.data.Range(func(_, v any) bool {
		total += v.(uint64)
		return true
	})
	return total
}

func (m *syncMapModel) Name() string {
	return string(ModelSyncMap)
}
