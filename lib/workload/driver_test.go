package workload

import (
	"sync"
	"testing"

	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/ValentinKolb/mapbench/lib/prng"
)

// countingModel records operations without any real storage, so tests can
// verify the driver's operation count and read/write split exactly.
type countingModel struct {
	mu     sync.Mutex
	reads  int
	writes int
}

func (m *countingModel) Prefill(int) {}

func (m *countingModel) Get(uint64) (uint64, bool) {
	m.mu.Lock()
	m.reads++
	m.mu.Unlock()
	return 0, true
}

func (m *countingModel) Increment(uint64) {
	m.mu.Lock()
	m.writes++
	m.mu.Unlock()
}

func (m *countingModel) Drain() uint64 { return 0 }
func (m *countingModel) Name() string  { return "counting" }

func TestRunExecutesExactIterations(t *testing.T) {
	m := &countingModel{}
	ctx := NewWorkerContext(0, 5000, 42)

	Run(ctx, m, 100, ReadThreshold(0.9))

	if got := m.reads + m.writes; got != 5000 {
		t.Fatalf("executed %d operations, want 5000", got)
	}
}

func TestRunReadWriteMix(t *testing.T) {
	m := &countingModel{}
	ctx := NewWorkerContext(0, 100_000, 42)

	Run(ctx, m, 100, ReadThreshold(0.9))

	// the decision draw is uniform-ish over [0,1000); with threshold 900
	// the read share must be close to 90%
	readShare := float64(m.reads) / float64(m.reads+m.writes)
	if readShare < 0.88 || readShare > 0.92 {
		t.Errorf("read share %.4f outside expected range around 0.9", readShare)
	}
}

func TestRunAllWrites(t *testing.T) {
	m := &countingModel{}
	ctx := NewWorkerContext(1, 1000, 7)

	// readRatio 0 -> threshold 0 -> every draw is a write
	Run(ctx, m, 10, ReadThreshold(0))

	if m.reads != 0 || m.writes != 1000 {
		t.Errorf("expected 0 reads / 1000 writes, got %d / %d", m.reads, m.writes)
	}
}

func TestRunDeterministicSequence(t *testing.T) {
	// the driver must draw key first, then decision; verify against the
	// captured reference draws for seed 42, keySpace 100
	wantKeys := []uint64{13, 58, 50, 25, 5, 7}
	wantOps := []string{"read", "read", "read", "write", "write", "read"}

	var gotKeys []uint64
	var gotOps []string

	m := &recordingModel{
		onGet:       func(k uint64) { gotKeys = append(gotKeys, k); gotOps = append(gotOps, "read") },
		onIncrement: func(k uint64) { gotKeys = append(gotKeys, k); gotOps = append(gotOps, "write") },
	}

	ctx := NewWorkerContext(0, len(wantKeys), 42)
	Run(ctx, m, 100, ReadThreshold(0.9))

	for i := range wantKeys {
		if gotKeys[i] != wantKeys[i] || gotOps[i] != wantOps[i] {
			t.Fatalf("op %d: got (%d, %s), want (%d, %s)",
				i, gotKeys[i], gotOps[i], wantKeys[i], wantOps[i])
		}
	}
}

type recordingModel struct {
	onGet       func(uint64)
	onIncrement func(uint64)
}

func (m *recordingModel) Prefill(int) {}

func (m *recordingModel) Get(k uint64) (uint64, bool) {
	m.onGet(k)
	return 0, true
}

func (m *recordingModel) Increment(k uint64) { m.onIncrement(k) }
func (m *recordingModel) Drain() uint64      { return 0 }
func (m *recordingModel) Name() string       { return "recording" }

func TestWorkerContextStreams(t *testing.T) {
	// worker streams must match NewSource(seed, workerID)
	ctx := NewWorkerContext(3, 10, 42)
	ref := prng.NewSource(42, 3)

	for i := 0; i < 10; i++ {
		if got, want := ctx.Source.Next(), ref.Next(); got != want {
			t.Fatalf("output %d: got 0x%016X, want 0x%016X", i, got, want)
		}
	}
}

func TestDriverAgainstRealModel(t *testing.T) {
	m, err := cmap.New(cmap.ModelSharded, 8)
	if err != nil {
		t.Fatal(err)
	}
	m.Prefill(100)

	// all writes: drained total must equal executed iterations
	ctx := NewWorkerContext(0, 10_000, 42)
	Run(ctx, m, 100, ReadThreshold(0))

	if total := m.Drain(); total != 10_000 {
		t.Errorf("Drain() = %d, want 10000", total)
	}
}

func TestReadThreshold(t *testing.T) {
	tests := []struct {
		ratio float64
		want  uint64
	}{
		{0, 0},
		{0.5, 500},
		{0.9, 900},
		{0.999, 999},
		{1, 1000},
	}

	for _, tt := range tests {
		if got := ReadThreshold(tt.ratio); got != tt.want {
			t.Errorf("ReadThreshold(%v) = %d, want %d", tt.ratio, got, tt.want)
		}
	}
}
