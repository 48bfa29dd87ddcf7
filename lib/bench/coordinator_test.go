package bench

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/ValentinKolb/mapbench/lib/memprobe"
)

func testOptions() Options {
	return Options{
		Probe:       memprobe.FixedProbe{Bytes: 123_456},
		SettleDelay: time.Millisecond,
	}
}

func TestNewCoordinatorRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Threads = 0

	if _, err := NewCoordinator(cfg, testOptions()); err == nil {
		t.Fatal("expected config error, got nil")
	}
}

func TestCoordinatorRun(t *testing.T) {
	cfg := validConfig()
	coord, err := NewCoordinator(cfg, testOptions())
	if err != nil {
		t.Fatal(err)
	}

	seen := map[string]bool{}
	for repeat := 0; repeat < 5; repeat++ {
		sample, err := coord.Run(context.Background(), repeat)
		if err != nil {
			t.Fatalf("repeat %d: %v", repeat, err)
		}

		if sample.Variant != "go-sharded" {
			t.Errorf("variant = %q, want go-sharded", sample.Variant)
		}
		if sample.Threads != cfg.Threads || sample.Keys != cfg.Keys ||
			sample.ReadRatio != cfg.ReadRatio || sample.Seed != cfg.Seed {
			t.Errorf("sample does not echo config: %+v", sample)
		}
		if sample.Iterations != cfg.EffectiveIterations() {
			t.Errorf("iterations = %d, want %d", sample.Iterations, cfg.EffectiveIterations())
		}
		if sample.DurationMS < 0 {
			t.Errorf("negative duration: %d", sample.DurationMS)
		}
		if sample.RSSBytes != 123_456 {
			t.Errorf("rss_bytes = %d, want injected 123456", sample.RSSBytes)
		}
		if sample.Repeat != repeat {
			t.Errorf("repeat = %d, want %d", sample.Repeat, repeat)
		}
		if sample.RunID == "" || seen[sample.RunID] {
			t.Errorf("run id %q is empty or reused", sample.RunID)
		}
		seen[sample.RunID] = true

		if coord.State() != StateCompleted {
			t.Errorf("state = %v, want completed", coord.State())
		}
	}
}

func TestCoordinatorFreshModelPerRun(t *testing.T) {
	coord, err := NewCoordinator(validConfig(), testOptions())
	if err != nil {
		t.Fatal(err)
	}

	built := 0
	coord.newModel = func() (cmap.Model, error) {
		built++
		return cmap.New(cmap.ModelSharded, 8)
	}

	for repeat := 0; repeat < 3; repeat++ {
		if _, err := coord.Run(context.Background(), repeat); err != nil {
			t.Fatal(err)
		}
	}

	if built != 3 {
		t.Errorf("model built %d times, want one fresh model per run", built)
	}
}

// panicModel fails on the first write so worker failure handling can be
// exercised end to end.
type panicModel struct {
	cmap.Model
}

func (m panicModel) Increment(uint64) {
	panic("injected worker fault")
}

func TestCoordinatorWorkerFailure(t *testing.T) {
	cfg := validConfig()
	cfg.ReadRatio = 0 // force writes so every worker hits the fault

	coord, err := NewCoordinator(cfg, testOptions())
	if err != nil {
		t.Fatal(err)
	}
	coord.newModel = func() (cmap.Model, error) {
		inner, err := cmap.New(cmap.ModelSharded, 8)
		if err != nil {
			return nil, err
		}
		return panicModel{Model: inner}, nil
	}

	sample, err := coord.Run(context.Background(), 0)
	if sample != nil {
		t.Error("failed run must not produce a sample")
	}

	var wf *WorkerFailure
	if !errors.As(err, &wf) {
		t.Fatalf("expected *WorkerFailure, got %T: %v", err, err)
	}
	if coord.State() != StateFailed {
		t.Errorf("state = %v, want failed", coord.State())
	}
}

func TestCoordinatorCancellation(t *testing.T) {
	cfg := validConfig()
	// large enough that the workers cannot finish before the cancelled
	// context is observed
	cfg.Iterations = 50_000_000
	cfg.Threads = 2

	coord, err := NewCoordinator(cfg, testOptions())
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sample, err := coord.Run(ctx, 0)
	if sample != nil {
		t.Error("abandoned run must not produce a sample")
	}

	var tf *TimeoutFailure
	if !errors.As(err, &tf) {
		t.Fatalf("expected *TimeoutFailure, got %T: %v", err, err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
	if coord.State() != StateFailed {
		t.Errorf("state = %v, want failed", coord.State())
	}
}

func TestCoordinatorProbeFailureDegrades(t *testing.T) {
	coord, err := NewCoordinator(validConfig(), Options{
		Probe:       memprobe.FixedProbe{Err: errors.New("statm unavailable")},
		SettleDelay: time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}

	sample, err := coord.Run(context.Background(), 0)
	if err != nil {
		t.Fatalf("probe failure must not fail the run: %v", err)
	}
	if sample.RSSBytes != 0 {
		t.Errorf("rss_bytes = %d, want 0 on probe failure", sample.RSSBytes)
	}
}
