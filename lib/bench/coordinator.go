package bench

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/ValentinKolb/mapbench/lib/logging"
	"github.com/ValentinKolb/mapbench/lib/memprobe"
	"github.com/ValentinKolb/mapbench/lib/util"
	"github.com/ValentinKolb/mapbench/lib/workload"
)

var logger = logging.CreateLogger("bench")

// --------------------------------------------------------------------------
// Run States
// --------------------------------------------------------------------------

// State tracks the lifecycle of a run inside the coordinator.
type State int

const (
	StateConfigured State = iota
	StatePrefilling
	StateRunning
	StateMeasuring
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateConfigured:
		return "configured"
	case StatePrefilling:
		return "prefilling"
	case StateRunning:
		return "running"
	case StateMeasuring:
		return "measuring"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Coordinator
// --------------------------------------------------------------------------

// settleDelay is the pause between the forced GC and the memory probe,
// giving the runtime time to return freed pages.
const settleDelay = 50 * time.Millisecond

// Options configures optional coordinator behavior. The zero value selects
// the real process probe and the default settle delay.
type Options struct {
	// Probe measures resident memory after a run. Defaults to the
	// process probe.
	Probe memprobe.Probe

	// SettleDelay overrides the pause between GC and the memory probe.
	SettleDelay time.Duration
}

// Coordinator executes benchmark runs for one validated configuration.
// Every call to Run builds a fresh map model and fresh worker contexts,
// so repeats of the same configuration are independent.
//
// A Coordinator is not safe for concurrent Run calls; a run owns the
// whole process (GC, memory probe) while it executes.
type Coordinator struct {
	cfg    Config
	probe  memprobe.Probe
	settle time.Duration
	state  State

	// newModel builds the fresh model for each run. Overridable in tests
	// to inject failing models.
	newModel func() (cmap.Model, error)
}

// NewCoordinator validates the configuration and returns a coordinator
// for it. Invalid configurations are rejected here, before any model is
// built or worker started.
func NewCoordinator(cfg Config, opts Options) (*Coordinator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	probe := opts.Probe
	if probe == nil {
		probe = memprobe.NewProcessProbe()
	}

	settle := opts.SettleDelay
	if settle == 0 {
		settle = settleDelay
	}

	return &Coordinator{
		cfg:    cfg,
		probe:  probe,
		settle: settle,
		state:  StateConfigured,
		newModel: func() (cmap.Model, error) {
			return cmap.New(cfg.Model, cfg.Shards)
		},
	}, nil
}

// State returns the lifecycle state of the most recent run.
func (c *Coordinator) State() State {
	return c.state
}

// Run executes one benchmark run and returns its sample. repeat is the
// zero-based index of the run within a sweep and is recorded verbatim.
//
// The timer covers the full parallel section: it starts before the first
// worker is launched and stops after the last worker has finished. Prefill
// and the memory measurement are outside the timed window.
//
// A failed run (worker panic, cancelled context) returns an error and no
// sample.
func (c *Coordinator) Run(ctx context.Context, repeat int) (*RunSample, error) {
	variant := VariantLabel(c.cfg.Model)

	// fresh model per run
	model, err := c.newModel()
	if err != nil {
		// unreachable after Validate, but keep the state machine honest
		c.state = StateFailed
		runsFailed.Inc()
		return nil, err
	}

	c.state = StatePrefilling
	model.Prefill(c.cfg.Keys)

	if s, ok := model.(interface{ ShardStats() util.DistributionStats }); ok {
		stats := s.ShardStats()
		logger.Debugf("shard occupancy: mean=%.1f min=%.0f max=%.0f quality=%.2f",
			stats.Mean, stats.Min, stats.Max, stats.DistributionQuality)
	}

	perWorker := c.cfg.PerWorker()
	threshold := workload.ReadThreshold(c.cfg.ReadRatio)
	failures := util.NewMPSC[WorkerFailure]()
	defer failures.Close()

	var wg sync.WaitGroup

	c.state = StateRunning
	logger.Debugf("starting run: variant=%s threads=%d iterations=%d (per worker %d)",
		variant, c.cfg.Threads, c.cfg.EffectiveIterations(), perWorker)

	start := time.Now()
	for i := 0; i < c.cfg.Threads; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					failures.Push(&WorkerFailure{WorkerID: workerID, Cause: r})
				}
			}()

			wctx := workload.NewWorkerContext(workerID, perWorker, c.cfg.Seed)
			workload.Run(wctx, model, uint64(c.cfg.Keys), threshold)
		}(i)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		// a run that finished in the same instant still counts
		select {
		case <-done:
		default:
			elapsed := time.Since(start)
			c.state = StateFailed
			runsFailed.Inc()
			// workers cannot be interrupted mid-operation; they finish on
			// their own and their results are discarded
			logger.Errorf("run abandoned after %v: %v", elapsed, ctx.Err())
			return nil, &TimeoutFailure{Elapsed: elapsed, Cause: ctx.Err()}
		}
	}
	elapsed := time.Since(start)

	failures.Close()
	var firstFailure *WorkerFailure
	for f := range failures.Recv() {
		logger.Errorf("%v", f)
		if firstFailure == nil {
			firstFailure = f
		}
	}
	if firstFailure != nil {
		c.state = StateFailed
		runsFailed.Inc()
		return nil, firstFailure
	}

	c.state = StateMeasuring
	runtime.GC()
	time.Sleep(c.settle)

	rss, err := c.probe.RSSBytes()
	if err != nil {
		// memory is a secondary metric; a probe failure degrades the
		// sample to rss_bytes=0 instead of discarding the timing result
		logger.Warningf("memory probe failed, recording 0: %v", err)
		rss = 0
	}

	// the map must stay reachable until after the probe so its memory
	// is part of the measurement
	runtime.KeepAlive(model)

	sample := &RunSample{
		Variant:    variant,
		Threads:    c.cfg.Threads,
		Iterations: c.cfg.EffectiveIterations(),
		Keys:       c.cfg.Keys,
		ReadRatio:  c.cfg.ReadRatio,
		Seed:       c.cfg.Seed,
		DurationMS: elapsed.Milliseconds(),
		RSSBytes:   rss,
		Repeat:     repeat,
		RunID:      newRunID(),
	}

	c.state = StateCompleted
	runsCompleted.Inc()
	runDuration(variant).Update(elapsed.Seconds())

	logger.Debugf("run completed: variant=%s duration=%dms rss=%d bytes",
		variant, sample.DurationMS, sample.RSSBytes)

	return sample, nil
}
