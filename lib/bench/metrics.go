package bench

import (
	"fmt"

	"github.com/VictoriaMetrics/metrics"
)

// --------------------------------------------------------------------------
// Run Metrics
// --------------------------------------------------------------------------

// Run outcome counters. Exposed in Prometheus format when the sweep command
// is started with a metrics listener.
var (
	runsCompleted = metrics.NewCounter(`mapbench_runs_total{status="completed"}`)
	runsFailed    = metrics.NewCounter(`mapbench_runs_total{status="failed"}`)
)

// runDuration returns the wall-clock histogram for a variant.
func runDuration(variant string) *metrics.Histogram {
	return metrics.GetOrCreateHistogram(fmt.Sprintf(`mapbench_run_duration_seconds{variant=%q}`, variant))
}
