package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/aggregate"
	"github.com/ValentinKolb/mapbench/lib/bench"
	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/ValentinKolb/mapbench/lib/logging"
	"github.com/ValentinKolb/mapbench/lib/report"
	vmetrics "github.com/VictoriaMetrics/metrics"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	sweepLogger = logging.CreateLogger("sweep")

	sweepCmd = &cobra.Command{
		Use:   "sweep",
		Short: "Execute repeated runs across map models",
		Long: `Execute a full sweep: every selected map model is run the configured
number of times with identical parameters. Samples are written as JSONL,
failed runs are logged and skipped, and a markdown comparison of the
per-variant medians is printed at the end.`,
		RunE: runSweep,
	}
)

func init() {
	// add flags
	key := "repeats"
	sweepCmd.Flags().Int(key, 5, util.WrapString("Number of runs per model"))
	key = "models"
	sweepCmd.Flags().String(key, "", util.WrapString("Models to sweep (comma separated - e.g. sharded,xsync). Defaults to all models"))
	key = "out"
	sweepCmd.Flags().String(key, "", util.WrapString("Path to write the JSONL samples to. If unset, samples go to stdout and the markdown report is suppressed"))
	key = "csv"
	sweepCmd.Flags().String(key, "", util.WrapString("Optional path to save the aggregated results as CSV"))
	key = "metrics-addr"
	sweepCmd.Flags().String(key, "", util.WrapString("Optional listen address to expose Prometheus metrics during the sweep (e.g. :9090)"))
}

func runSweep(_ *cobra.Command, _ []string) error {
	cfgBase := util.GetBenchConfig()
	repeats := viper.GetInt("repeats")
	if repeats < 1 {
		return fmt.Errorf("repeats must be >= 1, got %d", repeats)
	}

	models, err := sweepModels(viper.GetString("models"))
	if err != nil {
		return err
	}

	// optionally expose run counters and duration histograms while the
	// sweep executes
	if addr := viper.GetString("metrics-addr"); addr != "" {
		mux := http.NewServeMux()
		mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) {
			vmetrics.WritePrometheus(w, true)
		})
		go func() {
			if err := http.ListenAndServe(addr, mux); err != nil {
				sweepLogger.Errorf("metrics listener failed: %v", err)
			}
		}()
		sweepLogger.Infof("exposing metrics on %s/metrics", addr)
	}

	// samples go to the out file if given, otherwise to stdout
	var out io.Writer = os.Stdout
	outPath := viper.GetString("out")
	if outPath != "" {
		file, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	var samples []bench.RunSample

	for _, model := range models {
		cfg := cfgBase
		cfg.Model = model

		// a config error aborts the whole sweep before any run starts
		coord, err := bench.NewCoordinator(cfg, bench.Options{})
		if err != nil {
			return err
		}

		// uniform sample is exact here, the histogram holds every repeat
		spread := gometrics.NewHistogram(gometrics.NewUniformSample(repeats))

		for repeat := 0; repeat < repeats; repeat++ {
			sample, err := executeRun(coord, repeat)
			if err != nil {
				// failed runs produce no sample, the sweep continues
				sweepLogger.Errorf("run failed (model=%s repeat=%d): %v", model, repeat, err)
				continue
			}
			samples = recordSample(out, samples, *sample, spread)
		}

		if spread.Count() > 0 {
			sweepLogger.Infof("%s: %d/%d runs ok, duration min=%dms mean=%.1fms p95=%.1fms",
				bench.VariantLabel(model), spread.Count(), repeats,
				spread.Min(), spread.Mean(), spread.Percentile(0.95))
		} else {
			sweepLogger.Warningf("%s: all %d runs failed, variant omitted from report",
				bench.VariantLabel(model), repeats)
		}
	}

	records := aggregate.Aggregate(samples)

	if outPath != "" && len(records) > 0 {
		if err := report.Generate(os.Stdout, records); err != nil {
			return err
		}
	}

	if csvPath := viper.GetString("csv"); csvPath != "" {
		file, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()

		if err := report.GenerateCSV(file, records); err != nil {
			return err
		}
		sweepLogger.Infof("exported aggregated results to %s", csvPath)
	}

	return nil
}

// executeRun runs one repeat, applying the per-run deadline if configured.
func executeRun(coord *bench.Coordinator, repeat int) (*bench.RunSample, error) {
	ctx := context.Background()
	if timeout := viper.GetDuration("run-timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	return coord.Run(ctx, repeat)
}

// recordSample writes a sample to the JSONL stream and feeds the spread
// histogram. A failed write is logged and the sample excluded from
// aggregation so the report never includes data the output file lacks.
func recordSample(out io.Writer, samples []bench.RunSample, s bench.RunSample, spread gometrics.Histogram) []bench.RunSample {
	if err := bench.WriteSample(out, s); err != nil {
		sweepLogger.Errorf("failed to write sample: %v", err)
		return samples
	}
	spread.Update(s.DurationMS)
	return append(samples, s)
}

// sweepModels parses the --models selection, defaulting to all models.
func sweepModels(selection string) ([]cmap.ModelType, error) {
	if selection == "" {
		return cmap.ModelTypes(), nil
	}

	var models []cmap.ModelType
	for _, name := range strings.Split(selection, ",") {
		model, err := cmap.ParseModelType(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}

	if len(models) == 0 {
		return nil, errors.New("no models selected")
	}
	return models, nil
}
