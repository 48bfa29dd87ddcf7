package bench

import (
	"context"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/bench"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Execute a single benchmark run",
		Long: `Execute a single benchmark run for one map model and write its
sample as a JSONL line to stdout.

A failed run (worker fault, exceeded deadline) writes nothing and exits
non-zero.`,
		RunE: runRun,
	}
)

func runRun(_ *cobra.Command, _ []string) error {
	cfg := util.GetBenchConfig()

	coord, err := bench.NewCoordinator(cfg, bench.Options{})
	if err != nil {
		return err
	}

	ctx := context.Background()
	if timeout := viper.GetDuration("run-timeout"); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	sample, err := coord.Run(ctx, 0)
	if err != nil {
		return err
	}

	return bench.WriteSample(os.Stdout, *sample)
}
