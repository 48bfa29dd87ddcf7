package bench

import (
	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/spf13/cobra"
)

var (
	// BenchCommands represents the benchmark command group
	BenchCommands = &cobra.Command{
		Use:               "bench",
		Short:             "Execute map benchmark runs and sweeps",
		PersistentPreRunE: setupBenchConfig,
	}
)

func init() {
	// Initialize viper
	cobra.OnInitialize(util.InitBenchConfig)

	// Add shared benchmark parameter flags to the group
	util.SetupBenchFlags(BenchCommands)

	// Add subcommands
	BenchCommands.AddCommand(runCmd)
	BenchCommands.AddCommand(sweepCmd)
	BenchCommands.AddCommand(reportCmd)
}

// setupBenchConfig binds the invoked command's flags to viper
func setupBenchConfig(cmd *cobra.Command, _ []string) error {
	return util.BindCommandFlags(cmd)
}
