package cmd

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/bench"
	"github.com/spf13/cobra"
)

const (
	Version = "1.0.0"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "mapbench",
		Short: "concurrent map micro-benchmark",
		Long: fmt.Sprintf(`mapbench (v%s)

A reproducible micro-benchmark comparing concurrent key-value map
implementations under a deterministic mixed read/write workload.`, Version),
	}
	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of mapbench",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("mapbench v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(bench.BenchCommands)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
