package bench

import (
	"fmt"
	"os"

	"github.com/ValentinKolb/mapbench/cmd/util"
	"github.com/ValentinKolb/mapbench/lib/aggregate"
	"github.com/ValentinKolb/mapbench/lib/bench"
	"github.com/ValentinKolb/mapbench/lib/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	reportCmd = &cobra.Command{
		Use:   "report <samples.jsonl>",
		Short: "Aggregate a JSONL sample file into a comparison report",
		Long: `Aggregate an existing JSONL sample file (as written by run or sweep)
into one record per variant and print it.

Medians follow the lower-median convention: for an even number of runs
the lower of the two middle values is reported, never an average.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}
)

func init() {
	// add flags
	key := "format"
	reportCmd.Flags().String(key, "markdown", util.WrapString("Output format (markdown, json, csv)"))
}

func runReport(_ *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open sample file: %w", err)
	}
	defer file.Close()

	samples, err := bench.ReadSamples(file)
	if err != nil {
		return err
	}

	records := aggregate.Aggregate(samples)
	if len(records) == 0 {
		return fmt.Errorf("no samples in %s", args[0])
	}

	switch format := viper.GetString("format"); format {
	case "markdown":
		return report.Generate(os.Stdout, records)
	case "json":
		return report.GenerateJSON(os.Stdout, records)
	case "csv":
		return report.GenerateCSV(os.Stdout, records)
	default:
		return fmt.Errorf("invalid format %s", format)
	}
}
