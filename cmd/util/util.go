package util

import (
	"strings"

	"github.com/ValentinKolb/mapbench/lib/bench"
	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupBenchFlags adds the shared benchmark parameter flags to a command
func SetupBenchFlags(cmd *cobra.Command) {
	key := "model"
	cmd.PersistentFlags().String(key, "sharded", WrapString("Map model under test (sharded, syncmap, xsync)"))

	key = "threads"
	cmd.PersistentFlags().Int(key, 4, WrapString("Number of concurrent workers"))

	key = "iterations"
	cmd.PersistentFlags().Int(key, 2_000_000, WrapString("Total operation count across all workers. A remainder that does not divide by the thread count is dropped"))

	key = "keys"
	cmd.PersistentFlags().Int(key, 65536, WrapString("Key space size, keys are drawn modulo this value"))

	key = "read-ratio"
	cmd.PersistentFlags().Float64(key, 0.9, WrapString("Fraction of read operations, between 0 and 1"))

	key = "seed"
	cmd.PersistentFlags().Uint64(key, 42, WrapString("Base seed, worker i uses the stream seeded with seed+i"))

	key = "shards"
	cmd.PersistentFlags().Int(key, 64, WrapString("Shard count for the sharded model (ignored by other models)"))

	key = "run-timeout"
	cmd.PersistentFlags().Duration(key, 0, WrapString("Per-run deadline, 0 disables the deadline. A run exceeding it is abandoned and produces no sample"))
}

// InitBenchConfig initializes configuration from environment variables
func InitBenchConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("mapbench")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// GetBenchConfig reads a run configuration from viper. The configuration
// is not validated here; the coordinator rejects invalid values.
func GetBenchConfig() bench.Config {
	return bench.Config{
		Model:      cmap.ModelType(viper.GetString("model")),
		Threads:    viper.GetInt("threads"),
		Iterations: viper.GetInt("iterations"),
		Keys:       viper.GetInt("keys"),
		ReadRatio:  viper.GetFloat64("read-ratio"),
		Seed:       viper.GetUint64("seed"),
		Shards:     viper.GetInt("shards"),
	}
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
