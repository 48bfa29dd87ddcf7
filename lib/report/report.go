// Package report formats aggregated benchmark results into comparison
// tables (markdown), machine-readable JSON, and CSV exports.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ValentinKolb/mapbench/lib/aggregate"
)

// --------------------------------------------------------------------------
// Markdown
// --------------------------------------------------------------------------

// Generate writes a markdown comparison table for the given records.
// Slowdown is relative to the fastest variant in the set.
func Generate(w io.Writer, records []aggregate.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("no records to report")
	}

	fastestMs := findFastest(records)

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "threads=%d iterations=%d keys=%d read_ratio=%v\n",
		records[0].Threads, records[0].Iterations, records[0].Keys, records[0].ReadRatio)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Variant | Median Duration | Median RSS | Repeats | Slowdown |")
	fmt.Fprintln(w, "|---------|-----------------|------------|---------|----------|")

	for _, r := range records {
		slowdown := 1.0
		if fastestMs > 0 && r.MedianDurationMS > 0 {
			slowdown = float64(r.MedianDurationMS) / float64(fastestMs)
		}

		fmt.Fprintf(w, "| %s | %s | %s | %d | %.2fx |\n",
			r.Variant,
			formatMs(r.MedianDurationMS),
			formatBytes(r.MedianRSSBytes),
			r.Repeats,
			slowdown,
		)
	}

	return nil
}

// --------------------------------------------------------------------------
// JSON
// --------------------------------------------------------------------------

// GenerateJSON writes records as indented JSON to w.
func GenerateJSON(w io.Writer, records []aggregate.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(records)
}

// --------------------------------------------------------------------------
// CSV
// --------------------------------------------------------------------------

// GenerateCSV writes records as CSV with a header row, one line per
// variant, suitable for spreadsheet import.
func GenerateCSV(w io.Writer, records []aggregate.Record) error {
	cw := csv.NewWriter(w)

	header := []string{
		"variant", "threads", "iterations", "keys", "read_ratio",
		"duration_ms_median", "rss_bytes_median", "repeats",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			r.Variant,
			strconv.Itoa(r.Threads),
			strconv.Itoa(r.Iterations),
			strconv.Itoa(r.Keys),
			strconv.FormatFloat(r.ReadRatio, 'f', -1, 64),
			strconv.FormatInt(r.MedianDurationMS, 10),
			strconv.FormatUint(r.MedianRSSBytes, 10),
			strconv.Itoa(r.Repeats),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// --------------------------------------------------------------------------
// Formatting Helpers
// --------------------------------------------------------------------------

func findFastest(records []aggregate.Record) int64 {
	fastest := int64(math.MaxInt64)
	for _, r := range records {
		if r.MedianDurationMS > 0 && r.MedianDurationMS < fastest {
			fastest = r.MedianDurationMS
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatMs(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}

	return fmt.Sprintf("%.2fs", float64(ms)/1000)
}

func formatBytes(b uint64) string {
	if b == 0 {
		return "-"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(b)
	unit := 0

	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}

	formatted := fmt.Sprintf("%.1f", size)
	formatted = strings.TrimRight(formatted, "0")
	formatted = strings.TrimRight(formatted, ".")

	return formatted + " " + units[unit]
}
