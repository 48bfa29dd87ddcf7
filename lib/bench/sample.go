package bench

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ValentinKolb/mapbench/lib/cmap"
	"github.com/google/uuid"
)

// --------------------------------------------------------------------------
// Run Samples
// --------------------------------------------------------------------------

// RunSample is the record emitted for every successfully completed run.
// Samples are serialized one JSON object per line (JSONL) so sweep output
// can be streamed and concatenated across invocations.
type RunSample struct {
	Variant    string  `json:"variant"`
	Threads    int     `json:"threads"`
	Iterations int     `json:"iterations"`
	Keys       int     `json:"keys"`
	ReadRatio  float64 `json:"read_ratio"`
	Seed       uint64  `json:"seed"`
	DurationMS int64   `json:"duration_ms"`
	RSSBytes   uint64  `json:"rss_bytes"`
	Repeat     int     `json:"repeat"`
	RunID      string  `json:"run_id"`
}

// VariantLabel returns the identifier recorded for a map model, e.g.
// "go-sharded". The prefix distinguishes results from ports of the same
// benchmark in other runtimes when files are concatenated.
func VariantLabel(model cmap.ModelType) string {
	return "go-" + string(model)
}

// newRunID returns a fresh unique identifier for a run sample.
func newRunID() string {
	return uuid.NewString()
}

// WriteSample appends a sample as a single JSONL line.
func WriteSample(w io.Writer, s RunSample) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode sample: %w", err)
	}

	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write sample: %w", err)
	}
	return nil
}

// ReadSamples parses a JSONL stream of run samples. Blank lines are
// skipped; a malformed line aborts with an error naming the line number.
func ReadSamples(r io.Reader) ([]RunSample, error) {
	var samples []RunSample

	scanner := bufio.NewScanner(r)
	// allow long lines, the default 64K is plenty but be explicit
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var s RunSample
		if err := json.Unmarshal(line, &s); err != nil {
			return nil, fmt.Errorf("failed to parse sample on line %d: %w", lineNo, err)
		}
		samples = append(samples, s)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read samples: %w", err)
	}
	return samples, nil
}
