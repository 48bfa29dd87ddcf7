package memprobe

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Probe Interface
// --------------------------------------------------------------------------

// Probe reports the resident memory of the current process. It is
// injected into the run coordinator instead of being read from ambient
// process state, so tests can substitute a deterministic fake.
type Probe interface {
	// RSSBytes returns the current resident set size in bytes.
	RSSBytes() (uint64, error)
}

// --------------------------------------------------------------------------
// Process Probe
// --------------------------------------------------------------------------

// processProbe measures the real process. On Linux it reads
// /proc/self/statm (resident pages * page size); elsewhere it falls back
// to the Go runtime's Sys counter, which tracks resident memory closely
// enough for relative comparisons.
type processProbe struct{}

// NewProcessProbe returns a Probe for the current process.
func NewProcessProbe() Probe {
	return processProbe{}
}

func (processProbe) RSSBytes() (uint64, error) {
	if rss, err := statmRSS(); err == nil {
		return rss, nil
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Sys, nil
}

// statmRSS parses the resident-pages field of /proc/self/statm.
func statmRSS() (uint64, error) {
	data, err := os.ReadFile("/proc/self/statm")
	if err != nil {
		return 0, err
	}

	fields := strings.Fields(string(data))
	if len(fields) < 2 {
		return 0, fmt.Errorf("unexpected statm format: %q", string(data))
	}

	pages, err := strconv.ParseUint(fields[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse statm resident pages: %w", err)
	}

	return pages * uint64(os.Getpagesize()), nil
}

// --------------------------------------------------------------------------
// Fixed Probe (testing)
// --------------------------------------------------------------------------

// FixedProbe is a deterministic Probe that always reports the same value.
type FixedProbe struct {
	Bytes uint64
	Err   error
}

func (p FixedProbe) RSSBytes() (uint64, error) {
	return p.Bytes, p.Err
}
