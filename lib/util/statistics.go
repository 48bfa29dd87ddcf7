package util

import "math"

// --------------------------------------------------------------------------
// Basic Statistics
// --------------------------------------------------------------------------

// Stats summarizes a series of float64 values.
type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"`
}

// NewStats computes the standard deviation, minimum, maximum and mean
// of a series of values.
func NewStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	// initialize min and max with the first value
	min := values[0]
	max := values[0]

	// calculate sum for mean
	var sum float64
	for _, v := range values {
		sum += v

		// update min and max while iterating
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	// calculate mean
	mean := sum / float64(len(values))

	// calculate sum of squared differences from mean
	var sumSquaredDiffs float64
	for _, v := range values {
		diff := v - mean
		sumSquaredDiffs += diff * diff
	}

	// calculate standard deviation (population formula)
	stdDev := math.Sqrt(sumSquaredDiffs / float64(len(values)))

	// calculate min/max ratio
	var minMaxRatio float64 = 1.0
	if max > 0 {
		minMaxRatio = min / max
	}

	return Stats{
		StdDeviation: stdDev,
		Min:          min,
		Max:          max,
		Mean:         mean,
		MinMaxRatio:  minMaxRatio,
	}
}

// --------------------------------------------------------------------------
// Distribution Quality
// --------------------------------------------------------------------------

// DistributionStats extends Stats with a single quality score for how
// evenly values are spread. It is used to report how well the benchmark
// key space distributes across map shards.
type DistributionStats struct {
	Stats
	DistributionQuality float64 `json:"distribution_quality"`
}

// NewDistributionStats computes quality metrics for shard occupancy.
func NewDistributionStats(shardSizes []float64) DistributionStats {
	// get statistics
	stats := NewStats(shardSizes)

	// calculate coefficient of variation
	var cv float64
	if stats.Mean > 0 {
		cv = stats.StdDeviation / stats.Mean
	}

	// distribution quality combines CV and min/max ratio
	// -> lower CV and higher min/max ratio indicate better distribution
	distributionQuality := (1.0-math.Min(1.0, cv))*0.5 + stats.MinMaxRatio*0.5

	return DistributionStats{
		Stats:               stats,
		DistributionQuality: distributionQuality,
	}
}

// --------------------------------------------------------------------------
// Median (lower-median convention)
// --------------------------------------------------------------------------

// LowerMedianIndex returns the index of the lower median for a sorted
// sequence of length n: floor((n-1)/2). For even counts the lower of the
// two middle elements is selected; the two middle values are never
// averaged. Returns -1 for n <= 0.
func LowerMedianIndex(n int) int {
	if n <= 0 {
		return -1
	}
	return (n - 1) / 2
}
