// Package util provides supporting data structures and statistics helpers
// for the benchmark engine.
//
// Key Components:
//
//   - Stats / DistributionStats: summary statistics used to report how
//     evenly the benchmark key space spreads across map shards
//   - LowerMedianIndex: the lower-median selection rule shared by the
//     sample aggregator (for n sorted samples the median is the element
//     at index floor((n-1)/2), never an average of two middle values)
//   - MPSC: a lock-free multi-producer single-consumer queue used to
//     carry worker failure events to the run coordinator
package util
