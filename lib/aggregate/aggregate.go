// Package aggregate condenses per-run samples into one record per
// variant using the lower-median convention: for n sorted values the
// median is the element at index floor((n-1)/2). Duration and memory
// medians are computed independently, so a record's two medians may come
// from different runs.
package aggregate

import (
	"sort"

	"github.com/ValentinKolb/mapbench/lib/bench"
	"github.com/ValentinKolb/mapbench/lib/util"
)

// --------------------------------------------------------------------------
// Aggregated Records
// --------------------------------------------------------------------------

// Record is the per-variant aggregate of a sweep.
type Record struct {
	Variant          string  `json:"variant"`
	Threads          int     `json:"threads"`
	Iterations       int     `json:"iterations"`
	Keys             int     `json:"keys"`
	ReadRatio        float64 `json:"read_ratio"`
	MedianDurationMS int64   `json:"duration_ms_median"`
	MedianRSSBytes   uint64  `json:"rss_bytes_median"`
	Repeats          int     `json:"repeats"`
}

// Aggregate groups samples by variant and reduces each group to its
// lower medians. Variants with zero samples simply never appear; a
// variant whose runs all failed is omitted rather than reported as zero.
//
// Records are returned sorted by variant name so output is stable.
func Aggregate(samples []bench.RunSample) []Record {
	groups := make(map[string][]bench.RunSample)
	for _, s := range samples {
		groups[s.Variant] = append(groups[s.Variant], s)
	}

	variants := make([]string, 0, len(groups))
	for v := range groups {
		variants = append(variants, v)
	}
	sort.Strings(variants)

	records := make([]Record, 0, len(variants))
	for _, v := range variants {
		group := groups[v]

		durations := make([]int64, len(group))
		rss := make([]uint64, len(group))
		for i, s := range group {
			durations[i] = s.DurationMS
			rss[i] = s.RSSBytes
		}

		sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })
		sort.Slice(rss, func(i, j int) bool { return rss[i] < rss[j] })

		mid := util.LowerMedianIndex(len(group))

		// configuration fields are echoed from the first sample; a sweep
		// holds them constant within a variant group
		records = append(records, Record{
			Variant:          v,
			Threads:          group[0].Threads,
			Iterations:       group[0].Iterations,
			Keys:             group[0].Keys,
			ReadRatio:        group[0].ReadRatio,
			MedianDurationMS: durations[mid],
			MedianRSSBytes:   rss[mid],
			Repeats:          len(group),
		})
	}

	return records
}
