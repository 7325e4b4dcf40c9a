package analysis

import "sort"

// Histogram counts every byte value in stream and returns the non-zero
// entries ordered by count descending, byte value ascending on ties.
// The counts always sum to len(stream).
func Histogram(stream []byte) []HistogramEntry {
	var counts [256]int
	for _, b := range stream {
		counts[b]++
	}

	entries := make([]HistogramEntry, 0, 256)
	for v, count := range counts {
		if count > 0 {
			entries = append(entries, HistogramEntry{Value: byte(v), Count: count})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Value < entries[j].Value
	})
	return entries
}
