// Package stats holds the pure summaries and filters behind the list pages.
// Nothing here performs I/O.
package stats

import "math"

// Percent returns part/total as a percentage rounded to one decimal, or 0
// when total is 0.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return Round1(float64(part) * 100 / float64(total))
}

// Round1 rounds to one decimal place.
func Round1(f float64) float64 {
	return math.Round(f*10) / 10
}

// Count tallies how often each key appears. Keys listed in order are
// always present, so templates can range over a stable set.
func Count[T any](rows []T, key func(T) string, order []string) map[string]int {
	out := make(map[string]int, len(order))
	for _, k := range order {
		out[k] = 0
	}
	for _, r := range rows {
		out[key(r)]++
	}
	return out
}
