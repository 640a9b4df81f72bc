package stats

import "sort"

// SortedCopy returns a new slice with the values of xs in non-decreasing
// order. xs is left untouched.
func SortedCopy(xs []float64) []float64 {
	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)
	return sorted
}
