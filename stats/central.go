package stats

// Mean returns the arithmetic mean of xs, or 0 for an empty slice
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}

	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Median returns the middle value of the sorted sample. For an even number
// of values it is the average of the two central ones.
func Median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}

	sorted := SortedCopy(xs)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// Mode returns the most frequent value of xs as a one-element slice, or nil
// when xs is empty or no value repeats. Among values sharing the highest
// count, the one that occurs first in xs wins.
func Mode(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}

	value, ok := NewFrequencyTable(xs).Mode()
	if !ok {
		return nil
	}
	return []float64{value}
}

// Frequency is the occurrence record of one distinct value
type Frequency struct {
	Count int // Number of occurrences
	First int // Index of the first occurrence
}

// FrequencyTable maps each distinct value of a sample to its Frequency
type FrequencyTable map[float64]Frequency

// NewFrequencyTable counts the occurrences of every value in xs
func NewFrequencyTable(xs []float64) FrequencyTable {
	table := make(FrequencyTable, len(xs))
	for i, x := range xs {
		f, seen := table[x]
		if !seen {
			f.First = i
		}
		f.Count++
		table[x] = f
	}
	return table
}

// Mode selects the value with the highest count, breaking ties by the
// earliest first occurrence. It reports false if no value occurs twice.
func (t FrequencyTable) Mode() (float64, bool) {
	var (
		best      float64
		bestCount int
		bestFirst int
	)
	for value, f := range t {
		if f.Count > bestCount || (f.Count == bestCount && f.First < bestFirst) {
			best, bestCount, bestFirst = value, f.Count, f.First
		}
	}

	if bestCount < 2 {
		return 0, false
	}
	return best, true
}
