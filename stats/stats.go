// Package stats computes descriptive statistics over an in-memory sample.
//
// The engine is a pure computation: it never reads or writes anything and
// never mutates the caller's slice.
package stats

// Result holds the descriptive statistics of a sample
type Result struct {
	Count    int     // Number of values in the sample
	Mean     float64 // Arithmetic mean
	Median   float64 // Middle value of the sorted sample
	Variance float64 // Sample variance (N-1 denominator)
	StdDev   float64 // Square root of Variance

	mode []float64
}

// Mode returns the most frequent value as a slice holding at most one
// element. The slice is a copy, changing it does not affect the Result.
func (r Result) Mode() []float64 {
	if len(r.mode) == 0 {
		return nil
	}
	out := make([]float64, len(r.mode))
	copy(out, r.mode)
	return out
}

// ModeValue returns the mode and whether the sample has one
func (r Result) ModeValue() (float64, bool) {
	if len(r.mode) == 0 {
		return 0, false
	}
	return r.mode[0], true
}

// HasMode reports whether some value occurs more than once
func (r Result) HasMode() bool {
	return len(r.mode) > 0
}

// NewResult packages already computed statistics into a Result
func NewResult(count int, mean, median float64, mode []float64, variance, stdDev float64) Result {
	r := Result{
		Count:    count,
		Mean:     mean,
		Median:   median,
		Variance: variance,
		StdDev:   stdDev,
	}
	if len(mode) > 0 {
		r.mode = []float64{mode[0]}
	}
	return r
}

// Compute runs the full pipeline over sample and returns its statistics.
// An empty sample yields a zero Result with no mode.
func Compute(sample []float64) Result {
	mean := Mean(sample)
	median := Median(sample)
	mode := Mode(sample)
	variance := Variance(sample, mean)
	stdDev := StdDev(variance)

	return NewResult(len(sample), mean, median, mode, variance, stdDev)
}
