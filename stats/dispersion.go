package stats

import "math"

// sqrtEpsilon is the convergence threshold of the Newton-Raphson square root
const sqrtEpsilon = 1e-10

// Variance returns the sample variance of xs around mean, using N-1 as the
// denominator. Samples with fewer than two values have zero variance.
func Variance(xs []float64, mean float64) float64 {
	if len(xs) <= 1 {
		return 0
	}

	sumSquares := 0.0
	for _, x := range xs {
		diff := x - mean
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(xs)-1)
}

// StdDev returns the square root of a non-negative variance. A variance that
// overflowed to +Inf has an infinite standard deviation.
func StdDev(variance float64) float64 {
	if variance <= 0 {
		return 0
	}
	if math.IsInf(variance, 1) {
		return variance
	}
	return newtonSqrt(variance)
}

// newtonSqrt computes sqrt(v) for v > 0 by Newton-Raphson iteration starting
// at v, stopping once two successive estimates differ by less than
// sqrtEpsilon.
func newtonSqrt(v float64) float64 {
	x := v
	for i := 0; ; i++ {
		next := 0.5 * (x + v/x)
		if math.IsNaN(next) || math.Abs(next-x) < sqrtEpsilon {
			return next
		}
		// From the second step on the estimates decrease towards the root.
		// An estimate that stops decreasing has hit float64 resolution, which
		// happens for large v where ulp(sqrt(v)) exceeds sqrtEpsilon.
		if i > 0 && next >= x {
			return next
		}
		x = next
	}
}
