package stats

import (
	"math"
	"testing"
)

func TestVariance(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{12}, 0},
		{"pair", []float64{1, 3}, 2},
		{"bessel correction", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 32.0 / 7.0},
		{"constant", []float64{3, 3, 3}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Variance(tt.in, Mean(tt.in))
			if !approxEqual(got, tt.want, 1e-12) {
				t.Fatalf("got=%v, want=%v", got, tt.want)
			}
		})
	}
}

func TestStdDevZeroVariance(t *testing.T) {
	if got := StdDev(0); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestStdDevMatchesSqrt(t *testing.T) {
	for _, v := range []float64{
		1e-12, 1e-6, 0.04, 0.5, 1, 2, 4.5714285714, 9, 10, 1234.5678,
		1e6, 1e12, 1e20, 1e100, 1e300, math.MaxFloat64,
	} {
		got := StdDev(v)
		want := math.Sqrt(v)
		if math.Abs(got-want) > 1e-9*math.Max(1, want) {
			t.Fatalf("StdDev(%v) = %v, want %v", v, got, want)
		}
	}
}

func TestNewtonSqrtPerfectSquares(t *testing.T) {
	for i := 1; i <= 100; i++ {
		v := float64(i * i)
		if got := newtonSqrt(v); math.Abs(got-float64(i)) > 1e-9 {
			t.Fatalf("newtonSqrt(%v) = %v, want %d", v, got, i)
		}
	}
}

func TestStdDevOverflowedVariance(t *testing.T) {
	for _, sample := range [][]float64{
		{1e200, -1e200},
		{1e308, 1e308},
	} {
		variance := Variance(sample, Mean(sample))
		if !math.IsInf(variance, 1) {
			t.Fatalf("Variance(%v) = %v, expected +Inf", sample, variance)
		}
		if got := StdDev(variance); !math.IsInf(got, 1) {
			t.Fatalf("StdDev of %v = %v, expected +Inf", sample, got)
		}
		if got := Compute(sample).StdDev; !math.IsInf(got, 1) {
			t.Fatalf("Compute(%v).StdDev = %v, expected +Inf", sample, got)
		}
	}
}

func TestNewtonSqrtStopsOnNaN(t *testing.T) {
	if got := newtonSqrt(math.Inf(1)); !math.IsNaN(got) {
		t.Fatalf("newtonSqrt(+Inf) = %v, expected NaN", got)
	}
	if got := StdDev(math.NaN()); !math.IsNaN(got) {
		t.Fatalf("StdDev(NaN) = %v, expected NaN", got)
	}
}
