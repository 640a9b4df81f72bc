package stats

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{4}, 4},
		{"integers", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-1, -2, -3}, -2},
		{"fractions", []float64{0.5, 0.25, 0.25}, 1.0 / 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.in); !approxEqual(got, tt.want, 1e-9) {
				t.Fatalf("got=%v, want=%v", got, tt.want)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want float64
	}{
		{"empty", nil, 0},
		{"single", []float64{3}, 3},
		{"odd", []float64{9, 1, 5}, 5},
		{"even", []float64{40, 10, 30, 20}, 25},
		{"duplicates", []float64{2, 2, 1, 2}, 2},
		{"negative", []float64{-5, 3, -1, 0}, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.in); got != tt.want {
				t.Fatalf("got=%v, want=%v", got, tt.want)
			}
		})
	}
}

func TestMedianIsPermutationInvariant(t *testing.T) {
	sample := []float64{3.5, -1, 8, 8, 0, 2.25, 11, -7, 4}
	want := Median(sample)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		shuffled := append([]float64(nil), sample...)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		if got := Median(shuffled); got != want {
			t.Fatalf("median of %v = %v, want %v", shuffled, got, want)
		}
	}
}

func TestSortedCopy(t *testing.T) {
	in := []float64{3, -1, 2, 2, 0}
	got := SortedCopy(in)

	if want := []float64{-1, 0, 2, 2, 3}; !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v, want=%v", got, want)
	}
	if want := []float64{3, -1, 2, 2, 0}; !reflect.DeepEqual(in, want) {
		t.Fatalf("input modified: %v", in)
	}
	if got := SortedCopy(nil); len(got) != 0 {
		t.Fatalf("expected empty slice, got %v", got)
	}
}

func TestMode(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"empty", nil, nil},
		{"all unique", []float64{1, 2, 3}, nil},
		{"highest count wins", []float64{1, 1, 2, 2, 2, 3}, []float64{2}},
		{"tie broken by first occurrence", []float64{5, 3, 1, 3, 5}, []float64{5}},
		{"tie ignores magnitude", []float64{9, 1, 1, 9}, []float64{9}},
		{"later value with more occurrences", []float64{4, 4, 7, 7, 7}, []float64{7}},
		{"fractional values", []float64{0.1, 0.2, 0.2}, []float64{0.2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mode(tt.in); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got=%v, want=%v", got, tt.want)
			}
		})
	}
}

func TestFrequencyTable(t *testing.T) {
	table := NewFrequencyTable([]float64{5, 3, 1, 3, 5, 5})

	want := FrequencyTable{
		5: {Count: 3, First: 0},
		3: {Count: 2, First: 1},
		1: {Count: 1, First: 2},
	}
	if !reflect.DeepEqual(table, want) {
		t.Fatalf("got=%v, want=%v", table, want)
	}

	value, ok := table.Mode()
	if !ok || value != 5 {
		t.Fatalf("expected mode 5, got %v (ok=%t)", value, ok)
	}
}

func TestFrequencyTableModeIsDeterministic(t *testing.T) {
	sample := []float64{8, 6, 4, 2, 2, 4, 6, 8}
	for i := 0; i < 50; i++ {
		value, ok := NewFrequencyTable(sample).Mode()
		if !ok || value != 8 {
			t.Fatalf("iteration %d: expected mode 8, got %v (ok=%t)", i, value, ok)
		}
	}
}
