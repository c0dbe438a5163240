package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestArgMax(t *testing.T) {
	tests := []struct {
		in   []float64
		want int
	}{
		{nil, -1},
		{[]float64{0, 0, 0}, 0},
		{[]float64{1, 3, 3, 2}, 1},
		{[]float64{-1, -2, 5}, 2},
	}
	for _, tc := range tests {
		if got := ArgMax(tc.in); got != tc.want {
			t.Fatalf("ArgMax(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}
