package common

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return math.Abs(a-b) <= tol
}

func slicesAlmostEqual(a, b []float64, tol float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !almostEqual(a[i], b[i], tol) {
			return false
		}
	}
	return true
}

func TestMean_Basic(t *testing.T) {
	if got := Mean([]float64{1, 2, 3, 4}); !almostEqual(got, 2.5, tolerance) {
		t.Errorf("Mean: got %g, want 2.5", got)
	}
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean of empty: got %g, want 0", got)
	}
}

func TestStandardDeviation_Constant(t *testing.T) {
	if got := StandardDeviation([]float64{5, 5, 5, 5}); !almostEqual(got, 0, tolerance) {
		t.Errorf("StandardDeviation: got %g, want 0", got)
	}
}

func TestMedian_OddAndEven(t *testing.T) {
	if got := Median([]float64{3, 1, 2}); !almostEqual(got, 2, tolerance) {
		t.Errorf("Median odd: got %g, want 2", got)
	}
	if got := Median([]float64{4, 1, 3, 2}); !almostEqual(got, 2.5, tolerance) {
		t.Errorf("Median even: got %g, want 2.5", got)
	}
	if got := Median(nil); got != 0 {
		t.Errorf("Median of empty: got %g, want 0", got)
	}
}

func TestRMS_Constant(t *testing.T) {
	if got := RMS([]float64{-2, 2, -2, 2}); !almostEqual(got, 2, tolerance) {
		t.Errorf("RMS: got %g, want 2", got)
	}
}

func TestMinMaxNormalize_Range(t *testing.T) {
	got := MinMaxNormalize([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	if !slicesAlmostEqual(got, want, tolerance) {
		t.Errorf("MinMaxNormalize: got %v, want %v", got, want)
	}
}

func TestMinMaxNormalize_FlatPassthrough(t *testing.T) {
	// A flat signal has no range to normalize and passes through unchanged
	got := MinMaxNormalize([]float64{3, 3, 3})
	want := []float64{3, 3, 3}
	if !slicesAlmostEqual(got, want, tolerance) {
		t.Errorf("MinMaxNormalize flat: got %v, want %v", got, want)
	}
}

func TestMedianFilter_ZeroPaddedEdges(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}

	got, err := MedianFilter(data, 3)
	if err != nil {
		t.Fatalf("MedianFilter: unexpected error: %v", err)
	}

	// The last window [4, 5, 0] has median 4 because positions past the
	// signal read as zero
	want := []float64{1, 2, 3, 4, 4}
	if !slicesAlmostEqual(got, want, tolerance) {
		t.Errorf("MedianFilter: got %v, want %v", got, want)
	}
}

func TestMedianFilter_ConstantFixpoint(t *testing.T) {
	data := []float64{7, 7, 7, 7, 7}

	got, err := MedianFilter(data, 3)
	if err != nil {
		t.Fatalf("MedianFilter: unexpected error: %v", err)
	}

	for i, v := range got {
		if !almostEqual(v, 7, tolerance) {
			t.Errorf("MedianFilter constant at %d: got %g, want 7", i, v)
		}
	}
}

func TestMedianFilter_KernelOne(t *testing.T) {
	data := []float64{3, 1, 2}

	got, err := MedianFilter(data, 1)
	if err != nil {
		t.Fatalf("MedianFilter: unexpected error: %v", err)
	}
	if !slicesAlmostEqual(got, data, tolerance) {
		t.Errorf("MedianFilter kernel 1: got %v, want %v", got, data)
	}
}

func TestMedianFilter_RejectsEvenKernel(t *testing.T) {
	if _, err := MedianFilter([]float64{1, 2, 3}, 2); err == nil {
		t.Error("MedianFilter: expected error for even kernel")
	}
	if _, err := MedianFilter([]float64{1, 2, 3}, 0); err == nil {
		t.Error("MedianFilter: expected error for zero kernel")
	}
	if _, err := MedianFilter([]float64{1, 2, 3}, -3); err == nil {
		t.Error("MedianFilter: expected error for negative kernel")
	}
}

func TestCorrelation_PerfectPositive(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{2, 4, 6, 8}
	if got := Correlation(x, y); !almostEqual(got, 1.0, tolerance) {
		t.Errorf("Correlation: got %g, want 1.0", got)
	}
}

func TestCorrelation_PerfectNegative(t *testing.T) {
	x := []float64{1, 2, 3, 4}
	y := []float64{8, 6, 4, 2}
	if got := Correlation(x, y); !almostEqual(got, -1.0, tolerance) {
		t.Errorf("Correlation: got %g, want -1.0", got)
	}
}

func TestCorrelation_DegenerateInputs(t *testing.T) {
	if got := Correlation([]float64{1, 2}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("Correlation length mismatch: got %g, want 0", got)
	}
	if got := Correlation([]float64{1}, []float64{1}); got != 0 {
		t.Errorf("Correlation single sample: got %g, want 0", got)
	}
	if got := Correlation([]float64{5, 5, 5}, []float64{1, 2, 3}); got != 0 {
		t.Errorf("Correlation constant input: got %g, want 0", got)
	}
}

func TestClampInt_Bounds(t *testing.T) {
	if got := ClampInt(10, 1, 5); got != 5 {
		t.Errorf("ClampInt above: got %d, want 5", got)
	}
	if got := ClampInt(-2, 1, 5); got != 1 {
		t.Errorf("ClampInt below: got %d, want 1", got)
	}
	if got := ClampInt(3, 1, 5); got != 3 {
		t.Errorf("ClampInt inside: got %d, want 3", got)
	}
}
