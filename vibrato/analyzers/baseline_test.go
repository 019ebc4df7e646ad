package analyzers

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b, tol float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= tol
}

func constantSlice(value float64, n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = value
	}
	return s
}

func TestKernelSize_AdaptsToLength(t *testing.T) {
	mb := NewMedianBaseline(DefaultBaselineParams())

	cases := []struct {
		n, want int
	}{
		{500, 101}, // half-window capped at 50
		{200, 41},  // half-window of n/10
		{20, 7},    // half-window floored at 3
		{5, 5},     // kernel shrunk to fit
		{4, 3},     // shrunk kernel stays odd
		{1, 1},
	}

	for _, c := range cases {
		if got := mb.KernelSize(c.n); got != c.want {
			t.Errorf("KernelSize(%d): got %d, want %d", c.n, got, c.want)
		}
	}
}

func TestCompute_ConstantInput(t *testing.T) {
	mb := NewMedianBaseline(DefaultBaselineParams())

	values := constantSlice(440, 100)
	baseline, err := mb.Compute(values)
	if err != nil {
		t.Fatalf("Compute: unexpected error: %v", err)
	}
	if len(baseline) != 100 {
		t.Fatalf("Compute length: got %d, want 100", len(baseline))
	}

	// The median of a constant window is the constant away from the
	// zero-padded edges
	for i := 25; i < 75; i++ {
		if !almostEqual(baseline[i], 440, tolerance) {
			t.Errorf("Compute interior sample %d: got %g, want 440", i, baseline[i])
			break
		}
	}
}

func TestCompute_IgnoresFastOscillation(t *testing.T) {
	mb := NewMedianBaseline(DefaultBaselineParams())

	// A short-period wobble around 440 should vanish in the baseline
	values := make([]float64, 200)
	for i := range values {
		values[i] = 440 + 10*math.Sin(2*math.Pi*float64(i)/8)
	}

	baseline, err := mb.Compute(values)
	if err != nil {
		t.Fatalf("Compute: unexpected error: %v", err)
	}

	for i := 50; i < 150; i++ {
		if math.Abs(baseline[i]-440) > 3 {
			t.Errorf("Compute interior sample %d: got %g, want near 440", i, baseline[i])
			break
		}
	}
}

func TestCompute_Empty(t *testing.T) {
	mb := NewMedianBaseline(DefaultBaselineParams())

	baseline, err := mb.Compute(nil)
	if err != nil {
		t.Fatalf("Compute: unexpected error: %v", err)
	}
	if baseline == nil || len(baseline) != 0 {
		t.Errorf("Compute of empty input: got %v, want empty slice", baseline)
	}
}
