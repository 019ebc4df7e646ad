package tonal

import (
	"math"
	"testing"
)

const centsTolerance = 1e-9

func TestHzToCents_Octaves(t *testing.T) {
	if got := HzToCents(880, 440); math.Abs(got-1200) > centsTolerance {
		t.Errorf("HzToCents(880, 440): got %g, want 1200", got)
	}
	if got := HzToCents(220, 440); math.Abs(got+1200) > centsTolerance {
		t.Errorf("HzToCents(220, 440): got %g, want -1200", got)
	}
	if got := HzToCents(440, 440); math.Abs(got) > centsTolerance {
		t.Errorf("HzToCents(440, 440): got %g, want 0", got)
	}
}

func TestHzToCents_Semitone(t *testing.T) {
	semitone := 440 * math.Pow(2, 1.0/12.0)
	if got := HzToCents(semitone, 440); math.Abs(got-100) > 1e-6 {
		t.Errorf("HzToCents one semitone: got %g, want 100", got)
	}
}

func TestHzToCents_DegenerateInputs(t *testing.T) {
	cases := []struct {
		name      string
		freq, ref float64
	}{
		{"zero frequency", 0, 440},
		{"negative frequency", -440, 440},
		{"zero reference", 440, 0},
		{"negative reference", 440, -1},
		{"NaN frequency", math.NaN(), 440},
		{"Inf frequency", math.Inf(1), 440},
	}

	for _, c := range cases {
		if got := HzToCents(c.freq, c.ref); got != 0 {
			t.Errorf("HzToCents %s: got %g, want 0", c.name, got)
		}
	}
}

func TestCentsToHz_Roundtrip(t *testing.T) {
	for _, freq := range []float64{65.41, 220, 440, 1046.5} {
		cents := HzToCents(freq, 440)
		back := CentsToHz(cents, 440)
		if math.Abs(back-freq) > 1e-6 {
			t.Errorf("CentsToHz roundtrip of %g Hz: got %g", freq, back)
		}
	}

	if got := CentsToHz(1200, 440); math.Abs(got-880) > 1e-6 {
		t.Errorf("CentsToHz(1200, 440): got %g, want 880", got)
	}
	if got := CentsToHz(100, 0); got != 0 {
		t.Errorf("CentsToHz with zero reference: got %g, want 0", got)
	}
}
