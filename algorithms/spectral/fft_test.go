package spectral

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestCompute_DCSignal(t *testing.T) {
	f := NewFFT()

	spectrum := f.Compute([]float64{1, 1, 1, 1})
	if len(spectrum) != 4 {
		t.Fatalf("Compute length: got %d, want 4", len(spectrum))
	}

	// All energy lands in bin zero
	if math.Abs(real(spectrum[0])-4) > tolerance || math.Abs(imag(spectrum[0])) > tolerance {
		t.Errorf("Compute bin 0: got %v, want (4+0i)", spectrum[0])
	}
	for i := 1; i < 4; i++ {
		if math.Abs(real(spectrum[i])) > tolerance || math.Abs(imag(spectrum[i])) > tolerance {
			t.Errorf("Compute bin %d: got %v, want 0", i, spectrum[i])
		}
	}
}

func TestMagnitudes_SineBin(t *testing.T) {
	f := NewFFT()

	// Exactly four cycles in 64 samples puts all energy in bin 4
	const n = 64
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 4 * float64(i) / n)
	}

	mags := f.Magnitudes(signal)
	if len(mags) != n/2+1 {
		t.Fatalf("Magnitudes length: got %d, want %d", len(mags), n/2+1)
	}

	maxBin := 0
	for i, m := range mags {
		if m > mags[maxBin] {
			maxBin = i
		}
	}
	if maxBin != 4 {
		t.Errorf("Magnitudes peak bin: got %d, want 4", maxBin)
	}

	// A real sine of amplitude one contributes n/2 to its positive bin
	if math.Abs(mags[4]-n/2) > 1e-6 {
		t.Errorf("Magnitudes peak value: got %g, want %d", mags[4], n/2)
	}
}

func TestMagnitudes_OddLength(t *testing.T) {
	f := NewFFT()

	mags := f.Magnitudes(make([]float64, 7))
	if len(mags) != 4 {
		t.Errorf("Magnitudes odd length: got %d bins, want 4", len(mags))
	}
}

func TestCompute_Empty(t *testing.T) {
	f := NewFFT()

	if got := f.Compute(nil); len(got) != 0 {
		t.Errorf("Compute of empty signal: got %d bins, want 0", len(got))
	}
	if got := f.Magnitudes(nil); len(got) != 0 {
		t.Errorf("Magnitudes of empty signal: got %d bins, want 0", len(got))
	}
}
