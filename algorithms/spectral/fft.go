package spectral

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT wraps the transform from mjibson/go-dsp, which accepts arbitrary
// input lengths. Callers never need to pad to a power of two.
type FFT struct{}

// NewFFT creates a new FFT calculator.
func NewFFT() *FFT {
	return &FFT{}
}

// Compute returns the complex spectrum of a real-valued signal.
func (f *FFT) Compute(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}

	return fft.FFTReal(x)
}

// Magnitudes returns the magnitude spectrum of a real-valued signal,
// truncated to the non-redundant half (len(x)/2 + 1 bins).
func (f *FFT) Magnitudes(x []float64) []float64 {
	spectrum := f.Compute(x)
	if len(spectrum) == 0 {
		return []float64{}
	}

	half := len(x)/2 + 1
	if half > len(spectrum) {
		half = len(spectrum)
	}

	mags := make([]float64, half)
	for i := range half {
		mags[i] = cmplx.Abs(spectrum[i])
	}

	return mags
}
