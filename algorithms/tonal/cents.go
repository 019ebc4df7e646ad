package tonal

import "math"

// HzToCents converts a frequency to its offset from a reference frequency
// in cents (1/100 of an equal-tempered semitone, 1200 cents per octave).
//
// Non-positive frequencies, non-positive references, and non-finite ratios
// all map to exactly 0.0 so that unvoiced or degenerate frames cannot leak
// NaN or Inf into downstream contours.
func HzToCents(freq, reference float64) float64 {
	if freq <= 0 || reference <= 0 {
		return 0.0
	}

	cents := 1200.0 * math.Log2(freq/reference)
	if math.IsNaN(cents) || math.IsInf(cents, 0) {
		return 0.0
	}

	return cents
}

// CentsToHz converts a cents offset back to an absolute frequency relative
// to the given reference. A non-positive reference yields 0.0.
func CentsToHz(cents, reference float64) float64 {
	if reference <= 0 {
		return 0.0
	}
	return reference * math.Pow(2.0, cents/1200.0)
}
