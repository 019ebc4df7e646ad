package config

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/windowing"
)

// AnalysisConfig holds the tunable parameters for vibrato analysis.
//
// The defaults reproduce the reference measurement chain for sung vocals:
// an 11-frame smoothing pass over the pitch contour, a 21-frame pass over
// the amplitude envelope, an adaptive median baseline whose half-window
// tracks contour length up to a cap, and cycle detection that ignores
// excursions shallower than 10 cents.
type AnalysisConfig struct {
	// PitchSmoothingWindow is the kernel length, in frames, for pitch
	// contour smoothing. Must be odd so the kernel stays centered.
	PitchSmoothingWindow int `json:"pitch_smoothing_window"`

	// EnvelopeSmoothingWindow is the kernel length, in frames, for
	// amplitude envelope smoothing. Must be odd.
	EnvelopeSmoothingWindow int `json:"envelope_smoothing_window"`

	// SmoothingWindowType selects the kernel shape for both smoothing
	// passes. Any name accepted by windowing.New is valid.
	SmoothingWindowType string `json:"smoothing_window_type"`

	// MinProminenceCents is the minimum prominence, in cents, for a pitch
	// excursion to count as a vibrato peak or trough.
	MinProminenceCents float64 `json:"min_prominence_cents"`

	// BaselineWindowCap, BaselineWindowDivisor and BaselineWindowMin shape
	// the adaptive median baseline: the half-window is N/divisor frames,
	// clamped to [min, cap].
	BaselineWindowCap     int `json:"baseline_window_cap"`
	BaselineWindowDivisor int `json:"baseline_window_divisor"`
	BaselineWindowMin     int `json:"baseline_window_min"`

	// PeakSpacingDivisor and PeakSpacingMin derive the minimum distance
	// between detected cycle extrema: N/divisor frames, at least min.
	PeakSpacingDivisor int `json:"peak_spacing_divisor"`
	PeakSpacingMin     int `json:"peak_spacing_min"`

	// EnableStats controls whether summary oscillation statistics (rate,
	// extent, pitch-amplitude correlation) are computed alongside the
	// per-frame contours.
	EnableStats bool `json:"enable_stats"`
}

// DefaultAnalysisConfig returns the reference parameter set.
func DefaultAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{
		PitchSmoothingWindow:    11,
		EnvelopeSmoothingWindow: 21,
		SmoothingWindowType:     "hann",
		MinProminenceCents:      10.0,
		BaselineWindowCap:       50,
		BaselineWindowDivisor:   10,
		BaselineWindowMin:       3,
		PeakSpacingDivisor:      200,
		PeakSpacingMin:          3,
		EnableStats:             true,
	}
}

// Validate checks the configuration for usable values.
func (c *AnalysisConfig) Validate() error {
	if c.PitchSmoothingWindow <= 0 || c.PitchSmoothingWindow%2 == 0 {
		return fmt.Errorf("pitch smoothing window must be a positive odd number, got %d", c.PitchSmoothingWindow)
	}
	if c.EnvelopeSmoothingWindow <= 0 || c.EnvelopeSmoothingWindow%2 == 0 {
		return fmt.Errorf("envelope smoothing window must be a positive odd number, got %d", c.EnvelopeSmoothingWindow)
	}
	if !isSupportedWindow(c.SmoothingWindowType) {
		return fmt.Errorf("unsupported smoothing window type %q", c.SmoothingWindowType)
	}
	if c.MinProminenceCents < 0 {
		return fmt.Errorf("min prominence must be non-negative, got %.2f", c.MinProminenceCents)
	}
	if c.BaselineWindowDivisor <= 0 {
		return fmt.Errorf("baseline window divisor must be positive, got %d", c.BaselineWindowDivisor)
	}
	if c.BaselineWindowMin <= 0 {
		return fmt.Errorf("baseline window minimum must be positive, got %d", c.BaselineWindowMin)
	}
	if c.BaselineWindowCap < c.BaselineWindowMin {
		return fmt.Errorf("baseline window cap %d must be at least the minimum %d", c.BaselineWindowCap, c.BaselineWindowMin)
	}
	if c.PeakSpacingDivisor <= 0 {
		return fmt.Errorf("peak spacing divisor must be positive, got %d", c.PeakSpacingDivisor)
	}
	if c.PeakSpacingMin <= 0 {
		return fmt.Errorf("peak spacing minimum must be positive, got %d", c.PeakSpacingMin)
	}
	return nil
}

func isSupportedWindow(name string) bool {
	for _, supported := range windowing.Supported() {
		if name == supported {
			return true
		}
	}
	return false
}
