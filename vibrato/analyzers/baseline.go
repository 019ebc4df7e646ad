package analyzers

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/common"
)

// BaselineParams shape the adaptive median baseline window.
type BaselineParams struct {
	WindowCap     int `json:"window_cap"`
	WindowDivisor int `json:"window_divisor"`
	WindowMin     int `json:"window_min"`
}

// DefaultBaselineParams returns the reference baseline shape: a half-window
// of one tenth of the contour, between 3 and 50 frames.
func DefaultBaselineParams() BaselineParams {
	return BaselineParams{
		WindowCap:     50,
		WindowDivisor: 10,
		WindowMin:     3,
	}
}

// MedianBaseline computes a slow-moving reference contour by median
// filtering. The median follows the singer's deliberate pitch and dynamic
// gestures (note changes, crescendi) while ignoring the fast oscillation
// around them, so subtracting it isolates the vibrato component.
//
// The filter window adapts to the input length: the half-window is
// len/WindowDivisor frames clamped to [WindowMin, WindowCap], and the full
// kernel (2*half + 1) shrinks to the largest odd length that still fits
// the input.
type MedianBaseline struct {
	params BaselineParams
}

// NewMedianBaseline creates a baseline extractor with the given shape.
func NewMedianBaseline(params BaselineParams) *MedianBaseline {
	return &MedianBaseline{params: params}
}

// Compute returns the baseline contour, one value per input frame.
func (mb *MedianBaseline) Compute(values []float64) ([]float64, error) {
	n := len(values)
	if n == 0 {
		return []float64{}, nil
	}

	kernel := mb.KernelSize(n)
	baseline, err := common.MedianFilter(values, kernel)
	if err != nil {
		return nil, fmt.Errorf("baseline median filter: %w", err)
	}

	return baseline, nil
}

// KernelSize returns the odd median kernel length used for an input of n
// frames.
func (mb *MedianBaseline) KernelSize(n int) int {
	half := common.ClampInt(n/mb.params.WindowDivisor, mb.params.WindowMin, mb.params.WindowCap)

	kernel := 2*half + 1
	if kernel > n {
		kernel = n
		if kernel%2 == 0 {
			kernel--
		}
	}
	if kernel < 1 {
		kernel = 1
	}

	return kernel
}
