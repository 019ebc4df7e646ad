package analyzers

import (
	"fmt"
	"math"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/common"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/filters"
)

// EnvelopeResult holds the amplitude envelope aligned to the pitch frame
// grid, its median baseline, and the two derived contours reported to
// callers: percent deviation from baseline and a 0..1 normalized envelope.
type EnvelopeResult struct {
	Envelope         []float64 `json:"envelope"`
	Baseline         []float64 `json:"baseline"`
	DeviationPercent []float64 `json:"deviation_percent"`
	Normalized       []float64 `json:"normalized"`
}

// EnvelopeAnalyzer conditions a loudness envelope and measures its
// deviation from a slow-moving baseline.
//
// The loudness extractor and the pitch tracker may frame the signal
// differently, so the envelope is first resampled onto the pitch grid.
// It is then smoothed, referenced against its own median baseline, and
// expressed as percent deviation. Frames where the baseline is zero
// (digital silence) report a deviation of exactly 0.
type EnvelopeAnalyzer struct {
	windowSize int
	windowType string
	baseline   *MedianBaseline
}

// NewEnvelopeAnalyzer creates an analyzer with the given smoothing window
// and baseline shape.
func NewEnvelopeAnalyzer(windowSize int, windowType string, baseline BaselineParams) *EnvelopeAnalyzer {
	return &EnvelopeAnalyzer{
		windowSize: windowSize,
		windowType: windowType,
		baseline:   NewMedianBaseline(baseline),
	}
}

// Analyze resamples the envelope to numFrames values and returns the
// conditioned contours.
func (ea *EnvelopeAnalyzer) Analyze(loudness []float64, numFrames int) (*EnvelopeResult, error) {
	if len(loudness) == 0 {
		return nil, fmt.Errorf("loudness envelope is empty")
	}
	if numFrames <= 0 {
		return nil, fmt.Errorf("target frame count must be positive, got %d", numFrames)
	}

	envelope := loudness
	if len(envelope) != numFrames {
		envelope = common.ResampleLinear(envelope, numFrames)
	}

	if ea.windowSize > 1 {
		smoother, err := filters.NewSmoother(ea.windowType, ea.windowSize)
		if err != nil {
			return nil, fmt.Errorf("envelope smoother: %w", err)
		}
		envelope = smoother.Apply(envelope)
	}

	baseline, err := ea.baseline.Compute(envelope)
	if err != nil {
		return nil, fmt.Errorf("envelope analysis: %w", err)
	}

	deviation := make([]float64, numFrames)
	for i := range envelope {
		b := baseline[i]
		if b == 0 {
			continue
		}
		d := (envelope[i] - b) / b * 100.0
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}
		deviation[i] = d
	}

	return &EnvelopeResult{
		Envelope:         envelope,
		Baseline:         baseline,
		DeviationPercent: deviation,
		Normalized:       common.MinMaxNormalize(envelope),
	}, nil
}
