package analyzers

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/stats"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
)

// CycleResult holds the per-frame pitch deviation and the detected vibrato
// cycle extrema. Peaks and Troughs are frame indices into DeviationCents
// and are never nil.
type CycleResult struct {
	DeviationCents []float64 `json:"deviation_cents"`
	Baseline       []float64 `json:"baseline"`
	Peaks          []int     `json:"peaks"`
	Troughs        []int     `json:"troughs"`
}

// NumCycles returns the number of detected vibrato cycles, counted as one
// cycle per peak.
func (cr *CycleResult) NumCycles() int {
	return len(cr.Peaks)
}

// CycleDetector locates vibrato cycles in a conditioned pitch contour.
//
// The contour is first referenced against its own median baseline and
// expressed in cents, so a sustained note with vibrato shows up as an
// oscillation around zero regardless of which note is sung. Cycle extrema
// are then picked with minimum spacing and prominence constraints: spacing
// suppresses double-counting within one cycle, and prominence ignores
// excursions too shallow to be deliberate vibrato.
type CycleDetector struct {
	baseline       *MedianBaseline
	minProminence  float64
	spacingDivisor int
	spacingMin     int
}

// NewCycleDetector creates a detector with the given baseline shape,
// prominence floor in cents, and spacing rule (len/divisor frames, at
// least min).
func NewCycleDetector(baseline BaselineParams, minProminenceCents float64, spacingDivisor, spacingMin int) *CycleDetector {
	return &CycleDetector{
		baseline:       NewMedianBaseline(baseline),
		minProminence:  minProminenceCents,
		spacingDivisor: spacingDivisor,
		spacingMin:     spacingMin,
	}
}

// Detect analyzes the contour and returns deviations plus cycle extrema.
// An empty contour yields an empty result.
func (cd *CycleDetector) Detect(contour []float64) (*CycleResult, error) {
	result := &CycleResult{
		DeviationCents: []float64{},
		Baseline:       []float64{},
		Peaks:          []int{},
		Troughs:        []int{},
	}

	n := len(contour)
	if n == 0 {
		return result, nil
	}

	baseline, err := cd.baseline.Compute(contour)
	if err != nil {
		return nil, fmt.Errorf("cycle detection: %w", err)
	}

	cents := make([]float64, n)
	for i := range contour {
		cents[i] = tonal.HzToCents(contour[i], baseline[i])
	}

	finder := stats.NewPeakFinder(stats.PeakParams{
		MinDistance:   cd.MinSpacing(n),
		MinProminence: cd.minProminence,
	})

	result.DeviationCents = cents
	result.Baseline = baseline
	result.Peaks = finder.Find(cents)
	result.Troughs = finder.FindTroughs(cents)

	return result, nil
}

// MinSpacing returns the minimum frame distance between extrema for a
// contour of n frames.
func (cd *CycleDetector) MinSpacing(n int) int {
	spacing := n / cd.spacingDivisor
	if spacing < cd.spacingMin {
		spacing = cd.spacingMin
	}
	return spacing
}
