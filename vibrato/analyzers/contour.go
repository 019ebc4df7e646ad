package analyzers

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/common"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/filters"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
)

// ContourConditioner turns a raw pitch trace into a gapless, smooth contour
// suitable for cycle detection.
//
// Unvoiced frames are filled by linear interpolation between the voiced
// neighbors, with linear extrapolation past the first and last voiced
// frames. The filled contour is then smoothed with a normalized window so
// octave flickers and detector jitter do not register as vibrato cycles.
//
// Smoothing only runs when the contour is strictly longer than the window;
// short contours pass through interpolated but unsmoothed. A trace with
// fewer than two voiced frames has no interpolation anchors and is returned
// as a copy of the raw F0 values.
type ContourConditioner struct {
	windowSize int
	windowType string
}

// NewContourConditioner creates a conditioner with the given smoothing
// window length and shape.
func NewContourConditioner(windowSize int, windowType string) *ContourConditioner {
	return &ContourConditioner{
		windowSize: windowSize,
		windowType: windowType,
	}
}

// Condition returns the conditioned contour, one value per trace frame.
func (cc *ContourConditioner) Condition(trace tonal.PitchTrace) ([]float64, error) {
	if trace.VoicedCount() < 2 {
		contour := make([]float64, len(trace.F0))
		copy(contour, trace.F0)
		return contour, nil
	}

	contour := common.InterpolateGaps(trace.F0, trace.Voiced)

	if len(contour) > cc.windowSize && cc.windowSize > 1 {
		smoother, err := filters.NewSmoother(cc.windowType, cc.windowSize)
		if err != nil {
			return nil, fmt.Errorf("contour smoother: %w", err)
		}
		contour = smoother.Apply(contour)
	}

	return contour, nil
}
