package analyzers

import (
	"github.com/RyanBlaney/vibrato-sonar/algorithms/common"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/spectral"
)

// maxModulationHz bounds the rate search. Trained singers produce vibrato
// between roughly 4 and 8 Hz; anything above 20 Hz on the frame grid is
// detector noise rather than modulation.
const maxModulationHz = 20.0

// OscillationStats summarizes the detected vibrato as scalar figures.
//
// RateHz is the dominant modulation frequency of the pitch deviation.
// ExtentCents is the half peak-to-trough depth, the figure voice
// pedagogy literature quotes as vibrato extent. PitchAmplitudeCorrelation
// is the Pearson correlation between the pitch and amplitude deviation
// contours, positive when the two oscillate in phase.
type OscillationStats struct {
	RateHz                    float64 `json:"rateHz"`
	ExtentCents               float64 `json:"extentCents"`
	PitchAmplitudeCorrelation float64 `json:"pitchAmplitudeCorrelation"`
}

// OscillationAnalyzer derives summary statistics from the per-frame
// deviation contours and the detected cycle extrema.
type OscillationAnalyzer struct {
	fft *spectral.FFT
}

// NewOscillationAnalyzer creates an oscillation summarizer.
func NewOscillationAnalyzer() *OscillationAnalyzer {
	return &OscillationAnalyzer{fft: spectral.NewFFT()}
}

// Summarize computes the scalar vibrato figures. Degenerate inputs (short
// contours, no extrema, zero frame rate) yield zero statistics rather
// than errors.
func (oa *OscillationAnalyzer) Summarize(cents, amplitudeDeviation []float64, peaks, troughs []int, sampleRate, hopSize int) *OscillationStats {
	summary := &OscillationStats{}
	if len(cents) == 0 {
		return summary
	}

	frameRate := 0.0
	if sampleRate > 0 && hopSize > 0 {
		frameRate = float64(sampleRate) / float64(hopSize)
	}

	summary.RateHz = oa.estimateRate(cents, frameRate)
	summary.ExtentCents = extent(cents, peaks, troughs)
	summary.PitchAmplitudeCorrelation = common.Correlation(cents, amplitudeDeviation)

	return summary
}

// estimateRate finds the dominant modulation frequency of the deviation
// contour from the magnitude spectrum of its mean-removed samples, with
// parabolic refinement of the winning bin.
func (oa *OscillationAnalyzer) estimateRate(cents []float64, frameRate float64) float64 {
	n := len(cents)
	if n < 4 || frameRate <= 0 {
		return 0.0
	}

	centered := make([]float64, n)
	mean := common.Mean(cents)
	for i, v := range cents {
		centered[i] = v - mean
	}

	mags := oa.fft.Magnitudes(centered)

	maxBin := int(maxModulationHz * float64(n) / frameRate)
	if maxBin > len(mags)-1 {
		maxBin = len(mags) - 1
	}
	if maxBin < 1 {
		return 0.0
	}

	best := 1
	for k := 2; k <= maxBin; k++ {
		if mags[k] > mags[best] {
			best = k
		}
	}
	if mags[best] == 0 {
		return 0.0
	}

	return refineBin(mags, best) * frameRate / float64(n)
}

// extent returns half the median peak-to-trough depth in cents.
func extent(cents []float64, peaks, troughs []int) float64 {
	if len(peaks) == 0 || len(troughs) == 0 {
		return 0.0
	}

	peakVals := make([]float64, len(peaks))
	for i, p := range peaks {
		peakVals[i] = cents[p]
	}

	troughVals := make([]float64, len(troughs))
	for i, t := range troughs {
		troughVals[i] = cents[t]
	}

	return (common.Median(peakVals) - common.Median(troughVals)) / 2.0
}

// refineBin refines a spectral maximum to a fractional bin by fitting a
// parabola through the bin and its neighbors.
func refineBin(mags []float64, idx int) float64 {
	if idx <= 0 || idx >= len(mags)-1 {
		return float64(idx)
	}

	y1 := mags[idx-1]
	y2 := mags[idx]
	y3 := mags[idx+1]

	denom := y1 - 2*y2 + y3
	if denom == 0 {
		return float64(idx)
	}

	return float64(idx) + 0.5*(y1-y3)/denom
}
