package tonal

import (
	"fmt"
)

// PitchTrace holds a frame-level fundamental frequency contour.
//
// F0 and Voiced always have the same length. Unvoiced frames carry an F0 of
// exactly 0.0; Voiced is the authoritative mask, so consumers must never
// treat a zero F0 value as a frequency.
type PitchTrace struct {
	F0        []float64 `json:"f0"`
	Voiced    []bool    `json:"voiced"`
	FrameSize int       `json:"frame_size"`
	HopSize   int       `json:"hop_size"`
}

// NumFrames returns the number of analysis frames in the trace.
func (pt PitchTrace) NumFrames() int {
	return len(pt.F0)
}

// VoicedCount returns how many frames carry a detected fundamental.
func (pt PitchTrace) VoicedCount() int {
	count := 0
	for _, v := range pt.Voiced {
		if v {
			count++
		}
	}
	return count
}

// TrackerConfig holds the parameters for YIN pitch tracking.
type TrackerConfig struct {
	FrameSize int     `json:"frame_size"`
	HopSize   int     `json:"hop_size"`
	MinFreq   float64 `json:"min_freq"`
	MaxFreq   float64 `json:"max_freq"`
	Threshold float64 `json:"threshold"`
}

// DefaultTrackerConfig returns settings tuned for sung vocal lines. The
// C2 to C6 range covers the practical compass of trained voices, and the
// 0.15 threshold is the aperiodicity tolerance recommended by the YIN
// authors for musical material.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		FrameSize: 2048,
		HopSize:   512,
		MinFreq:   65.40639132514966,  // C2
		MaxFreq:   1046.5022612023945, // C6
		Threshold: 0.15,
	}
}

// Validate checks the configuration for usable values.
func (c TrackerConfig) Validate() error {
	if c.FrameSize <= 0 {
		return fmt.Errorf("frame size must be positive, got %d", c.FrameSize)
	}
	if c.HopSize <= 0 {
		return fmt.Errorf("hop size must be positive, got %d", c.HopSize)
	}
	if c.MinFreq <= 0 {
		return fmt.Errorf("min frequency must be positive, got %.4f", c.MinFreq)
	}
	if c.MaxFreq <= c.MinFreq {
		return fmt.Errorf("max frequency %.4f must exceed min frequency %.4f", c.MaxFreq, c.MinFreq)
	}
	if c.Threshold <= 0 || c.Threshold >= 1 {
		return fmt.Errorf("threshold must be in (0, 1), got %.3f", c.Threshold)
	}
	return nil
}

// Tracker estimates a fundamental frequency contour using the YIN algorithm.
//
// Frames are centered on their timestamps: the signal is zero-padded by half
// a frame at both edges, so frame i describes the audio around sample i*hop
// rather than the audio starting there. A signal of L samples therefore
// yields 1 + L/hop frames.
//
// Frames whose cumulative mean normalized difference never drops below the
// threshold, or whose refined frequency falls outside [MinFreq, MaxFreq],
// are reported as unvoiced with an F0 of 0.0.
//
// Reference: de Cheveigné, A., Kawahara, H., "YIN, a fundamental frequency
// estimator for speech and music", JASA 111(4), 2002
type Tracker struct {
	config TrackerConfig
}

// NewTracker creates a pitch tracker with default parameters.
func NewTracker() *Tracker {
	return NewTrackerWithConfig(DefaultTrackerConfig())
}

// NewTrackerWithConfig creates a pitch tracker with custom parameters.
func NewTrackerWithConfig(config TrackerConfig) *Tracker {
	return &Tracker{config: config}
}

// Config returns the tracker's parameters.
func (t *Tracker) Config() TrackerConfig {
	return t.config
}

// Track runs YIN over the signal and returns the per-frame pitch trace.
func (t *Tracker) Track(pcm []float64, sampleRate int) (PitchTrace, error) {
	trace := PitchTrace{FrameSize: t.config.FrameSize, HopSize: t.config.HopSize}

	if len(pcm) == 0 {
		return trace, fmt.Errorf("cannot track pitch of an empty signal")
	}
	if sampleRate <= 0 {
		return trace, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if err := t.config.Validate(); err != nil {
		return trace, fmt.Errorf("invalid tracker config: %w", err)
	}

	frameSize := t.config.FrameSize
	hopSize := t.config.HopSize
	numFrames := 1 + len(pcm)/hopSize

	// The padded buffer must cover both the left-shifted signal and the
	// last centered frame.
	pad := frameSize / 2
	need := (numFrames-1)*hopSize + frameSize
	if n := pad + len(pcm); n > need {
		need = n
	}
	padded := make([]float64, need)
	copy(padded[pad:], pcm)

	trace.F0 = make([]float64, numFrames)
	trace.Voiced = make([]bool, numFrames)

	for i := range numFrames {
		start := i * hopSize
		freq := t.yinFrame(padded[start:start+frameSize], sampleRate)
		if freq > 0 {
			trace.F0[i] = freq
			trace.Voiced[i] = true
		}
	}

	return trace, nil
}

// yinFrame runs one YIN pass over a single frame and returns the detected
// fundamental in Hz, or 0.0 when the frame has no acceptable periodicity.
func (t *Tracker) yinFrame(frame []float64, sampleRate int) float64 {
	n := len(frame)
	halfN := n / 2
	if halfN < 2 {
		return 0.0
	}

	// Difference function
	diff := make([]float64, halfN)
	for tau := range halfN {
		sum := 0.0
		for j := range halfN {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function. A silent frame makes
	// every entry NaN, which fails the threshold comparison and falls out
	// as unvoiced.
	cmndf := make([]float64, halfN)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau < halfN; tau++ {
		runningSum += diff[tau]
		cmndf[tau] = diff[tau] / (runningSum / float64(tau))
	}

	// First local minimum below the threshold
	minTau := -1
	for tau := 1; tau < halfN; tau++ {
		if cmndf[tau] < t.config.Threshold {
			if tau+1 < halfN && cmndf[tau] < cmndf[tau+1] {
				minTau = tau
				break
			}
		}
	}
	if minTau <= 0 {
		return 0.0
	}

	// Parabolic interpolation for sub-sample period accuracy
	period := parabolicMinimum(cmndf, minTau)
	if period <= 0 {
		return 0.0
	}

	frequency := float64(sampleRate) / period
	if frequency < t.config.MinFreq || frequency > t.config.MaxFreq {
		return 0.0
	}

	return frequency
}

// parabolicMinimum refines an extremum location by fitting a parabola
// through the sample at idx and its two neighbors.
func parabolicMinimum(data []float64, idx int) float64 {
	if idx <= 0 || idx >= len(data)-1 {
		return float64(idx)
	}

	y1 := data[idx-1]
	y2 := data[idx]
	y3 := data[idx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(idx)
	}

	xMin := -b / (2 * a)

	return float64(idx) + xMin
}
