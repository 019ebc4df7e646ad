package temporal

import (
	"math"
)

// RMS computes frame-level root-mean-square loudness. Frames are not
// centered: frame i covers samples [i*hop, i*hop+frame), so a signal shorter
// than one frame yields no frames at all. The frame count therefore differs
// from trackers that pad and center their frames, and consumers are expected
// to resample onto their own grid.
type RMS struct {
	frameSize int
	hopSize   int
}

// NewRMS creates an RMS extractor with the given framing
func NewRMS(frameSize, hopSize int) *RMS {
	return &RMS{
		frameSize: frameSize,
		hopSize:   hopSize,
	}
}

// Extract computes the RMS of each frame
func (r *RMS) Extract(signal []float64) []float64 {
	if len(signal) < r.frameSize || r.hopSize <= 0 || r.frameSize <= 0 {
		return []float64{}
	}

	numFrames := (len(signal)-r.frameSize)/r.hopSize + 1
	values := make([]float64, numFrames)

	for i := range numFrames {
		start := i * r.hopSize
		end := start + r.frameSize

		sumSquares := 0.0
		for j := start; j < end; j++ {
			sumSquares += signal[j] * signal[j]
		}
		values[i] = math.Sqrt(sumSquares / float64(r.frameSize))
	}

	return values
}

// NumFrames returns how many frames Extract yields for a signal length
func (r *RMS) NumFrames(signalLen int) int {
	if signalLen < r.frameSize || r.hopSize <= 0 || r.frameSize <= 0 {
		return 0
	}
	return (signalLen-r.frameSize)/r.hopSize + 1
}

// FrameSize returns the analysis frame length in samples
func (r *RMS) FrameSize() int {
	return r.frameSize
}

// HopSize returns the hop between frame starts in samples
func (r *RMS) HopSize() int {
	return r.hopSize
}
