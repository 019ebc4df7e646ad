package vibrato

import (
	"fmt"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/temporal"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
	"github.com/RyanBlaney/vibrato-sonar/logging"
	"github.com/RyanBlaney/vibrato-sonar/transcode"
	"github.com/RyanBlaney/vibrato-sonar/vibrato/analyzers"
	"github.com/RyanBlaney/vibrato-sonar/vibrato/config"
)

// Result is a complete vibrato analysis report.
//
// All per-frame slices share one time grid: Times[i] is the timestamp in
// seconds of frame i, PitchDeviation[i] the pitch offset from its baseline
// in cents, AmplitudeDeviation[i] the loudness offset from its baseline in
// percent, and Amplitude[i] the loudness envelope normalized to 0..1.
// Peaks and Troughs index into that grid and are never nil. Oscillations
// counts one cycle per detected peak, and Duration is the timestamp of the
// final frame.
type Result struct {
	Times              []float64                   `json:"times"`
	PitchDeviation     []float64                   `json:"pitchDeviation"`
	AmplitudeDeviation []float64                   `json:"amplitudeDeviation"`
	Amplitude          []float64                   `json:"amplitude"`
	Peaks              []int                       `json:"peaks"`
	Troughs            []int                       `json:"troughs"`
	Oscillations       int                         `json:"oscillations"`
	Duration           float64                     `json:"duration"`
	SampleRate         int                         `json:"sampleRate"`
	Stats              *analyzers.OscillationStats `json:"stats,omitempty"`
}

// PitchTracker produces a frame-level pitch trace from PCM audio.
type PitchTracker interface {
	Track(pcm []float64, sampleRate int) (tonal.PitchTrace, error)
}

// LoudnessExtractor produces a loudness envelope from PCM audio. The
// extractor may use its own framing; the envelope is resampled onto the
// pitch frame grid before analysis.
type LoudnessExtractor interface {
	Extract(pcm []float64) []float64
}

// Analyzer measures vibrato in monophonic vocal recordings.
type Analyzer struct {
	config      *config.AnalysisConfig
	tracker     PitchTracker
	loudness    LoudnessExtractor
	conditioner *analyzers.ContourConditioner
	cycles      *analyzers.CycleDetector
	envelope    *analyzers.EnvelopeAnalyzer
	oscillation *analyzers.OscillationAnalyzer
	logger      logging.Logger
}

// NewAnalyzer creates an analyzer with the given configuration and the
// built-in YIN pitch tracker and RMS loudness extractor. A nil config uses
// the defaults.
func NewAnalyzer(cfg *config.AnalysisConfig) *Analyzer {
	return NewAnalyzerWithComponents(cfg, nil, nil)
}

// NewAnalyzerWithComponents creates an analyzer with custom pitch and
// loudness collaborators. Nil arguments fall back to the built-in
// implementations.
func NewAnalyzerWithComponents(cfg *config.AnalysisConfig, tracker PitchTracker, loudness LoudnessExtractor) *Analyzer {
	if cfg == nil {
		cfg = config.DefaultAnalysisConfig()
	}
	if tracker == nil {
		tracker = tonal.NewTracker()
	}
	if loudness == nil {
		tcfg := tonal.DefaultTrackerConfig()
		loudness = temporal.NewRMS(tcfg.FrameSize, tcfg.HopSize)
	}

	baseline := analyzers.BaselineParams{
		WindowCap:     cfg.BaselineWindowCap,
		WindowDivisor: cfg.BaselineWindowDivisor,
		WindowMin:     cfg.BaselineWindowMin,
	}

	logger := logging.WithFields(logging.Fields{
		"component": "vibrato_analyzer",
	})

	return &Analyzer{
		config:      cfg,
		tracker:     tracker,
		loudness:    loudness,
		conditioner: analyzers.NewContourConditioner(cfg.PitchSmoothingWindow, cfg.SmoothingWindowType),
		cycles:      analyzers.NewCycleDetector(baseline, cfg.MinProminenceCents, cfg.PeakSpacingDivisor, cfg.PeakSpacingMin),
		envelope:    analyzers.NewEnvelopeAnalyzer(cfg.EnvelopeSmoothingWindow, cfg.SmoothingWindowType, baseline),
		oscillation: analyzers.NewOscillationAnalyzer(),
		logger:      logger,
	}
}

// Config returns the analyzer's configuration.
func (a *Analyzer) Config() *config.AnalysisConfig {
	return a.config
}

// Analyze runs the full measurement chain on decoded audio: pitch
// tracking, loudness extraction, and trace analysis.
func (a *Analyzer) Analyze(audio *transcode.AudioData) (*Result, error) {
	if audio == nil {
		return nil, fmt.Errorf("audio data cannot be nil")
	}

	logger := a.logger.WithFields(logging.Fields{
		"function":    "Analyze",
		"sample_rate": audio.SampleRate,
		"samples":     len(audio.PCM),
	})

	logger.Debug("Starting vibrato analysis")

	if len(audio.PCM) == 0 {
		return nil, fmt.Errorf("audio data has no samples")
	}
	if audio.Channels > 1 {
		return nil, fmt.Errorf("analysis requires mono audio, got %d channels", audio.Channels)
	}

	trace, err := a.tracker.Track(audio.PCM, audio.SampleRate)
	if err != nil {
		logger.Error(err, "Failed to track pitch")
		return nil, fmt.Errorf("pitch tracking: %w", err)
	}

	loudness := a.loudness.Extract(audio.PCM)

	logger.Debug("Extracted traces", logging.Fields{
		"pitch_frames":    trace.NumFrames(),
		"voiced_frames":   trace.VoicedCount(),
		"loudness_frames": len(loudness),
	})

	return a.AnalyzeTraces(trace, loudness, audio.SampleRate)
}

// AnalyzeTraces runs the measurement chain on already-extracted traces.
// The pitch trace defines the output frame grid; the loudness envelope is
// resampled onto it when the two disagree in length.
func (a *Analyzer) AnalyzeTraces(pitch tonal.PitchTrace, loudness []float64, sampleRate int) (*Result, error) {
	numFrames := pitch.NumFrames()
	if numFrames == 0 {
		return nil, fmt.Errorf("pitch trace has no frames")
	}
	if len(loudness) == 0 {
		return nil, fmt.Errorf("loudness envelope is empty")
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if pitch.HopSize <= 0 {
		return nil, fmt.Errorf("pitch trace hop size must be positive, got %d", pitch.HopSize)
	}
	if err := a.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid analysis config: %w", err)
	}

	logger := a.logger.WithFields(logging.Fields{
		"function":        "AnalyzeTraces",
		"num_frames":      numFrames,
		"loudness_frames": len(loudness),
	})

	contour, err := a.conditioner.Condition(pitch)
	if err != nil {
		logger.Error(err, "Failed to condition pitch contour")
		return nil, fmt.Errorf("contour conditioning: %w", err)
	}

	cycles, err := a.cycles.Detect(contour)
	if err != nil {
		logger.Error(err, "Failed to detect vibrato cycles")
		return nil, fmt.Errorf("cycle detection: %w", err)
	}

	envelope, err := a.envelope.Analyze(loudness, numFrames)
	if err != nil {
		logger.Error(err, "Failed to analyze amplitude envelope")
		return nil, fmt.Errorf("envelope analysis: %w", err)
	}

	times := make([]float64, numFrames)
	hopSeconds := float64(pitch.HopSize) / float64(sampleRate)
	for i := range times {
		times[i] = float64(i) * hopSeconds
	}

	result := &Result{
		Times:              times,
		PitchDeviation:     cycles.DeviationCents,
		AmplitudeDeviation: envelope.DeviationPercent,
		Amplitude:          envelope.Normalized,
		Peaks:              cycles.Peaks,
		Troughs:            cycles.Troughs,
		Oscillations:       cycles.NumCycles(),
		Duration:           times[numFrames-1],
		SampleRate:         sampleRate,
	}

	if a.config.EnableStats {
		result.Stats = a.oscillation.Summarize(
			cycles.DeviationCents,
			envelope.DeviationPercent,
			cycles.Peaks,
			cycles.Troughs,
			sampleRate,
			pitch.HopSize,
		)
	}

	logger.Debug("Vibrato analysis completed", logging.Fields{
		"oscillations": result.Oscillations,
		"duration":     result.Duration,
	})

	return result, nil
}
