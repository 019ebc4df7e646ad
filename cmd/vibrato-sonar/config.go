package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
	"github.com/RyanBlaney/vibrato-sonar/transcode"
	"github.com/RyanBlaney/vibrato-sonar/vibrato/config"
)

// configFile mirrors the YAML layout read back through viper. Durations
// use Go syntax ("30s").
type configFile struct {
	Analysis struct {
		PitchSmoothingWindow    int     `yaml:"pitch_smoothing_window"`
		EnvelopeSmoothingWindow int     `yaml:"envelope_smoothing_window"`
		SmoothingWindowType     string  `yaml:"smoothing_window_type"`
		MinProminenceCents      float64 `yaml:"min_prominence_cents"`
		BaselineWindowCap       int     `yaml:"baseline_window_cap"`
		BaselineWindowDivisor   int     `yaml:"baseline_window_divisor"`
		BaselineWindowMin       int     `yaml:"baseline_window_min"`
		PeakSpacingDivisor      int     `yaml:"peak_spacing_divisor"`
		PeakSpacingMin          int     `yaml:"peak_spacing_min"`
		EnableStats             bool    `yaml:"enable_stats"`
	} `yaml:"analysis"`
	Tracker struct {
		FrameSize int     `yaml:"frame_size"`
		HopSize   int     `yaml:"hop_size"`
		MinFreq   float64 `yaml:"min_freq"`
		MaxFreq   float64 `yaml:"max_freq"`
		Threshold float64 `yaml:"threshold"`
	} `yaml:"tracker"`
	Decoder struct {
		TargetSampleRate int    `yaml:"target_sample_rate"`
		MaxDuration      string `yaml:"max_duration"`
		FFmpegPath       string `yaml:"ffmpeg_path"`
		FFprobePath      string `yaml:"ffprobe_path"`
		Timeout          string `yaml:"timeout"`
	} `yaml:"decoder"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Print a config file populated with the default settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	var file configFile

	analysis := config.DefaultAnalysisConfig()
	file.Analysis.PitchSmoothingWindow = analysis.PitchSmoothingWindow
	file.Analysis.EnvelopeSmoothingWindow = analysis.EnvelopeSmoothingWindow
	file.Analysis.SmoothingWindowType = analysis.SmoothingWindowType
	file.Analysis.MinProminenceCents = analysis.MinProminenceCents
	file.Analysis.BaselineWindowCap = analysis.BaselineWindowCap
	file.Analysis.BaselineWindowDivisor = analysis.BaselineWindowDivisor
	file.Analysis.BaselineWindowMin = analysis.BaselineWindowMin
	file.Analysis.PeakSpacingDivisor = analysis.PeakSpacingDivisor
	file.Analysis.PeakSpacingMin = analysis.PeakSpacingMin
	file.Analysis.EnableStats = analysis.EnableStats

	tracker := tonal.DefaultTrackerConfig()
	file.Tracker.FrameSize = tracker.FrameSize
	file.Tracker.HopSize = tracker.HopSize
	file.Tracker.MinFreq = tracker.MinFreq
	file.Tracker.MaxFreq = tracker.MaxFreq
	file.Tracker.Threshold = tracker.Threshold

	decoder := transcode.DefaultDecoderConfig()
	file.Decoder.TargetSampleRate = decoder.TargetSampleRate
	file.Decoder.MaxDuration = decoder.MaxDuration.String()
	file.Decoder.FFmpegPath = decoder.FFmpegPath
	file.Decoder.FFprobePath = decoder.FFprobePath
	file.Decoder.Timeout = decoder.Timeout.String()

	payload, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	_, err = os.Stdout.Write(payload)
	return err
}
