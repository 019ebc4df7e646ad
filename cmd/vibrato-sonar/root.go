package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
	"github.com/RyanBlaney/vibrato-sonar/logging"
	"github.com/RyanBlaney/vibrato-sonar/transcode"
	"github.com/RyanBlaney/vibrato-sonar/vibrato/config"
)

var (
	cfgFile  string
	logLevel string

	appLogger = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "vibrato-sonar",
	Short: "Vibrato analysis for vocal recordings",
	Long: `vibrato-sonar measures vibrato in monophonic vocal recordings.

It tracks the fundamental frequency and loudness of a recording, references
both against their own slow-moving baselines, and reports the oscillation
as per-frame deviation contours plus detected cycle peaks and troughs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default vibrato-sonar.yaml in . or $HOME)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	rootCmd.Version = "0.1.0"
}

// setup wires logging and configuration before any subcommand runs.
func setup() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	appLogger.SetLevel(level)
	appLogger.SetOutput(os.Stderr)

	logging.SetGlobalLogger(logging.LoggerFromAppLogger(appLogger))

	setConfigDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("vibrato-sonar")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("VIBRATO_SONAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// The config file is optional unless one was named explicitly
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	appLogger.WithField("config", viper.ConfigFileUsed()).Debug("loaded config file")

	return nil
}

func setConfigDefaults() {
	analysis := config.DefaultAnalysisConfig()
	viper.SetDefault("analysis.pitch_smoothing_window", analysis.PitchSmoothingWindow)
	viper.SetDefault("analysis.envelope_smoothing_window", analysis.EnvelopeSmoothingWindow)
	viper.SetDefault("analysis.smoothing_window_type", analysis.SmoothingWindowType)
	viper.SetDefault("analysis.min_prominence_cents", analysis.MinProminenceCents)
	viper.SetDefault("analysis.baseline_window_cap", analysis.BaselineWindowCap)
	viper.SetDefault("analysis.baseline_window_divisor", analysis.BaselineWindowDivisor)
	viper.SetDefault("analysis.baseline_window_min", analysis.BaselineWindowMin)
	viper.SetDefault("analysis.peak_spacing_divisor", analysis.PeakSpacingDivisor)
	viper.SetDefault("analysis.peak_spacing_min", analysis.PeakSpacingMin)
	viper.SetDefault("analysis.enable_stats", analysis.EnableStats)

	tracker := tonal.DefaultTrackerConfig()
	viper.SetDefault("tracker.frame_size", tracker.FrameSize)
	viper.SetDefault("tracker.hop_size", tracker.HopSize)
	viper.SetDefault("tracker.min_freq", tracker.MinFreq)
	viper.SetDefault("tracker.max_freq", tracker.MaxFreq)
	viper.SetDefault("tracker.threshold", tracker.Threshold)

	decoder := transcode.DefaultDecoderConfig()
	viper.SetDefault("decoder.target_sample_rate", decoder.TargetSampleRate)
	viper.SetDefault("decoder.max_duration", decoder.MaxDuration)
	viper.SetDefault("decoder.ffmpeg_path", decoder.FFmpegPath)
	viper.SetDefault("decoder.ffprobe_path", decoder.FFprobePath)
	viper.SetDefault("decoder.timeout", decoder.Timeout)
}

func analysisConfigFromViper() *config.AnalysisConfig {
	return &config.AnalysisConfig{
		PitchSmoothingWindow:    viper.GetInt("analysis.pitch_smoothing_window"),
		EnvelopeSmoothingWindow: viper.GetInt("analysis.envelope_smoothing_window"),
		SmoothingWindowType:     viper.GetString("analysis.smoothing_window_type"),
		MinProminenceCents:      viper.GetFloat64("analysis.min_prominence_cents"),
		BaselineWindowCap:       viper.GetInt("analysis.baseline_window_cap"),
		BaselineWindowDivisor:   viper.GetInt("analysis.baseline_window_divisor"),
		BaselineWindowMin:       viper.GetInt("analysis.baseline_window_min"),
		PeakSpacingDivisor:      viper.GetInt("analysis.peak_spacing_divisor"),
		PeakSpacingMin:          viper.GetInt("analysis.peak_spacing_min"),
		EnableStats:             viper.GetBool("analysis.enable_stats"),
	}
}

func trackerConfigFromViper() tonal.TrackerConfig {
	return tonal.TrackerConfig{
		FrameSize: viper.GetInt("tracker.frame_size"),
		HopSize:   viper.GetInt("tracker.hop_size"),
		MinFreq:   viper.GetFloat64("tracker.min_freq"),
		MaxFreq:   viper.GetFloat64("tracker.max_freq"),
		Threshold: viper.GetFloat64("tracker.threshold"),
	}
}

func decoderConfigFromViper() *transcode.DecoderConfig {
	cfg := transcode.DefaultDecoderConfig()
	cfg.TargetSampleRate = viper.GetInt("decoder.target_sample_rate")
	cfg.MaxDuration = viper.GetDuration("decoder.max_duration")
	cfg.FFmpegPath = viper.GetString("decoder.ffmpeg_path")
	cfg.FFprobePath = viper.GetString("decoder.ffprobe_path")
	if timeout := viper.GetDuration("decoder.timeout"); timeout > 0 {
		cfg.Timeout = timeout
	} else {
		cfg.Timeout = 30 * time.Second
	}
	return cfg
}
