package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/vibrato-sonar/algorithms/temporal"
	"github.com/RyanBlaney/vibrato-sonar/algorithms/tonal"
	"github.com/RyanBlaney/vibrato-sonar/transcode"
	"github.com/RyanBlaney/vibrato-sonar/vibrato"
)

var (
	outputPath string
	prettyJSON bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [audio file]",
	Short: "Measure vibrato in a recording",
	Long: `Analyze decodes the recording with FFmpeg at its native sample rate,
tracks pitch and loudness, and prints a JSON report: per-frame deviation
contours, detected cycle peaks and troughs, and summary statistics.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the JSON report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&prettyJSON, "pretty", false, "indent the JSON report")
	analyzeCmd.Flags().Bool("stats", true, "include summary statistics (rate, extent, correlation)")

	if err := viper.BindPFlag("analysis.enable_stats", analyzeCmd.Flags().Lookup("stats")); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filename := args[0]

	logger := appLogger.WithField("file", filename)
	logger.Info("analyzing recording")

	decoder := transcode.NewDecoder(decoderConfigFromViper())
	audio, err := decoder.DecodeFile(filename)
	if err != nil {
		return fmt.Errorf("decode %s: %w", filename, err)
	}

	logger.WithFields(map[string]interface{}{
		"sample_rate": audio.SampleRate,
		"samples":     len(audio.PCM),
		"duration":    audio.Duration.Seconds(),
	}).Debug("decoded audio")

	cfg := analysisConfigFromViper()
	if err := cfg.Validate(); err != nil {
		return err
	}

	trackerCfg := trackerConfigFromViper()
	if err := trackerCfg.Validate(); err != nil {
		return err
	}

	tracker := tonal.NewTrackerWithConfig(trackerCfg)
	loudness := temporal.NewRMS(trackerCfg.FrameSize, trackerCfg.HopSize)

	analyzer := vibrato.NewAnalyzerWithComponents(cfg, tracker, loudness)
	result, err := analyzer.Analyze(audio)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", filename, err)
	}

	logger.WithFields(map[string]interface{}{
		"oscillations": result.Oscillations,
		"duration":     result.Duration,
	}).Info("analysis complete")

	return writeJSON(result)
}

// writeJSON encodes v and writes it to the --output path or stdout.
func writeJSON(v any) error {
	var payload []byte
	var err error

	if prettyJSON {
		payload, err = json.MarshalIndent(v, "", "  ")
	} else {
		payload, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	payload = append(payload, '\n')

	if outputPath == "" {
		_, err = os.Stdout.Write(payload)
		return err
	}

	if err := os.WriteFile(outputPath, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	return nil
}
