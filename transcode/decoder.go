package transcode

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/RyanBlaney/vibrato-sonar/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64       `json:"-"` // Raw PCM data
	SampleRate int             `json:"sample_rate"`
	Channels   int             `json:"channels"`
	Duration   time.Duration   `json:"duration"`
	Timestamp  time.Time       `json:"timestamp"`
	Metadata   *SourceMetadata `json:"metadata,omitempty"`
}

// SourceMetadata describes the audio source as probed before decoding.
// SampleRate and Channels are the source properties; the decoded output
// properties live on AudioData.
type SourceMetadata struct {
	Path       string    `json:"path,omitempty"`
	Format     string    `json:"format,omitempty"`
	Codec      string    `json:"codec,omitempty"`
	Bitrate    int       `json:"bitrate,omitempty"`
	SampleRate int       `json:"sample_rate,omitempty"`
	Channels   int       `json:"channels,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// DecoderConfig holds decoder configuration.
//
// A TargetSampleRate of 0 keeps the source sample rate, which preserves the
// recording exactly as captured. Loudness is never normalized: the decoder
// feeds analysis that measures amplitude modulation, and any normalization
// pass would distort the dynamics under measurement.
type DecoderConfig struct {
	TargetSampleRate int           `json:"target_sample_rate"` // 0 = keep source rate
	TargetChannels   int           `json:"target_channels"`
	OutputFormat     string        `json:"output_format"`
	MaxDuration      time.Duration `json:"max_duration"`
	ResampleQuality  string        `json:"resample_quality"` // "fast", "medium", "high"
	FFmpegPath       string        `json:"ffmpeg_path"`      // Path to ffmpeg binary
	FFprobePath      string        `json:"ffprobe_path"`     // Path to ffprobe binary
	Timeout          time.Duration `json:"timeout"`          // Timeout for ffmpeg operations
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		TargetSampleRate: 0, // Keep source rate
		TargetChannels:   1, // Mono for pitch tracking
		OutputFormat:     "f64le",
		MaxDuration:      0, // No limit
		ResampleQuality:  "medium",
		FFmpegPath:       "ffmpeg",  // Assume in PATH
		FFprobePath:      "ffprobe", // Assume in PATH
		Timeout:          30 * time.Second,
	}
}

// Decoder handles audio decoding using FFmpeg
type Decoder struct {
	config *DecoderConfig
}

// AudioMetadata holds detected audio properties from FFprobe
type AudioMetadata struct {
	SampleRate int     `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Codec      string  `json:"codec"`
	Duration   float64 `json:"duration"`
	Bitrate    int     `json:"bitrate"`
	Format     string  `json:"format"`
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file and returns PCM data
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	logger.Debug("Starting audio file decode")

	// Probe the file to get format info
	metadata, err := d.probeAudioFile(filename)
	if err != nil {
		logger.Error(err, "Failed to probe audio file")
		return nil, err
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_sample_rate": metadata.SampleRate,
		"input_channels":    metadata.Channels,
		"input_codec":       metadata.Codec,
		"input_duration":    metadata.Duration,
		"input_bitrate":     metadata.Bitrate,
	})

	// Decode with proper parameters
	return d.decodeFileWithFFmpeg(filename, metadata)
}

// DecodeBytes decodes audio from a byte slice
func (d *Decoder) DecodeBytes(data []byte) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeBytes",
		"data_size": len(data),
	})

	logger.Debug("Starting audio bytes decode")

	if len(data) == 0 {
		return nil, fmt.Errorf("empty audio data")
	}

	// Probe the input to get format info
	metadata, err := d.probeAudioMetadata(data)
	if err != nil {
		logger.Error(err, "Failed to probe audio metadata")
		return nil, err
	}

	logger.Debug("Audio metadata detected", logging.Fields{
		"input_sample_rate": metadata.SampleRate,
		"input_channels":    metadata.Channels,
		"input_codec":       metadata.Codec,
		"input_duration":    metadata.Duration,
		"input_bitrate":     metadata.Bitrate,
		"input_format":      metadata.Format,
	})

	// Decode with proper parameters
	return d.decodeWithFFmpeg(data, metadata)
}

// DecodeReader decodes audio from an io.Reader
func (d *Decoder) DecodeReader(reader io.Reader) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeReader",
	})

	// Read all data from reader
	data, err := io.ReadAll(reader)
	if err != nil {
		logger.Error(err, "Failed to read data from reader")
		return nil, err
	}

	logger.Debug("Data read from reader", logging.Fields{
		"data_size": len(data),
	})

	return d.DecodeBytes(data)
}

// GetConfig returns decoder configuration information
func (d *Decoder) GetConfig() map[string]any {
	return map[string]any{
		"target_sample_rate": d.config.TargetSampleRate,
		"target_channels":    d.config.TargetChannels,
		"output_format":      d.config.OutputFormat,
		"max_duration":       d.config.MaxDuration,
		"resample_quality":   d.config.ResampleQuality,
		"ffmpeg_path":        d.config.FFmpegPath,
		"ffprobe_path":       d.config.FFprobePath,
		"timeout":            d.config.Timeout,
	}
}

// ProbeFile extracts audio metadata from a file without decoding it
func (d *Decoder) ProbeFile(filename string) (*AudioMetadata, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "ProbeFile",
		"filename":  filename,
	})

	logger.Debug("Starting file probe with FFprobe")

	metadata, err := d.probeAudioFile(filename)
	if err != nil {
		logger.Error(err, "FFprobe failed")
		return nil, err
	}

	logger.Debug("FFprobe completed successfully", logging.Fields{
		"sample_rate": metadata.SampleRate,
		"channels":    metadata.Channels,
		"codec":       metadata.Codec,
		"bitrate":     metadata.Bitrate,
		"format":      metadata.Format,
	})

	return metadata, nil
}

// probeAudioFile uses ffprobe to get audio information from a file
func (d *Decoder) probeAudioFile(filename string) (*AudioMetadata, error) {
	args := []string{
		"-v", "quiet", // Suppress verbose output
		"-print_format", "json", // JSON output
		"-show_streams",          // Show stream info
		"-select_streams", "a:0", // First audio stream only
		filename,
	}

	cmd := exec.Command(d.config.FFprobePath, args...)

	// Set timeout
	if d.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, d.config.FFprobePath, args...)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	// Parse ffprobe JSON output
	return d.parseFFprobeOutput(output)
}

// probeAudioMetadata uses ffprobe to get input audio information from bytes
func (d *Decoder) probeAudioMetadata(data []byte) (*AudioMetadata, error) {
	args := []string{
		"-v", "quiet", // Suppress verbose output
		"-print_format", "json", // JSON output
		"-show_streams",          // Show stream info
		"-select_streams", "a:0", // First audio stream only
		"pipe:0", // Input from stdin
	}

	cmd := exec.Command(d.config.FFprobePath, args...)
	cmd.Stdin = bytes.NewReader(data)

	// Set timeout
	if d.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, d.config.FFprobePath, args...)
		cmd.Stdin = bytes.NewReader(data)
	}

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	// Parse ffprobe JSON output
	return d.parseFFprobeOutput(output)
}

// parseFFprobeOutput parses ffprobe JSON to extract audio metadata
func (d *Decoder) parseFFprobeOutput(jsonData []byte) (*AudioMetadata, error) {
	var probe struct {
		Streams []struct {
			CodecType     string `json:"codec_type"`
			CodecName     string `json:"codec_name"`
			SampleRate    string `json:"sample_rate"`
			Channels      int    `json:"channels"`
			Duration      string `json:"duration"`
			BitRate       string `json:"bit_rate"`
			CodecLongName string `json:"codec_long_name"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(jsonData, &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) == 0 {
		return nil, fmt.Errorf("no audio streams found")
	}

	stream := probe.Streams[0]

	// Validate that this is an audio stream
	if stream.CodecType != "audio" {
		return nil, fmt.Errorf("stream is not audio type: %s", stream.CodecType)
	}

	// Parse sample rate
	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil {
		sampleRate = 44100 // Fallback to common sample rate
	}

	// Parse duration
	duration, err := strconv.ParseFloat(stream.Duration, 64)
	if err != nil {
		duration = 0
	}

	// Parse bitrate
	bitrate, err := strconv.Atoi(stream.BitRate)
	if err != nil {
		bitrate = 0
	}

	// Validate channels
	if stream.Channels <= 0 || stream.Channels > 8 {
		return nil, fmt.Errorf("invalid channel count: %d", stream.Channels)
	}

	return &AudioMetadata{
		SampleRate: sampleRate,
		Channels:   stream.Channels,
		Codec:      stream.CodecName,
		Duration:   duration,
		Bitrate:    bitrate,
		Format:     stream.CodecLongName,
	}, nil
}

// outputSampleRate resolves the sample rate the decoded PCM will carry:
// the configured target when one is set, otherwise the source rate.
func (d *Decoder) outputSampleRate(metadata *AudioMetadata) int {
	if d.config.TargetSampleRate > 0 {
		return d.config.TargetSampleRate
	}
	if metadata != nil && metadata.SampleRate > 0 {
		return metadata.SampleRate
	}
	return 44100
}

// decodeFileWithFFmpeg performs the actual audio decoding from a file
func (d *Decoder) decodeFileWithFFmpeg(filename string, metadata *AudioMetadata) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "decodeFileWithFFmpeg",
		"filename":  filename,
	})

	// Build ffmpeg command with detected parameters
	args := d.buildFFmpegArgs(metadata)
	args = append([]string{"-i", filename}, args...) // Prepend input file
	args = append(args, "pipe:1")                    // Output to stdout

	cmd := exec.Command(d.config.FFmpegPath, args...)

	// Set timeout
	if d.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, d.config.FFmpegPath, args...)
	}

	logger.Debug("Running ffmpeg command", logging.Fields{
		"args": strings.Join(args, " "),
	})

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			logger.Error(err, "Ffmpeg decode failed", logging.Fields{
				"stderr": string(exitError.Stderr),
			})
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	return d.processFFmpegOutput(output, metadata, filename, logger)
}

// decodeWithFFmpeg performs the actual audio decoding from bytes
func (d *Decoder) decodeWithFFmpeg(data []byte, metadata *AudioMetadata) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "decodeWithFFmpeg",
	})

	// Build ffmpeg command with detected parameters
	args := d.buildFFmpegArgs(metadata)
	args = append([]string{"-i", "pipe:0"}, args...) // Prepend input from stdin
	args = append(args, "pipe:1")                    // Output to stdout

	cmd := exec.Command(d.config.FFmpegPath, args...)
	cmd.Stdin = bytes.NewReader(data)

	// Set timeout
	if d.config.Timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
		defer cancel()
		cmd = exec.CommandContext(ctx, d.config.FFmpegPath, args...)
		cmd.Stdin = bytes.NewReader(data)
	}

	logger.Debug("Running ffmpeg command", logging.Fields{
		"args": strings.Join(args, " "),
	})

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			logger.Error(err, "Ffmpeg decode failed", logging.Fields{
				"stderr": string(exitError.Stderr),
			})
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	return d.processFFmpegOutput(output, metadata, "", logger)
}

// buildFFmpegArgs builds the ffmpeg arguments based on configuration and metadata
func (d *Decoder) buildFFmpegArgs(metadata *AudioMetadata) []string {
	sampleRate := d.outputSampleRate(metadata)

	args := []string{
		"-vn",         // No video
		"-f", "f64le", // Output raw float64 little-endian
		"-ac", strconv.Itoa(d.config.TargetChannels), // Target channels
		"-ar", strconv.Itoa(sampleRate), // Output sample rate
	}

	// Resampling only happens when an explicit target rate differs from
	// the source; quality then selects the soxr precision
	if d.config.TargetSampleRate > 0 && metadata.SampleRate != d.config.TargetSampleRate && d.config.ResampleQuality != "" {
		switch d.config.ResampleQuality {
		case "fast":
			args = append(args, "-af", "aresample=resampler=soxr:precision=16")
		case "medium":
			args = append(args, "-af", "aresample=resampler=soxr:precision=20")
		case "high":
			args = append(args, "-af", "aresample=resampler=soxr:precision=28")
		}
	}

	// Add max duration limit if specified
	if d.config.MaxDuration > 0 {
		args = append(args, "-t", fmt.Sprintf("%.2f", d.config.MaxDuration.Seconds()))
	}

	// Suppress ffmpeg output
	args = append(args, "-v", "error")

	return args
}

// processFFmpegOutput processes the raw output from ffmpeg
func (d *Decoder) processFFmpegOutput(output []byte, inputMetadata *AudioMetadata, sourcePath string, logger logging.Logger) (*AudioData, error) {
	// Convert raw bytes to []float64
	samples := d.bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded")
	}

	sampleRate := d.outputSampleRate(inputMetadata)

	// Calculate duration based on output samples
	samplesPerChannel := len(samples) / d.config.TargetChannels
	duration := time.Duration(samplesPerChannel) * time.Second / time.Duration(sampleRate)

	logger.Debug("FFmpeg decode completed successfully", logging.Fields{
		"input_sample_rate":  inputMetadata.SampleRate,
		"input_channels":     inputMetadata.Channels,
		"input_codec":        inputMetadata.Codec,
		"input_duration":     inputMetadata.Duration,
		"output_samples":     len(samples),
		"output_sample_rate": sampleRate,
		"output_channels":    d.config.TargetChannels,
		"output_duration":    duration.Seconds(),
	})

	// Create optional metadata describing the source
	var metadata *SourceMetadata
	if sourcePath != "" || inputMetadata.Codec != "" {
		metadata = &SourceMetadata{
			Path:       sourcePath,
			Format:     inputMetadata.Format,
			Codec:      inputMetadata.Codec,
			Bitrate:    inputMetadata.Bitrate,
			SampleRate: inputMetadata.SampleRate,
			Channels:   inputMetadata.Channels,
			Timestamp:  time.Now(),
		}
	}

	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Channels:   d.config.TargetChannels,
		Duration:   duration,
		Timestamp:  time.Now(),
		Metadata:   metadata, // nil for simple decode operations
	}, nil
}

// bytesToFloat64 converts raw float64 bytes to []float64
func (d *Decoder) bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		// Trim to multiple of 8 bytes
		data = data[:len(data)-(len(data)%8)]
	}

	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)

	for i := range sampleCount {
		// Convert 8 bytes to float64 (little-endian)
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples
}

// ValidateConfig validates the decoder configuration
func (d *Decoder) ValidateConfig() error {
	if d.config.TargetSampleRate < 0 {
		return fmt.Errorf("target sample rate cannot be negative: %d", d.config.TargetSampleRate)
	}

	if d.config.TargetChannels <= 0 || d.config.TargetChannels > 8 {
		return fmt.Errorf("target channels must be between 1 and 8: %d", d.config.TargetChannels)
	}

	if d.config.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive: %v", d.config.Timeout)
	}

	// Check if ffmpeg and ffprobe are available
	if err := d.checkFFmpegAvailability(); err != nil {
		return fmt.Errorf("ffmpeg not available: %w", err)
	}

	return nil
}

// checkFFmpegAvailability checks if ffmpeg and ffprobe are available
func (d *Decoder) checkFFmpegAvailability() error {
	// Check ffmpeg
	cmd := exec.Command(d.config.FFmpegPath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not found at %s: %w", d.config.FFmpegPath, err)
	}

	// Check ffprobe
	cmd = exec.Command(d.config.FFprobePath, "-version")
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe not found at %s: %w", d.config.FFprobePath, err)
	}

	return nil
}

// GetSupportedFormats returns a list of formats supported by this decoder
func (d *Decoder) GetSupportedFormats() []string {
	return []string{
		"aac", "mp3", "wav", "flac", "ogg", "opus", "m4a", "wma",
		"webm", "mp4", "mov", "mkv",
		// FFmpeg supports many more formats
	}
}

// Close cleans up any resources (no-op for FFmpeg decoder)
func (d *Decoder) Close() error {
	// FFmpeg decoder doesn't maintain persistent resources
	return nil
}
