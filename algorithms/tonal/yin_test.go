package tonal

import (
	"math"
	"sort"
	"testing"
)

func generateSine(freq float64, sampleRate, length int) []float64 {
	signal := make([]float64, length)
	for i := range signal {
		signal[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return signal
}

func medianVoicedF0(trace PitchTrace) float64 {
	voiced := []float64{}
	for i, ok := range trace.Voiced {
		if ok {
			voiced = append(voiced, trace.F0[i])
		}
	}
	if len(voiced) == 0 {
		return 0
	}
	sort.Float64s(voiced)
	return voiced[len(voiced)/2]
}

func TestTrack_PureTone(t *testing.T) {
	tracker := NewTracker()

	pcm := generateSine(440, 44100, 44100)
	trace, err := tracker.Track(pcm, 44100)
	if err != nil {
		t.Fatalf("Track: unexpected error: %v", err)
	}

	wantFrames := 1 + 44100/512
	if trace.NumFrames() != wantFrames {
		t.Errorf("NumFrames: got %d, want %d", trace.NumFrames(), wantFrames)
	}
	if len(trace.Voiced) != trace.NumFrames() {
		t.Errorf("Voiced length %d does not match F0 length %d",
			len(trace.Voiced), trace.NumFrames())
	}

	// Edge frames see zero padding, but the interior must be voiced
	if trace.VoicedCount() < 80 {
		t.Errorf("VoicedCount: got %d, want at least 80 of %d", trace.VoicedCount(), wantFrames)
	}

	median := medianVoicedF0(trace)
	if math.Abs(median-440) > 2 {
		t.Errorf("median voiced F0: got %g, want 440 within 2 Hz", median)
	}

	if trace.FrameSize != 2048 || trace.HopSize != 512 {
		t.Errorf("trace framing: got %d/%d, want 2048/512", trace.FrameSize, trace.HopSize)
	}
}

func TestTrack_ToneAboveRange(t *testing.T) {
	tracker := NewTracker()

	// 2 kHz sits above the default C6 ceiling
	pcm := generateSine(2000, 44100, 22050)
	trace, err := tracker.Track(pcm, 44100)
	if err != nil {
		t.Fatalf("Track: unexpected error: %v", err)
	}

	if trace.VoicedCount() != 0 {
		t.Errorf("VoicedCount for out-of-range tone: got %d, want 0", trace.VoicedCount())
	}
}

func TestTrack_Silence(t *testing.T) {
	tracker := NewTracker()

	trace, err := tracker.Track(make([]float64, 22050), 44100)
	if err != nil {
		t.Fatalf("Track: unexpected error: %v", err)
	}

	if trace.VoicedCount() != 0 {
		t.Errorf("VoicedCount for silence: got %d, want 0", trace.VoicedCount())
	}
	for i, f := range trace.F0 {
		if f != 0 {
			t.Errorf("F0[%d] for silence: got %g, want 0", i, f)
			break
		}
	}
}

func TestTrack_UnvoicedFramesCarryZero(t *testing.T) {
	tracker := NewTracker()

	pcm := generateSine(440, 44100, 44100)
	trace, err := tracker.Track(pcm, 44100)
	if err != nil {
		t.Fatalf("Track: unexpected error: %v", err)
	}

	for i := range trace.F0 {
		if !trace.Voiced[i] && trace.F0[i] != 0 {
			t.Errorf("unvoiced frame %d carries F0 %g, want 0", i, trace.F0[i])
		}
		if trace.Voiced[i] && trace.F0[i] <= 0 {
			t.Errorf("voiced frame %d carries F0 %g, want positive", i, trace.F0[i])
		}
	}
}

func TestTrack_Errors(t *testing.T) {
	tracker := NewTracker()

	if _, err := tracker.Track(nil, 44100); err == nil {
		t.Error("Track of empty signal should fail")
	}
	if _, err := tracker.Track(generateSine(440, 44100, 4410), 0); err == nil {
		t.Error("Track with zero sample rate should fail")
	}

	bad := DefaultTrackerConfig()
	bad.Threshold = 1.5
	if _, err := NewTrackerWithConfig(bad).Track(generateSine(440, 44100, 4410), 44100); err == nil {
		t.Error("Track with invalid config should fail")
	}
}

func TestTrackerConfig_Validate(t *testing.T) {
	if err := DefaultTrackerConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*TrackerConfig)
	}{
		{"zero frame size", func(c *TrackerConfig) { c.FrameSize = 0 }},
		{"zero hop size", func(c *TrackerConfig) { c.HopSize = 0 }},
		{"zero min freq", func(c *TrackerConfig) { c.MinFreq = 0 }},
		{"max below min", func(c *TrackerConfig) { c.MaxFreq = c.MinFreq - 1 }},
		{"threshold at one", func(c *TrackerConfig) { c.Threshold = 1.0 }},
		{"negative threshold", func(c *TrackerConfig) { c.Threshold = -0.1 }},
	}

	for _, c := range cases {
		cfg := DefaultTrackerConfig()
		c.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate with %s should fail", c.name)
		}
	}
}

func TestNewTracker_DefaultConfig(t *testing.T) {
	tracker := NewTracker()

	cfg := tracker.Config()
	want := DefaultTrackerConfig()
	if cfg != want {
		t.Errorf("Config: got %+v, want %+v", cfg, want)
	}
}
