package config

import (
	"testing"
)

func TestDefaultAnalysisConfig_Validates(t *testing.T) {
	if err := DefaultAnalysisConfig().Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*AnalysisConfig)
	}{
		{"even pitch window", func(c *AnalysisConfig) { c.PitchSmoothingWindow = 10 }},
		{"zero pitch window", func(c *AnalysisConfig) { c.PitchSmoothingWindow = 0 }},
		{"even envelope window", func(c *AnalysisConfig) { c.EnvelopeSmoothingWindow = 20 }},
		{"negative envelope window", func(c *AnalysisConfig) { c.EnvelopeSmoothingWindow = -5 }},
		{"unknown window type", func(c *AnalysisConfig) { c.SmoothingWindowType = "gaussian" }},
		{"empty window type", func(c *AnalysisConfig) { c.SmoothingWindowType = "" }},
		{"negative prominence", func(c *AnalysisConfig) { c.MinProminenceCents = -1 }},
		{"zero baseline divisor", func(c *AnalysisConfig) { c.BaselineWindowDivisor = 0 }},
		{"zero baseline minimum", func(c *AnalysisConfig) { c.BaselineWindowMin = 0 }},
		{"cap below minimum", func(c *AnalysisConfig) { c.BaselineWindowCap = 2 }},
		{"zero spacing divisor", func(c *AnalysisConfig) { c.PeakSpacingDivisor = 0 }},
		{"zero spacing minimum", func(c *AnalysisConfig) { c.PeakSpacingMin = 0 }},
	}

	for _, c := range cases {
		cfg := DefaultAnalysisConfig()
		c.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("Validate with %s should fail", c.name)
		}
	}
}

func TestValidate_AcceptsAllWindowTypes(t *testing.T) {
	for _, name := range []string{"hann", "hamming", "blackman", "rectangular"} {
		cfg := DefaultAnalysisConfig()
		cfg.SmoothingWindowType = name
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate with window %q: unexpected error: %v", name, err)
		}
	}
}

func TestValidate_ZeroProminenceAllowed(t *testing.T) {
	cfg := DefaultAnalysisConfig()
	cfg.MinProminenceCents = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("zero prominence disables the filter and should validate, got: %v", err)
	}
}
