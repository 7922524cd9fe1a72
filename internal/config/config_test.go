// ABOUTME: Tests for session configuration
// ABOUTME: Tests defaults, environment overrides and validation
package config

import (
	"errors"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.BeatsPerBar != 4 || cfg.Subdivisions != 1 || cfg.BPM != 120 {
		t.Errorf("expected 4/4 quarters at 120, got %d/%d at %d", cfg.BeatsPerBar, cfg.Subdivisions, cfg.BPM)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.SampleRate)
	}
	if cfg.Channels != 1 {
		t.Errorf("Channels = %d, want 1", cfg.Channels)
	}
	if cfg.FramesPerBuffer != 1024 {
		t.Errorf("FramesPerBuffer = %d, want 1024", cfg.FramesPerBuffer)
	}
	if cfg.Backend != "malgo" {
		t.Errorf("Backend = %q, want malgo", cfg.Backend)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want 100ms", cfg.PollInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("AUTORHYTHM_BEATS", "7")
	t.Setenv("AUTORHYTHM_SUBDIVISIONS", "3")
	t.Setenv("AUTORHYTHM_BPM", "180")
	t.Setenv("AUTORHYTHM_SAMPLE_RATE", "44100")
	t.Setenv("AUTORHYTHM_BIT_DEPTH", "24")
	t.Setenv("AUTORHYTHM_FRAMES_PER_BUFFER", "256")
	t.Setenv("AUTORHYTHM_BACKEND", "null")
	t.Setenv("AUTORHYTHM_OUTPUT", "/tmp/bar.wav")
	t.Setenv("AUTORHYTHM_POLL_INTERVAL", "1s")
	t.Setenv("AUTORHYTHM_DRAIN", "0s")
	t.Setenv("AUTORHYTHM_LOG_FILE", "other.log")

	cfg := FromEnv(Default())

	if cfg.BeatsPerBar != 7 {
		t.Errorf("BeatsPerBar = %d, want 7", cfg.BeatsPerBar)
	}
	if cfg.Subdivisions != 3 {
		t.Errorf("Subdivisions = %d, want 3", cfg.Subdivisions)
	}
	if cfg.BPM != 180 {
		t.Errorf("BPM = %d, want 180", cfg.BPM)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.BitDepth != 24 {
		t.Errorf("BitDepth = %d, want 24", cfg.BitDepth)
	}
	if cfg.FramesPerBuffer != 256 {
		t.Errorf("FramesPerBuffer = %d, want 256", cfg.FramesPerBuffer)
	}
	if cfg.Backend != "null" {
		t.Errorf("Backend = %q, want null", cfg.Backend)
	}
	if cfg.Output != "/tmp/bar.wav" {
		t.Errorf("Output = %q, want /tmp/bar.wav", cfg.Output)
	}
	if cfg.PollInterval != time.Second {
		t.Errorf("PollInterval = %v, want 1s", cfg.PollInterval)
	}
	if cfg.Drain != 0 {
		t.Errorf("Drain = %v, want 0", cfg.Drain)
	}
	if cfg.LogFile != "other.log" {
		t.Errorf("LogFile = %q, want other.log", cfg.LogFile)
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("AUTORHYTHM_BPM", "fast")
	t.Setenv("AUTORHYTHM_POLL_INTERVAL", "soon")

	cfg := FromEnv(Default())

	if cfg.BPM != 120 {
		t.Errorf("BPM = %d, want default 120", cfg.BPM)
	}
	if cfg.PollInterval != 100*time.Millisecond {
		t.Errorf("PollInterval = %v, want default", cfg.PollInterval)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }},
		{"8-bit", func(c *Config) { c.BitDepth = 8 }},
		{"zero block", func(c *Config) { c.FramesPerBuffer = 0 }},
		{"no backend", func(c *Config) { c.Backend = "" }},
		{"no output", func(c *Config) { c.Output = "" }},
		{"zero poll", func(c *Config) { c.PollInterval = 0 }},
		{"negative drain", func(c *Config) { c.Drain = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	cfg := Default()
	cfg.BitDepth = 24

	format := cfg.Format()
	if format.SampleRate != 48000 || format.Channels != 1 || format.BitDepth != 24 || format.Codec != "pcm" {
		t.Errorf("unexpected format %s", format)
	}
}
