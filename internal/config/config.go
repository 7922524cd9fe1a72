// ABOUTME: Session configuration for autorhythm
// ABOUTME: Defaults, environment overrides and validation
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
)

var ErrInvalid = errors.New("invalid configuration")

const envPrefix = "AUTORHYTHM_"

// Config holds all runtime configuration for one session
type Config struct {
	// Meter and tempo, range-checked by rhythm.Configure
	BeatsPerBar  int
	Subdivisions int
	BPM          int

	// Audio format
	SampleRate      int
	Channels        int
	BitDepth        int
	FramesPerBuffer int

	// Backend names an output.New backend
	Backend string
	// Output is the WAV file the measure is written to
	Output string

	PollInterval time.Duration // completion poll period
	Drain        time.Duration // wait after completion before stopping the device

	// Process
	LogFile string
	NoTUI   bool
}

// Default returns the built-in configuration: one bar of 4/4 at 120 bpm
func Default() Config {
	return Config{
		BeatsPerBar:  4,
		Subdivisions: 1,
		BPM:          120,

		SampleRate:      48000,
		Channels:        1,
		BitDepth:        16,
		FramesPerBuffer: 1024,

		Backend: "malgo",
		Output:  "measure.wav",

		PollInterval: 100 * time.Millisecond,
		Drain:        250 * time.Millisecond,

		LogFile: "autorhythm.log",
	}
}

// FromEnv overrides fields of base with AUTORHYTHM_* environment variables
func FromEnv(base Config) Config {
	c := base
	c.BeatsPerBar = envInt("BEATS", c.BeatsPerBar)
	c.Subdivisions = envInt("SUBDIVISIONS", c.Subdivisions)
	c.BPM = envInt("BPM", c.BPM)
	c.SampleRate = envInt("SAMPLE_RATE", c.SampleRate)
	c.BitDepth = envInt("BIT_DEPTH", c.BitDepth)
	c.FramesPerBuffer = envInt("FRAMES_PER_BUFFER", c.FramesPerBuffer)
	c.Backend = envStr("BACKEND", c.Backend)
	c.Output = envStr("OUTPUT", c.Output)
	c.PollInterval = envDuration("POLL_INTERVAL", c.PollInterval)
	c.Drain = envDuration("DRAIN", c.Drain)
	c.LogFile = envStr("LOG_FILE", c.LogFile)
	return c
}

// Validate checks everything except the meter and tempo ranges
func (c Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrInvalid, c.SampleRate)
	}
	if c.BitDepth != 16 && c.BitDepth != 24 {
		return fmt.Errorf("%w: bit depth %d (supported: 16, 24)", ErrInvalid, c.BitDepth)
	}
	if c.FramesPerBuffer <= 0 {
		return fmt.Errorf("%w: frames per buffer %d", ErrInvalid, c.FramesPerBuffer)
	}
	if c.Backend == "" {
		return fmt.Errorf("%w: no output backend", ErrInvalid)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: no output file", ErrInvalid)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval %v", ErrInvalid, c.PollInterval)
	}
	if c.Drain < 0 {
		return fmt.Errorf("%w: drain %v", ErrInvalid, c.Drain)
	}
	return nil
}

// Format returns the audio format for playback and the output file
func (c Config) Format() audio.Format {
	return audio.Format{
		Codec:      "pcm",
		SampleRate: c.SampleRate,
		Channels:   c.Channels,
		BitDepth:   c.BitDepth,
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(envPrefix + key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(envPrefix + key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
