//go:build !portaudio

// ABOUTME: PortAudio stub when library not available
// ABOUTME: Provides compile-time placeholder when PortAudio not installed
package output

import (
	"errors"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
)

// ErrPortAudioDisabled is returned by every method of the stub
var ErrPortAudioDisabled = errors.New("PortAudio support not enabled (build with -tags portaudio)")

// PortAudio output implementation (stub)
type PortAudio struct{}

// NewPortAudio creates a new PortAudio output
func NewPortAudio() Output {
	return &PortAudio{}
}

// Open initializes PortAudio
func (p *PortAudio) Open(format audio.Format, framesPerBuffer int, callback Callback) error {
	return ErrPortAudioDisabled
}

// Start starts the stream
func (p *PortAudio) Start() error {
	return ErrPortAudioDisabled
}

// Stop stops the stream
func (p *PortAudio) Stop() error {
	return ErrPortAudioDisabled
}

// Close releases resources
func (p *PortAudio) Close() error {
	return ErrPortAudioDisabled
}
