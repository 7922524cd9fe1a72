// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for callback-driven playback backends
package output

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
)

const float32Bytes = 4

var (
	ErrUnsupportedChannels = errors.New("unsupported channel count")
	ErrNotOpen             = errors.New("output not opened")
	ErrUnknownBackend      = errors.New("unknown output backend")
)

// Callback fills out with the next block of mono samples. It runs on the
// backend's audio thread and returns how many samples carry signal.
type Callback func(out []float32) int

// Output represents an audio output device
type Output interface {
	// Open prepares the device to pull blocks of framesPerBuffer samples from callback
	Open(format audio.Format, framesPerBuffer int, callback Callback) error

	// Start begins invoking the callback
	Start() error

	// Stop halts the callback; no invocation is in flight once it returns
	Stop() error

	// Close releases output resources
	Close() error
}

var backends = map[string]func() Output{
	"malgo":     NewMalgo,
	"oto":       NewOto,
	"portaudio": NewPortAudio,
	"null":      func() Output { return NewNull(true) },
}

// New creates the named backend
func New(name string) (Output, error) {
	newOutput, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownBackend, name, Backends())
	}
	return newOutput(), nil
}

// Backends returns the names accepted by New
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// checkOpen validates the arguments every backend shares
func checkOpen(format audio.Format, framesPerBuffer int, callback Callback) error {
	if format.Channels != 1 {
		return fmt.Errorf("%w: %d (mono only)", ErrUnsupportedChannels, format.Channels)
	}
	if format.SampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", format.SampleRate)
	}
	if framesPerBuffer <= 0 {
		return fmt.Errorf("invalid frames per buffer: %d", framesPerBuffer)
	}
	if callback == nil {
		return errors.New("nil callback")
	}
	return nil
}

// renderLE fills dst with little-endian float32 samples pulled from callback in
// blocks of at most len(scratch) frames, so the callback never sees a block
// larger than the one it was opened with. It returns the frames written.
func renderLE(dst []byte, scratch []float32, callback Callback) int {
	frames := len(dst) / float32Bytes

	for off := 0; off < frames; {
		n := min(len(scratch), frames-off)
		block := scratch[:n]
		callback(block)

		for i, sample := range block {
			binary.LittleEndian.PutUint32(dst[(off+i)*float32Bytes:], math.Float32bits(sample))
		}
		off += n
	}
	return frames
}
