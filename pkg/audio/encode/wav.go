// ABOUTME: WAV file writer
// ABOUTME: Writes mono PCM through go-audio/wav and tracks the frame count
package encode

import (
	"errors"
	"fmt"
	"os"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

var ErrFrameCountMismatch = errors.New("written frame count does not match expected")

// WAVWriter writes a mono PCM WAV file
type WAVWriter struct {
	path   string
	file   *os.File
	enc    *wav.Encoder
	pcm    *PCMEncoder
	format audio.Format
	frames int
}

// CreateWAV creates (or truncates) path for writing
func CreateWAV(path string, format audio.Format) (*WAVWriter, error) {
	if format.Channels != 1 {
		return nil, fmt.Errorf("unsupported channel count: %d (mono only)", format.Channels)
	}

	pcm, err := NewPCM(format)
	if err != nil {
		return nil, err
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	return &WAVWriter{
		path:   path,
		file:   f,
		enc:    wav.NewEncoder(f, format.SampleRate, format.BitDepth, format.Channels, wavFormatPCM),
		pcm:    pcm,
		format: format,
	}, nil
}

// Write encodes samples and returns the number of frames written
func (w *WAVWriter) Write(samples []float32) (int, error) {
	if w.enc == nil {
		return 0, fmt.Errorf("write to closed WAV writer")
	}

	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: w.format.Channels,
			SampleRate:  w.format.SampleRate,
		},
		Data:           w.pcm.Encode(samples),
		SourceBitDepth: w.format.BitDepth,
	}

	if err := w.enc.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write samples: %w", err)
	}

	frames := buf.NumFrames()
	w.frames += frames
	return frames, nil
}

// Frames returns the total frames written so far
func (w *WAVWriter) Frames() int {
	return w.frames
}

// Path returns the file path
func (w *WAVWriter) Path() string {
	return w.path
}

// Close finalizes the headers and closes the file
func (w *WAVWriter) Close() error {
	if w.enc == nil {
		return nil
	}

	encErr := w.enc.Close()
	fileErr := w.file.Close()
	w.enc = nil

	if encErr != nil {
		return fmt.Errorf("failed to finalize WAV header: %w", encErr)
	}
	if fileErr != nil {
		return fmt.Errorf("failed to close %s: %w", w.path, fileErr)
	}
	return nil
}

// Abort closes the file and removes it
func (w *WAVWriter) Abort() error {
	if w.enc != nil {
		w.enc = nil
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("failed to close %s: %w", w.path, err)
		}
	}
	if err := os.Remove(w.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", w.path, err)
	}
	return nil
}
