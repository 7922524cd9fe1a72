// ABOUTME: WAV reader
// ABOUTME: Decodes WAV files through go-audio/wav for frame-count verification
package decode

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
	"github.com/go-audio/wav"
)

var ErrInvalidWAV = errors.New("invalid WAV file")

// WAVInfo describes a decoded WAV file
type WAVInfo struct {
	Format   audio.Format
	Frames   int
	Duration time.Duration
}

// ReadWAVInfo decodes path and reports its format and frame count
func ReadWAVInfo(path string) (WAVInfo, error) {
	info, _, err := ReadWAV(path)
	return info, err
}

// ReadWAV decodes path into float samples in [-1, 1]
func ReadWAV(path string) (WAVInfo, []float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return WAVInfo{}, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	if !d.IsValidFile() {
		return WAVInfo{}, nil, fmt.Errorf("%w: %s", ErrInvalidWAV, path)
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return WAVInfo{}, nil, fmt.Errorf("failed to read PCM from %s: %w", path, err)
	}

	info := WAVInfo{
		Format: audio.Format{
			Codec:      "pcm",
			SampleRate: int(d.SampleRate),
			Channels:   int(d.NumChans),
			BitDepth:   int(d.BitDepth),
		},
		Frames: buf.NumFrames(),
	}
	if info.Format.SampleRate > 0 {
		info.Duration = time.Duration(info.Frames) * time.Second / time.Duration(info.Format.SampleRate)
	}

	samples := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		switch info.Format.BitDepth {
		case 16:
			samples[i] = audio.SampleToFloat32(audio.SampleFromInt16(int16(v)))
		case 24:
			samples[i] = audio.SampleToFloat32(int32(v))
		default:
			return WAVInfo{}, nil, fmt.Errorf("%w: unsupported bit depth %d", ErrInvalidWAV, info.Format.BitDepth)
		}
	}

	return info, samples, nil
}
