// ABOUTME: PCM sample quantizer
// ABOUTME: Maps float samples to 16-bit or 24-bit integer PCM
package encode

import (
	"fmt"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
)

// PCMEncoder quantizes float samples to integer PCM
type PCMEncoder struct {
	bitDepth int
}

// NewPCM creates a new PCM encoder
func NewPCM(format audio.Format) (*PCMEncoder, error) {
	if format.Codec != "pcm" {
		return nil, fmt.Errorf("invalid codec for PCM encoder: %s", format.Codec)
	}

	if format.BitDepth != 16 && format.BitDepth != 24 {
		return nil, fmt.Errorf("unsupported bit depth: %d (supported: 16, 24)", format.BitDepth)
	}

	return &PCMEncoder{
		bitDepth: format.BitDepth,
	}, nil
}

// Encode converts float samples to integers in the encoder's bit depth range
func (e *PCMEncoder) Encode(samples []float32) []int {
	output := make([]int, len(samples))
	for i, sample := range samples {
		sample24 := audio.SampleFromFloat32(sample)
		if e.bitDepth == 16 {
			output[i] = int(audio.SampleToInt16(sample24))
		} else {
			output[i] = int(sample24)
		}
	}
	return output
}

// BitDepth returns the output bit depth
func (e *PCMEncoder) BitDepth() int {
	return e.bitDepth
}
