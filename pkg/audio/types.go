// ABOUTME: Audio type definitions
// ABOUTME: Defines audio formats and sample conversions
package audio

import "fmt"

const (
	// 24-bit audio range constants
	Max24Bit = 8388607  // 2^23 - 1
	Min24Bit = -8388608 // -2^23
)

// Format describes audio stream format
type Format struct {
	Codec      string
	SampleRate int
	Channels   int
	BitDepth   int
}

// Mono returns a mono PCM format
func Mono(sampleRate, bitDepth int) Format {
	return Format{
		Codec:      "pcm",
		SampleRate: sampleRate,
		Channels:   1,
		BitDepth:   bitDepth,
	}
}

func (f Format) String() string {
	return fmt.Sprintf("%s %dHz %dch %d-bit", f.Codec, f.SampleRate, f.Channels, f.BitDepth)
}

// SampleToInt16 converts int32 sample to int16 (for 16-bit playback)
func SampleToInt16(sample int32) int16 {
	// Right-shift to convert 24-bit to 16-bit range
	return int16(sample >> 8)
}

// SampleFromInt16 converts int16 sample to int32 (left-justified in 24-bit)
func SampleFromInt16(sample int16) int32 {
	// Left-shift to position 16-bit value in upper bits
	return int32(sample) << 8
}

// SampleFromFloat32 converts a [-1, 1] float sample to the 24-bit range, clipping outside it
func SampleFromFloat32(sample float32) int32 {
	scaled := float64(sample) * Max24Bit
	if scaled > Max24Bit {
		return Max24Bit
	}
	if scaled < Min24Bit {
		return Min24Bit
	}
	return int32(scaled)
}

// SampleToFloat32 converts a 24-bit sample to a [-1, 1] float
func SampleToFloat32(sample int32) float32 {
	return float32(float64(sample) / Max24Bit)
}
