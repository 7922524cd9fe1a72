// ABOUTME: Audio decoder package for reading persisted measures back
// ABOUTME: Reads WAV headers and PCM into float samples
// Package decode reads WAV files written by package encode.
//
// Example:
//
//	info, err := decode.ReadWAVInfo("measure.wav")
//	fmt.Println(info.Frames, info.Format)
package decode
