// ABOUTME: Audio fundamentals package providing core types and utilities
// ABOUTME: Defines Format and sample conversion functions
// Package audio provides fundamental audio types and utilities.
//
// This package defines core types used throughout autorhythm:
//   - Format: Describes an audio stream format (codec, sample rate, channels, bit depth)
//
// It also provides utilities for converting between sample formats:
//   - float32 ↔ 24-bit int32 conversions
//   - 16-bit ↔ 24-bit conversions
//
// Example:
//
//	format := audio.Mono(48000, 16)
//
//	// Convert a rendered float sample to the 24-bit range
//	sample24 := audio.SampleFromFloat32(0.5)
package audio
