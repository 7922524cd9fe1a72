// ABOUTME: Audio encoder package for persisting rendered PCM
// ABOUTME: Provides the Encoder interface, PCM quantization and a WAV file writer
// Package encode writes rendered float samples to disk.
//
// Supports: PCM (16-bit and 24-bit) in a mono WAV container.
//
// Example:
//
//	w, err := encode.CreateWAV("measure.wav", audio.Mono(48000, 16))
//	frames, err := w.Write(samples)
//	err = w.Close()
package encode
