// ABOUTME: Rhythm synthesis engine package
// ABOUTME: Tempo model, click generator and the callback-driven measure stream
// Package rhythm renders one measure of metronome clicks for a live audio device.
//
// The package is built around three pieces:
//   - Tempo: validated meter/tempo parameters plus the click oscillator state
//   - Generate: fills sample slices with the click pattern, advancing the Tempo
//   - Stream: owns the measure buffer and exposes Render as a device callback
//
// Render is meant to be called from an audio device's callback context. It never
// blocks or allocates. A supervising goroutine polls Completed and reads Samples
// once the measure has been fully rendered.
//
// Example:
//
//	tempo, err := rhythm.Configure(4, 2, 120, 48000)
//	stream, err := rhythm.NewStream(tempo)
//	out.Open(format, 1024, stream.Render)
//	for !stream.Completed() {
//	    time.Sleep(100 * time.Millisecond)
//	}
//	samples, err := stream.Samples()
package rhythm
