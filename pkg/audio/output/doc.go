// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the callback-driven Output interface and its backends
// Package output provides callback-driven audio playback.
//
// Backends: malgo (default), oto, PortAudio (build with -tags portaudio) and a
// null device that drives the callback without sound hardware.
//
// Example:
//
//	out, err := output.New("malgo")
//	err = out.Open(audio.Mono(48000, 16), 1024, stream.Render)
//	err = out.Start()
package output
