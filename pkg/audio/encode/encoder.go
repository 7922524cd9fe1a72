// ABOUTME: Encoder interface definition
// ABOUTME: Common interface for audio file writers
package encode

// Encoder persists float samples in [-1, 1]
type Encoder interface {
	// Write encodes samples and returns the number of frames written
	Write(samples []float32) (int, error)

	// Close flushes headers and releases resources
	Close() error
}

// FileEncoder is an Encoder backed by a file that can be discarded
type FileEncoder interface {
	Encoder

	// Path returns the file being written
	Path() string

	// Abort closes and removes the file
	Abort() error
}
