// ABOUTME: Measure stream bridging the click generator and an audio device
// ABOUTME: Owns the measure buffer, play cursor and cross-goroutine completion flag
package rhythm

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	ErrEmptyMeasure = errors.New("measure has no frames")
	ErrIncomplete   = errors.New("measure not fully rendered")
)

// Stream renders one measure on demand and keeps a copy of everything it hands
// to the device. Render is the only entry point for the device callback; all
// other methods are safe to call from any goroutine.
type Stream struct {
	tempo  *Tempo
	buffer []float32
	total  int

	// cursor and completed are written only from Render
	cursor    atomic.Int64
	completed atomic.Bool
}

// NewStream allocates the measure buffer for tempo
func NewStream(tempo *Tempo) (*Stream, error) {
	total := tempo.TotalFrames()
	if total <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyMeasure, tempo)
	}

	return &Stream{
		tempo:  tempo,
		buffer: make([]float32, total),
		total:  total,
	}, nil
}

// pull renders up to blockSize samples into the measure buffer and returns them.
// Once the measure is complete it returns no samples and changes nothing.
func (s *Stream) pull(blockSize int) ([]float32, bool) {
	cursor := int(s.cursor.Load())
	count := min(blockSize, s.total-cursor)
	if count <= 0 {
		return nil, s.completed.Load()
	}

	block := s.buffer[cursor : cursor+count]
	Generate(s.tempo, block)

	cursor += count
	s.cursor.Store(int64(cursor))

	last := cursor == s.total
	if last {
		// Publishes the buffer writes above to Completed observers
		s.completed.Store(true)
	}
	return block, last
}

// Render is the device callback. It zero-fills out, then copies the next
// len(out) samples of the measure over it. After the measure ends every call
// leaves out silent. It returns the number of measure samples written.
func (s *Stream) Render(out []float32) int {
	clear(out)

	if s.completed.Load() {
		return 0
	}

	block, _ := s.pull(len(out))
	return copy(out, block)
}

// Completed reports whether the whole measure has been rendered
func (s *Stream) Completed() bool {
	return s.completed.Load()
}

// Cursor returns the number of samples rendered so far
func (s *Stream) Cursor() int {
	return int(s.cursor.Load())
}

// TotalFrames returns the measure length in samples
func (s *Stream) TotalFrames() int {
	return s.total
}

// Tempo returns the tempo the stream renders
func (s *Stream) Tempo() *Tempo {
	return s.tempo
}

// Samples returns the rendered measure. It fails until Completed reports true;
// the returned slice must not be modified.
func (s *Stream) Samples() ([]float32, error) {
	if !s.completed.Load() {
		return nil, fmt.Errorf("%w: %d of %d frames", ErrIncomplete, s.Cursor(), s.total)
	}
	return s.buffer, nil
}
