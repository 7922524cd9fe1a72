// ABOUTME: Measure session orchestration
// ABOUTME: Allocates the stream, runs the device until the measure completes, writes the WAV
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Resonate-Protocol/autorhythm/internal/config"
	"github.com/Resonate-Protocol/autorhythm/pkg/audio/decode"
	"github.com/Resonate-Protocol/autorhythm/pkg/audio/encode"
	"github.com/Resonate-Protocol/autorhythm/pkg/audio/output"
	"github.com/Resonate-Protocol/autorhythm/pkg/rhythm"
	"github.com/google/uuid"
)

var (
	ErrNotMono     = errors.New("only mono output is supported")
	ErrBufferAlloc = errors.New("failed to allocate measure buffer")
	ErrAborted     = errors.New("session aborted")
)

// Progress is a snapshot of how much of the measure has been rendered
type Progress struct {
	Frames    int
	Total     int
	Beat      int // 1-based beat currently playing
	Completed bool
}

// Fraction returns rendered frames as a fraction of the measure
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Frames) / float64(p.Total)
}

// Session renders and records exactly one measure
type Session struct {
	ID string

	// OnProgress, when set, receives a snapshot on every poll tick and once on completion
	OnProgress func(Progress)

	config    config.Config
	tempo     *rhythm.Tempo
	stream    *rhythm.Stream
	output    output.Output
	writer    encode.FileEncoder
	persisted bool
}

// NewSession validates cfg, allocates the measure buffer and opens the output file.
// Nothing is allocated or created when the meter, tempo or channel count is invalid.
func NewSession(cfg config.Config, out output.Output) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tempo, err := rhythm.Configure(cfg.BeatsPerBar, cfg.Subdivisions, cfg.BPM, cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("invalid tempo: %w", err)
	}

	if cfg.Channels != 1 {
		return nil, fmt.Errorf("%w: got %d channels", ErrNotMono, cfg.Channels)
	}

	stream, err := rhythm.NewStream(tempo)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBufferAlloc, err)
	}

	writer, err := encode.CreateWAV(cfg.Output, cfg.Format())
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	return &Session{
		ID:     uuid.New().String(),
		config: cfg,
		tempo:  tempo,
		stream: stream,
		output: out,
		writer: writer,
	}, nil
}

// Tempo returns the session's tempo model
func (s *Session) Tempo() *rhythm.Tempo {
	return s.tempo
}

// Summary describes the measure about to be generated
func (s *Session) Summary() string {
	return fmt.Sprintf("Generating one measure of %d/4, smallest rhythm is 1/%d note, tempo is %d bpm, audio duration %.3f seconds",
		s.tempo.BeatsPerBar(), s.tempo.SmallestNote(), s.tempo.BPM(), s.tempo.MeasureDurationSeconds())
}

// Progress returns the current rendering progress
func (s *Session) Progress() Progress {
	frames := s.stream.Cursor()
	beat := frames/s.tempo.BeatDurationSamples() + 1
	if beat > s.tempo.BeatsPerBar() {
		beat = s.tempo.BeatsPerBar()
	}

	return Progress{
		Frames:    frames,
		Total:     s.stream.TotalFrames(),
		Beat:      beat,
		Completed: s.stream.Completed(),
	}
}

// Run plays the measure and writes it to the output file. Cancelling ctx
// before the measure completes aborts the session and removes the file.
func (s *Session) Run(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			if abortErr := s.writer.Abort(); abortErr != nil {
				log.Printf("[%s] Failed to discard output: %v", s.ID, abortErr)
			}
		}
	}()

	log.Printf("[%s] %s", s.ID, s.Summary())

	if err := s.output.Open(s.config.Format(), s.config.FramesPerBuffer, s.stream.Render); err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}

	if err := s.output.Start(); err != nil {
		_ = s.output.Close()
		return fmt.Errorf("failed to start device: %w", err)
	}
	log.Printf("[%s] Device started (%s, %d frames per buffer)", s.ID, s.config.Format(), s.config.FramesPerBuffer)

	waitErr := s.waitForCompletion(ctx)
	if waitErr == nil && s.config.Drain > 0 {
		// Let the device play out what it has already pulled
		select {
		case <-time.After(s.config.Drain):
		case <-ctx.Done():
		}
	}

	stopErr := s.output.Stop()
	if closeErr := s.output.Close(); closeErr != nil {
		log.Printf("[%s] Warning: device close error: %v", s.ID, closeErr)
	}

	if waitErr != nil {
		return waitErr
	}
	if stopErr != nil {
		return fmt.Errorf("failed to stop device: %w", stopErr)
	}

	return s.persist()
}

// waitForCompletion polls the stream until the measure is done
func (s *Session) waitForCompletion(ctx context.Context) error {
	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for !s.stream.Completed() {
		select {
		case <-ticker.C:
			s.report()
		case <-ctx.Done():
			return fmt.Errorf("%w at frame %d of %d: %w", ErrAborted, s.stream.Cursor(), s.stream.TotalFrames(), ctx.Err())
		}
	}

	s.report()
	return nil
}

func (s *Session) report() {
	if s.OnProgress != nil {
		s.OnProgress(s.Progress())
	}
}

// persist writes the completed measure and verifies the file holds exactly one measure
func (s *Session) persist() error {
	samples, err := s.stream.Samples()
	if err != nil {
		return err
	}
	expected := s.stream.TotalFrames()

	written, err := s.writer.Write(samples)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", s.writer.Path(), err)
	}
	if written != expected {
		return fmt.Errorf("%w: wrote %d of %d frames", encode.ErrFrameCountMismatch, written, expected)
	}

	if err := s.writer.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}

	info, err := decode.ReadWAVInfo(s.writer.Path())
	if err != nil {
		return fmt.Errorf("failed to verify output file: %w", err)
	}
	if info.Frames != expected {
		return fmt.Errorf("%w: %s holds %d of %d frames", encode.ErrFrameCountMismatch, s.writer.Path(), info.Frames, expected)
	}

	s.persisted = true
	log.Printf("[%s] Wrote %d frames (%v) to %s", s.ID, info.Frames, info.Duration, s.writer.Path())
	return nil
}

// Close discards the output file unless the measure was written successfully
func (s *Session) Close() error {
	if s.persisted {
		return nil
	}
	return s.writer.Abort()
}
