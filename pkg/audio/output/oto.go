// ABOUTME: Oto-based audio output implementation
// ABOUTME: Feeds an oto player from a reader that runs the render callback
package output

import (
	"fmt"
	"log"
	"time"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
	"github.com/ebitengine/oto/v3"
)

// Oto output implementation using oto library
type Oto struct {
	otoCtx *oto.Context
	player *oto.Player
	reader *callbackReader
}

// callbackReader turns the render callback into the io.Reader oto pulls from.
// oto calls Read from its own goroutine, which plays the device-thread role.
type callbackReader struct {
	callback Callback
	scratch  []float32
}

// NewOto creates a new Oto output
func NewOto() Output {
	return &Oto{}
}

// Open initializes the oto context and player
func (o *Oto) Open(format audio.Format, framesPerBuffer int, callback Callback) error {
	if err := checkOpen(format, framesPerBuffer, callback); err != nil {
		return err
	}

	// oto only allows one context per process
	if o.otoCtx != nil {
		return fmt.Errorf("oto output already open")
	}

	op := &oto.NewContextOptions{
		SampleRate:   format.SampleRate,
		ChannelCount: format.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(framesPerBuffer) * time.Second / time.Duration(format.SampleRate),
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.reader = &callbackReader{
		callback: callback,
		scratch:  make([]float32, framesPerBuffer),
	}
	o.player = o.otoCtx.NewPlayer(o.reader)
	o.player.SetBufferSize(framesPerBuffer * format.Channels * float32Bytes)

	log.Printf("Audio output initialized: %s, %d frames per buffer (oto)", format, framesPerBuffer)
	return nil
}

// Read renders whole callback blocks into p as little-endian float32
func (r *callbackReader) Read(p []byte) (int, error) {
	return renderLE(p, r.scratch, r.callback) * float32Bytes, nil
}

// Start starts playback
func (o *Oto) Start() error {
	if o.player == nil {
		return ErrNotOpen
	}
	o.player.Play()
	return nil
}

// Stop pauses playback
func (o *Oto) Stop() error {
	if o.player == nil {
		return ErrNotOpen
	}
	o.player.Pause()
	return nil
}

// Close releases output resources
func (o *Oto) Close() error {
	if o.player != nil {
		if err := o.player.Close(); err != nil {
			log.Printf("Warning: oto player close error: %v", err)
		}
		o.player = nil
	}
	if o.otoCtx != nil {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	return nil
}
