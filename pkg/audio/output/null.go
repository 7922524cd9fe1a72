// ABOUTME: Null audio output that drives the callback without hardware
// ABOUTME: Used for headless runs and tests; optionally paced in real time
package output

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Resonate-Protocol/autorhythm/pkg/audio"
)

// Null calls the callback from its own goroutine with fixed-size, sequential
// blocks, the way a sound card would, but discards the audio.
type Null struct {
	// Realtime paces callbacks at the block duration; otherwise blocks are
	// requested back to back until the callback reports silence.
	Realtime bool

	// Tap, when set, sees every block after the callback filled it. It runs
	// on the device goroutine and must not keep the slice.
	Tap func(block []float32)

	callback Callback
	block    []float32
	period   time.Duration

	calls   atomic.Int64
	stop    chan struct{}
	done    chan struct{}
	stopped sync.Once
}

// NewNull creates a null output
func NewNull(realtime bool) *Null {
	return &Null{Realtime: realtime}
}

// Open records the callback and block size
func (n *Null) Open(format audio.Format, framesPerBuffer int, callback Callback) error {
	if err := checkOpen(format, framesPerBuffer, callback); err != nil {
		return err
	}

	n.callback = callback
	n.block = make([]float32, framesPerBuffer)
	n.period = time.Duration(framesPerBuffer) * time.Second / time.Duration(format.SampleRate)
	return nil
}

// Start launches the device goroutine
func (n *Null) Start() error {
	if n.callback == nil {
		return ErrNotOpen
	}
	if n.stop != nil {
		return errors.New("null output already started")
	}

	n.stop = make(chan struct{})
	n.done = make(chan struct{})
	go n.run()
	return nil
}

func (n *Null) run() {
	defer close(n.done)

	var tick <-chan time.Time
	if n.Realtime {
		ticker := time.NewTicker(n.period)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-n.stop:
			return
		default:
		}

		written := n.callback(n.block)
		n.calls.Add(1)
		if n.Tap != nil {
			n.Tap(n.block)
		}

		switch {
		case tick != nil:
			select {
			case <-tick:
			case <-n.stop:
				return
			}
		case written == 0:
			// Nothing left to render, idle instead of spinning
			select {
			case <-time.After(n.period):
			case <-n.stop:
				return
			}
		}
	}
}

// Stop halts the device goroutine and waits for the last callback to return
func (n *Null) Stop() error {
	if n.stop == nil {
		return ErrNotOpen
	}
	n.stopped.Do(func() {
		close(n.stop)
	})
	<-n.done
	return nil
}

// Close releases resources
func (n *Null) Close() error {
	if n.stop != nil {
		return n.Stop()
	}
	return nil
}

// Calls returns how many times the callback ran
func (n *Null) Calls() int64 {
	return n.calls.Load()
}
