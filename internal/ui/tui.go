// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program that shows measure progress
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// TUI runs the progress display
type TUI struct {
	program  *tea.Program
	updates  chan tea.Msg
	quitChan chan struct{}
}

// NewModel creates a new TUI model
func NewModel(info Info, quitChan chan struct{}) Model {
	return Model{
		info:     info,
		quitChan: quitChan,
	}
}

// New creates a TUI for the described measure
func New(info Info) *TUI {
	t := &TUI{
		updates:  make(chan tea.Msg, 16),
		quitChan: make(chan struct{}, 1),
	}
	t.program = tea.NewProgram(NewModel(info, t.quitChan))
	return t
}

// Run blocks until the display exits
func (t *TUI) Run() error {
	go func() {
		for msg := range t.updates {
			t.program.Send(msg)
		}
	}()

	_, err := t.program.Run()
	return err
}

// Progress forwards a progress snapshot without blocking the caller
func (t *TUI) Progress(msg ProgressMsg) {
	select {
	case t.updates <- msg:
	default:
	}
}

// Finish reports the session result; the display exits after showing it
func (t *TUI) Finish(path string, frames int, err error) {
	if err != nil {
		t.updates <- ErrMsg{Err: err}
	} else {
		t.updates <- DoneMsg{Path: path, Frames: frames}
	}
	close(t.updates)
}

// QuitChan signals when the user asked to abort
func (t *TUI) QuitChan() <-chan struct{} {
	return t.quitChan
}
