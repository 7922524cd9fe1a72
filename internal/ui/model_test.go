// ABOUTME: Tests for TUI model and state management
// ABOUTME: Tests progress updates, completion, errors and quit handling
package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func testInfo() Info {
	return Info{
		SessionID:    "test",
		BeatsPerBar:  4,
		SmallestNote: 8,
		BPM:          120,
		Duration:     2,
		Format:       "pcm 48000Hz 1ch 16-bit",
		Backend:      "null",
		Output:       "measure.wav",
	}
}

func TestNewModel(t *testing.T) {
	model := NewModel(testInfo(), nil)

	if model.completed {
		t.Error("expected completed to be false initially")
	}
	if model.frames != 0 || model.total != 0 {
		t.Errorf("expected no progress initially, got %d/%d", model.frames, model.total)
	}
	if model.quitting {
		t.Error("expected quitting to be false initially")
	}
}

func TestProgressMsg(t *testing.T) {
	model := NewModel(testInfo(), nil)

	updated, cmd := model.Update(ProgressMsg{Frames: 48000, Total: 96000, Beat: 3})
	if cmd != nil {
		t.Error("progress should not produce a command")
	}

	m := updated.(Model)
	if m.frames != 48000 || m.total != 96000 || m.beat != 3 {
		t.Errorf("unexpected progress state %d/%d beat %d", m.frames, m.total, m.beat)
	}
	if m.percent() != 50 {
		t.Errorf("expected 50%%, got %v", m.percent())
	}
}

func TestDoneMsgQuits(t *testing.T) {
	model := NewModel(testInfo(), nil)

	updated, cmd := model.Update(DoneMsg{Path: "out.wav", Frames: 96000})
	if cmd == nil {
		t.Fatal("expected quit command after completion")
	}

	m := updated.(Model)
	if !m.completed || m.written != "out.wav" {
		t.Errorf("expected completed write to out.wav, got completed=%v written=%q", m.completed, m.written)
	}
	if !strings.Contains(m.View(), "Wrote 96000 frames to out.wav") {
		t.Error("view should report the written file")
	}
}

func TestErrMsgQuits(t *testing.T) {
	model := NewModel(testInfo(), nil)

	updated, cmd := model.Update(ErrMsg{Err: errors.New("device gone")})
	if cmd == nil {
		t.Fatal("expected quit command after an error")
	}
	if !strings.Contains(updated.(Model).View(), "device gone") {
		t.Error("view should show the error")
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quit := make(chan struct{}, 1)
			model := NewModel(testInfo(), quit)

			updated, cmd := model.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			if !updated.(Model).quitting {
				t.Error("expected quitting to be set")
			}

			select {
			case <-quit:
			default:
				t.Error("expected a quit signal")
			}
		})
	}
}

func TestQuitSignalDoesNotBlock(t *testing.T) {
	quit := make(chan struct{}, 1)
	quit <- struct{}{}
	model := NewModel(testInfo(), quit)

	// A second quit with a full channel must not block
	model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
}

func TestOtherKeysIgnored(t *testing.T) {
	model := NewModel(testInfo(), nil)

	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if cmd != nil {
		t.Error("unexpected command for an unbound key")
	}
	if updated.(Model).quitting {
		t.Error("unbound key should not quit")
	}
}

func TestWindowSize(t *testing.T) {
	model := NewModel(testInfo(), nil)

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m := updated.(Model)
	if m.width != 80 || m.height != 24 {
		t.Errorf("expected 80x24, got %dx%d", m.width, m.height)
	}
}

func TestViewShowsMeasure(t *testing.T) {
	view := NewModel(testInfo(), nil).View()

	for _, want := range []string{"4/4", "1/8 note", "120 bpm", "measure.wav", "Playing..."} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRenderBar(t *testing.T) {
	tests := []struct {
		value, max, width int
		filled            int
	}{
		{0, 100, 10, 0},
		{50, 100, 10, 5},
		{100, 100, 10, 10},
		{150, 100, 10, 10},
		{5, 0, 10, 0},
	}

	for _, tt := range tests {
		bar := renderBar(tt.value, tt.max, tt.width)
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("renderBar(%d, %d, %d) filled %d, want %d", tt.value, tt.max, tt.width, got, tt.filled)
		}
		if got := strings.Count(bar, "█") + strings.Count(bar, "░"); got != tt.width {
			t.Errorf("renderBar(%d, %d, %d) width %d, want %d", tt.value, tt.max, tt.width, got, tt.width)
		}
	}
}
