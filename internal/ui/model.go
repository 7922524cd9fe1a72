// ABOUTME: Bubbletea model for the measure progress display
// ABOUTME: Defines display state, messages and rendering
package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Info describes the measure being generated
type Info struct {
	SessionID    string
	BeatsPerBar  int
	SmallestNote int
	BPM          int
	Duration     float64 // seconds
	Format       string
	Backend      string
	Output       string
}

// ProgressMsg reports how far the device has pulled through the measure
type ProgressMsg struct {
	Frames    int
	Total     int
	Beat      int
	Completed bool
}

// DoneMsg reports that the measure was written
type DoneMsg struct {
	Path   string
	Frames int
}

// ErrMsg reports that the session failed
type ErrMsg struct {
	Err error
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	accentStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("220"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().Faint(true)
)

// Model represents the TUI state
type Model struct {
	info Info

	frames    int
	total     int
	beat      int
	completed bool

	written  string
	err      error
	quitting bool

	quitChan chan struct{}

	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case ProgressMsg:
		m.applyProgress(msg)
	case DoneMsg:
		m.written = msg.Path
		m.frames = msg.Frames
		m.completed = true
		return m, tea.Quit
	case ErrMsg:
		m.err = msg.Err
		return m, tea.Quit
	}

	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("autorhythm"))
	b.WriteString("\n")

	m.writeField(&b, "Meter: ", fmt.Sprintf("%d/4, smallest rhythm 1/%d note", m.info.BeatsPerBar, m.info.SmallestNote))
	m.writeField(&b, "Tempo: ", fmt.Sprintf("%d bpm, %.3fs", m.info.BPM, m.info.Duration))
	m.writeField(&b, "Device: ", fmt.Sprintf("%s (%s)", m.info.Backend, m.info.Format))
	m.writeField(&b, "Output: ", m.info.Output)
	b.WriteString("\n")

	b.WriteString(m.renderBeats())
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("[%s] %3.0f%%\n\n", renderBar(m.frames, m.total, 40), m.percent()))

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.written != "":
		b.WriteString(accentStyle.Render(fmt.Sprintf("Wrote %d frames to %s", m.frames, m.written)))
	case m.quitting:
		b.WriteString(valueStyle.Render("Aborting..."))
	case m.completed:
		b.WriteString(valueStyle.Render("Measure complete, writing file..."))
	default:
		b.WriteString(valueStyle.Render("Playing..."))
	}
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("Press 'q' or Ctrl+C to abort"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) writeField(b *strings.Builder, name, value string) {
	b.WriteString(headerStyle.Render(name))
	b.WriteString(valueStyle.Render(value))
	b.WriteString("\n")
}

// renderBeats draws one marker per beat with the current one lit
func (m Model) renderBeats() string {
	markers := make([]string, m.info.BeatsPerBar)
	for i := range markers {
		switch {
		case m.total > 0 && i+1 == m.beat && !m.completed:
			markers[i] = accentStyle.Render("●")
		case m.completed || i+1 < m.beat:
			markers[i] = valueStyle.Render("●")
		default:
			markers[i] = valueStyle.Render("○")
		}
	}
	return strings.Join(markers, " ")
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.frames) * 100 / float64(m.total)
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		select {
		case m.quitChan <- struct{}{}:
		default:
		}
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) applyProgress(msg ProgressMsg) {
	m.frames = msg.Frames
	m.total = msg.Total
	m.beat = msg.Beat
	m.completed = msg.Completed
}

func renderBar(value, max, width int) string {
	filled := 0
	if max > 0 {
		filled = (value * width) / max
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
