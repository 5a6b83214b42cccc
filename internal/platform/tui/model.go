package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// frameMsg carries one rendered frame from the game to the program.
type frameMsg string

// Model is the Bubble Tea model backing a Surface. It shows the latest
// frame and forwards key presses; all game state lives outside it.
type Model struct {
	send    func(rune)
	keys    KeyMap
	help    help.Model
	frame   string
	started time.Time
	elapsed time.Duration
	width   int
	height  int
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// NewModel creates a model that hands mapped keys to send.
func NewModel(send func(rune)) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		send:    send,
		keys:    DefaultKeyMap(),
		help:    h,
		started: time.Now(),
	}
}

// Init starts the clock and sets the terminal title.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), tea.SetWindowTitle("Whack-a-Mole!"))
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if r, ok := m.keys.MapKey(msg); ok && m.send != nil {
			m.send(r)
		}
		return m, nil

	case frameMsg:
		m.frame = string(msg)
		return m, nil

	case TickMsg:
		m.elapsed = time.Time(msg).Sub(m.started).Truncate(time.Second)
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

// View renders the latest frame with a clock and key help below it.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Time: %s", m.elapsed)))
	b.WriteString("  ")
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// Frame returns the last frame received.
func (m Model) Frame() string {
	return m.frame
}
