// Package tui provides the Bubble Tea integration for the game.
// It owns the terminal: frames drawn by the game are published to a Bubble
// Tea program, and key presses from the program are handed back to the game.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// clockInterval is how often the elapsed-time footer updates.
const clockInterval = time.Second

// TickMsg is sent to advance the elapsed-time clock.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
