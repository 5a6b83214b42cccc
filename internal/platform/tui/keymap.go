package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-moles/internal/game"
)

// KeyMap defines the key bindings shown in the play footer.
type KeyMap struct {
	Whack key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Whack, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Whack}, {k.Quit}}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Whack: key.NewBinding(
			key.WithKeys("a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m",
				"n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z"),
			key.WithHelp("a-z", "whack"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// MapKey translates a key message to the rune handed to the game.
// Quit keys become game.KeyEscape. Any other single printable rune is
// passed through unchanged so the game can count it; the bool is false
// for keys the game never sees (arrows, modifiers, pastes).
func (k KeyMap) MapKey(msg tea.KeyMsg) (rune, bool) {
	if key.Matches(msg, k.Quit) {
		return game.KeyEscape, true
	}
	if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
		return 0, false
	}
	if msg.Paste || msg.Alt || len(msg.Runes) != 1 {
		return 0, false
	}
	return msg.Runes[0], true
}
