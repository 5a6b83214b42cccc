package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-moles/internal/storage"
)

// ScoresKeyMap defines the key bindings for the results browser.
type ScoresKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoresKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoresKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Quit}}
}

// DefaultScoresKeyMap returns default key bindings.
func DefaultScoresKeyMap() ScoresKeyMap {
	return ScoresKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "recent/best"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ResultSource loads stored results for the browser.
type ResultSource interface {
	RecentResults(limit int) ([]storage.ResultEntry, error)
	TopResults(limit int) ([]storage.ResultEntry, error)
}

// ScoresModel is the Bubble Tea model for the results browser.
type ScoresModel struct {
	source  ResultSource
	limit   int
	best    bool
	entries []storage.ResultEntry
	stats   *storage.Stats
	err     error
	table   table.Model
	help    help.Model
	keys    ScoresKeyMap
	height  int
}

// NewScoresModel creates a results browser showing up to limit rows,
// starting on the best list when best is set.
func NewScoresModel(src ResultSource, stats *storage.Stats, limit, height int, best bool) ScoresModel {
	h := help.New()
	h.ShowAll = false
	m := ScoresModel{
		source: src,
		limit:  limit,
		best:   best,
		stats:  stats,
		help:   h,
		keys:   DefaultScoresKeyMap(),
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

func (m *ScoresModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(ResultColumns()),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoresModel) load() {
	if m.source == nil {
		m.entries = nil
	} else if m.best {
		m.entries, m.err = m.source.TopResults(m.limit)
	} else {
		m.entries, m.err = m.source.RecentResults(m.limit)
	}
	m.table.SetRows(ResultRows(m.entries))
	m.table.GotoTop()
}

// ResultColumns returns the results table columns.
func ResultColumns() []table.Column {
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Outcome", Width: 8},
		{Title: "Hits", Width: 5},
		{Title: "Misses", Width: 6},
		{Title: "Board", Width: 6},
		{Title: "Moles", Width: 6},
		{Title: "Time", Width: 8},
	}
}

// ResultRows formats stored results as table rows.
func ResultRows(entries []storage.ResultEntry) []table.Row {
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			e.CreatedAt.Local().Format("Jan 02 15:04"),
			e.Outcome,
			fmt.Sprintf("%d", e.Hits),
			fmt.Sprintf("%d", e.Misses),
			fmt.Sprintf("%dx%d", e.BoardWidth, e.BoardHeight),
			fmt.Sprintf("%d/%d", e.MoleLimit, e.MoleTotal),
			e.Duration.Round(time.Second).String(),
		}
	}
	return rows
}

// Init initializes the model.
func (m ScoresModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the results browser.
func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.best = !m.best
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.table.SetHeight(max(m.height-10, 3))
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the results browser.
func (m ScoresModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	title := "RECENT GAMES"
	if m.best {
		title = "BEST GAMES"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	if m.stats != nil {
		b.WriteString(StatsLine(*m.stats))
	}
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(tableStyle.Render("Cannot load results: " + m.err.Error()))
	case len(m.entries) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
		b.WriteString(tableStyle.Render(emptyStyle.Render("No games recorded yet.")))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// StatsLine summarizes aggregated results on one line.
func StatsLine(s storage.Stats) string {
	return fmt.Sprintf("%d games: %d won, %d lost, %d quit. Best: %d hits.",
		s.Games, s.Wins, s.Losses, s.Quits, s.BestHits)
}

// RunScores runs the results browser on the alternate screen.
func RunScores(src ResultSource, stats *storage.Stats, limit, height int, best bool) error {
	p := tea.NewProgram(NewScoresModel(src, stats, limit, height, best), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
