package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-moles/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one styled run, and trailing
// blanks on each row are dropped.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	last := lastNonBlankRow(s)
	for y := 0; y <= last; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		width := rowWidth(s, y)

		x := 0
		for x < width {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < width {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// rowWidth returns the width of row y without trailing blanks.
func rowWidth(s *core.Screen, y int) int {
	for x := s.Width() - 1; x >= 0; x-- {
		if s.Get(x, y) != ' ' {
			return x + 1
		}
	}
	return 0
}

func lastNonBlankRow(s *core.Screen) int {
	for y := s.Height() - 1; y >= 0; y-- {
		if rowWidth(s, y) > 0 {
			return y
		}
	}
	return -1
}
