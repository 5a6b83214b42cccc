// Package core provides the display-agnostic building blocks shared by the
// game and the terminal platform. It has no Bubble Tea dependency so the
// game logic stays testable without a terminal.
package core

import (
	"strings"
)

// Cell is a single character position on a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

// Screen is a 2D character buffer that renderers draw into.
// Writes go through a cursor, mirroring a curses-style surface:
// Move the cursor, then Write text at it.
type Screen struct {
	width  int
	height int
	cells  [][]Cell

	curX, curY int
	pen        Color
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  Max(width, 0),
		height: Max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = Max(width, 0), Max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	old := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	for y := 0; y < Min(oldH, height); y++ {
		copy(s.cells[y], old[y][:Min(oldW, width)])
	}
}

// Clear blanks the screen and homes the cursor.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = Cell{Rune: ' '}
		}
	}
	s.curX, s.curY = 0, 0
	s.pen = ColorDefault
}

// Move places the cursor at (row, col). Out-of-bounds positions are
// accepted; writes there are clipped.
func (s *Screen) Move(row, col int) {
	s.curY, s.curX = row, col
}

// SetPen sets the color used by subsequent writes.
func (s *Screen) SetPen(c Color) {
	s.pen = c
}

// Write draws text at the cursor and advances it past the text.
// A newline moves the cursor to column zero of the next row.
func (s *Screen) Write(text string) {
	for _, r := range text {
		if r == '\n' {
			s.curY++
			s.curX = 0
			continue
		}
		s.set(s.curX, s.curY, r, s.pen)
		s.curX++
	}
}

// DrawText writes a string horizontally starting at (x, y) without moving
// the cursor. Characters beyond the screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.set(x+i, y, r, c)
		i++
	}
}

func (s *Screen) set(x, y int, r rune, c Color) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, or space when out of bounds.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position, or a blank cell when out of bounds.
func (s *Screen) GetCell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{Rune: ' '}
	}
	return s.cells[y][x]
}

// Row returns the specified row as a string with trailing spaces removed.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		sb.WriteRune(c.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// String converts the screen buffer to plain text, one line per row.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Clone returns an independent copy of the screen contents.
func (s *Screen) Clone() *Screen {
	c := &Screen{width: s.width, height: s.height, curX: s.curX, curY: s.curY, pen: s.pen}
	c.allocate()
	for y := range s.cells {
		copy(c.cells[y], s.cells[y])
	}
	return c
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
