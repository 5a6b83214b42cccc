package game

import (
	"fmt"
	"sync/atomic"

	"github.com/vovakirdan/tui-moles/internal/config"
)

// CellState is the visibility state of a single cell.
type CellState int32

const (
	CellHidden CellState = iota // Not visible
	CellActive                  // Visible and hittable
	CellHit                     // Whacked; terminal, never visible again
)

// String returns a human-readable name for the state.
func (s CellState) String() string {
	switch s {
	case CellHidden:
		return "Hidden"
	case CellActive:
		return "Active"
	case CellHit:
		return "Hit"
	default:
		return "Unknown"
	}
}

// canTransition reports whether from -> to is a legal edge.
// Legal edges: Hidden->Active, Active->Hidden, Active->Hit.
func canTransition(from, to CellState) bool {
	switch from {
	case CellHidden:
		return to == CellActive
	case CellActive:
		return to == CellHidden || to == CellHit
	default:
		return false
	}
}

// Cell is one addressable board position.
type Cell struct {
	Index int
	Label rune
	state atomic.Int32
}

// State returns the current state of the cell.
func (c *Cell) State() CellState {
	return CellState(c.state.Load())
}

// Counters holds the score.
type Counters struct {
	Hits   int
	Misses int
}

// Board is the shared game state: the cell array and score counters.
//
// Every cell state is an atomic value changed only by compare-and-set, so a
// mole clearing its own cell (Active->Hidden) and the input loop whacking it
// (Active->Hit) can race safely: exactly one of them wins.
type Board struct {
	width   int
	height  int
	cells   []Cell
	byLabel map[rune]int

	hits   atomic.Int64
	misses atomic.Int64
}

// NewBoard creates a width x height board with every cell hidden.
// Labels are assigned a, b, c, ... in index order.
func NewBoard(width, height int) (*Board, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("game: board dimensions must be positive, got %dx%d", width, height)
	}
	if width > config.MaxLabels || height > config.MaxLabels || width*height > config.MaxLabels {
		return nil, fmt.Errorf("game: %dx%d board exceeds %d cells: %w", width, height, config.MaxLabels, config.ErrBoardTooLarge)
	}

	n := width * height
	b := &Board{
		width:   width,
		height:  height,
		cells:   make([]Cell, n),
		byLabel: make(map[rune]int, n),
	}
	for i := range b.cells {
		label := rune('a' + i)
		b.cells[i].Index = i
		b.cells[i].Label = label
		b.byLabel[label] = i
	}
	return b, nil
}

// Width returns the board width in cells.
func (b *Board) Width() int {
	return b.width
}

// Height returns the board height in cells.
func (b *Board) Height() int {
	return b.height
}

// Len returns the number of cells.
func (b *Board) Len() int {
	return len(b.cells)
}

// Label returns the key label of cell i, or 0 if i is out of range.
func (b *Board) Label(i int) rune {
	if i < 0 || i >= len(b.cells) {
		return 0
	}
	return b.cells[i].Label
}

// State returns the state of cell i. Out-of-range indexes read as Hidden.
func (b *Board) State(i int) CellState {
	if i < 0 || i >= len(b.cells) {
		return CellHidden
	}
	return b.cells[i].State()
}

// CellForKey maps a key to the index of the cell carrying that label.
func (b *Board) CellForKey(key rune) (int, bool) {
	i, ok := b.byLabel[key]
	return i, ok
}

// Transition atomically moves cell i from one state to another.
// It fails if the edge is illegal, i is out of range, or the cell is no
// longer in the expected state.
func (b *Board) Transition(i int, from, to CellState) bool {
	if i < 0 || i >= len(b.cells) || !canTransition(from, to) {
		return false
	}
	return b.cells[i].state.CompareAndSwap(int32(from), int32(to))
}

// ActiveCount returns the number of cells currently Active.
func (b *Board) ActiveCount() int {
	n := 0
	for i := range b.cells {
		if b.cells[i].State() == CellActive {
			n++
		}
	}
	return n
}

// RecordHit increments the hit counter and returns the new score.
func (b *Board) RecordHit() Counters {
	h := b.hits.Add(1)
	return Counters{Hits: int(h), Misses: int(b.misses.Load())}
}

// RecordMiss increments the miss counter and returns the new score.
func (b *Board) RecordMiss() Counters {
	m := b.misses.Add(1)
	return Counters{Hits: int(b.hits.Load()), Misses: int(m)}
}

// Counters returns the current score.
func (b *Board) Counters() Counters {
	return Counters{Hits: int(b.hits.Load()), Misses: int(b.misses.Load())}
}

// Snapshot is a point-in-time read of the board for rendering.
// Cells are read one by one, so the snapshot is not a consistent cut across
// concurrent transitions.
type Snapshot struct {
	Width    int
	Height   int
	Labels   []rune
	States   []CellState
	Counters Counters
}

// Snapshot captures the current board.
func (b *Board) Snapshot() Snapshot {
	s := Snapshot{
		Width:    b.width,
		Height:   b.height,
		Labels:   make([]rune, len(b.cells)),
		States:   make([]CellState, len(b.cells)),
		Counters: b.Counters(),
	}
	for i := range b.cells {
		s.Labels[i] = b.cells[i].Label
		s.States[i] = b.cells[i].State()
	}
	return s
}
