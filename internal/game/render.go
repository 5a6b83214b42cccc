package game

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-moles/internal/config"
	"github.com/vovakirdan/tui-moles/internal/core"
)

// KeyEscape is the key that ends the game.
const KeyEscape rune = 0x1B

// Display is the output half of the display surface.
type Display interface {
	// Clear blanks the surface before a new frame is drawn.
	Clear()
	// SetCursor moves the write position to (row, col).
	SetCursor(row, col int)
	// SetColor sets the color of subsequent text.
	SetColor(c core.Color)
	// WriteText writes text at the cursor.
	WriteText(text string)
	// Refresh publishes everything written since the last Clear.
	Refresh() error
}

// KeyReader is the input half of the display surface.
type KeyReader interface {
	// ReadKey blocks for one key press without echoing it.
	ReadKey(ctx context.Context) (rune, error)
}

// Surface is the full display surface collaborator.
type Surface interface {
	Display
	KeyReader
	Init() error
	Shutdown() error
}

// Renderer serializes full-board frames onto a Display. It only reads the
// board; game-over detection lives with the score writer.
type Renderer struct {
	mu      sync.Mutex
	display Display
	board   *Board
	params  config.Params
	rules   config.Rules
	notice  string
	frames  int
}

// NewRenderer creates a renderer for the board.
func NewRenderer(d Display, b *Board, params config.Params, rules config.Rules) *Renderer {
	return &Renderer{
		display: d,
		board:   b,
		params:  params,
		rules:   rules,
	}
}

// Render snapshots the board and writes one complete frame.
// Safe for concurrent use; frames never interleave.
func (r *Renderer) Render() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.board.Snapshot()
	r.display.Clear()
	DrawFrame(r.display, snap, r.params, r.rules, r.notice)
	r.frames++
	return r.display.Refresh()
}

// SetNotice sets a line shown under the footer on later frames.
func (r *Renderer) SetNotice(text string) {
	r.mu.Lock()
	r.notice = text
	r.mu.Unlock()
}

// Frames returns how many frames have been rendered.
func (r *Renderer) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

// Box pieces for one cell.
const (
	cellEdge  = "*---*"
	titleText = "Whack-a-Mole!"
	ruleLine  = "_____________________________"
)

// FrameSize returns the rows and columns a frame needs for these params.
func FrameSize(p config.Params, rules config.Rules) (rows, cols int) {
	l := rules.Layout
	boardRows := l.HeadingPadding + p.BoardHeight*l.CellHeight
	// rule, blank, hits, misses, 2 blank, heading, dashes, 4 params, blank, footer, blank, notice
	rows = boardRows + 16
	cols = core.Max(p.BoardWidth*l.CellWidth+len(statusText(StatusWon)), 56)
	return rows, cols
}

// DrawFrame writes the whole layout: board, score, parameters and footer.
//
// Cell i sits in column i%width and row i/width; each cell is a 3-row box
// showing its label only while Active.
func DrawFrame(d Display, s Snapshot, p config.Params, rules config.Rules, notice string) {
	l := rules.Layout

	d.SetColor(core.ColorBrightWhite)
	d.SetCursor(1, 8)
	d.WriteText(titleText)
	d.SetColor(core.ColorDefault)
	d.SetCursor(2, 0)
	d.WriteText(ruleLine)

	for i, state := range s.States {
		x, y := i%s.Width, i/s.Width
		row, col := l.HeadingPadding+y*l.CellHeight, x*l.CellWidth
		drawCell(d, row, col, s.Labels[i], state)
	}

	status := Evaluate(s.Counters, rules)
	if status.Over() {
		d.SetColor(statusColor(status))
		d.SetCursor(l.HeadingPadding+s.Height*l.CellHeight/2, s.Width*l.CellWidth)
		d.WriteText(statusText(status))
		d.SetColor(core.ColorDefault)
	}

	row := l.HeadingPadding + s.Height*l.CellHeight
	d.SetCursor(row, 0)
	d.WriteText(ruleLine)
	row += 2
	d.SetCursor(row, 0)
	d.WriteText(fmt.Sprintf("Total Hits: %d", s.Counters.Hits))
	row++
	d.SetCursor(row, 0)
	d.WriteText(fmt.Sprintf("Total Misses: %d", s.Counters.Misses))
	row += 3

	lines := []string{
		"Game Parameters",
		"---------------",
		fmt.Sprintf("Total Number of Moles:             %d", p.MoleTotal),
		fmt.Sprintf("Max Number of Moles out at a time: %d", p.MoleLimit),
		fmt.Sprintf("Hide Time: between %d ms and %d ms", p.HideMin.Milliseconds(), p.HideMax.Milliseconds()),
		fmt.Sprintf("Out Time:  between %d ms and %d ms", p.OutMin.Milliseconds(), p.OutMax.Milliseconds()),
	}
	for _, line := range lines {
		d.SetCursor(row, 0)
		d.WriteText(line)
		row++
	}

	row++
	d.SetColor(core.ColorGray)
	d.SetCursor(row, 0)
	d.WriteText("Press [ESC] to close.")
	d.SetColor(core.ColorDefault)

	if notice != "" {
		row += 2
		d.SetCursor(row, 0)
		d.WriteText(notice)
	}
}

func drawCell(d Display, row, col int, label rune, state CellState) {
	edge := core.ColorDefault
	if state == CellHit {
		edge = core.ColorGray
	}
	face := ' '
	if state == CellActive {
		face = label
	}

	d.SetColor(edge)
	d.SetCursor(row, col)
	d.WriteText(cellEdge)
	d.SetCursor(row+1, col)
	d.WriteText("| ")
	if state == CellActive {
		d.SetColor(core.ColorGreen)
	}
	d.WriteText(string(face))
	d.SetColor(edge)
	d.WriteText(" |")
	d.SetCursor(row+2, col)
	d.WriteText(cellEdge)
	d.SetColor(core.ColorDefault)
}

func statusText(s Status) string {
	switch s {
	case StatusWon:
		return "  YOU WIN" + strings.Repeat("!", 9)
	case StatusLost:
		return "  YOU LOSE"
	default:
		return ""
	}
}

func statusColor(s Status) core.Color {
	if s == StatusWon {
		return core.ColorYellow
	}
	return core.ColorRed
}
