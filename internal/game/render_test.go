package game

import (
	"strings"
	"sync"
	"testing"

	"github.com/vovakirdan/tui-moles/internal/config"
	"github.com/vovakirdan/tui-moles/internal/core"
)

func renderOnce(t *testing.T, b *Board, p config.Params, rules config.Rules) *memSurface {
	t.Helper()
	s := newMemSurface()
	if err := NewRenderer(s, b, p, rules).Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	return s
}

func TestDrawFrameCells(t *testing.T) {
	rules := config.DefaultRules()
	b := mustBoard(t, 3, 2)
	b.Transition(1, CellHidden, CellActive) // 'b', top row middle
	b.Transition(5, CellHidden, CellActive) // 'f', bottom row right
	b.Transition(5, CellActive, CellHit)

	s := renderOnce(t, b, testParams(3, 2, 6, 2, 0, 0), rules)

	top := rules.Layout.HeadingPadding
	if got := s.screen.Row(top); got != "*---* *---* *---*" {
		t.Errorf("Row(%d) = %q", top, got)
	}
	if got := s.screen.Row(top + 1); got != "|   | | b | |   |" {
		t.Errorf("Row(%d) = %q, expected only b visible", top+1, got)
	}
	if got := s.screen.Row(top + 4); got != "|   | |   | |   |" {
		t.Errorf("Row(%d) = %q, hit cell should be blank", top+4, got)
	}

	label := s.screen.GetCell(1*rules.Layout.CellWidth+2, top+1)
	if label.Color != core.ColorGreen {
		t.Errorf("active label color = %v, expected green", label.Color)
	}
	edge := s.screen.GetCell(2*rules.Layout.CellWidth, top+3)
	if edge.Color != core.ColorGray {
		t.Errorf("hit cell edge color = %v, expected gray", edge.Color)
	}
}

func TestDrawFrameScoreAndParams(t *testing.T) {
	b := mustBoard(t, 2, 2)
	b.RecordHit()
	b.RecordHit()
	b.RecordMiss()

	p := testParams(2, 2, 3, 2, 0, 0)
	p.HideMax = 900_000_000 // 900ms
	s := renderOnce(t, b, p, config.DefaultRules())
	frame := s.lastFrame()

	for _, want := range []string{
		"Whack-a-Mole!",
		"Total Hits: 2",
		"Total Misses: 1",
		"Total Number of Moles:             3",
		"Max Number of Moles out at a time: 2",
		"Hide Time: between 0 ms and 900 ms",
		"Press [ESC] to close.",
	} {
		if !strings.Contains(frame, want) {
			t.Errorf("frame missing %q:\n%s", want, frame)
		}
	}
	if strings.Contains(frame, "YOU") {
		t.Errorf("running game should show no status line:\n%s", frame)
	}
}

func TestDrawFrameStatusLine(t *testing.T) {
	rules := config.DefaultRules()
	rules.WinHits = 1
	rules.LoseMisses = 1

	won := mustBoard(t, 2, 2)
	won.RecordHit()
	if frame := renderOnce(t, won, testParams(2, 2, 1, 1, 0, 0), rules).lastFrame(); !strings.Contains(frame, "YOU WIN!!!!!!!!!") {
		t.Errorf("won frame missing status:\n%s", frame)
	}

	lost := mustBoard(t, 2, 2)
	lost.RecordMiss()
	if frame := renderOnce(t, lost, testParams(2, 2, 1, 1, 0, 0), rules).lastFrame(); !strings.Contains(frame, "YOU LOSE") {
		t.Errorf("lost frame missing status:\n%s", frame)
	}
}

func TestRenderIsReadOnly(t *testing.T) {
	rules := config.DefaultRules()
	b := mustBoard(t, 1, 1)
	for i := 0; i < rules.WinHits; i++ {
		b.RecordHit()
	}
	before := b.Snapshot()

	renderOnce(t, b, testParams(1, 1, 1, 1, 0, 0), rules)

	after := b.Snapshot()
	if before.Counters != after.Counters || before.States[0] != after.States[0] {
		t.Error("rendering must be a pure read of the board")
	}
}

func TestRendererConcurrentFramesDoNotInterleave(t *testing.T) {
	b := mustBoard(t, 4, 4)
	s := newMemSurface()
	r := NewRenderer(s, b, testParams(4, 4, 16, 4, 0, 0), config.DefaultRules())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(cell int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				b.Transition(cell, CellHidden, CellActive)
				r.Render()
				b.Transition(cell, CellActive, CellHidden)
				r.Render()
			}
		}(i)
	}
	wg.Wait()

	if s.overlap.Load() {
		t.Error("two renders wrote to the display at the same time")
	}
	if r.Frames() != 16*20*2 {
		t.Errorf("Frames() = %d, expected %d", r.Frames(), 16*20*2)
	}
}

func TestFrameSizeFitsLayout(t *testing.T) {
	rules := config.DefaultRules()
	p := testParams(5, 5, 25, 3, 0, 0)
	rows, cols := FrameSize(p, rules)

	s := newMemSurface()
	s.screen = core.NewScreen(cols, rows)
	r := NewRenderer(s, mustBoard(t, 5, 5), p, rules)
	r.SetNotice("Cleanup successful! Press any key to exit.")
	if err := r.Render(); err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	if got := s.screen.Row(rows - 1); !strings.HasPrefix(got, "Cleanup successful!") {
		t.Errorf("last row = %q, expected the notice to fit", got)
	}
}
