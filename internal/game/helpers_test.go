package game

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-moles/internal/config"
	"github.com/vovakirdan/tui-moles/internal/core"
)

// memSurface is an in-memory display surface that records frames and
// serves keys from a channel.
type memSurface struct {
	screen *core.Screen
	keys   chan rune

	mu     sync.Mutex
	last   string
	frames int

	inFrame   atomic.Int32
	overlap   atomic.Bool
	onRefresh func()
}

func newMemSurface() *memSurface {
	return &memSurface{
		screen: core.NewScreen(80, 40),
		keys:   make(chan rune, 64),
	}
}

func (s *memSurface) Init() error     { return nil }
func (s *memSurface) Shutdown() error { return nil }

func (s *memSurface) Clear() {
	if s.inFrame.Add(1) != 1 {
		s.overlap.Store(true)
	}
	s.screen.Clear()
}

func (s *memSurface) SetCursor(row, col int) { s.screen.Move(row, col) }
func (s *memSurface) SetColor(c core.Color)  { s.screen.SetPen(c) }
func (s *memSurface) WriteText(text string)  { s.screen.Write(text) }

func (s *memSurface) Refresh() error {
	if s.onRefresh != nil {
		s.onRefresh()
	}
	s.mu.Lock()
	s.last = s.screen.String()
	s.frames++
	s.mu.Unlock()
	s.inFrame.Add(-1)
	return nil
}

func (s *memSurface) ReadKey(ctx context.Context) (rune, error) {
	select {
	case r := <-s.keys:
		return r, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func (s *memSurface) lastFrame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// stubRand always picks the lower bound and a fixed coin.
type stubRand struct {
	flip bool
}

func (r stubRand) Duration(lo, _ time.Duration) time.Duration { return lo }
func (r stubRand) Flip() bool                                  { return r.flip }

func testParams(w, h, total, limit int, hide, out time.Duration) config.Params {
	return config.Params{
		BoardWidth:  w,
		BoardHeight: h,
		MoleTotal:   total,
		MoleLimit:   limit,
		HideMin:     hide,
		HideMax:     hide,
		OutMin:      out,
		OutMax:      out,
	}
}

func mustBoard(t *testing.T, w, h int) *Board {
	t.Helper()
	b, err := NewBoard(w, h)
	if err != nil {
		t.Fatalf("NewBoard(%d, %d) failed: %v", w, h, err)
	}
	return b
}

// waitFor polls cond until it holds or the timeout passes.
func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}
