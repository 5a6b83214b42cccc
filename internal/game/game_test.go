package game

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vovakirdan/tui-moles/internal/config"
)

type recordingSaver struct {
	mu      sync.Mutex
	results []Result
}

func (s *recordingSaver) SaveResult(r Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, r)
	return nil
}

type runOutcome struct {
	res Result
	err error
}

func runAsync(ctx context.Context, g *Game) <-chan runOutcome {
	out := make(chan runOutcome, 1)
	go func() {
		res, err := g.Run(ctx)
		out <- runOutcome{res, err}
	}()
	return out
}

func TestNewRejectsLargeBoard(t *testing.T) {
	_, err := New(testParams(6, 5, 3, 2, 0, 0), config.DefaultRules(), newMemSurface())
	if !errors.Is(err, config.ErrBoardTooLarge) {
		t.Errorf("New() error = %v, expected ErrBoardTooLarge", err)
	}
}

func TestNewClampsMoleTotal(t *testing.T) {
	g, err := New(testParams(3, 3, 20, 2, 0, 0), config.DefaultRules(), newMemSurface())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if g.params.MoleTotal != 9 {
		t.Errorf("MoleTotal = %d, expected 9", g.params.MoleTotal)
	}
	if g.Gate().Capacity() != 2 {
		t.Errorf("Gate().Capacity() = %d, expected 2", g.Gate().Capacity())
	}
}

func TestGameActiveLimitInvariant(t *testing.T) {
	const limit = 3
	s := newMemSurface()
	p := config.Params{
		BoardWidth: 5, BoardHeight: 5, MoleTotal: 25, MoleLimit: limit,
		HideMin: 0, HideMax: 2 * time.Millisecond,
		OutMin: time.Millisecond, OutMax: 3 * time.Millisecond,
	}
	g, err := New(p, config.DefaultRules(), s, WithRand(NewRand(42)))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	var violations atomic.Int32
	check := func() {
		if g.Board().ActiveCount() > limit {
			violations.Add(1)
		}
		if g.Gate().InUse() > limit {
			violations.Add(1)
		}
	}
	s.onRefresh = check

	sampleDone := make(chan struct{})
	go func() {
		defer close(sampleDone)
		for i := 0; i < 2000; i++ {
			check()
			time.Sleep(50 * time.Microsecond)
		}
	}()

	out := runAsync(context.Background(), g)
	<-sampleDone
	s.keys <- KeyEscape

	select {
	case o := <-out:
		if o.err != nil {
			t.Fatalf("Run() failed: %v", o.err)
		}
		if !o.res.Quit() {
			t.Errorf("Status = %v, expected a quit", o.res.Status)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run() did not return after escape")
	}

	if v := violations.Load(); v != 0 {
		t.Errorf("observed %d states with more than %d moles out", v, limit)
	}
	if s.overlap.Load() {
		t.Error("frames interleaved on the display")
	}
	if g.Gate().InUse() != 0 {
		t.Errorf("InUse() = %d after join, expected 0", g.Gate().InUse())
	}
}

func TestGameShutdownBound(t *testing.T) {
	s := newMemSurface()
	// Long sleeps everywhere: exit must not wait them out
	p := testParams(3, 3, 9, 2, 5*time.Second, 5*time.Second)
	g, err := New(p, config.DefaultRules(), s, WithRand(stubRand{flip: true}))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out := runAsync(context.Background(), g)
	waitFor(t, time.Second, func() bool { return g.Board().ActiveCount() == 2 })

	start := time.Now()
	s.keys <- KeyEscape

	select {
	case o := <-out:
		if o.err != nil {
			t.Fatalf("Run() failed: %v", o.err)
		}
	case <-time.After(time.Second):
		t.Fatal("actors did not exit promptly after escape")
	}
	if elapsed := time.Since(start); elapsed > p.MaxSleep() {
		t.Errorf("shutdown took %v, bound is %v", elapsed, p.MaxSleep())
	}
}

func TestGameContextCancel(t *testing.T) {
	s := newMemSurface()
	g, err := New(testParams(2, 2, 4, 1, time.Millisecond, time.Millisecond), config.DefaultRules(), s)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	out := runAsync(ctx, g)
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case o := <-out:
		if o.err != nil {
			t.Errorf("Run() error = %v, expected nil on cancel", o.err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestGameWinSavesResult(t *testing.T) {
	rules := config.DefaultRules()
	rules.WinHits = 1
	s := newMemSurface()
	saver := &recordingSaver{}
	p := testParams(1, 1, 1, 1, 0, 5*time.Second)
	g, err := New(p, rules, s, WithRand(stubRand{flip: true}), WithResultSaver(saver))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	out := runAsync(context.Background(), g)
	waitFor(t, time.Second, func() bool { return g.Board().State(0) == CellActive })
	s.keys <- 'a'

	var o runOutcome
	select {
	case o = <-out:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after the winning hit")
	}
	if o.err != nil {
		t.Fatalf("Run() failed: %v", o.err)
	}

	if o.res.Status != StatusWon {
		t.Errorf("Status = %v, expected won", o.res.Status)
	}
	if o.res.Counters != (Counters{Hits: 1}) {
		t.Errorf("Counters = %+v, expected {1 0}", o.res.Counters)
	}
	if o.res.ID == "" {
		t.Error("result should carry an id")
	}
	if g.Gate().InUse() != 0 {
		t.Errorf("InUse() = %d after join, expected 0", g.Gate().InUse())
	}

	saver.mu.Lock()
	defer saver.mu.Unlock()
	if len(saver.results) != 1 || saver.results[0].ID != o.res.ID {
		t.Errorf("saver got %d results, expected the run result", len(saver.results))
	}
}

// panicSurface fails inside the input actor.
type panicSurface struct {
	*memSurface
}

func (p panicSurface) ReadKey(ctx context.Context) (rune, error) {
	panic("keyboard on fire")
}

func TestGameActorPanic(t *testing.T) {
	s := panicSurface{newMemSurface()}
	g, err := New(testParams(2, 2, 4, 2, 5*time.Second, 5*time.Second), config.DefaultRules(), s)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	select {
	case o := <-runAsync(context.Background(), g):
		if !errors.Is(o.err, ErrActor) {
			t.Errorf("Run() error = %v, expected ErrActor", o.err)
		}
	case <-time.After(time.Second):
		t.Fatal("a failed actor should stop the whole game")
	}
}

func TestAwaitDismiss(t *testing.T) {
	s := newMemSurface()
	g, err := New(testParams(2, 1, 0, 1, 0, 0), config.DefaultRules(), s)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	s.keys <- 'q'
	if err := g.AwaitDismiss(context.Background()); err != nil {
		t.Fatalf("AwaitDismiss() failed: %v", err)
	}
	if frame := s.lastFrame(); !strings.Contains(frame, "Press any key to exit.") {
		t.Errorf("closing notice missing from frame:\n%s", frame)
	}
}

func TestNewHonoursMaxCells(t *testing.T) {
	rules := config.DefaultRules()
	rules.MaxCells = 4
	_, err := New(testParams(3, 2, 6, 2, 0, 0), rules, newMemSurface())
	if !errors.Is(err, config.ErrBoardTooLarge) || !errors.Is(err, config.ErrConfig) {
		t.Errorf("New() error = %v, expected a ConfigError wrapping ErrBoardTooLarge", err)
	}
}
