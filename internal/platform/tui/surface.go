package tui

import (
	"context"
	"errors"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-moles/internal/core"
	"github.com/vovakirdan/tui-moles/internal/game"
)

// ErrClosed is returned by ReadKey once the program has exited.
var ErrClosed = errors.New("tui: surface closed")

// keyBuffer is how many unread presses are held before new ones are dropped.
const keyBuffer = 64

// Surface implements game.Surface on a Bubble Tea program. The game draws
// into a back buffer; Refresh publishes a styled copy of it as one frame.
type Surface struct {
	mu   sync.Mutex
	back *core.Screen

	opts    []tea.ProgramOption
	program *tea.Program
	keys    chan rune
	done    chan struct{}
	runErr  error

	initOnce     sync.Once
	shutdownOnce sync.Once
}

var _ game.Surface = (*Surface)(nil)

// NewSurface creates a surface with a width x height back buffer.
// Options are passed to the Bubble Tea program after the defaults.
func NewSurface(width, height int, opts ...tea.ProgramOption) *Surface {
	return &Surface{
		back: core.NewScreen(width, height),
		opts: opts,
		keys: make(chan rune, keyBuffer),
		done: make(chan struct{}),
	}
}

// Init starts the program on the alternate screen.
func (s *Surface) Init() error {
	s.initOnce.Do(func() {
		opts := append([]tea.ProgramOption{tea.WithAltScreen()}, s.opts...)
		s.program = tea.NewProgram(NewModel(s.deliver), opts...)
		go func() {
			_, err := s.program.Run()
			s.runErr = err
			close(s.done)
		}()
	})
	return nil
}

// deliver hands a key to ReadKey without blocking the program's event loop.
func (s *Surface) deliver(r rune) {
	select {
	case s.keys <- r:
	default:
	}
}

// Shutdown stops the program and restores the terminal.
func (s *Surface) Shutdown() error {
	if s.program == nil {
		return nil
	}
	s.shutdownOnce.Do(func() {
		s.program.Quit()
		<-s.done
	})
	if s.runErr != nil && !errors.Is(s.runErr, tea.ErrProgramKilled) {
		return s.runErr
	}
	return nil
}

// Clear blanks the back buffer.
func (s *Surface) Clear() {
	s.mu.Lock()
	s.back.Clear()
	s.mu.Unlock()
}

// SetCursor moves the write position.
func (s *Surface) SetCursor(row, col int) {
	s.mu.Lock()
	s.back.Move(row, col)
	s.mu.Unlock()
}

// SetColor sets the color of later text.
func (s *Surface) SetColor(c core.Color) {
	s.mu.Lock()
	s.back.SetPen(c)
	s.mu.Unlock()
}

// WriteText writes at the cursor.
func (s *Surface) WriteText(text string) {
	s.mu.Lock()
	s.back.Write(text)
	s.mu.Unlock()
}

// Refresh publishes the back buffer. It returns ErrClosed if the program
// is gone and blocks until the event loop takes the frame otherwise.
func (s *Surface) Refresh() error {
	if s.program == nil {
		return ErrClosed
	}
	s.mu.Lock()
	view := RenderScreen(s.back)
	s.mu.Unlock()

	select {
	case <-s.done:
		return ErrClosed
	default:
	}
	s.program.Send(frameMsg(view))
	return nil
}

// ReadKey blocks for one key press.
func (s *Surface) ReadKey(ctx context.Context) (rune, error) {
	select {
	case r := <-s.keys:
		return r, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-s.done:
		return 0, ErrClosed
	}
}

// Screen returns a copy of the back buffer.
func (s *Surface) Screen() *core.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.back.Clone()
}
