// Package game implements the whack-a-mole simulation: a board shared by one
// actor goroutine per mole, a bounded admission gate limiting how many moles
// are visible at once, an input loop resolving key presses, and a serialized
// renderer writing frames to a display surface.
package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-moles/internal/config"
)

// ErrActor is wrapped when an actor goroutine fails.
var ErrActor = errors.New("actor failed")

// Result summarizes a finished run.
type Result struct {
	ID        string
	Params    config.Params
	Counters  Counters
	Status    Status // StatusRunning means the player quit
	StartedAt time.Time
	Duration  time.Duration
}

// Quit reports whether the run ended without a win or loss.
func (r Result) Quit() bool {
	return !r.Status.Over()
}

// ResultSaver persists finished runs. Implemented by the storage package.
type ResultSaver interface {
	SaveResult(r Result) error
}

// Option configures a Game.
type Option func(*Game)

// WithRand sets the timing source. Defaults to a time-seeded NewRand.
func WithRand(r Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithLogger sets the logger. Defaults to discarding output.
func WithLogger(l *log.Logger) Option {
	return func(g *Game) { g.logger = l }
}

// WithResultSaver stores each finished run.
func WithResultSaver(s ResultSaver) Option {
	return func(g *Game) { g.saver = s }
}

// Game is the supervisor: it owns the shared state, starts the actors,
// and joins them all before reporting the result.
type Game struct {
	params  config.Params
	rules   config.Rules
	surface Surface
	rng     Rand
	logger  *log.Logger
	saver   ResultSaver

	board    *Board
	gate     *Gate
	renderer *Renderer
}

// New builds a game on an initialized surface.
func New(params config.Params, rules config.Rules, surface Surface, opts ...Option) (*Game, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	board, err := NewBoard(params.BoardWidth, params.BoardHeight)
	if err != nil {
		return nil, err
	}
	if board.Len() > rules.MaxCells {
		return nil, &config.ConfigError{
			Field:  "board",
			Reason: fmt.Sprintf("%d cells exceeds max_cells = %d", board.Len(), rules.MaxCells),
			Err:    config.ErrBoardTooLarge,
		}
	}
	// Params built outside ParseArgs may ask for more moles than cells
	params.MoleTotal = min(max(params.MoleTotal, 0), board.Len())

	g := &Game{
		params:  params,
		rules:   rules,
		surface: surface,
		board:   board,
		gate:    NewGate(params.MoleLimit),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewRand(0)
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.renderer = NewRenderer(surface, board, params, rules)
	return g, nil
}

// Board returns the shared board.
func (g *Game) Board() *Board {
	return g.board
}

// Gate returns the admission gate.
func (g *Game) Gate() *Gate {
	return g.gate
}

// Renderer returns the frame renderer.
func (g *Game) Renderer() *Renderer {
	return g.renderer
}

// Run plays one game. It returns once every actor has exited, which happens
// after escape, a win or loss, or cancellation of ctx.
func (g *Game) Run(ctx context.Context) (Result, error) {
	flag := NewTerminationFlag(ctx)
	defer flag.Set()

	started := time.Now()
	g.logger.Info("game started",
		"board", fmt.Sprintf("%dx%d", g.params.BoardWidth, g.params.BoardHeight),
		"moles", g.params.MoleTotal, "limit", g.params.MoleLimit)

	var eg errgroup.Group
	spawn := func(name string, fn func() error) {
		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("game: %s: %w: %v", name, ErrActor, r)
				}
				if err != nil {
					flag.Set()
				}
			}()
			return fn()
		})
	}

	input := &InputLoop{
		board:  g.board,
		keys:   g.surface,
		render: g.renderer,
		flag:   flag,
		rules:  g.rules,
		logger: g.logger.WithPrefix("input"),
	}
	spawn("input loop", input.Run)

	for i := 0; i < g.params.MoleTotal; i++ {
		m := &Mole{
			cell:   i,
			board:  g.board,
			gate:   g.gate,
			render: g.renderer,
			rng:    g.rng,
			params: g.params,
			flag:   flag,
			logger: g.logger.WithPrefix(fmt.Sprintf("mole-%c", g.board.Label(i))),
		}
		spawn(fmt.Sprintf("mole %d", i), m.Run)
	}

	err := eg.Wait()

	res := Result{
		ID:        uuid.NewString(),
		Params:    g.params,
		Counters:  g.board.Counters(),
		StartedAt: started,
		Duration:  time.Since(started),
	}
	res.Status = Evaluate(res.Counters, g.rules)

	if err != nil {
		g.logger.Error("game aborted", "error", err)
		return res, err
	}

	g.logger.Info("game finished", "status", res.Status,
		"hits", res.Counters.Hits, "misses", res.Counters.Misses, "duration", res.Duration)

	if g.saver != nil {
		if saveErr := g.saver.SaveResult(res); saveErr != nil {
			g.logger.Warn("could not save result", "error", saveErr)
		}
	}
	return res, nil
}

// AwaitDismiss shows the closing notice and waits for one key press.
func (g *Game) AwaitDismiss(ctx context.Context) error {
	g.renderer.SetNotice("Cleanup successful! Press any key to exit.")
	if err := g.renderer.Render(); err != nil {
		return err
	}
	if _, err := g.surface.ReadKey(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
