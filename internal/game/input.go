package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-moles/internal/config"
)

// Outcome classifies how a single key press was resolved.
type Outcome int

const (
	OutcomeIgnored Outcome = iota // Key carries no cell label
	OutcomeHit
	OutcomeMiss
	OutcomeQuit
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeIgnored:
		return "ignored"
	case OutcomeHit:
		return "hit"
	case OutcomeMiss:
		return "miss"
	case OutcomeQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Resolution is the result of resolving one key press.
type Resolution struct {
	Outcome  Outcome
	Cell     int // -1 unless the key names a cell
	Counters Counters
	Status   Status
}

// InputLoop reads keys and resolves them against the board. It is the only
// writer of the score and of the Active->Hit transition.
type InputLoop struct {
	board  *Board
	keys   KeyReader
	render renderer
	flag   *TerminationFlag
	rules  config.Rules
	logger *log.Logger
}

// Resolve applies one key press to the board.
//
// A key naming an Active cell whacks it and scores a hit; a key naming any
// other cell scores a miss. Keys that name no cell change nothing.
func (l *InputLoop) Resolve(key rune) Resolution {
	if key == KeyEscape {
		return Resolution{Outcome: OutcomeQuit, Cell: -1, Counters: l.board.Counters(), Status: StatusRunning}
	}

	cell, ok := l.board.CellForKey(key)
	if !ok {
		c := l.board.Counters()
		return Resolution{Outcome: OutcomeIgnored, Cell: -1, Counters: c, Status: Evaluate(c, l.rules)}
	}

	res := Resolution{Cell: cell}
	if l.board.Transition(cell, CellActive, CellHit) {
		res.Outcome = OutcomeHit
		res.Counters = l.board.RecordHit()
	} else {
		res.Outcome = OutcomeMiss
		res.Counters = l.board.RecordMiss()
	}
	res.Status = Evaluate(res.Counters, l.rules)
	return res
}

// Run reads keys until escape, game over, or the flag is set by someone else.
func (l *InputLoop) Run() error {
	l.redraw()

	ctx := l.flag.Context()
	for !l.flag.IsSet() {
		key, err := l.keys.ReadKey(ctx)
		if err != nil {
			if l.flag.IsSet() || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("game: read key: %w", err)
		}

		res := l.Resolve(key)
		switch res.Outcome {
		case OutcomeQuit:
			l.logger.Info("player quit")
			l.flag.Set()
			return nil
		case OutcomeIgnored:
			continue
		}

		l.logger.Debug("key resolved", "key", string(key), "outcome", res.Outcome,
			"hits", res.Counters.Hits, "misses", res.Counters.Misses)

		if res.Status.Over() {
			// Raise the flag before the last frame so actors stop mutating it
			l.flag.Set()
			l.logger.Info("game over", "status", res.Status)
		}
		l.redraw()
		if res.Status.Over() {
			return nil
		}
	}
	return nil
}

func (l *InputLoop) redraw() {
	if err := l.render.Render(); err != nil {
		l.logger.Debug("render failed", "error", err)
	}
}
