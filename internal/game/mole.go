package game

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-moles/internal/config"
)

// renderer is what actors need to publish a frame after a change.
type renderer interface {
	Render() error
}

// Mole is the actor that owns the hide/appear cycle of one cell.
//
// Cycle: hide for a random time, take a gate permit, go Active, stay out for
// a random time, then go Hidden and return the permit. If the input loop
// whacked the cell meanwhile, the mole returns its permit and retires.
type Mole struct {
	cell   int
	board  *Board
	gate   *Gate
	render renderer
	rng    Rand
	params config.Params
	flag   *TerminationFlag
	logger *log.Logger
}

// Run drives the mole until it is whacked or the flag is set.
// Any permit held when the flag is observed is returned before exit.
func (m *Mole) Run() error {
	ctx := m.flag.Context()
	// Half of the moles start by queueing at the gate instead of hiding
	skipHide := m.rng.Flip()

	for !m.flag.IsSet() {
		if !skipHide {
			if !sleep(ctx, m.rng.Duration(m.params.HideMin, m.params.HideMax)) {
				return nil
			}
		}
		skipHide = false

		if err := m.gate.Acquire(ctx); err != nil {
			return nil
		}
		if m.flag.IsSet() {
			m.gate.Release()
			return nil
		}

		if !m.board.Transition(m.cell, CellHidden, CellActive) {
			// Only this mole moves its cell out of Hidden; anything else is a bug
			m.gate.Release()
			m.logger.Error("cell not hidden when appearing", "cell", m.cell, "state", m.board.State(m.cell))
			return nil
		}
		m.logger.Debug("mole up", "cell", m.cell, "inUse", m.gate.InUse())
		m.redraw()

		if !sleep(ctx, m.rng.Duration(m.params.OutMin, m.params.OutMax)) {
			m.gate.Release()
			return nil
		}

		if !m.board.Transition(m.cell, CellActive, CellHidden) {
			// Whacked while out
			m.gate.Release()
			m.logger.Debug("mole retired", "cell", m.cell)
			return nil
		}
		m.gate.Release()
		m.logger.Debug("mole down", "cell", m.cell)
		m.redraw()
	}
	return nil
}

func (m *Mole) redraw() {
	if err := m.render.Render(); err != nil {
		m.logger.Debug("render failed", "cell", m.cell, "error", err)
	}
}
