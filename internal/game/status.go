package game

import "github.com/vovakirdan/tui-moles/internal/config"

// Status is the derived game status.
type Status int

const (
	StatusRunning Status = iota
	StatusWon
	StatusLost
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Over reports whether the status ends the game.
func (s Status) Over() bool {
	return s == StatusWon || s == StatusLost
}

// Evaluate derives the status from the score. A loss is checked first.
func Evaluate(c Counters, rules config.Rules) Status {
	switch {
	case c.Misses >= rules.LoseMisses:
		return StatusLost
	case c.Hits >= rules.WinHits:
		return StatusWon
	default:
		return StatusRunning
	}
}
