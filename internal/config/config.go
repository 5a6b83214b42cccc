// Package config provides the game rules (YAML-backed) and the validated
// run parameters taken from the command line.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Rules contains the tunable rules of a game. They are loaded from YAML and
// are independent of a single run.
type Rules struct {
	WinHits    int    `yaml:"win_hits"`
	LoseMisses int    `yaml:"lose_misses"`
	MaxCells   int    `yaml:"max_cells"`
	Layout     Layout `yaml:"layout"`
}

// Layout holds screen geometry for the board renderer.
type Layout struct {
	HeadingPadding int `yaml:"heading_padding"` // Rows above the first cell
	CellWidth      int `yaml:"cell_width"`      // Column stride between cells
	CellHeight     int `yaml:"cell_height"`     // Row stride between cells
}

// MaxLabels is the number of distinct single-character cell labels (a-z).
const MaxLabels = 26

// Params are the eight positional run parameters after validation.
// MoleTotal is already clamped to the cell count.
type Params struct {
	BoardWidth  int
	BoardHeight int
	MoleTotal   int
	MoleLimit   int
	HideMin     time.Duration
	HideMax     time.Duration
	OutMin      time.Duration
	OutMax      time.Duration
}

// Cells returns the number of cells on the board.
func (p Params) Cells() int {
	return p.BoardWidth * p.BoardHeight
}

// MaxSleep returns the longest single sleep an actor can be in.
func (p Params) MaxSleep() time.Duration {
	if p.HideMax > p.OutMax {
		return p.HideMax
	}
	return p.OutMax
}

// ErrConfig is matched by every ConfigError.
var ErrConfig = errors.New("invalid configuration")

// ErrBoardTooLarge is wrapped when the board has more cells than labels.
var ErrBoardTooLarge = errors.New("board dimensions too large")

// ConfigError reports an unusable argument or rules value.
type ConfigError struct {
	Field  string
	Reason string
	Err    error // Optional more specific cause
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

// Is reports ErrConfig for any ConfigError, plus the wrapped cause.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig || (e.Err != nil && errors.Is(e.Err, target))
}

// Unwrap returns the wrapped cause, if any.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Validate checks that the rules are usable.
func (r Rules) Validate() error {
	switch {
	case r.WinHits <= 0:
		return &ConfigError{Field: "win_hits", Reason: "must be positive"}
	case r.LoseMisses <= 0:
		return &ConfigError{Field: "lose_misses", Reason: "must be positive"}
	case r.MaxCells <= 0 || r.MaxCells > MaxLabels:
		return &ConfigError{Field: "max_cells", Reason: fmt.Sprintf("must be between 1 and %d", MaxLabels)}
	case r.Layout.CellWidth < 5 || r.Layout.CellHeight < 3:
		return &ConfigError{Field: "layout", Reason: "cells must be at least 5x3"}
	case r.Layout.HeadingPadding < 0:
		return &ConfigError{Field: "layout.heading_padding", Reason: "must not be negative"}
	}
	return nil
}
