package config

import (
	"fmt"
	"strconv"
	"time"
)

// ArgNames lists the positional run parameters in command-line order.
var ArgNames = []string{
	"boardWidth",
	"boardHeight",
	"moleTotal",
	"moleLimit",
	"hideTimeMin",
	"hideTimeMax",
	"outTimeMin",
	"outTimeMax",
}

// ParseArgs validates the eight positional arguments against the rules.
// Times are whole milliseconds. A moleTotal larger than the board is clamped
// to the cell count rather than rejected.
func ParseArgs(args []string, rules Rules) (Params, error) {
	if len(args) != len(ArgNames) {
		return Params{}, &ConfigError{
			Reason: fmt.Sprintf("not a valid number of arguments: expected %d, got %d", len(ArgNames), len(args)),
		}
	}

	vals := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return Params{}, &ConfigError{Field: ArgNames[i], Reason: fmt.Sprintf("%q is not an integer", a), Err: err}
		}
		if v < 0 {
			return Params{}, &ConfigError{Field: ArgNames[i], Reason: "must not be negative"}
		}
		vals[i] = v
	}

	w, h := vals[0], vals[1]
	if w == 0 || h == 0 {
		return Params{}, &ConfigError{Field: "board", Reason: "dimensions must be positive"}
	}
	maxCells := rules.MaxCells
	if maxCells <= 0 || maxCells > MaxLabels {
		maxCells = MaxLabels
	}
	// Check each side first so the product cannot overflow
	if w > maxCells || h > maxCells || w*h > maxCells {
		return Params{}, &ConfigError{
			Field:  "board",
			Reason: fmt.Sprintf("%dx%d is too large, max = %d cells", w, h, maxCells),
			Err:    ErrBoardTooLarge,
		}
	}

	p := Params{
		BoardWidth:  w,
		BoardHeight: h,
		MoleTotal:   min(vals[2], w*h),
		MoleLimit:   vals[3],
		HideMin:     ms(vals[4]),
		HideMax:     ms(vals[5]),
		OutMin:      ms(vals[6]),
		OutMax:      ms(vals[7]),
	}

	if p.HideMin > p.HideMax {
		return Params{}, &ConfigError{Field: "hideTime", Reason: "minimum exceeds maximum"}
	}
	if p.OutMin > p.OutMax {
		return Params{}, &ConfigError{Field: "outTime", Reason: "minimum exceeds maximum"}
	}

	return p, nil
}

// Usage returns the positional argument synopsis.
func Usage() string {
	s := ""
	for i, n := range ArgNames {
		if i > 0 {
			s += " "
		}
		s += "<" + n + ">"
	}
	return s
}

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}
