package config

import (
	_ "embed"
)

//go:embed defaults/moles.yaml
var defaultRulesYAML []byte

// DefaultRules returns the built-in rules, used when no YAML can be read.
func DefaultRules() Rules {
	return Rules{
		WinHits:    100,
		LoseMisses: 30,
		MaxCells:   MaxLabels,
		Layout: Layout{
			HeadingPadding: 4,
			CellWidth:      6,
			CellHeight:     3,
		},
	}
}

// DefaultRulesYAML returns the embedded default rules document.
func DefaultRulesYAML() []byte {
	return defaultRulesYAML
}
