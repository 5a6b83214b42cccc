package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadRules loads the game rules.
// Search order: customPath -> ~/.moles/configs/moles.yaml -> ./configs/moles.yaml -> embedded default
//
// Files are decoded on top of DefaultRules, so a file only needs the keys it changes.
func LoadRules(customPath string) (Rules, error) {
	// Custom path must work if given
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseRules(data)
		if err != nil {
			return Rules{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("moles.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseRules(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile("configs/moles.yaml"); err == nil {
		if cfg, err := parseRules(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseRules(defaultRulesYAML)
	if err != nil {
		return DefaultRules(), nil // Fallback to hardcoded if embed is broken
	}
	return cfg, nil
}

// parseRules decodes and validates a rules document.
func parseRules(data []byte) (Rules, error) {
	cfg := DefaultRules()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Rules{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Rules{}, err
	}
	return cfg, nil
}

// MarshalRules encodes rules back to YAML.
func MarshalRules(r Rules) ([]byte, error) {
	return yaml.Marshal(r)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".moles", "configs", filename)
}
