package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadBalance loads the game balance.
// Search order: customPath -> ~/.soda/configs/balance.yaml -> ./configs/balance.yaml -> embedded default
func LoadBalance(customPath string) (Balance, error) {
	var cfg Balance

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if cfg, err = parseBalance(data); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("balance.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if parsed, err := parseBalance(data); err == nil {
				return parsed, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/balance.yaml"); err == nil {
		if parsed, err := parseBalance(data); err == nil {
			return parsed, nil
		}
	}

	// Use embedded default YAML
	parsed, err := parseBalance(defaultBalanceYAML)
	if err != nil {
		return DefaultBalance(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// parseBalance decodes YAML on top of the hardcoded defaults so partial files
// only override what they mention, then validates the result.
func parseBalance(data []byte) (Balance, error) {
	cfg := DefaultBalance()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalBalance renders a balance as YAML, e.g. for `soda config`.
func MarshalBalance(cfg Balance) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".soda", "configs", filename)
}
