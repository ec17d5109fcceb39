package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const marbleFile = "marble.yaml"

// LoadMarble loads course configuration.
// Search order: customPath -> ~/.marble/configs/marble.yaml -> ./configs/marble.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes. A custom path that cannot be read or parsed is an error; the
// other locations are skipped when missing or broken.
func LoadMarble(customPath string) (MarbleConfig, error) {
	cfg := DefaultMarbleConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(marbleFile); userCfgPath != "" {
		if loaded, ok := decodeFile(userCfgPath); ok {
			return loaded, loaded.Validate()
		}
	}

	// Try local configs directory
	if loaded, ok := decodeFile(filepath.Join("configs", marbleFile)); ok {
		return loaded, loaded.Validate()
	}

	// Use embedded default YAML
	embedded := DefaultMarbleConfig()
	if err := yaml.Unmarshal(defaultMarbleYAML, &embedded); err != nil {
		return DefaultMarbleConfig(), nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// decodeFile reads path over the defaults, reporting false if the file is
// missing or unparsable.
func decodeFile(path string) (MarbleConfig, bool) {
	cfg := DefaultMarbleConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".marble", "configs", filename)
}

// Marshal renders cfg as YAML, for `marble layout --config-dump` and for
// writing a starter file.
func Marshal(cfg MarbleConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}
