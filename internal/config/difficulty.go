package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // keep whatever the file says
)

// ParseDifficultyPreset validates a preset name. Empty means fixed.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(name))); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (easy, normal, hard, fixed)", name)
	}
}

// BlockCountForPreset returns the course length of a preset, or -1 for fixed.
func BlockCountForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 5
	case DifficultyNormal:
		return 10
	case DifficultyHard:
		return 20
	default:
		return -1
	}
}

// ApplyMarblePreset modifies the config based on a difficulty preset.
func ApplyMarblePreset(cfg *MarbleConfig, preset DifficultyPreset) {
	if n := BlockCountForPreset(preset); n >= 0 {
		cfg.Level.BlockCount = n
	}

	// Adjust handling based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Player.LinearDamping = 0.8
		cfg.Player.AngularDamping = 0.8
	case DifficultyHard:
		cfg.Player.LinearDamping = 0.3
		cfg.Player.AngularDamping = 0.3
	}
}
