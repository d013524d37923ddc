// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"fmt"
	"time"

	"github.com/YUKII2K3/Shocker-s-Tetris-Game/internal/tetris"
)

// Config contains all tunable game parameters.
type Config struct {
	Timing   TimingConfig   `yaml:"timing"`
	Leveling LevelingConfig `yaml:"leveling"`
	Display  DisplayConfig  `yaml:"display"`
	Sound    SoundConfig    `yaml:"sound"`
}

// TimingConfig defines the gravity pace in milliseconds.
type TimingConfig struct {
	InitialDropMs int `yaml:"initial_drop_ms"` // Gravity interval at level 1
	DropStepMs    int `yaml:"drop_step_ms"`    // Interval reduction per level
	MinDropMs     int `yaml:"min_drop_ms"`     // Fastest gravity allowed
}

// LevelingConfig defines how the level advances.
type LevelingConfig struct {
	ScoreThreshold int `yaml:"score_threshold"` // Score per level required to advance
}

// DisplayConfig defines how long transient render signals stay visible,
// in milliseconds.
type DisplayConfig struct {
	FlashMs   int `yaml:"flash_ms"`    // Line-clear row flash
	LevelUpMs int `yaml:"level_up_ms"` // Level-up banner
}

// SoundConfig toggles audio cues.
type SoundConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Validate checks that the parameters describe a playable game.
func (c Config) Validate() error {
	if c.Timing.InitialDropMs <= 0 {
		return fmt.Errorf("config: initial_drop_ms must be positive, got %d", c.Timing.InitialDropMs)
	}
	if c.Timing.MinDropMs <= 0 {
		return fmt.Errorf("config: min_drop_ms must be positive, got %d", c.Timing.MinDropMs)
	}
	if c.Timing.MinDropMs > c.Timing.InitialDropMs {
		return fmt.Errorf("config: min_drop_ms (%d) exceeds initial_drop_ms (%d)",
			c.Timing.MinDropMs, c.Timing.InitialDropMs)
	}
	if c.Timing.DropStepMs < 0 {
		return fmt.Errorf("config: drop_step_ms must not be negative, got %d", c.Timing.DropStepMs)
	}
	if c.Leveling.ScoreThreshold <= 0 {
		return fmt.Errorf("config: score_threshold must be positive, got %d", c.Leveling.ScoreThreshold)
	}
	if c.Display.FlashMs <= 0 {
		return fmt.Errorf("config: flash_ms must be positive, got %d", c.Display.FlashMs)
	}
	if c.Display.LevelUpMs <= 0 {
		return fmt.Errorf("config: level_up_ms must be positive, got %d", c.Display.LevelUpMs)
	}
	return nil
}

// Tuning converts the configuration into engine tuning parameters.
func (c Config) Tuning() tetris.Tuning {
	return tetris.Tuning{
		InitialDropInterval: time.Duration(c.Timing.InitialDropMs) * time.Millisecond,
		DropIntervalStep:    time.Duration(c.Timing.DropStepMs) * time.Millisecond,
		MinDropInterval:     time.Duration(c.Timing.MinDropMs) * time.Millisecond,
		LevelThreshold:      c.Leveling.ScoreThreshold,
		FlashDuration:       time.Duration(c.Display.FlashMs) * time.Millisecond,
		LevelUpDuration:     time.Duration(c.Display.LevelUpMs) * time.Millisecond,
	}
}

// DifficultyPreset represents a named game pace.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// presets maps each named difficulty to a full parameter set. Display
// and sound settings are the same across presets; only the pace differs.
var presets = map[DifficultyPreset]Config{
	DifficultyEasy: {
		Timing:   TimingConfig{InitialDropMs: 800, DropStepMs: 40, MinDropMs: 150},
		Leveling: LevelingConfig{ScoreThreshold: 1200},
		Display:  DisplayConfig{FlashMs: 400, LevelUpMs: 1200},
		Sound:    SoundConfig{Enabled: true},
	},
	DifficultyNormal: {
		Timing:   TimingConfig{InitialDropMs: 600, DropStepMs: 50, MinDropMs: 100},
		Leveling: LevelingConfig{ScoreThreshold: 1000},
		Display:  DisplayConfig{FlashMs: 400, LevelUpMs: 1200},
		Sound:    SoundConfig{Enabled: true},
	},
	DifficultyHard: {
		Timing:   TimingConfig{InitialDropMs: 400, DropStepMs: 60, MinDropMs: 80},
		Leveling: LevelingConfig{ScoreThreshold: 800},
		Display:  DisplayConfig{FlashMs: 400, LevelUpMs: 1200},
		Sound:    SoundConfig{Enabled: true},
	},
}

// ValidPreset reports whether the given name is a known difficulty.
func ValidPreset(preset DifficultyPreset) bool {
	_, ok := presets[preset]
	return ok
}
