package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultYAML []byte

// Default returns the built-in configuration, equivalent to the
// normal difficulty preset.
func Default() Config {
	return presets[DifficultyNormal]
}

// DefaultYAML returns the embedded default configuration file, suitable
// for writing out as a starting point for user customization.
func DefaultYAML() []byte {
	return defaultYAML
}
