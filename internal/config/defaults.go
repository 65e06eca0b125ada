package config

import (
	"os"
	"path/filepath"
)

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Analysis: AnalysisConfig{
			LookbackDays:       7,
			AFKThresholdSecs:   300,
			MaxRecommendations: 25,
			MaxExamplesPattern: 5,
			MaxRawCommands:     20,
		},
		Paths: PathsConfig{
			TranscriptsDir: filepath.Join(home, ".claude", "projects"),
			SettingsPath:   filepath.Join(home, ".claude", "settings.json"),
			AuditDBPath:    filepath.Join(home, ".autoflow", "audit.db"),
		},
		Patterns: PatternsConfig{},
	}
}
