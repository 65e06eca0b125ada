package config

import (
	"fmt"
	"strings"
)

// Validate checks the configuration for semantic errors.
func Validate(cfg Config) error {
	var errs []string

	if cfg.Analysis.LookbackDays <= 0 {
		errs = append(errs, "analysis.lookback_days must be > 0")
	}
	if cfg.Analysis.AFKThresholdSecs <= 0 {
		errs = append(errs, "analysis.afk_threshold_seconds must be > 0")
	}
	if cfg.Analysis.MaxRecommendations <= 0 {
		errs = append(errs, "analysis.max_recommendations must be > 0")
	}
	if cfg.Analysis.MaxExamplesPattern <= 0 {
		errs = append(errs, "analysis.max_examples_per_pattern must be > 0")
	}
	if cfg.Analysis.MaxRawCommands <= 0 {
		errs = append(errs, "analysis.max_raw_commands must be > 0")
	}
	if cfg.Paths.TranscriptsDir == "" {
		errs = append(errs, "paths.transcripts_dir must not be empty")
	}
	if cfg.Paths.SettingsPath == "" {
		errs = append(errs, "paths.settings_path must not be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
