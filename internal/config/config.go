// Package config implements hierarchical configuration for autoflow.
// Precedence: defaults < user (~/.autoflow/config.toml) < project
// (.autoflow/config.toml) < env (AUTOFLOW_*) < flags.
package config

// Config is the top-level configuration structure.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis" mapstructure:"analysis"`
	Paths    PathsConfig    `toml:"paths" mapstructure:"paths"`
	Patterns PatternsConfig `toml:"patterns" mapstructure:"patterns"`
}

// AnalysisConfig holds the pipeline knobs.
type AnalysisConfig struct {
	LookbackDays        int `toml:"lookback_days" mapstructure:"lookback_days"`
	AFKThresholdSecs    int `toml:"afk_threshold_seconds" mapstructure:"afk_threshold_seconds"`
	MaxRecommendations  int `toml:"max_recommendations" mapstructure:"max_recommendations"`
	MaxExamplesPattern  int `toml:"max_examples_per_pattern" mapstructure:"max_examples_per_pattern"`
	MaxRawCommands      int `toml:"max_raw_commands" mapstructure:"max_raw_commands"`
}

// PathsConfig holds filesystem locations.
type PathsConfig struct {
	TranscriptsDir string `toml:"transcripts_dir" mapstructure:"transcripts_dir"`
	SettingsPath   string `toml:"settings_path" mapstructure:"settings_path"`
	AuditDBPath    string `toml:"audit_db_path" mapstructure:"audit_db_path"`
}

// PatternsConfig extends the built-in classification tables.
type PatternsConfig struct {
	ExtraDestructivePatterns []string `toml:"extra_destructive_patterns" mapstructure:"extra_destructive_patterns"`
	ExtraDestructiveKeywords []string `toml:"extra_destructive_keywords" mapstructure:"extra_destructive_keywords"`
	ExtraCLIVerbs            []string `toml:"extra_cli_verbs" mapstructure:"extra_cli_verbs"`
	ExtraAllowedTools        []string `toml:"extra_allowed_tools" mapstructure:"extra_allowed_tools"`
}
