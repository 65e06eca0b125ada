package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// ProjectDir is used to locate .autoflow/config.toml. Defaults to CWD
	// when empty.
	ProjectDir string
	// ConfigPath overrides the project config path if provided.
	ConfigPath string
	// FlagOverrides are highest-priority overrides from CLI flags
	// (dot-notated keys).
	FlagOverrides map[string]any
}

// Load returns the effective configuration after applying precedence:
// defaults < user (~/.autoflow/config.toml) < project (.autoflow/config.toml)
// < env (AUTOFLOW_*) < flags.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()
	setDefaults(v)

	projectDir := opts.ProjectDir
	if projectDir == "" {
		if cwd, err := os.Getwd(); err == nil {
			projectDir = cwd
		}
	}

	if err := mergeConfigFile(v, UserConfigPath()); err != nil {
		return Config{}, err
	}
	if err := mergeConfigFile(v, projectConfigPath(projectDir, opts.ConfigPath)); err != nil {
		return Config{}, err
	}
	if err := applyEnvOverrides(v); err != nil {
		return Config{}, err
	}
	for k, val := range opts.FlagOverrides {
		v.Set(k, val)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("analysis.lookback_days", def.Analysis.LookbackDays)
	v.SetDefault("analysis.afk_threshold_seconds", def.Analysis.AFKThresholdSecs)
	v.SetDefault("analysis.max_recommendations", def.Analysis.MaxRecommendations)
	v.SetDefault("analysis.max_examples_per_pattern", def.Analysis.MaxExamplesPattern)
	v.SetDefault("analysis.max_raw_commands", def.Analysis.MaxRawCommands)

	v.SetDefault("paths.transcripts_dir", def.Paths.TranscriptsDir)
	v.SetDefault("paths.settings_path", def.Paths.SettingsPath)
	v.SetDefault("paths.audit_db_path", def.Paths.AuditDBPath)

	v.SetDefault("patterns.extra_destructive_patterns", def.Patterns.ExtraDestructivePatterns)
	v.SetDefault("patterns.extra_destructive_keywords", def.Patterns.ExtraDestructiveKeywords)
	v.SetDefault("patterns.extra_cli_verbs", def.Patterns.ExtraCLIVerbs)
	v.SetDefault("patterns.extra_allowed_tools", def.Patterns.ExtraAllowedTools)
}

// mergeConfigFile merges the TOML config file if it exists.
func mergeConfigFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat config %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("config path %s is a directory", path)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge config %s: %w", path, err)
	}
	return nil
}

type envKind int

const (
	kindInt envKind = iota
	kindString
	kindStringList
)

type envBinding struct {
	Env  string
	Key  string
	Kind envKind
}

var envBindings = []envBinding{
	{"AUTOFLOW_LOOKBACK_DAYS", "analysis.lookback_days", kindInt},
	{"AUTOFLOW_AFK_THRESHOLD_SECONDS", "analysis.afk_threshold_seconds", kindInt},
	{"AUTOFLOW_MAX_RECOMMENDATIONS", "analysis.max_recommendations", kindInt},
	{"AUTOFLOW_MAX_EXAMPLES_PER_PATTERN", "analysis.max_examples_per_pattern", kindInt},
	{"AUTOFLOW_MAX_RAW_COMMANDS", "analysis.max_raw_commands", kindInt},
	{"AUTOFLOW_TRANSCRIPTS_DIR", "paths.transcripts_dir", kindString},
	{"AUTOFLOW_SETTINGS_PATH", "paths.settings_path", kindString},
	{"AUTOFLOW_AUDIT_DB_PATH", "paths.audit_db_path", kindString},
	{"AUTOFLOW_EXTRA_DESTRUCTIVE_PATTERNS", "patterns.extra_destructive_patterns", kindStringList},
	{"AUTOFLOW_EXTRA_DESTRUCTIVE_KEYWORDS", "patterns.extra_destructive_keywords", kindStringList},
	{"AUTOFLOW_EXTRA_CLI_VERBS", "patterns.extra_cli_verbs", kindStringList},
	{"AUTOFLOW_EXTRA_ALLOWED_TOOLS", "patterns.extra_allowed_tools", kindStringList},
}

func applyEnvOverrides(v *viper.Viper) error {
	for _, binding := range envBindings {
		val := os.Getenv(binding.Env)
		if val == "" {
			continue
		}
		parsed, err := parseValueByKind(val, binding.Kind)
		if err != nil {
			return fmt.Errorf("env %s: %w", binding.Env, err)
		}
		v.Set(binding.Key, parsed)
	}
	return nil
}

func parseValueByKind(raw string, kind envKind) (any, error) {
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("expected integer, got %q", raw)
		}
		return n, nil
	case kindStringList:
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out, nil
	default:
		return raw, nil
	}
}

// UserConfigPath returns the user-level config file location.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".autoflow", "config.toml")
}

func projectConfigPath(projectDir, override string) string {
	if override != "" {
		return override
	}
	if projectDir == "" {
		return filepath.Join(".autoflow", "config.toml")
	}
	return filepath.Join(projectDir, ".autoflow", "config.toml")
}
