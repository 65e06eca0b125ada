// Package cli implements the Cobra command-line interface for autoflow.
package cli

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/config"
	"github.com/Dicklesworthstone/autoflow/internal/core"
	"github.com/Dicklesworthstone/autoflow/internal/output"
	"github.com/Dicklesworthstone/autoflow/internal/settings"
	"github.com/Dicklesworthstone/autoflow/internal/store"
	"github.com/Dicklesworthstone/autoflow/internal/transcript"
)

// Version information set by goreleaser
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Global flag values
var (
	flagConfig  string
	flagOutput  string
	flagJSON    bool
	flagVerbose bool
	flagDays    int
)

var rootCmd = &cobra.Command{
	Use:   "autoflow",
	Short: "Permission flow optimizer for agent transcripts",
	Long: `Autoflow mines your agent session transcripts for permission prompts and
recommends which command patterns are safe to auto-allow.

It never grants permissions itself: it proposes glob-style allow rules,
scores their risk from your own approve/deny history, and projects how much
less often you'd be interrupted if you adopted them. Applying a rule is a
separate, explicit step.

Risk tiers:
  high    - you denied this pattern at least once; never recommended
  medium  - destructive-looking, or too few approvals to trust
  low     - 5+ approvals, zero denials, nothing destructive`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// When no subcommand given, show quick reference card
		showQuickReference()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"version":     version,
			"commit":      commit,
			"build_date":  date,
			"go_version":  runtime.Version(),
			"config_path": configPathForDisplay(),
		}
		out := output.New(output.Format(GetOutput()))
		if out.Format() == output.FormatText {
			fmt.Printf("autoflow %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			fmt.Printf("  go:     %s\n", runtime.Version())
			return nil
		}
		return out.Write(payload)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetOutput returns the configured output format.
// Precedence: CLI flags > AUTOFLOW_OUTPUT_FORMAT env > default.
func GetOutput() string {
	if flagJSON {
		return "json"
	}
	if flagOutput != "text" {
		return flagOutput
	}
	if envFormat := os.Getenv("AUTOFLOW_OUTPUT_FORMAT"); envFormat != "" {
		switch envFormat {
		case "json", "yaml", "text":
			return envFormat
		}
	}
	return flagOutput
}

func configPathForDisplay() string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.UserConfigPath()
}

var tableExtensions sync.Once

// loadConfig loads the effective configuration and applies its pattern
// table extensions to the core (once per process).
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{ConfigPath: flagConfig})
	if err != nil {
		return config.Config{}, err
	}
	tableExtensions.Do(func() {
		core.AddDestructivePatterns(cfg.Patterns.ExtraDestructivePatterns...)
		core.AddDestructiveKeywords(cfg.Patterns.ExtraDestructiveKeywords...)
		core.AddCLIVerbs(cfg.Patterns.ExtraCLIVerbs...)
		core.AddBuiltinAutoTools(cfg.Patterns.ExtraAllowedTools...)
	})
	return cfg, nil
}

// lookbackDays resolves the effective lookback window: the --days flag when
// set, otherwise the configured default.
func lookbackDays(cfg config.Config) int {
	if flagDays > 0 {
		return flagDays
	}
	return cfg.Analysis.LookbackDays
}

// runAnalysis loads transcripts and the persisted allow list, then runs the
// full pipeline. No usable input yields an empty report, not an error.
func runAnalysis(cfg config.Config, include, expr string, maxDepth *int) (*core.Report, error) {
	logger := log.Default().WithPrefix("autoflow")

	reader := transcript.NewReader(cfg.Paths.TranscriptsDir, logger.WithPrefix("transcript"))
	invocations, sessions, err := reader.Load(lookbackDays(cfg))
	if err != nil {
		return nil, fmt.Errorf("loading transcripts: %w", err)
	}
	logger.Debug("loaded transcripts", "sessions", sessions, "invocations", len(invocations))

	allowRules := settings.NewStore(cfg.Paths.SettingsPath).AllowList()

	report := core.Analyze(invocations, allowRules, core.Options{
		Include:            include,
		Expr:               expr,
		MaxDepth:           maxDepth,
		MaxRecommendations: cfg.Analysis.MaxRecommendations,
		MaxExamples:        cfg.Analysis.MaxExamplesPattern,
		MaxRawCommands:     cfg.Analysis.MaxRawCommands,
		AFKThreshold:       time.Duration(cfg.Analysis.AFKThresholdSecs) * time.Second,
		Sessions:           sessions,
	})
	return report, nil
}

// applyAndRecord appends a rule to the settings document and, on success,
// records it in the audit log. Audit failures are logged, never fatal: the
// settings write is the authoritative operation.
func applyAndRecord(cfg config.Config, pattern, source string) settings.ApplyResult {
	result := settings.NewStore(cfg.Paths.SettingsPath).Apply(pattern)
	if !result.Success {
		return result
	}
	auditDB, err := store.Open(cfg.Paths.AuditDBPath)
	if err != nil {
		log.Warn("audit log unavailable", "err", err)
		return result
	}
	defer auditDB.Close()
	if err := auditDB.RecordApplied(pattern, source); err != nil {
		log.Warn("audit record failed", "err", err)
	}
	return result
}

func showQuickReference() {
	fmt.Println(`autoflow — permission flow optimizer

Common commands:
  autoflow analyze              full analysis of recent transcripts
  autoflow analyze --include git   narrow to one command family
  autoflow quick                single top recommendation
  autoflow review               interactively apply recommendations
  autoflow apply "Bash(git status *)"   add one rule to the allow list
  autoflow inspect "git push"   explain how a command is classified
  autoflow log                  audit trail of applied rules
  autoflow config               show the effective configuration

Use -j for JSON output, --days N to widen the lookback window.`)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "text", "output format: text, json, yaml (env: AUTOFLOW_OUTPUT_FORMAT)")
	rootCmd.PersistentFlags().BoolVarP(&flagJSON, "json", "j", false, "shorthand for --output=json")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().IntVar(&flagDays, "days", 0, "lookback window in days (default from config)")

	rootCmd.AddCommand(versionCmd)
}
