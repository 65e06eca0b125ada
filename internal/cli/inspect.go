package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/core"
	"github.com/Dicklesworthstone/autoflow/internal/output"
	"github.com/Dicklesworthstone/autoflow/internal/settings"
)

var flagInspectTool string

func init() {
	inspectCmd.Flags().StringVar(&flagInspectTool, "tool", core.ShellTool, "tool name the command was invoked through")

	rootCmd.AddCommand(inspectCmd)
}

// inspectResult is the structured form of a single-command explanation.
type inspectResult struct {
	Tool        string         `json:"tool"`
	Command     string         `json:"command"`
	Category    string         `json:"category"`
	Destructive bool           `json:"destructive"`
	Allowed     bool           `json:"allowed"`
	Patterns    []inspectLevel `json:"patterns"`
	Segments    []string       `json:"chain_segments,omitempty"`
}

type inspectLevel struct {
	Level   int    `json:"level"`
	Pattern string `json:"pattern"`
	Allowed bool   `json:"allowed"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <command>",
	Short: "Explain how a command would be classified",
	Long: `Explain a single command the way the analyzer sees it: the candidate
allow-rule patterns at each depth, its category, whether it looks
destructive, and whether the current allow list already covers it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		command := args[0]

		allow := core.EffectiveAllowList(settings.NewStore(cfg.Paths.SettingsPath).AllowList())
		patterns := core.ExtractPatterns(flagInspectTool, command)

		result := inspectResult{
			Tool:        flagInspectTool,
			Command:     command,
			Destructive: flagInspectTool == core.ShellTool && core.IsDestructive(command),
			Allowed:     core.AnyAllowed(patterns, allow),
		}
		// Category comes from the broadest pattern, same as the analyzer.
		result.Category = string(core.ClassifyTool(patterns[0].Pattern))
		for _, p := range patterns {
			result.Patterns = append(result.Patterns, inspectLevel{
				Level:   p.Level,
				Pattern: p.Pattern,
				Allowed: core.IsAllowed(p.Pattern, allow),
			})
		}
		if flagInspectTool == core.ShellTool && core.HasChainOperator(command) {
			result.Segments = core.ChainSegments(command)
		}

		out := output.New(output.Format(GetOutput()))
		if out.Format() != output.FormatText {
			return out.Write(result)
		}

		fmt.Printf("%s(%s)\n", result.Tool, result.Command)
		fmt.Printf("  category:    %s\n", result.Category)
		fmt.Printf("  destructive: %v\n", result.Destructive)
		fmt.Printf("  allowed:     %v\n", result.Allowed)
		fmt.Println("  patterns:")
		for _, p := range result.Patterns {
			mark := " "
			if p.Allowed {
				mark = "✓"
			}
			label := fmt.Sprintf("level %d", p.Level)
			if p.Level == core.VerbLevel {
				label = "verb"
			}
			fmt.Printf("    %s %-8s %s\n", mark, label, p.Pattern)
		}
		if len(result.Segments) > 0 {
			fmt.Printf("  chained:     %s\n", strings.Join(result.Segments, "  |  "))
		}
		return nil
	},
}
