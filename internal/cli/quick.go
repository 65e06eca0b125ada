package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/core"
	"github.com/Dicklesworthstone/autoflow/internal/output"
)

func init() {
	rootCmd.AddCommand(quickCmd)
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Print the single top recommendation",
	Long: `Print the single most impactful safe recommendation, for use in a
session-start hook. Categories that deserve deliberate review (file writes,
remote mutations, browser actions) are skipped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		report, err := runAnalysis(cfg, "", "", nil)
		if err != nil {
			return err
		}
		tip := core.QuickRecommendation(report)

		out := output.New(output.Format(GetOutput()))
		if out.Format() == output.FormatText {
			fmt.Print(output.RenderQuickTip(tip))
			return nil
		}
		if tip == nil {
			// Empty object keeps hook consumers simple.
			return out.Write(map[string]any{})
		}
		return out.Write(tip)
	},
}
