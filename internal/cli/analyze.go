package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/output"
)

var (
	flagAnalyzeInclude  string
	flagAnalyzeExpr     string
	flagAnalyzeMaxDepth int
)

func init() {
	analyzeCmd.Flags().StringVar(&flagAnalyzeInclude, "include", "", "keep only commands starting with this prefix")
	analyzeCmd.Flags().StringVarP(&flagAnalyzeExpr, "expr", "e", "", "keep only patterns with an example matching this expression (regexp, substring fallback)")
	analyzeCmd.Flags().IntVarP(&flagAnalyzeMaxDepth, "max-depth", "n", -1, "max pattern depth to recommend (-1: unlimited)")

	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze transcripts and recommend allow-list rules",
	Long: `Analyze recent session transcripts, group permission patterns for review,
and rank the patterns safe enough to add to the auto-allow list.

Examples:
  autoflow analyze                       # last 7 days, everything
  autoflow analyze --days 30             # wider lookback
  autoflow analyze --include "gcloud"    # only gcloud commands
  autoflow analyze -e "pytest.*-k"       # only commands matching a regexp
  autoflow analyze -n 1 -j               # shallow patterns, JSON output`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		var maxDepth *int
		if flagAnalyzeMaxDepth >= 0 {
			maxDepth = &flagAnalyzeMaxDepth
		}

		report, err := runAnalysis(cfg, flagAnalyzeInclude, flagAnalyzeExpr, maxDepth)
		if err != nil {
			return err
		}

		out := output.New(output.Format(GetOutput()))
		if out.Format() == output.FormatText {
			fmt.Print(output.RenderReport(report))
			return nil
		}
		return out.Write(report)
	},
}
