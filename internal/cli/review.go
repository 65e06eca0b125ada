package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/tui"
)

func init() {
	rootCmd.AddCommand(reviewCmd)
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Interactively review and apply recommendations",
	Long: `Open an interactive panel over the current recommendations. Applying a
pattern writes it to the allow list immediately and records it in the
audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		report, err := runAnalysis(cfg, "", "", nil)
		if err != nil {
			return err
		}

		model := tui.NewReview(report.Recommendations, func(pattern string) error {
			result := applyAndRecord(cfg, pattern, "review")
			if !result.Success {
				return errors.New(result.Error)
			}
			return nil
		})

		final, err := tea.NewProgram(model).Run()
		if err != nil {
			return fmt.Errorf("running review panel: %w", err)
		}
		if m, ok := final.(tui.Model); ok {
			if applied := m.Applied(); len(applied) > 0 {
				fmt.Printf("Applied %d rule(s).\n", len(applied))
			}
		}
		return nil
	},
}
