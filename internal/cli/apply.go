package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/output"
)

func init() {
	rootCmd.AddCommand(applyCmd)
}

var applyCmd = &cobra.Command{
	Use:   "apply <pattern>",
	Short: "Add one pattern to the permanent allow list",
	Long: `Add a pattern to the settings document's allow list.

The write is idempotent: applying a rule that is already present changes
nothing. Existing rules are never removed or reordered.

Example:
  autoflow apply "Bash(git status *)"`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := output.New(output.Format(GetOutput()))
		if len(args) == 0 {
			err := errors.New("apply requires a pattern argument")
			out.Error(err)
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		result := applyAndRecord(cfg, args[0], "manual")
		if out.Format() == output.FormatText {
			if result.Success {
				out.Success(fmt.Sprintf("added %s to %s", result.Pattern, result.SettingsPath))
				return nil
			}
			return errors.New(result.Error)
		}
		return out.Write(result)
	},
}
