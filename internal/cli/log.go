package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/output"
	"github.com/Dicklesworthstone/autoflow/internal/store"
)

var flagLogLimit int

func init() {
	logCmd.Flags().IntVar(&flagLogLimit, "limit", 50, "max entries to show")

	rootCmd.AddCommand(logCmd)
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the audit trail of applied rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		auditDB, err := store.Open(cfg.Paths.AuditDBPath)
		if err != nil {
			return err
		}
		defer auditDB.Close()

		entries, err := auditDB.ListApplied(flagLogLimit)
		if err != nil {
			return err
		}

		out := output.New(output.Format(GetOutput()))
		if out.Format() == output.FormatText {
			if len(entries) == 0 {
				fmt.Println("No rules applied yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("%s  %-8s  %s\n", e.AppliedAt.Format("2006-01-02 15:04"), e.Source, e.Pattern)
			}
			return nil
		}
		return out.Write(entries)
	},
}
