package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dicklesworthstone/autoflow/internal/config"
	"github.com/Dicklesworthstone/autoflow/internal/output"
)

var flagConfigForce bool

func init() {
	configInitCmd.Flags().BoolVarP(&flagConfigForce, "force", "f", false, "overwrite an existing config file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after merging defaults, the user config,
the project config, and environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		out := output.New(output.Format(GetOutput()))
		return out.Write(cfg)
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := flagConfig
		if path == "" {
			path = config.UserConfigPath()
		}
		if !flagConfigForce {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
			}
		}
		if err := config.WriteFile(path, config.DefaultConfig()); err != nil {
			return err
		}
		out := output.New(output.Format(GetOutput()))
		out.Success(fmt.Sprintf("wrote default config to %s", path))
		return nil
	},
}
