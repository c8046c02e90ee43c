package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/config"
	"github.com/rently-vn/rently/internal/tui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create the rently configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Long: `Write an example configuration file with the default settings.
Refuses to overwrite an existing file.

Examples:
  rently config init
  rently config init ~/.rently/config.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "config.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		if err := config.WriteExample(path); err != nil {
			return err
		}
		fmt.Println(tui.Success("wrote " + path))
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.Config
		fmt.Println(tui.Title("Configuration"))
		fmt.Print(tui.KeyValues([][2]string{
			{"API base URL", cfg.API.BaseURL},
			{"API timeout", cfg.API.Timeout.String()},
			{"Shipping base URL", cfg.Shipping.BaseURL},
			{"Log level", cfg.Log.Level},
			{"Log format", cfg.Log.Format},
			{"Session path", cfg.Session.Path},
		}))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
