package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
	// No backend or session needed here
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.GetInfo()

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal version info: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if full, _ := cmd.Flags().GetBool("full"); full {
			fmt.Println(info.String())
			return nil
		}

		fmt.Printf("rently %s\n", info.Short())
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("full", false, "show detailed version information")
	versionCmd.Flags().Bool("json", false, "output version information as JSON")

	rootCmd.AddCommand(versionCmd)
}
