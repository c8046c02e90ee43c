package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/tui"
)

var buildingsCmd = &cobra.Command{
	Use:   "buildings",
	Short: "Browse managed buildings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var buildingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List buildings",
	RunE: func(cmd *cobra.Command, args []string) error {
		buildings, err := app.Client.Buildings(cmd.Context())
		if err != nil {
			return err
		}
		if len(buildings) == 0 {
			fmt.Println("No buildings found.")
			return nil
		}

		fmt.Println(tui.Title(fmt.Sprintf("Buildings (%d)", len(buildings))))
		for _, b := range buildings {
			fmt.Printf("  %-12s %-30s %3d rooms  %s\n", b.ID, b.Name, b.RoomsNum, b.Address)
		}
		return nil
	},
}

var buildingsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one building",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		building, err := app.Client.Building(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(tui.Title(building.Name))
		fmt.Print(tui.KeyValues([][2]string{
			{"ID", building.ID},
			{"Address", building.Address},
			{"Floors", strconv.Itoa(building.Floors)},
			{"Rooms", strconv.Itoa(building.RoomsNum)},
		}))
		return nil
	},
}

func init() {
	buildingsCmd.AddCommand(buildingsListCmd)
	buildingsCmd.AddCommand(buildingsGetCmd)
	rootCmd.AddCommand(buildingsCmd)
}
