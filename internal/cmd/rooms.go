package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/tui"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "Browse rooms",
	Long: `Browse rooms in managed buildings.

Examples:
  rently rooms list
  rently rooms list --status available --building b-17
  rently rooms get r-42
  rently rooms furniture r-42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var roomsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := url.Values{}
		if status, _ := cmd.Flags().GetString("status"); status != "" {
			filters.Set("status", status)
		}
		if building, _ := cmd.Flags().GetString("building"); building != "" {
			filters.Set("buildingId", building)
		}
		if minPrice, _ := cmd.Flags().GetFloat64("min-price"); minPrice > 0 {
			filters.Set("minPrice", strconv.FormatFloat(minPrice, 'f', -1, 64))
		}
		if maxPrice, _ := cmd.Flags().GetFloat64("max-price"); maxPrice > 0 {
			filters.Set("maxPrice", strconv.FormatFloat(maxPrice, 'f', -1, 64))
		}

		rooms, err := app.Client.Rooms(cmd.Context(), filters)
		if err != nil {
			return err
		}
		if len(rooms) == 0 {
			fmt.Println("No rooms found.")
			return nil
		}

		fmt.Println(tui.Title(fmt.Sprintf("Rooms (%d)", len(rooms))))
		for _, r := range rooms {
			fmt.Printf("  %-12s room %-6s %10.0f  %5.1fm²  %s\n",
				r.ID, r.RoomNumber, r.Price, r.Area, r.Status)
		}
		return nil
	},
}

var roomsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		room, err := app.Client.Room(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(tui.Title("Room " + room.RoomNumber))
		fmt.Print(tui.KeyValues([][2]string{
			{"ID", room.ID},
			{"Building", room.BuildingID},
			{"Price", fmt.Sprintf("%.0f", room.Price)},
			{"Area", fmt.Sprintf("%.1f m²", room.Area)},
			{"Status", room.Status},
			{"Max tenants", strconv.Itoa(room.MaxTenants)},
			{"Description", room.Description},
		}))
		return nil
	},
}

var roomsFurnitureCmd = &cobra.Command{
	Use:   "furniture <room-id>",
	Short: "List the furniture of a room",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := app.Client.RoomFurnitures(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No furniture recorded for this room.")
			return nil
		}

		fmt.Println(tui.Title(fmt.Sprintf("Furniture (%d)", len(items))))
		for _, item := range items {
			fmt.Printf("  %-24s x%-3d %s\n", item.Name, item.Quantity, item.Condition)
		}
		return nil
	},
}

func init() {
	roomsListCmd.Flags().String("status", "", "filter by room status")
	roomsListCmd.Flags().String("building", "", "filter by building id")
	roomsListCmd.Flags().Float64("min-price", 0, "minimum monthly price")
	roomsListCmd.Flags().Float64("max-price", 0, "maximum monthly price")

	roomsCmd.AddCommand(roomsListCmd)
	roomsCmd.AddCommand(roomsGetCmd)
	roomsCmd.AddCommand(roomsFurnitureCmd)
	rootCmd.AddCommand(roomsCmd)
}
