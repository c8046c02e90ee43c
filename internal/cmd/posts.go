package cmd

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/tui"
)

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Browse rental listings",
	Long: `Browse rental listings published by landlords.

Examples:
  rently posts list
  rently posts list --building b-17
  rently posts get p-9`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var postsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List rental posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		filters := url.Values{}
		if building, _ := cmd.Flags().GetString("building"); building != "" {
			filters.Set("buildingId", building)
		}

		posts, err := app.Client.Posts(cmd.Context(), filters)
		if err != nil {
			return err
		}
		if len(posts) == 0 {
			fmt.Println("No posts found.")
			return nil
		}

		fmt.Println(tui.Title(fmt.Sprintf("Posts (%d)", len(posts))))
		for _, p := range posts {
			when := ""
			if !p.CreatedAt.IsZero() {
				when = p.CreatedAt.Format(time.DateOnly)
			}
			fmt.Printf("  %-12s %-40s %10.0f  %s\n", p.ID, p.Title, p.Price, when)
		}
		return nil
	},
}

var postsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one rental post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		post, err := app.Client.Post(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(tui.Title(post.Title))
		pairs := [][2]string{
			{"ID", post.ID},
			{"Address", post.Address},
			{"Price", fmt.Sprintf("%.0f", post.Price)},
			{"Area", fmt.Sprintf("%.1f m²", post.Area)},
			{"Building", post.BuildingID},
		}
		if post.Landlord != nil {
			pairs = append(pairs,
				[2]string{"Landlord", post.Landlord.FullName},
				[2]string{"Contact", post.Landlord.Email},
			)
		}
		if !post.CreatedAt.IsZero() {
			pairs = append(pairs, [2]string{"Published", post.CreatedAt.Format(time.DateOnly)})
		}
		fmt.Print(tui.KeyValues(pairs))

		for _, img := range post.Images {
			fmt.Println("  image:", img)
		}
		return nil
	},
}

func init() {
	postsListCmd.Flags().String("building", "", "filter by building id")

	postsCmd.AddCommand(postsListCmd)
	postsCmd.AddCommand(postsGetCmd)
	rootCmd.AddCommand(postsCmd)
}
