package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/platform"
	"github.com/rently-vn/rently/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View and edit your account profile",
	Long: `View and edit the profile of the logged-in account.

Examples:
  rently profile show
  rently profile update --name "Jane Doe" --phone 0900000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := app.Client.Profile(cmd.Context())
		if err != nil {
			return err
		}

		printProfile(profile)
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		current, err := app.Client.Profile(cmd.Context())
		if err != nil {
			return err
		}

		// Start from the server copy so unset flags keep their values
		req := platform.UpdateProfileRequest{
			FullName:    current.Info.FullName,
			PhoneNumber: current.Info.PhoneNumber,
			DOB:         current.Info.DOB,
			Gender:      current.Info.Gender,
			Address:     current.Info.Address,
		}
		if name, _ := cmd.Flags().GetString("name"); name != "" {
			req.FullName = name
		}
		if phone, _ := cmd.Flags().GetString("phone"); phone != "" {
			req.PhoneNumber = phone
		}
		if dob, _ := cmd.Flags().GetString("dob"); dob != "" {
			req.DOB = dob
		}
		if gender, _ := cmd.Flags().GetString("gender"); gender != "" {
			req.Gender = gender
		}

		updated, err := app.Client.UpdateProfile(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Println(tui.Success("profile updated"))
		printProfile(updated)
		return nil
	},
}

func printProfile(p *platform.Profile) {
	fmt.Println(tui.Title("Profile"))
	fmt.Print(tui.KeyValues([][2]string{
		{"Email", p.Email},
		{"Name", p.Info.FullName},
		{"Phone", p.Info.PhoneNumber},
		{"Date of birth", p.Info.DOB},
		{"Gender", p.Info.Gender},
	}))
	for _, addr := range p.Info.Address {
		parts := make([]string, 0, 4)
		for _, s := range []string{addr.Address, addr.WardName, addr.DistrictName, addr.ProvinceName} {
			if s != "" {
				parts = append(parts, s)
			}
		}
		fmt.Println("  address:", strings.Join(parts, ", "))
	}
}

func init() {
	profileUpdateCmd.Flags().String("name", "", "full name")
	profileUpdateCmd.Flags().String("phone", "", "phone number")
	profileUpdateCmd.Flags().String("dob", "", "date of birth (YYYY-MM-DD)")
	profileUpdateCmd.Flags().String("gender", "", "gender")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
