package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/platform"
	"github.com/rently-vn/rently/internal/session"
	"github.com/rently-vn/rently/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication and your local session",
	Long: `Manage authentication against the Rently backend.

Tokens are stored locally and attached to every authenticated request.
When a token expires the client refreshes it transparently; you only need
to log in again when the refresh itself is rejected.

Examples:
  rently auth login --email user@example.com
  rently auth status
  rently auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login with email and password",
	Long: `Login to the Rently backend. Email and password may be passed as flags;
anything missing is prompted for interactively.

Examples:
  rently auth login
  rently auth login --email user@example.com`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		var err error
		if email == "" {
			if email, err = tui.PromptForString("Email", "user@example.com"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = tui.PromptForPassword("Password"); err != nil {
				return err
			}
		}

		sess, err := app.Sessions.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}

		fmt.Println(tui.Success("logged in"))
		fmt.Print(tui.KeyValues([][2]string{
			{"Email", sess.User.Email},
			{"Name", sess.User.FullName},
			{"Role", sess.Role},
		}))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Logout and clear the local session",
	Long: `Logout from the Rently backend and clear the locally stored session.

The local session is cleared even when the server cannot be reached, so
logout always leaves you signed out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if app.Sessions.State() != session.StateAuthenticated {
			fmt.Println("Not logged in.")
			return nil
		}

		app.Sessions.Logout(cmd.Context())
		fmt.Println(tui.Success("logged out"))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current authentication status",
	RunE: func(cmd *cobra.Command, args []string) error {
		sess := app.Sessions.Current()
		if app.Sessions.State() != session.StateAuthenticated {
			fmt.Println("Not logged in.")
			fmt.Println()
			fmt.Println("Use 'rently auth login' to login.")
			return nil
		}

		fmt.Println(tui.Title("Session"))
		pairs := [][2]string{{"Role", sess.Role}}
		if sess.User != nil {
			pairs = append(pairs,
				[2]string{"Email", sess.User.Email},
				[2]string{"Name", sess.User.FullName},
				[2]string{"Phone", sess.User.Phone},
			)
		}
		fmt.Print(tui.KeyValues(pairs))
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a new account",
	Long: `Register a new account with the Rently backend.

Examples:
  rently auth register --email user@example.com --name "Jane Doe" --phone 0900000000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		phone, _ := cmd.Flags().GetString("phone")

		var err error
		if email == "" {
			if email, err = tui.PromptForString("Email", "user@example.com"); err != nil {
				return err
			}
		}
		if password == "" {
			if password, err = tui.PromptForPassword("Password"); err != nil {
				return err
			}
		}

		resp, err := app.Client.Register(cmd.Context(), platform.RegisterRequest{
			Email:       email,
			Password:    password,
			FullName:    name,
			PhoneNumber: phone,
		})
		if err != nil {
			return err
		}

		fmt.Println(tui.Success(messageOr(resp, "account created")))
		fmt.Println("Use 'rently auth login' to login.")
		return nil
	},
}

var authSendOTPCmd = &cobra.Command{
	Use:   "send-otp",
	Short: "Send a one-time code to an email address",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		otpType, _ := cmd.Flags().GetString("type")
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		resp, err := app.Client.SendOTP(cmd.Context(), email, otpType)
		if err != nil {
			return err
		}
		fmt.Println(tui.Success(messageOr(resp, "code sent")))
		return nil
	},
}

var authVerifyOTPCmd = &cobra.Command{
	Use:   "verify-otp",
	Short: "Verify a one-time code",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		otpType, _ := cmd.Flags().GetString("type")
		otp, _ := cmd.Flags().GetString("code")
		if email == "" || otp == "" {
			return fmt.Errorf("--email and --code are required")
		}

		resp, err := app.Client.VerifyOTP(cmd.Context(), email, otpType, otp)
		if err != nil {
			return err
		}
		fmt.Println(tui.Success(messageOr(resp, "code verified")))
		return nil
	},
}

var authResetPasswordCmd = &cobra.Command{
	Use:   "reset-password",
	Short: "Reset a forgotten password",
	Long: `Reset a forgotten password. Run 'rently auth send-otp --type forgot_password'
and 'rently auth verify-otp' first to prove ownership of the address.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		if email == "" {
			return fmt.Errorf("--email is required")
		}

		password, err := tui.PromptForPassword("New password")
		if err != nil {
			return err
		}

		resp, err := app.Client.ResetPassword(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		fmt.Println(tui.Success(messageOr(resp, "password reset")))
		return nil
	},
}

var authChangePasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the password of the logged-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		oldPassword, err := tui.PromptForPassword("Current password")
		if err != nil {
			return err
		}
		newPassword, err := tui.PromptForPassword("New password")
		if err != nil {
			return err
		}

		resp, err := app.Client.ChangePassword(cmd.Context(), oldPassword, newPassword)
		if err != nil {
			return err
		}
		fmt.Println(tui.Success(messageOr(resp, "password changed")))
		return nil
	},
}

func messageOr(resp *platform.MessageResponse, fallback string) string {
	if resp != nil && resp.Message != "" {
		return resp.Message
	}
	return fallback
}

func init() {
	authLoginCmd.Flags().String("email", "", "account email")
	authLoginCmd.Flags().String("password", "", "account password (prompted if omitted)")

	authRegisterCmd.Flags().String("email", "", "account email")
	authRegisterCmd.Flags().String("password", "", "account password (prompted if omitted)")
	authRegisterCmd.Flags().String("name", "", "full name")
	authRegisterCmd.Flags().String("phone", "", "phone number")

	authSendOTPCmd.Flags().String("email", "", "account email")
	authSendOTPCmd.Flags().String("type", "register", "code purpose (register, forgot_password)")

	authVerifyOTPCmd.Flags().String("email", "", "account email")
	authVerifyOTPCmd.Flags().String("type", "register", "code purpose (register, forgot_password)")
	authVerifyOTPCmd.Flags().String("code", "", "one-time code")

	authResetPasswordCmd.Flags().String("email", "", "account email")

	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authSendOTPCmd)
	authCmd.AddCommand(authVerifyOTPCmd)
	authCmd.AddCommand(authResetPasswordCmd)
	authCmd.AddCommand(authChangePasswordCmd)
	rootCmd.AddCommand(authCmd)
}
