package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/rently-vn/rently/internal/session"
	"github.com/rently-vn/rently/internal/tui"
)

// DoctorReport is the health check summary, printable as text or JSON.
type DoctorReport struct {
	Backend DoctorCheck `json:"backend"`
	Config  DoctorCheck `json:"config"`
	Session DoctorCheck `json:"session"`
	Healthy bool        `json:"healthy"`
}

// DoctorCheck is a single health check result.
type DoctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check backend reachability and local setup",
	Long: `Run diagnostics to check whether rently is ready to use.

Checks include:
  - backend reachability at the configured base URL
  - configuration values in effect
  - local session state

Examples:
  rently doctor
  rently doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		report := runDoctor(cmd)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Println(tui.Title("Diagnostics"))
		for _, check := range []DoctorCheck{report.Backend, report.Config, report.Session} {
			line := fmt.Sprintf("%-10s %s", check.Name, check.Message)
			if check.OK {
				fmt.Println(" " + tui.Success(line))
			} else {
				fmt.Println(" " + tui.Failure(line))
			}
		}
		if !report.Healthy {
			fmt.Println()
			fmt.Println("Some checks failed. Verify api.base_url in your configuration.")
		}
		return nil
	},
}

func runDoctor(cmd *cobra.Command) DoctorReport {
	var report DoctorReport

	report.Config = DoctorCheck{
		Name:    "config",
		OK:      true,
		Message: "base URL " + app.Config.API.BaseURL,
	}

	report.Backend = checkBackend(cmd)

	switch app.Sessions.State() {
	case session.StateAuthenticated:
		msg := "logged in"
		if u := app.Sessions.Current().User; u != nil && u.Email != "" {
			msg = "logged in as " + u.Email
		}
		report.Session = DoctorCheck{Name: "session", OK: true, Message: msg}
	default:
		report.Session = DoctorCheck{Name: "session", OK: true, Message: "not logged in"}
	}

	report.Healthy = report.Backend.OK && report.Config.OK && report.Session.OK
	return report
}

func checkBackend(cmd *cobra.Command) DoctorCheck {
	check := DoctorCheck{Name: "backend"}

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, app.Config.API.BaseURL, nil)
	if err != nil {
		check.Message = err.Error()
		return check
	}

	client := &http.Client{Timeout: app.Config.API.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		check.Message = "unreachable: " + err.Error()
		return check
	}
	resp.Body.Close()

	// Any HTTP response means the backend is up; 404 on / is expected
	check.OK = true
	check.Message = fmt.Sprintf("reachable (HTTP %d)", resp.StatusCode)
	return check
}

func init() {
	doctorCmd.Flags().Bool("json", false, "output the report as JSON")
	rootCmd.AddCommand(doctorCmd)
}
