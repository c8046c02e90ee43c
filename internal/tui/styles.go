package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle()

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

// Title renders a section heading.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Success renders a success marker line.
func Success(s string) string {
	return successStyle.Render("✓ ") + s
}

// Failure renders a failure marker line.
func Failure(s string) string {
	return errorStyle.Render("✗ ") + s
}

// KeyValues renders aligned label/value pairs. Pairs with an empty value
// are skipped so optional fields don't leave blank rows.
func KeyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		if p[1] != "" && len(p[0]) > width {
			width = len(p[0])
		}
	}

	var b strings.Builder
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		label := labelStyle.Render(fmt.Sprintf("%-*s", width, p[0]))
		b.WriteString(label + "  " + valueStyle.Render(p[1]) + "\n")
	}
	return b.String()
}
