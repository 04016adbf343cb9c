package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"momfit.app/cli/internal/auth"
	httpdomain "momfit.app/cli/internal/core/domain/http"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	labelStyle   = lipgloss.NewStyle().Bold(true).Width(22)
)

func printSuccess(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, successStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, titleStyle.Render(title))
}

func printHint(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintln(w, mutedStyle.Render("   "+fmt.Sprintf(format, args...)))
}

// printFields renders label/value pairs, skipping empty values.
func printFields(w io.Writer, fields [][2]string) {
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		fmt.Fprintln(w, lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(f[0]), f[1]))
	}
}

// renderTable draws rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return titleStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...).
		Rows(rows...).
		Render()
}

// printJSON pretty-prints a response body. A 204 body prints a marker.
func printJSON(w io.Writer, body httpdomain.Body) error {
	if body.NoContent() {
		fmt.Fprintln(w, mutedStyle.Render("(no content)"))
		return nil
	}
	var v interface{}
	if err := body.Decode(&v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format response: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// renderError turns an error into the line printed before exiting.
func renderError(err error) string {
	var httpErr *httpdomain.Error
	switch {
	case errors.Is(err, auth.ErrRefreshFailed), errors.Is(err, auth.ErrNotAuthenticated):
		return errorStyle.Render("❌ Your session has expired.") + "\n" +
			mutedStyle.Render("   Run 'momfit login' to sign in again.")
	case errors.As(err, &httpErr):
		return errorStyle.Render(fmt.Sprintf("❌ %s (HTTP %d)", httpErr.Message, httpErr.Status))
	default:
		return errorStyle.Render("❌ Error: " + err.Error())
	}
}

// maskToken keeps the first and last characters of a credential.
func maskToken(token string) string {
	if len(token) <= 12 {
		return "********"
	}
	return token[:6] + "..." + token[len(token)-4:]
}
