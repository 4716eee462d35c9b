package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spatiolabs/stacval/internal/core/domain"
)

var (
	validStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	invalidStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// outputReportJSON writes the machine-readable report.
func outputReportJSON(cmd *cobra.Command, report *domain.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

// renderReport writes the human-readable summary. Colour is only used
// when stdout is a terminal.
func renderReport(cmd *cobra.Command, report *domain.Report) {
	styled := term.IsTerminal(int(os.Stdout.Fd()))

	for i := range report.Outcomes {
		outcome := &report.Outcomes[i]
		if outcome.Valid {
			cmd.Printf("%s %s\n", paint(styled, validStyle, "valid  "), outcome.Location)
		} else {
			cmd.Printf("%s %s\n", paint(styled, invalidStyle, "INVALID"), outcome.Location)
		}
		for _, entry := range outcome.Errors {
			line := formatError(entry)
			switch entry.Severity {
			case domain.SeverityError:
				cmd.Printf("    %s\n", paint(styled, invalidStyle, line))
			case domain.SeverityWarning:
				cmd.Printf("    %s\n", paint(styled, warnStyle, line))
			default:
				cmd.Printf("    %s\n", paint(styled, dimStyle, line))
			}
		}
	}

	cmd.Println()
	summary := fmt.Sprintf("%d validated: %d valid, %d invalid", report.Total, report.Valid, report.Invalid)
	if !report.Complete {
		summary += " (incomplete)"
	}
	cmd.Println(summary)
}

func formatError(entry domain.ValidationError) string {
	line := fmt.Sprintf("[%s] %s", entry.Code, entry.Message)
	if entry.Path != "" {
		line += " at " + entry.Path
	}
	if entry.Schema != nil {
		line += fmt.Sprintf(" (%s)", entry.Schema)
	}
	return line
}

func paint(styled bool, style lipgloss.Style, s string) string {
	if !styled {
		return s
	}
	return style.Render(s)
}
