// Package cliui holds the lipgloss styles cmd/simulate renders its batch
// summary with, in the style of the sibling baseball CLI's internal/echo
// package (header/success/info styles over a shared palette).
package cliui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F87"))
)

// Header renders a styled section header.
func Header(message string) string {
	return headerStyle.Render(" " + message + " ")
}

// Row renders a "label: value" line with the label bolded.
func Row(label string, value interface{}) string {
	return labelStyle.Render(label+":") + " " + valueStyle.Render(fmt.Sprint(value))
}

// Error renders a styled error message.
func Error(message string) string {
	return errorStyle.Render(message)
}
