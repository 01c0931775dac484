// Package cli provides the terminal surface of the budget app: styled
// output, line prompts with bounded retries, and the display helpers the
// interactive flows render through.
package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette. Income and expense reuse the success and error hues so a
// balance reads the same color as the messages around it.
var (
	PrimaryColor = lipgloss.Color("#5FAFD7")
	SuccessColor = lipgloss.Color("#5FD787")
	WarningColor = lipgloss.Color("#FFD75F")
	ErrorColor   = lipgloss.Color("#FF5F5F")
	InfoColor    = lipgloss.Color("#AFD7FF")
	SubtleColor  = lipgloss.Color("#808080")
)

// Text styles.
var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	KeyStyle     = lipgloss.NewStyle().Bold(true).Foreground(PrimaryColor)
	PromptStyle  = lipgloss.NewStyle().Bold(true)
	BoldStyle    = lipgloss.NewStyle().Bold(true)
	SubtleStyle  = lipgloss.NewStyle().Foreground(SubtleColor)
	SuccessStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(WarningColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ErrorColor)
	InfoStyle    = lipgloss.NewStyle().Foreground(InfoColor)
	IncomeStyle  = lipgloss.NewStyle().Foreground(SuccessColor)
	ExpenseStyle = lipgloss.NewStyle().Foreground(ErrorColor)
)

// Message prefixes.
const (
	SuccessIcon = "✓"
	ErrorIcon   = "✗"
	WarningIcon = "⚠️"
	InfoIcon    = "ℹ️"
	MoneyIcon   = "💰"
	ChartIcon   = "📊"
)

// Rule is printed under screen titles.
const Rule = "-----------------"

// FormatSuccess prefixes message with a check mark.
func FormatSuccess(message string) string {
	return SuccessStyle.Render(SuccessIcon + " " + message)
}

// FormatError prefixes message with a cross.
func FormatError(message string) string {
	return ErrorStyle.Render(ErrorIcon + " " + message)
}

// FormatWarning prefixes message with a warning sign.
func FormatWarning(message string) string {
	return WarningStyle.Render(WarningIcon + " " + message)
}

// FormatInfo prefixes message with an info sign.
func FormatInfo(message string) string {
	return InfoStyle.Render(InfoIcon + " " + message)
}

// FormatTitle renders title above a rule.
func FormatTitle(title string) string {
	return TitleStyle.Render(title) + "\n" + SubtleStyle.Render(Rule)
}

// FormatPrompt renders a prompt.
func FormatPrompt(prompt string) string {
	return PromptStyle.Render(prompt)
}
