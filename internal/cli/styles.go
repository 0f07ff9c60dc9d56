// Package cli renders admin panel lists for the terminal using lipgloss.
package cli

import "github.com/charmbracelet/lipgloss"

var (
	// PrimaryColor is the EnrollPlus accent.
	PrimaryColor = lipgloss.Color("#2563EB")
	// SuccessColor marks open enrollment and completed items.
	SuccessColor = lipgloss.Color("#16A34A")
	// WarningColor marks pending items.
	WarningColor = lipgloss.Color("#D97706")
	// ErrorColor marks errors, closed and rejected items.
	ErrorColor = lipgloss.Color("#DC2626")
	// SubtleColor is used for separators and footers.
	SubtleColor = lipgloss.Color("#6B7280")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// TableHeaderStyle is used for table headers.
	TableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(PrimaryColor)

	// CurrentPageStyle highlights the active page number.
	CurrentPageStyle = lipgloss.NewStyle().
				Bold(true).
				Reverse(true)

	// CardStyle frames one dashboard stat.
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SubtleColor).
			Padding(0, 2).
			MarginRight(1)

	statusColors = map[string]lipgloss.Color{
		"open":      SuccessColor,
		"active":    SuccessColor,
		"completed": SuccessColor,
		"approved":  SuccessColor,
		"pending":   WarningColor,
		"closed":    ErrorColor,
		"expired":   SubtleColor,
		"inactive":  SubtleColor,
		"suspended": ErrorColor,
		"rejected":  ErrorColor,
	}
)

// FormatTitle renders a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render(title)
}

// FormatStatus colours a status or enrollment badge.
func FormatStatus(status string) string {
	color, ok := statusColors[status]
	if !ok {
		return status
	}
	return lipgloss.NewStyle().Foreground(color).Render(status)
}
