package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the form.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Advice   lipgloss.Style
	Alert    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).MarginBottom(1),
		Label:    lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245")),
		Focused:  lipgloss.NewStyle().Width(14).Bold(true).Foreground(lipgloss.Color("212")),
		Value:    lipgloss.NewStyle().Bold(true),
		Advice:   lipgloss.NewStyle().Width(60).Foreground(lipgloss.Color("86")),
		Alert:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("196")).Padding(0, 1).Width(60),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
		Selected: lipgloss.NewStyle().Underline(true).Bold(true),
	}
}
