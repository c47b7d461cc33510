package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/abatilo/tasks/internal/task"
)

// Theme holds the styles used by the task browser. Colors are ANSI 256
// codes for broad terminal compatibility.
type Theme struct {
	Header    lipgloss.Style
	Selected  lipgloss.Style
	Normal    lipgloss.Style
	Completed lipgloss.Style
	Faint     lipgloss.Style
	Label     lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style

	PriorityHigh   lipgloss.Style
	PriorityMedium lipgloss.Style
	PriorityLow    lipgloss.Style
}

// DefaultTheme returns the built-in dark-terminal palette.
func DefaultTheme() Theme {
	return Theme{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Padding(0, 1),
		Selected:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("237")),
		Normal:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Completed: lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
		Faint:     lipgloss.NewStyle().Foreground(lipgloss.Color("242")),
		Label:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("114")),

		PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("221")),
		PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("115")),
	}
}

// PriorityStyle returns the style for a priority. Unknown values use Normal.
func (t Theme) PriorityStyle(p task.Priority) lipgloss.Style {
	switch p {
	case task.PriorityHigh:
		return t.PriorityHigh
	case task.PriorityMedium:
		return t.PriorityMedium
	case task.PriorityLow:
		return t.PriorityLow
	default:
		return t.Normal
	}
}
