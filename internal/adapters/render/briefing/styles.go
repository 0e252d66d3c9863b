package briefing

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title    lipgloss.Style
	key      lipgloss.Style
	value    lipgloss.Style
	cost     lipgloss.Style
	warning  lipgloss.Style
	degraded lipgloss.Style
	faint    lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:    lipgloss.NewStyle().Bold(true),
		key:      lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		value:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		cost:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warning:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		degraded: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		faint:    lipgloss.NewStyle().Faint(true),
	}
}
