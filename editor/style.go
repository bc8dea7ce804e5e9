package editor

import "github.com/charmbracelet/lipgloss"

// Style controls the editor's rendering.
type Style struct {
	Text        lipgloss.Style
	Selection   lipgloss.Style
	Cursor      lipgloss.Style
	Placeholder lipgloss.Style
}

func DefaultStyle() Style {
	return Style{
		Text:        lipgloss.NewStyle(),
		Selection:   lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Cursor:      lipgloss.NewStyle().Reverse(true),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}
