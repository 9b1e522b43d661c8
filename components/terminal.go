package components

import "github.com/charmbracelet/lipgloss"

var (
	terminalTitle  = lipgloss.NewStyle().Bold(true)
	terminalStyles = map[string]lipgloss.Style{
		"red": terminalTitle.Foreground(lipgloss.Color("9")),
	}
)

// Terminal renders the title for a terminal. styleKey selects the same
// logical style as TitleStyles; "" renders plain bold text.
func Terminal(props TitleProps, styleKey string) string {
	style, ok := terminalStyles[styleKey]
	if !ok {
		style = terminalTitle
	}
	return style.Render(props.Text)
}
