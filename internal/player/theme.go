package player

import "github.com/charmbracelet/lipgloss"

type theme struct {
	text   lipgloss.Style
	status lipgloss.Style
	accent lipgloss.Style
	// guide marks the reading line.
	guide lipgloss.Style
}

var (
	darkTheme = theme{
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#000000")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Bold(true),
		guide:  lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94")).Background(lipgloss.Color("#000000")).Underline(true),
	}
	lightTheme = theme{
		text:   lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#FFFFFF")),
		status: lipgloss.NewStyle().Foreground(lipgloss.Color("235")).Background(lipgloss.Color("252")),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color("#874BFD")).Bold(true),
		guide:  lipgloss.NewStyle().Foreground(lipgloss.Color("#874BFD")).Background(lipgloss.Color("#FFFFFF")).Underline(true),
	}
)

func themeFor(dark bool) theme {
	if dark {
		return darkTheme
	}
	return lightTheme
}
