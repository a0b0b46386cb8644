package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	colorPrimary   = lipgloss.Color("#C8A165")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#E6E1D6")
	colorSubtle    = lipgloss.Color("#3B3F4A")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// itemColors is cycled by catalog position for bars and legends.
var itemColors = []lipgloss.Color{
	lipgloss.Color("#C8A165"),
	lipgloss.Color("#2EC4B6"),
	lipgloss.Color("#7AA2F7"),
	lipgloss.Color("#FF6B6B"),
	lipgloss.Color("#9ECE6A"),
	lipgloss.Color("#BB9AF7"),
	lipgloss.Color("#F39C12"),
	lipgloss.Color("#73DACA"),
}

func itemColor(i int) lipgloss.Color {
	if i < 0 {
		return colorMuted
	}
	return itemColors[i%len(itemColors)]
}

// Styles
var (
	// Tabs
	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(colorPrimary).
			Padding(0, 2)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(colorMuted).
				Padding(0, 2)

	// Panels
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(1, 2)

	activePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Padding(1, 2)

	// Calendar cells
	cellStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	cellEmptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	cellTodayStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true)

	cellCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1A1B26")).
			Background(colorPrimary).
			Bold(true)

	weekdayStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Bold(true)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	highlightStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)

	// Header/footer
	headerStyle = lipgloss.NewStyle().
			Padding(0, 1)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1)

	// List items
	selectedItemStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(colorFg)

	disabledItemStyle = lipgloss.NewStyle().
				Foreground(colorSubtle)
)
