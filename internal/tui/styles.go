package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// Color palette
var (
	colorPrimary   = lipgloss.Color("#6C63FF")
	colorMuted     = lipgloss.Color("#666666")
	colorSuccess   = lipgloss.Color("#2ECC71")
	colorWarning   = lipgloss.Color("#F39C12")
	colorError     = lipgloss.Color("#E74C3C")
	colorFg        = lipgloss.Color("#C0CAF5")
	colorSubtle    = lipgloss.Color("#414868")
	colorHighlight = lipgloss.Color("#7AA2F7")
)

// categoryColors gives each primary category and the total line a fixed
// color in charts and breakdown bars.
var categoryColors = map[string]lipgloss.Color{
	analytics.LineTotal:     colorFg,
	tracker.PrimaryExternal: lipgloss.Color("#2EC4B6"),
	tracker.PrimaryStudy:    lipgloss.Color("#6C63FF"),
	tracker.PrimaryHealth:   lipgloss.Color("#2ECC71"),
	tracker.PrimaryOther:    lipgloss.Color("#F39C12"),
}

func categoryColor(key string) lipgloss.Color {
	if c, ok := categoryColors[key]; ok {
		return c
	}
	return colorMuted
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

	// Stat pills on the record view
	pillStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle).
			Padding(0, 1)

	// Text
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFg)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

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

	doneItemStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Strikethrough(true)
)

// habitDot renders one day of the habit strip.
func habitDot(s tracker.HabitStatus) string {
	switch s {
	case tracker.HabitGreen:
		return successStyle.Render("●")
	case tracker.HabitRed:
		return errorStyle.Render("●")
	}
	return mutedStyle.Render("○")
}

// pendingDot marks a cell whose press has not committed yet.
func pendingDot() string {
	return highlightStyle.Render("◌")
}

// weekDot renders one week of the weekly grid.
func weekDot(s tracker.WeekStatus) string {
	switch s {
	case tracker.WeekGreen:
		return successStyle.Render("●")
	case tracker.WeekYellow:
		return warningStyle.Render("●")
	case tracker.WeekRed:
		return errorStyle.Render("●")
	}
	return mutedStyle.Render("○")
}
