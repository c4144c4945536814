package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sadopc/dualtrack/internal/click"
)

// viewState represents the currently active view.
type viewState int

const (
	viewRecord viewState = iota
	viewTodos
	viewWeekly
	viewAnalytics
	viewCategories
)

var viewNames = []string{"Record", "Todos", "Weekly", "Analytics", "Categories"}

// --- Messages ---

type statusMsg struct {
	text    string
	isError bool
}

type exportDoneMsg struct {
	path string
}

// clickFiredMsg arrives once the double-click window for a press has
// elapsed. It only acts if tok is still the pending press on cell.
type clickFiredMsg struct {
	cell string
	tok  click.Token
}

func waitClick(window time.Duration, cell string, tok click.Token) tea.Cmd {
	return tea.Tick(window, func(time.Time) tea.Msg {
		return clickFiredMsg{cell: cell, tok: tok}
	})
}

// --- Helpers ---

func formatHours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

func cursorPrefix(selected bool) string {
	if selected {
		return "> "
	}
	return "  "
}

func clampCursor(c, n int) int {
	if c >= n {
		c = n - 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func setStatus(format string, a ...any) tea.Cmd {
	text := fmt.Sprintf(format, a...)
	return func() tea.Msg { return statusMsg{text: text} }
}
