package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/click"
	"github.com/sadopc/dualtrack/internal/export"
	"github.com/sadopc/dualtrack/internal/logging"
	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/store"
)

var exportFormats = []string{export.FormatCSV, export.FormatJSON}

// Options carries the configured knobs of the terminal UI.
type Options struct {
	SeriesDays  int
	ClickWindow time.Duration
	ExportDir   string
	Log         logrus.FieldLogger
}

// App is the root Bubble Tea model.
type App struct {
	sess      *session.Session
	cats      *store.Categories
	log       logrus.FieldLogger
	exportDir string
	width     int
	height    int

	activeView    viewState
	showHelp      bool
	exportPicking bool
	exportCursor  int

	resetActive  bool
	resetForm    *huh.Form
	resetConfirm *bool

	record     recordModel
	todos      todosModel
	weekly     weeklyModel
	analytics  analyticsModel
	categories categoriesModel

	help   help.Model
	status string
}

func NewApp(sess *session.Session, cats *store.Categories, opts Options) App {
	h := help.New()
	h.ShowAll = false

	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	clicks := click.New(opts.ClickWindow)
	confirm := false

	record := newRecordModel(sess, cats, clicks, log)
	return App{
		sess:         sess,
		cats:         cats,
		log:          log,
		exportDir:    opts.ExportDir,
		activeView:   viewRecord,
		resetConfirm: &confirm,
		record:       record,
		todos:        newTodosModel(sess),
		weekly:       newWeeklyModel(sess, clicks, log),
		analytics:    newAnalyticsModel(sess, opts.SeriesDays),
		categories:   newCategoriesModel(cats, record.formSecondary),
		help:         h,
	}
}

func (a App) Init() tea.Cmd {
	return nil
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		contentHeight := a.height - 4 // header + footer
		a.record.setSize(a.width, contentHeight)
		a.todos.setSize(a.width, contentHeight)
		a.weekly.setSize(a.width, contentHeight)
		a.analytics.setSize(a.width, contentHeight)
		a.categories.setSize(a.width, contentHeight)
		return a, nil

	case tea.KeyMsg:
		if a.exportPicking {
			return a.updateExportPicker(msg)
		}
		if a.resetActive {
			return a.updateReset(msg)
		}

		// If a child view is capturing input (e.g. form), delegate first.
		if a.isFormActive() {
			return a.updateActiveView(msg)
		}

		switch {
		case key.Matches(msg, keys.Export):
			a.exportPicking = true
			a.exportCursor = 0
			return a, nil
		case key.Matches(msg, keys.Reset):
			return a.showReset()
		case key.Matches(msg, keys.Quit):
			return a, tea.Quit
		case key.Matches(msg, keys.Help):
			a.showHelp = !a.showHelp
			a.help.ShowAll = a.showHelp
			return a, nil
		case key.Matches(msg, keys.Tab1):
			return a.switchTo(viewRecord), nil
		case key.Matches(msg, keys.Tab2):
			return a.switchTo(viewTodos), nil
		case key.Matches(msg, keys.Tab3):
			return a.switchTo(viewWeekly), nil
		case key.Matches(msg, keys.Tab4):
			return a.switchTo(viewAnalytics), nil
		case key.Matches(msg, keys.Tab5):
			return a.switchTo(viewCategories), nil
		case key.Matches(msg, keys.Tab):
			return a.switchTo((a.activeView + 1) % viewState(len(viewNames))), nil
		}

	case clickFiredMsg:
		// Presses commit even if the user has moved to another tab.
		var cmd tea.Cmd
		switch {
		case strings.HasPrefix(msg.cell, habitCellPrefix):
			a.record, cmd = a.record.fireHabit(msg)
			if a.record.formActive {
				a.activeView = viewRecord
			}
		case strings.HasPrefix(msg.cell, weekCellPrefix):
			a.weekly, cmd = a.weekly.fireWeek(msg)
		}
		return a, cmd

	case statusMsg:
		a.status = msg.text
		if msg.isError {
			a.log.Warn(msg.text)
		}
		return a, nil

	case exportDoneMsg:
		a.status = "Exported to " + msg.path
		a.exportPicking = false
		return a, nil
	}

	if a.resetActive {
		return a.updateReset(msg)
	}
	return a.updateActiveView(msg)
}

func (a App) switchTo(v viewState) App {
	a.activeView = v
	a.refreshCurrentView()
	return a
}

func (a App) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.activeView {
	case viewRecord:
		a.record, cmd = a.record.update(msg)
	case viewTodos:
		a.todos, cmd = a.todos.update(msg)
	case viewWeekly:
		a.weekly, cmd = a.weekly.update(msg)
	case viewAnalytics:
		a.analytics, cmd = a.analytics.update(msg)
	case viewCategories:
		a.categories, cmd = a.categories.update(msg)
	}
	return a, cmd
}

func (a App) isFormActive() bool {
	switch a.activeView {
	case viewRecord:
		return a.record.formActive
	case viewTodos:
		return a.todos.formActive
	case viewWeekly:
		return a.weekly.formActive
	case viewAnalytics:
		return a.analytics.formActive
	case viewCategories:
		return a.categories.formActive
	}
	return false
}

func (a *App) refreshCurrentView() {
	switch a.activeView {
	case viewRecord:
		a.record.refresh()
	case viewTodos:
		a.todos.refresh()
	case viewWeekly:
		a.weekly.refresh()
	case viewAnalytics:
		a.analytics.refresh()
	case viewCategories:
		a.categories.refresh()
	}
}

func (a *App) refreshAll() {
	a.record.refresh()
	a.todos.refresh()
	a.weekly.refresh()
	a.analytics.refresh()
	a.categories.refresh()
}

func (a App) showReset() (App, tea.Cmd) {
	*a.resetConfirm = false
	a.resetForm = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset all tracked data?").
				Description("Everything is replaced with the sample data.").
				Affirmative("Reset").
				Negative("Cancel").
				Value(a.resetConfirm),
		),
	).WithShowHelp(true)
	a.resetActive = true
	return a, a.resetForm.Init()
}

func (a App) updateReset(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		a.resetActive = false
		a.resetForm = nil
		return a, nil
	}

	form, cmd := a.resetForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.resetForm = f
	}
	if a.resetForm.State != huh.StateCompleted {
		return a, cmd
	}

	a.resetActive = false
	a.resetForm = nil
	if !*a.resetConfirm {
		return a, nil
	}
	a.sess.Reset()
	a.refreshAll()
	a.status = "Data reset to sample data"
	return a, nil
}

func (a App) View() string {
	if a.width == 0 {
		return "Loading..."
	}

	header := a.renderHeader()
	footer := a.renderFooter()

	var content string
	switch a.activeView {
	case viewRecord:
		content = a.record.view()
	case viewTodos:
		content = a.todos.view()
	case viewWeekly:
		content = a.weekly.view()
	case viewAnalytics:
		content = a.analytics.view()
	case viewCategories:
		content = a.categories.view()
	}

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := a.height - headerHeight - footerHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	switch {
	case a.exportPicking:
		content = a.renderExportPicker()
	case a.resetActive && a.resetForm != nil:
		content = activePanelStyle.Width(a.width - 4).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Reset"), "", a.resetForm.View()),
		)
	}

	content = lipgloss.NewStyle().
		Width(a.width).
		Height(contentHeight).
		Render(content)

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

func (a App) renderHeader() string {
	var tabs []string
	for i, name := range viewNames {
		if viewState(i) == a.activeView {
			tabs = append(tabs, activeTabStyle.Render(name))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(name))
		}
	}

	tabRow := lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...)

	title := lipgloss.NewStyle().Bold(true).Foreground(colorPrimary).Render("dualtrack")
	gap := a.width - lipgloss.Width(title) - lipgloss.Width(tabRow) - 4
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return headerStyle.Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, title, spacer, tabRow),
	)
}

func (a App) renderFooter() string {
	helpView := a.help.View(keys)

	status := ""
	if a.status != "" {
		status = mutedStyle.Render(" " + a.status)
	}

	left := footerStyle.Render(helpView)

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(status) - 2
	if gap < 1 {
		gap = 1
	}
	spacer := lipgloss.NewStyle().Width(gap).Render("")

	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, spacer, status)
}

func (a App) renderExportPicker() string {
	var rows []string
	rows = append(rows, titleStyle.Render("Export Format"))
	rows = append(rows, "")
	for i, f := range exportFormats {
		style := normalItemStyle
		if i == a.exportCursor {
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(cursorPrefix(i == a.exportCursor)+strings.ToUpper(f)))
	}
	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  files go to "+a.exportDir))
	rows = append(rows, mutedStyle.Render("  enter: export  esc: cancel"))

	return activePanelStyle.Width(a.width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (a App) updateExportPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if a.exportCursor > 0 {
			a.exportCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.exportCursor < len(exportFormats)-1 {
			a.exportCursor++
		}
	case key.Matches(msg, keys.Enter):
		a.exportPicking = false
		return a, a.doExport(exportFormats[a.exportCursor])
	case key.Matches(msg, keys.Back):
		a.exportPicking = false
	}
	return a, nil
}

func (a App) doExport(format string) tea.Cmd {
	d := a.sess.Data()
	custom := a.cats.List()
	path := export.DefaultPath(a.exportDir, format, a.sess.Today())
	log := a.log
	return func() tea.Msg {
		if err := export.ToFile(format, d, custom, path); err != nil {
			log.WithError(err).WithField("path", path).Warn("export failed")
			return statusMsg{text: fmt.Sprintf("Export error: %v", err), isError: true}
		}
		log.WithField("path", path).Info("exported")
		return exportDoneMsg{path: path}
	}
}
