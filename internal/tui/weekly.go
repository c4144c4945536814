package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/click"
	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/tracker"
)

const weekCellPrefix = "week:"

const weekColWidth = 6

func weekCellKey(taskID string, week int) string {
	return fmt.Sprintf("%s%s:%d", weekCellPrefix, taskID, week)
}

// parseWeekCell splits a cell key built by weekCellKey.
func parseWeekCell(cell string) (taskID string, week int, ok bool) {
	rest, ok := strings.CutPrefix(cell, weekCellPrefix)
	if !ok {
		return "", 0, false
	}
	i := strings.LastIndex(rest, ":")
	if i <= 0 {
		return "", 0, false
	}
	week, err := strconv.Atoi(rest[i+1:])
	if err != nil || week < 1 {
		return "", 0, false
	}
	return rest[:i], week, true
}

type weeklyModel struct {
	sess   *session.Session
	clicks *click.Debouncer
	log    logrus.FieldLogger
	width  int
	height int

	tasks []tracker.WeeklyTask
	weeks int
	row   int
	col   int // zero-based; week number is col+1

	formActive bool
	form       *huh.Form
	formType   string // "task", "note", "delete"
	noteTask   string
	noteWeek   int

	formTitle   *string
	formNote    *string
	formConfirm *bool
}

func newWeeklyModel(sess *session.Session, clicks *click.Debouncer, log logrus.FieldLogger) weeklyModel {
	title, note, confirm := "", "", false
	m := weeklyModel{
		sess:        sess,
		clicks:      clicks,
		log:         log,
		formTitle:   &title,
		formNote:    &note,
		formConfirm: &confirm,
	}
	m.refresh()
	return m
}

func (m *weeklyModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *weeklyModel) refresh() {
	m.tasks = m.sess.Data().WeeklyTasks
	m.weeks = tracker.DisplayWeeks(m.tasks)
	m.row = clampCursor(m.row, len(m.tasks))
	m.col = clampCursor(m.col, m.weeks)
}

func (m weeklyModel) current() (tracker.WeeklyTask, bool) {
	if len(m.tasks) == 0 {
		return tracker.WeeklyTask{}, false
	}
	return m.tasks[m.row], true
}

func (m weeklyModel) update(msg tea.Msg) (weeklyModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.row > 0 {
				m.row--
			}
		case key.Matches(msg, keys.Down):
			if m.row < len(m.tasks)-1 {
				m.row++
			}
		case key.Matches(msg, keys.Left):
			if m.col > 0 {
				m.col--
			}
		case key.Matches(msg, keys.Right):
			if m.col < m.weeks-1 {
				m.col++
			}
		case key.Matches(msg, keys.Add):
			return m.showTaskForm()
		case key.Matches(msg, keys.Toggle):
			return m.pressWeek()
		case key.Matches(msg, keys.Note):
			if t, ok := m.current(); ok {
				return m.showNoteForm(t.ID, m.col+1)
			}
		case key.Matches(msg, keys.AddWeek):
			if t, ok := m.current(); ok {
				m.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.AddWeek(d, t.ID) })
				m.refresh()
				return m, setStatus("%s: added %s week", t.Title, tracker.WeekLabel(tracker.MaxWeek(m.tasks[m.row])))
			}
		case key.Matches(msg, keys.Delete):
			if t, ok := m.current(); ok {
				return m.showDeleteForm(t)
			}
		}
	}
	return m, nil
}

func (m weeklyModel) pressWeek() (weeklyModel, tea.Cmd) {
	t, ok := m.current()
	if !ok {
		return m, nil
	}
	week := m.col + 1
	cell := weekCellKey(t.ID, week)
	tok, double := m.clicks.Press(cell)
	if double {
		return m.showNoteForm(t.ID, week)
	}
	return m, waitClick(m.clicks.Window(), cell, tok)
}

func (m weeklyModel) fireWeek(msg clickFiredMsg) (weeklyModel, tea.Cmd) {
	taskID, week, ok := parseWeekCell(msg.cell)
	if !ok || !m.clicks.Fire(msg.cell, msg.tok) {
		return m, nil
	}
	m.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.ToggleWeek(d, taskID, week) })
	m.log.WithFields(logrus.Fields{"task": taskID, "week": week}).Debug("week toggled")
	m.refresh()
	return m, nil
}

func (m weeklyModel) showTaskForm() (weeklyModel, tea.Cmd) {
	*m.formTitle = ""
	m.formType = "task"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Weekly goal").Value(m.formTitle).Validate(required("title")),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m weeklyModel) showNoteForm(taskID string, week int) (weeklyModel, tea.Cmd) {
	t, _ := m.sess.Data().FindWeeklyTask(taskID)
	*m.formNote = t.Week(week).Note
	m.noteTask, m.noteWeek = taskID, week
	m.formType = "note"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(fmt.Sprintf("%s · %s week", t.Title, tracker.WeekLabel(week))).Value(m.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m weeklyModel) showDeleteForm(t tracker.WeeklyTask) (weeklyModel, tea.Cmd) {
	*m.formConfirm = false
	m.noteTask = t.ID
	m.formType = "delete"
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q?", t.Title)).
				Description("All of its weeks and notes are removed.").
				Affirmative("Delete").
				Negative("Keep").
				Value(m.formConfirm),
		),
	).WithShowHelp(true)
	m.formActive = true
	return m, m.form.Init()
}

func (m weeklyModel) updateForm(msg tea.Msg) (weeklyModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}
	m.formActive = false

	switch m.formType {
	case "task":
		title := *m.formTitle
		m.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.AddWeeklyTask(d, title) })
		m.refresh()
		m.row = max(len(m.tasks)-1, 0)
	case "note":
		taskID, week, note := m.noteTask, m.noteWeek, strings.TrimSpace(*m.formNote)
		m.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.UpdateWeekNote(d, taskID, week, note) })
		m.refresh()
	case "delete":
		if !*m.formConfirm {
			return m, nil
		}
		taskID := m.noteTask
		m.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.DeleteWeeklyTask(d, taskID) })
		m.refresh()
		return m, setStatus("Weekly goal deleted")
	}
	return m, nil
}

func (m weeklyModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		titles := map[string]string{"task": "New Weekly Goal", "note": "Week Note", "delete": "Delete Weekly Goal"}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(titles[m.formType]), "", m.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := titleStyle.Render("Weekly")
	if len(m.tasks) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No weekly goals yet. Press a to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	nameWidth := 24
	cell := lipgloss.NewStyle().Width(weekColWidth)

	header := []string{lipgloss.NewStyle().Width(nameWidth + 2).Render("")}
	for n := 1; n <= m.weeks; n++ {
		header = append(header, cell.Render(mutedStyle.Render(tracker.WeekLabel(n))))
	}

	rows := []string{title, "", strings.Join(header, "")}
	for i, t := range m.tasks {
		style := normalItemStyle
		if i == m.row {
			style = selectedItemStyle
		}
		name := truncate.StringWithTail(t.Title, uint(nameWidth), "…")
		line := []string{cursorPrefix(i == m.row) + lipgloss.NewStyle().Width(nameWidth).Render(style.Render(name))}
		for n := 1; n <= m.weeks; n++ {
			rec := t.Week(n)
			dot := weekDot(rec.Status)
			if m.clicks.Pending(weekCellKey(t.ID, n)) {
				dot = pendingDot()
			}
			if rec.Note != "" {
				dot += mutedStyle.Render("*")
			}
			if i == m.row && n == m.col+1 {
				dot = "[" + dot + "]"
			} else {
				dot = " " + dot
			}
			line = append(line, cell.Render(dot))
		}
		rows = append(rows, strings.Join(line, ""))
	}

	if t, ok := m.current(); ok {
		rec := t.Week(m.col + 1)
		detail := fmt.Sprintf("%s · %s week · %s", t.Title, tracker.WeekLabel(m.col+1), rec.Status)
		if rec.Note != "" {
			detail += " · " + rec.Note
		}
		rows = append(rows, "", mutedStyle.Render(truncate.StringWithTail(detail, uint(max(w-6, 20)), "…")))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  a: add goal  space: cycle status (twice: note)  n: note  w: add week  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
