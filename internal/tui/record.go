package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/click"
	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/store"
	"github.com/sadopc/dualtrack/internal/tracker"
)

const habitCellPrefix = "habit:"

// stripDays is the width of the habit strip; the selected day sits in the
// middle.
const stripDays = 7

type recordModel struct {
	sess   *session.Session
	cats   *store.Categories
	clicks *click.Debouncer
	log    logrus.FieldLogger
	width  int
	height int

	selected time.Time
	data     tracker.Data
	tasks    []tracker.Task // in display order, for the cursor
	cursor   int

	formActive bool
	form       *huh.Form
	formType   string // "task", "mood", "note", "habit", "goto"
	noteDate   string

	// Form field pointers (survive value copies)
	formTitle     *string
	formHours     *string
	formPrimary   *string
	formSecondary *string
	formDetails   *string
	formMood      *tracker.Mood
	formNote      *string
	formName      *string
	formStart     *string
	formEnd       *string
	formDate      *string
}

func newRecordModel(sess *session.Session, cats *store.Categories, clicks *click.Debouncer, log logrus.FieldLogger) recordModel {
	title, hours, primary, secondary, details := "", "", tracker.PrimaryCategories[0].Key, "", ""
	mood, note := tracker.MoodGood, ""
	name, start, end, date := "", "", "", ""
	r := recordModel{
		sess:          sess,
		cats:          cats,
		clicks:        clicks,
		log:           log,
		selected:      dateutil.StartOfDay(sess.Today()),
		formTitle:     &title,
		formHours:     &hours,
		formPrimary:   &primary,
		formSecondary: &secondary,
		formDetails:   &details,
		formMood:      &mood,
		formNote:      &note,
		formName:      &name,
		formStart:     &start,
		formEnd:       &end,
		formDate:      &date,
	}
	r.refresh()
	return r
}

func (r *recordModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r *recordModel) refresh() {
	r.data = r.sess.Data()
	r.tasks = nil
	for _, g := range analytics.GroupByPrimary(r.data.TasksOn(r.selectedKey())) {
		r.tasks = append(r.tasks, g.Tasks...)
	}
	r.cursor = clampCursor(r.cursor, len(r.tasks))
}

func (r recordModel) selectedKey() string {
	return dateutil.FormatKey(r.selected)
}

func (r *recordModel) selectDay(t time.Time) {
	r.selected = dateutil.StartOfDay(t)
	r.cursor = 0
	r.refresh()
}

func (r recordModel) update(msg tea.Msg) (recordModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.selectDay(dateutil.ShiftDays(r.selected, -1))
		case key.Matches(msg, keys.Right):
			r.selectDay(dateutil.ShiftDays(r.selected, 1))
		case key.Matches(msg, keys.Today):
			r.selectDay(r.sess.Today())
		case key.Matches(msg, keys.Up):
			if r.cursor > 0 {
				r.cursor--
			}
		case key.Matches(msg, keys.Down):
			if r.cursor < len(r.tasks)-1 {
				r.cursor++
			}
		case key.Matches(msg, keys.Toggle):
			return r.pressHabit()
		case key.Matches(msg, keys.Add):
			return r.showTaskForm()
		case key.Matches(msg, keys.Delete):
			if len(r.tasks) > 0 {
				t := r.tasks[r.cursor]
				date := r.selectedKey()
				r.sess.Apply(func(d tracker.Data) tracker.Data {
					return tracker.RemoveTask(d, date, t.ID)
				})
				r.refresh()
				return r, setStatus("Deleted %q", t.Title)
			}
		case key.Matches(msg, keys.Mood):
			return r.showMoodForm()
		case key.Matches(msg, keys.Note):
			return r.showNoteForm(r.selectedKey())
		case key.Matches(msg, keys.Habit):
			return r.showHabitForm()
		case key.Matches(msg, keys.GoTo):
			return r.showGoToForm()
		}
	}
	return r, nil
}

// pressHabit routes a toggle through the click debouncer. The toggle
// itself happens in fireHabit once the window passes; a second press in
// the window opens the note editor instead.
func (r recordModel) pressHabit() (recordModel, tea.Cmd) {
	date := r.selectedKey()
	cell := habitCellPrefix + date
	tok, double := r.clicks.Press(cell)
	if double {
		return r.showNoteForm(date)
	}
	return r, waitClick(r.clicks.Window(), cell, tok)
}

func (r recordModel) fireHabit(msg clickFiredMsg) (recordModel, tea.Cmd) {
	date, ok := strings.CutPrefix(msg.cell, habitCellPrefix)
	if !ok || !r.clicks.Fire(msg.cell, msg.tok) {
		return r, nil
	}
	status := r.sess.ToggleHabit(date)
	r.log.WithFields(logrus.Fields{"date": date, "status": status}).Debug("habit toggled")
	r.refresh()
	if status == tracker.HabitRed && !r.formActive {
		return r.showNoteForm(date)
	}
	return r, nil
}

func (r recordModel) showTaskForm() (recordModel, tea.Cmd) {
	*r.formTitle = ""
	*r.formHours = ""
	*r.formDetails = ""
	if !tracker.IsPrimary(*r.formPrimary) {
		*r.formPrimary = tracker.PrimaryCategories[0].Key
	}
	secondary := r.cats.List()
	if !hasCategory(tracker.AllSecondary(secondary), *r.formSecondary) {
		*r.formSecondary = ""
	}
	r.formType = "task"

	primaryOptions := make([]huh.Option[string], len(tracker.PrimaryCategories))
	for i, c := range tracker.PrimaryCategories {
		primaryOptions[i] = huh.NewOption(c.Label, c.Key)
	}
	secondaryOptions := []huh.Option[string]{huh.NewOption("None", "")}
	for _, c := range tracker.AllSecondary(secondary) {
		secondaryOptions = append(secondaryOptions, huh.NewOption(c.Label, c.Key))
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Title").Value(r.formTitle).Validate(required("title")),
			huh.NewInput().Title("Hours").Placeholder("1.5").Value(r.formHours).Validate(validateHours),
			huh.NewSelect[string]().Title("Category").Options(primaryOptions...).Value(r.formPrimary),
			huh.NewSelect[string]().Title("Type").Options(secondaryOptions...).Value(r.formSecondary),
			huh.NewText().Title("Details").Value(r.formDetails),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) showMoodForm() (recordModel, tea.Cmd) {
	*r.formMood = tracker.MoodGood
	*r.formNote = ""
	if rec, ok := r.data.MoodOn(r.selectedKey()); ok {
		if rec.Mood.Known() {
			*r.formMood = rec.Mood
		}
		*r.formNote = rec.Note
	}
	r.formType = "mood"

	options := make([]huh.Option[tracker.Mood], len(tracker.Moods))
	for i, m := range tracker.Moods {
		options[i] = huh.NewOption(fmt.Sprintf("%s · %s", m.Label, m.Hint), m.Key)
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[tracker.Mood]().Title("Mood").Options(options...).Value(r.formMood),
			huh.NewInput().Title("Note").Value(r.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) showNoteForm(date string) (recordModel, tea.Cmd) {
	*r.formNote = limitNote(r.data.HabitOn(date).Note)
	r.noteDate = date
	r.formType = "note"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit note · " + date).
				Description(fmt.Sprintf("up to %d characters", tracker.HabitNoteLimit)).
				CharLimit(tracker.HabitNoteLimit).
				Value(r.formNote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) showHabitForm() (recordModel, tea.Cmd) {
	*r.formName = tracker.DefaultHabitName
	*r.formStart = ""
	*r.formEnd = ""
	if s := r.data.HabitSettings; s != nil {
		*r.formName, *r.formStart, *r.formEnd = s.Name, s.StartDate, s.EndDate
	}
	r.formType = "habit"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit").Value(r.formName),
			huh.NewInput().Title("Start date").Placeholder("YYYY-MM-DD").Value(r.formStart).Validate(validateDate),
			huh.NewInput().Title("End date").Placeholder("YYYY-MM-DD").Value(r.formEnd).Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) showGoToForm() (recordModel, tea.Cmd) {
	*r.formDate = r.selectedKey()
	r.formType = "goto"

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Go to date").Placeholder("YYYY-MM-DD").Value(r.formDate).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("date is required")
					}
					return validateDate(s)
				}),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r recordModel) updateForm(msg tea.Msg) (recordModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State != huh.StateCompleted {
		return r, cmd
	}
	r.formActive = false
	date := r.selectedKey()

	switch r.formType {
	case "task":
		t := tracker.Task{
			Title:     *r.formTitle,
			Hours:     tracker.Hours(tracker.ParseHours(*r.formHours)),
			Primary:   *r.formPrimary,
			Secondary: *r.formSecondary,
			Details:   strings.TrimSpace(*r.formDetails),
		}
		r.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.AddTask(d, date, t) })
		r.cursor = 0
		r.refresh()
		return r, setStatus("Added %q", strings.TrimSpace(t.Title))
	case "mood":
		mood, note := *r.formMood, strings.TrimSpace(*r.formNote)
		r.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.SaveMood(d, date, mood, note) })
		r.refresh()
		return r, setStatus("Mood saved: %s", mood.Label())
	case "note":
		noteDate, note := r.noteDate, limitNote(*r.formNote)
		r.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.UpdateHabitNote(d, noteDate, note) })
		r.refresh()
		return r, nil
	case "habit":
		name, start, end := *r.formName, strings.TrimSpace(*r.formStart), strings.TrimSpace(*r.formEnd)
		before := len(r.data.Habits)
		r.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.CommitHabitSettings(d, name, start, end) })
		r.refresh()
		if len(r.data.Habits) > before {
			return r, setStatus("Tracking %q", strings.TrimSpace(name))
		}
		return r, setStatus("Habit settings saved")
	case "goto":
		if t, err := dateutil.ParseKey(strings.TrimSpace(*r.formDate)); err == nil {
			r.selectDay(t)
		}
		return r, nil
	}
	return r, cmd
}

func (r recordModel) view() string {
	w := r.width - 4

	if r.formActive && r.form != nil {
		titles := map[string]string{
			"task":  "New Task · " + r.selectedKey(),
			"mood":  "Mood · " + r.selectedKey(),
			"note":  "Habit Note",
			"habit": "Habit Settings",
			"goto":  "Go To Date",
		}
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(titles[r.formType]), "", r.form.View())
		return panelStyle.Width(w).Render(content)
	}

	dateLabel := r.selected.Format("Mon, Jan 02 2006")
	if r.selectedKey() == dateutil.FormatKey(r.sess.Today()) {
		dateLabel += " (today)"
	}
	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Record"), "  ", highlightStyle.Render(dateLabel),
	)

	sum := analytics.Summarize(r.data, r.selectedKey())

	sections := []string{
		header,
		"",
		r.renderPills(sum),
		"",
		r.renderHabitStrip(),
		"",
		r.renderTasks(sum, w),
		"",
		mutedStyle.Render("  ←/→: day  t: today  g: go to  a: add  d: delete  m: mood  space: habit  n: note  s: habit settings"),
	}
	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (r recordModel) renderPills(sum analytics.DaySummary) string {
	habit := mutedStyle.Render("–")
	switch sum.Habit.Status {
	case tracker.HabitGreen:
		habit = successStyle.Render("done")
	case tracker.HabitRed:
		habit = errorStyle.Render("missed")
	}

	mood := mutedStyle.Render("not set")
	if label := sum.MoodLabel(); label != "" {
		mood = label
		if note := strings.TrimSpace(sum.Mood.Note); note != "" {
			mood += mutedStyle.Render(" · " + truncate.StringWithTail(note, 28, "…"))
		}
	}

	pills := []string{
		pillStyle.Render("Hours " + formatHours(sum.TotalHours)),
		pillStyle.Render(fmt.Sprintf("Tasks %d", sum.TaskCount)),
		pillStyle.Render("Habit " + habit),
		pillStyle.Render("Mood " + mood),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, pills...)
}

func (r recordModel) renderHabitStrip() string {
	name := tracker.DefaultHabitName
	if s := r.data.HabitSettings; s != nil && strings.TrimSpace(s.Name) != "" {
		name = s.Name
	}

	var labels, dots []string
	for i := -(stripDays / 2); i <= stripDays/2; i++ {
		day := dateutil.ShiftDays(r.selected, i)
		label := dateutil.FormatMMDD(day)
		key := dateutil.FormatKey(day)
		rec := r.data.HabitOn(key)
		dot := habitDot(tracker.ParseHabitStatus(string(rec.Status)))
		if r.clicks.Pending(habitCellPrefix + key) {
			dot = pendingDot()
		}
		if i == 0 {
			label = selectedItemStyle.Render(label)
		} else {
			label = mutedStyle.Render(label)
		}
		labels = append(labels, lipgloss.NewStyle().Width(7).Render(label))
		dots = append(dots, lipgloss.NewStyle().Width(7).Render("  "+dot))
	}

	rows := []string{
		subtitleStyle.Render(name),
		strings.Join(labels, ""),
		strings.Join(dots, ""),
	}
	if note := r.data.HabitOn(r.selectedKey()).Note; note != "" {
		rows = append(rows, mutedStyle.Render("note: "+note))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (r recordModel) renderTasks(sum analytics.DaySummary, w int) string {
	if len(sum.Groups) == 0 {
		return mutedStyle.Render("No tasks for this day. Press a to add one.")
	}

	custom := r.cats.List()
	var rows []string
	i := 0
	for _, g := range sum.Groups {
		dot := lipgloss.NewStyle().Foreground(categoryColor(g.Category.Key)).Render("●")
		rows = append(rows, fmt.Sprintf("%s %s %s", dot, titleStyle.Render(g.Category.Label), mutedStyle.Render(formatHours(g.Hours))))
		for _, t := range g.Tasks {
			style := normalItemStyle
			if i == r.cursor {
				style = selectedItemStyle
			}
			line := style.Render(fmt.Sprintf("%s%-28s %6s", cursorPrefix(i == r.cursor), t.Title, formatHours(float64(t.Hours))))
			if t.Secondary != "" {
				line += mutedStyle.Render("  [" + tracker.SecondaryLabel(t.Secondary, custom) + "]")
			}
			if t.Details != "" {
				line += mutedStyle.Render("  " + t.Details)
			}
			rows = append(rows, truncate.StringWithTail(line, uint(max(w-6, 20)), "…"))
			i++
		}
	}
	return strings.Join(rows, "\n")
}

func hasCategory(list []tracker.Category, key string) bool {
	for _, c := range list {
		if c.Key == key {
			return true
		}
	}
	return false
}

func limitNote(s string) string {
	runes := []rune(s)
	if len(runes) > tracker.HabitNoteLimit {
		runes = runes[:tracker.HabitNoteLimit]
	}
	return string(runes)
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateHours(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	h, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("hours must be a number")
	}
	if h < 0 || h > tracker.MaxHours {
		return fmt.Errorf("hours must be between 0 and %d", tracker.MaxHours)
	}
	return nil
}

// validateDate accepts a blank value or a YYYY-MM-DD date.
func validateDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := dateutil.ParseKey(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}
	return nil
}
