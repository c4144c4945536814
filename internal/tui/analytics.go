package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/tracker"
)

type analyticsModel struct {
	sess   *session.Session
	width  int
	height int
	days   int

	data   tracker.Data
	series []analytics.SeriesPoint
	chart  barchart.Model
	vp     viewport.Model

	lines    []string
	visible  map[string]bool
	lineSel  int
	pie      analytics.Period
	moodLog  analytics.Period
	rangeFor string // "pie" or "moods" while the custom range form is open

	formActive bool
	form       *huh.Form
	formFrom   *string
	formTo     *string
}

func newAnalyticsModel(sess *session.Session, days int) analyticsModel {
	if days < 1 {
		days = 30
	}
	from, to := "", ""
	lines := analytics.Lines()
	visible := make(map[string]bool, len(lines))
	for _, l := range lines {
		visible[l] = l != analytics.LineTotal
	}
	a := analyticsModel{
		sess:     sess,
		days:     days,
		chart:    barchart.New(60, 12),
		vp:       viewport.New(60, 20),
		lines:    lines,
		visible:  visible,
		pie:      analytics.Period{Kind: analytics.PeriodDay},
		moodLog:  analytics.Period{Kind: analytics.PeriodMonth},
		formFrom: &from,
		formTo:   &to,
	}
	a.refresh()
	return a
}

func (a *analyticsModel) setSize(w, h int) {
	a.width = w
	a.height = h
	a.vp.Width = max(w-8, 20)
	a.vp.Height = max(h-6, 5)
	a.refresh()
}

func (a *analyticsModel) refresh() {
	a.data = a.sess.Data()
	a.series = analytics.LastNDaysSeries(a.data, a.days, a.sess.Today())
	a.buildChart()
	a.vp.SetContent(a.renderBody())
}

func (a *analyticsModel) buildChart() {
	chartWidth := a.width - 10
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if a.height > 40 {
		chartHeight = 14
	}
	a.chart = barchart.New(chartWidth, chartHeight)

	categories := a.visibleCategories()
	var bars []barchart.BarData
	for _, p := range a.series {
		var values []barchart.BarValue
		for _, c := range categories {
			values = append(values, barchart.BarValue{
				Name:  tracker.PrimaryLabel(c),
				Value: p.Hours(c),
				Style: lipgloss.NewStyle().Foreground(categoryColor(c)),
			})
		}
		// With every category hidden the bars fall back to the total line.
		if len(categories) == 0 && a.visible[analytics.LineTotal] {
			values = append(values, barchart.BarValue{
				Name:  "Total",
				Value: p.Total,
				Style: lipgloss.NewStyle().Foreground(categoryColor(analytics.LineTotal)),
			})
		}
		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}
		bars = append(bars, barchart.BarData{Label: p.Label, Values: values})
	}

	a.chart.PushAll(bars)
	a.chart.Draw()
}

func (a analyticsModel) visibleCategories() []string {
	var out []string
	for _, l := range a.lines {
		if l != analytics.LineTotal && a.visible[l] {
			out = append(out, l)
		}
	}
	return out
}

func (a analyticsModel) update(msg tea.Msg) (analyticsModel, tea.Cmd) {
	if a.formActive && a.form != nil {
		return a.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if a.lineSel > 0 {
				a.lineSel--
			}
		case key.Matches(msg, keys.Right):
			if a.lineSel < len(a.lines)-1 {
				a.lineSel++
			}
		case key.Matches(msg, keys.Toggle):
			l := a.lines[a.lineSel]
			a.visible[l] = !a.visible[l]
			a.refresh()
		case key.Matches(msg, keys.Period):
			return a.cyclePeriod("pie")
		case key.Matches(msg, keys.Mood):
			return a.cyclePeriod("moods")
		default:
			var cmd tea.Cmd
			a.vp, cmd = a.vp.Update(msg)
			return a, cmd
		}
		a.vp.SetContent(a.renderBody())
	}
	return a, nil
}

// cyclePeriod advances one of the two period selectors. Landing on custom
// asks for the range first.
func (a analyticsModel) cyclePeriod(target string) (analyticsModel, tea.Cmd) {
	p := a.pie
	if target == "moods" {
		p = a.moodLog
	}
	next := p.Kind.Next()
	if next == analytics.PeriodCustom {
		return a.showRangeForm(target, p)
	}
	p = analytics.Period{Kind: next}
	if target == "moods" {
		a.moodLog = p
	} else {
		a.pie = p
	}
	a.refresh()
	return a, nil
}

func (a analyticsModel) showRangeForm(target string, p analytics.Period) (analyticsModel, tea.Cmd) {
	today := a.sess.Today()
	*a.formFrom = p.From
	*a.formTo = p.To
	if *a.formFrom == "" {
		start, _ := dateutil.MonthRange(today)
		*a.formFrom = dateutil.FormatKey(start)
	}
	if *a.formTo == "" {
		*a.formTo = dateutil.FormatKey(today)
	}
	a.rangeFor = target

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("From").Placeholder("YYYY-MM-DD").Value(a.formFrom).Validate(validateDate),
			huh.NewInput().Title("To").Placeholder("YYYY-MM-DD").Value(a.formTo).Validate(validateDate),
		),
	).WithShowHelp(true).WithShowErrors(true)
	a.formActive = true
	return a, a.form.Init()
}

func (a analyticsModel) updateForm(msg tea.Msg) (analyticsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			a.formActive = false
			a.form = nil
			return a, nil
		}
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.formActive = false
		p := analytics.Period{
			Kind: analytics.PeriodCustom,
			From: strings.TrimSpace(*a.formFrom),
			To:   strings.TrimSpace(*a.formTo),
		}
		if a.rangeFor == "moods" {
			a.moodLog = p
		} else {
			a.pie = p
		}
		a.refresh()
		return a, nil
	}
	return a, cmd
}

func (a analyticsModel) view() string {
	w := a.width - 4

	if a.formActive && a.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Custom Range"), "", a.form.View())
		return panelStyle.Width(w).Render(content)
	}

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Analytics"), "  ",
		mutedStyle.Render(fmt.Sprintf("last %d days", a.days)),
	)
	nav := mutedStyle.Render("  ←/→: pick line  space: show/hide  p: breakdown period  m: mood log period  ↑/↓: scroll")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, header, "", a.vp.View(), "", nav),
	)
}

func (a analyticsModel) renderBody() string {
	today := a.sess.Today()
	sections := []string{
		a.renderLineToggles(),
		a.chart.View(),
		"",
		a.renderBreakdown(analytics.PeriodBreakdown(a.data, a.pie, today)),
		"",
		a.renderStreaks(analytics.Streaks(a.data, today)),
		"",
		a.renderMoods(analytics.MoodHistogram(a.data)),
		"",
		a.renderMoodLog(analytics.PeriodMoodLog(a.data, a.moodLog, today)),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (a analyticsModel) renderLineToggles() string {
	var items []string
	for i, l := range a.lines {
		label := "Total"
		if l != analytics.LineTotal {
			label = tracker.PrimaryLabel(l)
		}
		mark := "○"
		if a.visible[l] {
			mark = lipgloss.NewStyle().Foreground(categoryColor(l)).Render("●")
		}
		item := mark + " " + label
		if i == a.lineSel {
			item = selectedItemStyle.Render("[") + item + selectedItemStyle.Render("]")
		} else {
			item = " " + item + " "
		}
		items = append(items, item)
	}
	return strings.Join(items, " ")
}

func (a analyticsModel) renderBreakdown(b analytics.PieBreakdown) string {
	rows := []string{
		titleStyle.Render("Breakdown") + "  " + mutedStyle.Render(fmt.Sprintf("%s · %s", a.pie, formatHours(b.Total))),
	}
	if len(b.Slices) == 0 {
		return strings.Join(append(rows, mutedStyle.Render("  No hours recorded")), "\n")
	}
	barWidth := max(a.width-44, 10)
	for _, s := range b.Slices {
		n := barWidth * s.Percent / 100
		bar := lipgloss.NewStyle().Foreground(categoryColor(s.Key)).Render(strings.Repeat("█", n))
		rows = append(rows, fmt.Sprintf("  %-10s %s %s %s",
			s.Label, bar, mutedStyle.Render(formatHours(s.Hours)), highlightStyle.Render(fmt.Sprintf("%d%%", s.Percent))))
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderStreaks(streaks []analytics.HabitStreak) string {
	rows := []string{titleStyle.Render("Habit streaks")}
	if len(streaks) == 0 {
		return strings.Join(append(rows, mutedStyle.Render("  No habits yet. Set one on the Record tab with s.")), "\n")
	}
	for _, s := range streaks {
		end := s.Habit.EndDate
		if end == "" {
			end = "ongoing"
		}
		rows = append(rows, fmt.Sprintf("  %-20s %s  %s",
			s.Habit.Name, successStyle.Render(fmt.Sprintf("%d days", s.Days)),
			mutedStyle.Render(s.Habit.StartDate+" → "+end)))
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderMoods(counts []analytics.MoodCount) string {
	rows := []string{titleStyle.Render("Moods")}
	top := 0
	for _, c := range counts {
		top = max(top, c.Count)
	}
	for _, c := range counts {
		n := 0
		if top > 0 {
			n = c.Count * 20 / top
		}
		rows = append(rows, fmt.Sprintf("  %-6s %s %d", c.Label, highlightStyle.Render(strings.Repeat("▇", n)), c.Count))
	}
	return strings.Join(rows, "\n")
}

func (a analyticsModel) renderMoodLog(groups []analytics.MonthGroup) string {
	rows := []string{titleStyle.Render("Mood notes") + "  " + mutedStyle.Render(a.moodLog.String())}
	if len(groups) == 0 {
		return strings.Join(append(rows, mutedStyle.Render("  No notes in this period")), "\n")
	}
	noteWidth := uint(max(a.width-30, 16))
	for _, g := range groups {
		rows = append(rows, subtitleStyle.Render("  "+g.Label))
		for _, e := range g.Entries {
			rows = append(rows, fmt.Sprintf("    %s %-6s %s", e.Label, e.Mood.Label(), truncate.StringWithTail(e.Note, noteWidth, "…")))
		}
	}
	return strings.Join(rows, "\n")
}
