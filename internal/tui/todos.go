package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/sadopc/dualtrack/internal/session"
	"github.com/sadopc/dualtrack/internal/tracker"
)

type todosModel struct {
	sess   *session.Session
	width  int
	height int

	todos  []tracker.TodoItem
	cursor int

	formActive bool
	form       *huh.Form
	formTitle  *string
}

func newTodosModel(sess *session.Session) todosModel {
	title := ""
	t := todosModel{sess: sess, formTitle: &title}
	t.refresh()
	return t
}

func (t *todosModel) setSize(w, h int) {
	t.width = w
	t.height = h
}

func (t *todosModel) refresh() {
	t.todos = t.sess.Data().Todos
	t.cursor = clampCursor(t.cursor, len(t.todos))
}

func (t todosModel) openCount() int {
	n := 0
	for _, item := range t.todos {
		if !item.Completed {
			n++
		}
	}
	return n
}

func (t todosModel) update(msg tea.Msg) (todosModel, tea.Cmd) {
	if t.formActive && t.form != nil {
		return t.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if t.cursor > 0 {
				t.cursor--
			}
		case key.Matches(msg, keys.Down):
			if t.cursor < len(t.todos)-1 {
				t.cursor++
			}
		case key.Matches(msg, keys.Add):
			*t.formTitle = ""
			t.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Todo").Value(t.formTitle).Validate(required("todo")),
				),
			).WithShowHelp(true).WithShowErrors(true)
			t.formActive = true
			return t, t.form.Init()
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(t.todos) > 0 {
				id := t.todos[t.cursor].ID
				t.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.ToggleTodo(d, id) })
				t.refresh()
			}
		case key.Matches(msg, keys.Delete):
			if len(t.todos) > 0 {
				item := t.todos[t.cursor]
				t.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.RemoveTodo(d, item.ID) })
				t.refresh()
				return t, setStatus("Deleted %q", item.Title)
			}
		}
	}
	return t, nil
}

func (t todosModel) updateForm(msg tea.Msg) (todosModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			t.formActive = false
			t.form = nil
			return t, nil
		}
	}

	form, cmd := t.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		t.form = f
	}

	if t.form.State == huh.StateCompleted {
		t.formActive = false
		title := *t.formTitle
		t.sess.Apply(func(d tracker.Data) tracker.Data { return tracker.AddTodo(d, title) })
		t.cursor = 0
		t.refresh()
		return t, nil
	}
	return t, cmd
}

func (t todosModel) view() string {
	w := t.width - 4

	if t.formActive && t.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Todo"), "", t.form.View())
		return panelStyle.Width(w).Render(content)
	}

	title := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Todos"), "  ",
		mutedStyle.Render(fmt.Sprintf("%d open of %d", t.openCount(), len(t.todos))),
	)

	if len(t.todos) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("Nothing to do. Press a to add a todo."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, item := range t.todos {
		box := "[ ]"
		style := normalItemStyle
		if item.Completed {
			box = successStyle.Render("[x]")
			style = doneItemStyle
		}
		if i == t.cursor {
			style = selectedItemStyle
		}
		line := cursorPrefix(i == t.cursor) + box + " " + style.Render(item.Title) + mutedStyle.Render("  "+item.CreatedAt)
		rows = append(rows, truncate.StringWithTail(line, uint(max(w-6, 20)), "…"))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  a: add  space: toggle  d: delete"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
