package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/dualtrack/internal/store"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// categoriesModel edits the custom secondary categories. selected points at
// the record view's remembered secondary choice so removing that category
// clears it.
type categoriesModel struct {
	cats     *store.Categories
	selected *string
	width    int
	height   int

	list   []tracker.Category
	cursor int

	formActive bool
	form       *huh.Form
	formLabel  *string
}

func newCategoriesModel(cats *store.Categories, selected *string) categoriesModel {
	label := ""
	c := categoriesModel{cats: cats, selected: selected, formLabel: &label}
	c.refresh()
	return c
}

func (c *categoriesModel) setSize(w, h int) {
	c.width = w
	c.height = h
}

func (c *categoriesModel) refresh() {
	c.list = c.cats.List()
	c.cursor = clampCursor(c.cursor, len(c.list))
}

func (c categoriesModel) update(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if c.formActive && c.form != nil {
		return c.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if c.cursor > 0 {
				c.cursor--
			}
		case key.Matches(msg, keys.Down):
			if c.cursor < len(c.list)-1 {
				c.cursor++
			}
		case key.Matches(msg, keys.MoveUp):
			if c.cursor > 0 {
				c.cats.MoveUp(c.cursor)
				c.cursor--
				c.refresh()
			}
		case key.Matches(msg, keys.MoveDown):
			if c.cursor < len(c.list)-1 {
				c.cats.MoveDown(c.cursor)
				c.cursor++
				c.refresh()
			}
		case key.Matches(msg, keys.Add):
			*c.formLabel = ""
			c.form = huh.NewForm(
				huh.NewGroup(
					huh.NewInput().Title("Category name").Value(c.formLabel).Validate(required("name")),
				),
			).WithShowHelp(true).WithShowErrors(true)
			c.formActive = true
			return c, c.form.Init()
		case key.Matches(msg, keys.Delete):
			if len(c.list) > 0 {
				removed := c.list[c.cursor]
				*c.selected = c.cats.Remove(removed.Key, *c.selected)
				c.refresh()
				return c, setStatus("Removed category %q", removed.Label)
			}
		}
	}
	return c, nil
}

func (c categoriesModel) updateForm(msg tea.Msg) (categoriesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			c.formActive = false
			c.form = nil
			return c, nil
		}
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		c.formActive = false
		added, ok := c.cats.Add(*c.formLabel)
		c.refresh()
		if !ok {
			return c, nil
		}
		c.cursor = len(c.list) - 1
		return c, setStatus("Added category %q", added.Label)
	}
	return c, cmd
}

func (c categoriesModel) view() string {
	w := c.width - 4

	if c.formActive && c.form != nil {
		content := lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("New Category"), "", c.form.View())
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, titleStyle.Render("Categories"))
	rows = append(rows, "")

	var primaries []string
	for _, p := range tracker.PrimaryCategories {
		primaries = append(primaries, lipgloss.NewStyle().Foreground(categoryColor(p.Key)).Render("● ")+p.Label)
	}
	rows = append(rows, subtitleStyle.Render("Primary"), "  "+strings.Join(primaries, "  "), "")

	var builtIn []string
	for _, s := range tracker.SecondaryCategories {
		builtIn = append(builtIn, s.Label)
	}
	rows = append(rows, subtitleStyle.Render("Built-in types"), mutedStyle.Render("  "+strings.Join(builtIn, ", ")), "")

	rows = append(rows, subtitleStyle.Render(fmt.Sprintf("Custom types (%d)", len(c.list))))
	if len(c.list) == 0 {
		rows = append(rows, mutedStyle.Render("  None yet. Press a to add one."))
	}
	for i, cat := range c.list {
		style := normalItemStyle
		if i == c.cursor {
			style = selectedItemStyle
		}
		row := style.Render(cursorPrefix(i == c.cursor) + cat.Label)
		if cat.Key == *c.selected {
			row += mutedStyle.Render("  (last used)")
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  a: add  d: remove  K/J: move up/down"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
