package tracker

import (
	"maps"
	"strings"
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
)

// Mutations in this file take the aggregate by value and return a
// replacement. Maps and slices reachable from the input are never written;
// only the touched collection is copied.

var now = time.Now

// DefaultHabitName is the placeholder shown before a habit is named. It is
// never turned into a Habit.
const DefaultHabitName = "Habit"

// HabitNoteLimit is the cap the UI enforces on habit notes.
const HabitNoteLimit = 20

func normKey(key string) string {
	return dateutil.NormalizeKey(key, now())
}

// AddTask puts t at the front of the day's list. A blank title is a no-op.
// Hours are clamped to [0, 24] and a missing ID is generated.
func AddTask(d Data, dateKey string, t Task) Data {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return d
	}
	t.Hours = Hours(Clamp(finite(float64(t.Hours)), 0, MaxHours))
	if t.ID == "" {
		t.ID = NewID()
	}
	if t.Primary == "" {
		t.Primary = PrimaryCategories[0].Key
	}
	key := normKey(dateKey)
	list := make([]Task, 0, len(d.TasksByDate[key])+1)
	list = append(list, t)
	list = append(list, d.TasksByDate[key]...)

	d.TasksByDate = cloneMap(d.TasksByDate)
	d.TasksByDate[key] = list
	return d
}

// RemoveTask drops the task with id from one day.
func RemoveTask(d Data, dateKey, id string) Data {
	key := normKey(dateKey)
	old := d.TasksByDate[key]
	list := make([]Task, 0, len(old))
	for _, t := range old {
		if t.ID != id {
			list = append(list, t)
		}
	}
	if len(list) == len(old) {
		return d
	}
	d.TasksByDate = cloneMap(d.TasksByDate)
	d.TasksByDate[key] = list
	return d
}

// ToggleHabit advances the day's habit status and reports the new status.
func ToggleHabit(d Data, dateKey string) (Data, HabitStatus) {
	key := normKey(dateKey)
	rec := d.HabitOn(key)
	rec.Status = rec.Status.Next()
	d.HabitChecks = cloneMap(d.HabitChecks)
	d.HabitChecks[key] = rec
	return d, rec.Status
}

// UpdateHabitNote replaces the day's habit note and keeps its status.
func UpdateHabitNote(d Data, dateKey, note string) Data {
	key := normKey(dateKey)
	rec := d.HabitOn(key)
	rec.Status = ParseHabitStatus(string(rec.Status))
	rec.Note = note
	d.HabitChecks = cloneMap(d.HabitChecks)
	d.HabitChecks[key] = rec
	return d
}

// SaveMood replaces the day's mood record.
func SaveMood(d Data, dateKey string, mood Mood, note string) Data {
	key := normKey(dateKey)
	d.MoodByDate = cloneMap(d.MoodByDate)
	d.MoodByDate[key] = MoodRecord{Mood: mood, Note: note}
	return d
}

// CommitHabitSettings stores the settings and, when they describe a new
// habit, appends it. Habits are deduplicated on (name, start, end).
func CommitHabitSettings(d Data, name, startDate, endDate string) Data {
	d.HabitSettings = &HabitSettings{Name: name, StartDate: startDate, EndDate: endDate}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" || name == DefaultHabitName || startDate == "" || endDate == "" {
		return d
	}
	for _, h := range d.Habits {
		if h.Name == trimmed && h.StartDate == startDate && h.EndDate == endDate {
			return d
		}
	}
	habits := make([]Habit, 0, len(d.Habits)+1)
	habits = append(habits, d.Habits...)
	d.Habits = append(habits, Habit{
		ID:        NewID(),
		Name:      trimmed,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: dateutil.FormatKey(now()),
	})
	return d
}

// AddTodo inserts a new incomplete item at the front.
func AddTodo(d Data, title string) Data {
	title = strings.TrimSpace(title)
	if title == "" {
		return d
	}
	todos := make([]TodoItem, 0, len(d.Todos)+1)
	todos = append(todos, TodoItem{
		ID:        NewID(),
		Title:     title,
		CreatedAt: dateutil.FormatKey(now()),
	})
	d.Todos = append(todos, d.Todos...)
	return d
}

// ToggleTodo flips the completed flag of one item.
func ToggleTodo(d Data, id string) Data {
	todos := make([]TodoItem, len(d.Todos))
	for i, t := range d.Todos {
		if t.ID == id {
			t.Completed = !t.Completed
		}
		todos[i] = t
	}
	d.Todos = todos
	return d
}

// RemoveTodo drops one item.
func RemoveTodo(d Data, id string) Data {
	todos := make([]TodoItem, 0, len(d.Todos))
	for _, t := range d.Todos {
		if t.ID != id {
			todos = append(todos, t)
		}
	}
	d.Todos = todos
	return d
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m)+1)
	maps.Copy(out, m)
	return out
}
