package tracker

import (
	"fmt"
	"strings"
	"time"
)

// MinWeeks is the number of week columns every weekly task shows.
const MinWeeks = 4

// MaxWeek is the number of week columns task occupies: the highest
// recorded week, but never fewer than MinWeeks.
func MaxWeek(t WeeklyTask) int {
	n := MinWeeks
	for w := range t.Weeks {
		if w > n {
			n = w
		}
	}
	return n
}

// DisplayWeeks is the column count shared by all tasks.
func DisplayWeeks(tasks []WeeklyTask) int {
	n := MinWeeks
	for _, t := range tasks {
		if w := MaxWeek(t); w > n {
			n = w
		}
	}
	return n
}

// Week returns the record for week n, or a none record.
func (t WeeklyTask) Week(n int) WeekRecord {
	if r, ok := t.Weeks[n]; ok {
		r.Status = ParseWeekStatus(string(r.Status))
		return r
	}
	return WeekRecord{Status: WeekNone}
}

// WeekLabel renders 1st, 2nd, 3rd, 4th, 11th, 21st...
func WeekLabel(n int) string {
	if r := n % 100; r >= 11 && r <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch n % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	}
	return fmt.Sprintf("%dth", n)
}

// AddWeeklyTask appends a task with no recorded weeks. Blank titles are a
// no-op.
func AddWeeklyTask(d Data, title string) Data {
	title = strings.TrimSpace(title)
	if title == "" {
		return d
	}
	tasks := make([]WeeklyTask, 0, len(d.WeeklyTasks)+1)
	tasks = append(tasks, d.WeeklyTasks...)
	d.WeeklyTasks = append(tasks, WeeklyTask{
		ID:        NewID(),
		Title:     title,
		Weeks:     map[int]WeekRecord{},
		CreatedAt: now().Format(time.RFC3339),
	})
	return d
}

// DeleteWeeklyTask removes the task unconditionally. Callers confirm first.
func DeleteWeeklyTask(d Data, id string) Data {
	tasks := make([]WeeklyTask, 0, len(d.WeeklyTasks))
	for _, t := range d.WeeklyTasks {
		if t.ID != id {
			tasks = append(tasks, t)
		}
	}
	d.WeeklyTasks = tasks
	return d
}

// ToggleWeek advances one week's status, keeping its note.
func ToggleWeek(d Data, taskID string, week int) Data {
	return updateWeek(d, taskID, week, func(r WeekRecord) WeekRecord {
		r.Status = r.Status.Next()
		return r
	})
}

// UpdateWeekNote replaces one week's note, creating a none entry if needed.
func UpdateWeekNote(d Data, taskID string, week int, note string) Data {
	return updateWeek(d, taskID, week, func(r WeekRecord) WeekRecord {
		r.Note = note
		return r
	})
}

// AddWeek appends the week after the task's current last column.
func AddWeek(d Data, taskID string) Data {
	t, ok := d.FindWeeklyTask(taskID)
	if !ok {
		return d
	}
	return updateWeek(d, taskID, MaxWeek(t)+1, func(r WeekRecord) WeekRecord {
		return WeekRecord{Status: WeekNone}
	})
}

func updateWeek(d Data, taskID string, week int, fn func(WeekRecord) WeekRecord) Data {
	if week < 1 {
		return d
	}
	tasks := make([]WeeklyTask, len(d.WeeklyTasks))
	for i, t := range d.WeeklyTasks {
		if t.ID == taskID {
			rec := fn(t.Week(week))
			t.Weeks = cloneMap(t.Weeks)
			t.Weeks[week] = rec
		}
		tasks[i] = t
	}
	d.WeeklyTasks = tasks
	return d
}
