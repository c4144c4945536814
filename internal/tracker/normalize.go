package tracker

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
)

// Decode parses a stored document record by record. It fails only when b
// is not a JSON object; the result still needs Normalize.
func Decode(b []byte) (Data, error) {
	var d Data
	if err := json.Unmarshal(b, &d); err != nil {
		return Data{}, fmt.Errorf("decode tracker data: %w", err)
	}
	return d, nil
}

// Normalize makes a loaded aggregate safe for the rest of the code: the
// required maps exist, every date key is canonical and every record has an
// ID. When a legacy key and its canonical form both exist, the canonical
// habit or mood entry wins and task lists are concatenated.
func Normalize(d Data, today time.Time) Data {
	d.HabitChecks = canonicalKeys(d.HabitChecks, today, nil)
	d.MoodByDate = canonicalKeys(d.MoodByDate, today, nil)
	d.TasksByDate = canonicalKeys(d.TasksByDate, today, appendTasks)

	for key, list := range d.TasksByDate {
		fixed := make([]Task, len(list))
		for i, t := range list {
			if t.ID == "" {
				t.ID = NewID()
			}
			t.Hours = Hours(Clamp(finite(float64(t.Hours)), 0, MaxHours))
			fixed[i] = t
		}
		d.TasksByDate[key] = fixed
	}
	if d.WeeklyTasks != nil {
		weekly := make([]WeeklyTask, len(d.WeeklyTasks))
		for i, t := range d.WeeklyTasks {
			if t.ID == "" {
				t.ID = NewID()
			}
			if t.Weeks == nil {
				t.Weeks = map[int]WeekRecord{}
			}
			weekly[i] = t
		}
		d.WeeklyTasks = weekly
	}
	if d.Todos != nil {
		todos := make([]TodoItem, len(d.Todos))
		for i, t := range d.Todos {
			if t.ID == "" {
				t.ID = NewID()
			}
			todos[i] = t
		}
		d.Todos = todos
	}
	if d.Habits != nil {
		habits := make([]Habit, len(d.Habits))
		for i, h := range d.Habits {
			if h.ID == "" {
				h.ID = NewID()
			}
			habits[i] = h
		}
		d.Habits = habits
	}
	return d
}

// canonicalKeys rewrites m onto canonical date keys. Entries already under
// a canonical key are placed first and legacy keys follow in sorted order,
// so the result does not depend on map iteration. A legacy entry that lands
// on an occupied key is passed to merge, or dropped when merge is nil.
func canonicalKeys[V any](m map[string]V, today time.Time, merge func(kept, dup V) V) map[string]V {
	var canonical, legacy []string
	for k := range m {
		if dateutil.NormalizeKey(k, today) == k {
			canonical = append(canonical, k)
		} else {
			legacy = append(legacy, k)
		}
	}
	sort.Strings(legacy)

	out := make(map[string]V, len(m))
	for _, k := range canonical {
		out[k] = m[k]
	}
	for _, k := range legacy {
		nk := dateutil.NormalizeKey(k, today)
		kept, taken := out[nk]
		switch {
		case !taken:
			out[nk] = m[k]
		case merge != nil:
			out[nk] = merge(kept, m[k])
		}
	}
	return out
}

func appendTasks(kept, dup []Task) []Task {
	return append(append([]Task(nil), kept...), dup...)
}
