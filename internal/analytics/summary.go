package analytics

import (
	"github.com/sadopc/dualtrack/internal/tracker"
)

// TaskGroup is the tasks of one primary category on a day.
type TaskGroup struct {
	Category tracker.Category
	Hours    float64
	Tasks    []tracker.Task
}

// DaySummary backs the stat pills on the record view.
type DaySummary struct {
	Date       string
	TotalHours float64
	TaskCount  int
	Habit      tracker.HabitRecord
	Mood       tracker.MoodRecord
	HasMood    bool
	Groups     []TaskGroup
}

// HabitDone reports whether the day's habit is green.
func (s DaySummary) HabitDone() bool {
	return s.Habit.Status == tracker.HabitGreen
}

// MoodLabel is the display label of the day's mood, or "" if none is known.
func (s DaySummary) MoodLabel() string {
	if !s.HasMood {
		return ""
	}
	return s.Mood.Mood.Label()
}

// Summarize gathers everything recorded for one date key.
func Summarize(d tracker.Data, key string) DaySummary {
	tasks := d.TasksOn(key)
	mood, ok := d.MoodOn(key)
	habit := d.HabitOn(key)
	habit.Status = tracker.ParseHabitStatus(string(habit.Status))
	return DaySummary{
		Date:       key,
		TotalHours: tracker.RoundToTenth(tracker.SumHours(tasks)),
		TaskCount:  len(tasks),
		Habit:      habit,
		Mood:       mood,
		HasMood:    ok,
		Groups:     GroupByPrimary(tasks),
	}
}

// GroupByPrimary splits tasks by primary category in the fixed category
// order. Tasks with an unknown primary fall into the last group. Empty
// groups are omitted; order within a group is preserved.
func GroupByPrimary(tasks []tracker.Task) []TaskGroup {
	fallback := tracker.PrimaryCategories[len(tracker.PrimaryCategories)-1].Key
	byKey := make(map[string][]tracker.Task)
	for _, t := range tasks {
		k := t.Primary
		if !tracker.IsPrimary(k) {
			k = fallback
		}
		byKey[k] = append(byKey[k], t)
	}
	var out []TaskGroup
	for _, c := range tracker.PrimaryCategories {
		list := byKey[c.Key]
		if len(list) == 0 {
			continue
		}
		out = append(out, TaskGroup{
			Category: c,
			Hours:    tracker.RoundToTenth(tracker.SumHours(list)),
			Tasks:    list,
		})
	}
	return out
}
