package analytics

import (
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// Streak counts consecutive green days walking back from the earlier of
// today and the habit's end date. It stops at the first non-green day or
// before the start date. A habit that has not started yet, or whose start
// date cannot be read, has a streak of 0. A blank end date means ongoing.
func Streak(d tracker.Data, h tracker.Habit, today time.Time) int {
	today = dateutil.StartOfDay(today)
	start, err := dateutil.ParseKey(h.StartDate)
	if err != nil || today.Before(start) {
		return 0
	}
	cur := today
	if end, err := dateutil.ParseKey(h.EndDate); err == nil && end.Before(today) {
		cur = end
	}

	n := 0
	for !cur.Before(start) {
		if d.HabitOn(dateutil.FormatKey(cur)).Status != tracker.HabitGreen {
			break
		}
		n++
		cur = dateutil.ShiftDays(cur, -1)
	}
	return n
}

// HabitStreak pairs a habit with its current streak.
type HabitStreak struct {
	Habit tracker.Habit `json:"habit"`
	Days  int           `json:"days"`
}

// Streaks computes Streak for every habit, in stored order.
func Streaks(d tracker.Data, today time.Time) []HabitStreak {
	out := make([]HabitStreak, 0, len(d.Habits))
	for _, h := range d.Habits {
		out = append(out, HabitStreak{Habit: h, Days: Streak(d, h, today)})
	}
	return out
}
