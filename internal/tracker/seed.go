package tracker

import (
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
)

// Seed builds the sample data shown on first run and after a reset.
func Seed(today time.Time) Data {
	t := dateutil.FormatKey(today)
	yesterday := dateutil.FormatKey(dateutil.ShiftDays(today, -1))
	twoDaysAgo := dateutil.FormatKey(dateutil.ShiftDays(today, -2))
	daysAgo := func(n int) string { return dateutil.FormatKey(dateutil.ShiftDays(today, -n)) }

	return Data{
		HabitChecks: map[string]HabitRecord{
			twoDaysAgo: {Status: HabitGreen},
			yesterday:  {Status: HabitRed},
			t:          {Status: HabitGreen},
		},
		TasksByDate: map[string][]Task{
			twoDaysAgo: {
				{ID: NewID(), Title: "Run 5km", Hours: 1, Primary: PrimaryHealth, Secondary: "spontaneous", Details: "tempo run + stretching"},
				{ID: NewID(), Title: "Polish resume", Hours: 1.5, Primary: PrimaryStudy, Secondary: "obligation", Details: "project blurbs + portfolio links"},
			},
			yesterday: {
				{ID: NewID(), Title: "Dinner with family", Hours: 2, Primary: PrimaryExternal, Secondary: "family", Details: "catching up"},
			},
			t: {
				{ID: NewID(), Title: "Reading: frontend performance", Hours: 1.2, Primary: PrimaryStudy, Secondary: "spontaneous", Details: "note 5 practical takeaways"},
				{ID: NewID(), Title: "Stretch + early night", Hours: 0.6, Primary: PrimaryHealth, Secondary: "spontaneous", Details: "neck, shoulders, hips"},
			},
		},
		MoodByDate: map[string]MoodRecord{
			twoDaysAgo: {Mood: MoodGood, Note: "cleared a lot of small goals"},
			yesterday:  {Mood: MoodOK, Note: "a bit tired, but fine"},
			t:          {Mood: MoodGreat, Note: "very focused"},
		},
		Todos: []TodoItem{
			{ID: NewID(), Title: "Finish the project refactor", CreatedAt: daysAgo(5)},
			{ID: NewID(), Title: "Learn a new stack", CreatedAt: daysAgo(3)},
			{ID: NewID(), Title: "Tidy up work notes", Completed: true, CreatedAt: daysAgo(7)},
		},
		WeeklyTasks: []WeeklyTask{},
	}
}
