package tracker

// Task is one block of time logged against a day.
type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Hours     Hours  `json:"hours"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Details   string `json:"details"`
}

type MoodRecord struct {
	Mood Mood   `json:"mood"`
	Note string `json:"note"`
}

type HabitRecord struct {
	Status HabitStatus `json:"status"`
	Note   string      `json:"note"`
}

// HabitSettings is the last value committed from the habit settings form.
type HabitSettings struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

type Habit struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	CreatedAt string `json:"createdAt"`
}

type WeekRecord struct {
	Status WeekStatus `json:"status"`
	Note   string     `json:"note"`
}

// WeeklyTask tracks a goal week by week. Weeks are numbered from 1 and
// sparse; a missing week is an implicit none.
type WeeklyTask struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	Weeks     map[int]WeekRecord `json:"weeks"`
	CreatedAt string             `json:"createdAt"`
}

type TodoItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
}

type Category struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Data is the root aggregate. It is persisted and mutated as one unit.
// Optional collections may be nil; readers treat nil as empty.
type Data struct {
	HabitChecks   map[string]HabitRecord `json:"habitChecks"`
	TasksByDate   map[string][]Task      `json:"tasksByDate"`
	MoodByDate    map[string]MoodRecord  `json:"moodByDate"`
	HabitSettings *HabitSettings         `json:"habitSettings,omitempty"`
	Habits        []Habit                `json:"habits,omitempty"`
	Todos         []TodoItem             `json:"todos,omitempty"`
	WeeklyTasks   []WeeklyTask           `json:"weeklyTasks,omitempty"`
}

// TasksOn returns the tasks stored for a date key.
func (d Data) TasksOn(key string) []Task {
	return d.TasksByDate[key]
}

// HabitOn returns the habit record for a date key, or a none record.
func (d Data) HabitOn(key string) HabitRecord {
	if r, ok := d.HabitChecks[key]; ok {
		return r
	}
	return HabitRecord{Status: HabitNone}
}

// MoodOn returns the mood record for a date key and whether one exists.
func (d Data) MoodOn(key string) (MoodRecord, bool) {
	r, ok := d.MoodByDate[key]
	return r, ok
}

// FindWeeklyTask returns the weekly task with id, if any.
func (d Data) FindWeeklyTask(id string) (WeeklyTask, bool) {
	for _, t := range d.WeeklyTasks {
		if t.ID == id {
			return t, true
		}
	}
	return WeeklyTask{}, false
}
