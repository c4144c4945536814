package tracker

import (
	"encoding/json"
	"math"
	"testing"
	"time"
)

func fixedNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
}

func emptyData() Data {
	return Data{
		HabitChecks: map[string]HabitRecord{},
		TasksByDate: map[string][]Task{},
		MoodByDate:  map[string]MoodRecord{},
	}
}

// ============================================================
// Helpers
// ============================================================

func TestSumHours(t *testing.T) {
	tasks := []Task{{Hours: 1}, {Hours: 2.5}, {Hours: Hours(math.NaN())}, {}}
	if got := SumHours(tasks); got != 3.5 {
		t.Fatalf("SumHours = %v, want 3.5", got)
	}
	if got := SumHours(nil); got != 0 {
		t.Fatalf("SumHours(nil) = %v", got)
	}
}

func TestRoundToTenth(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.25, 1.3},
		{0.1 + 0.2, 0.3},
		{2, 2},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := RoundToTenth(tt.in); got != tt.want {
			t.Errorf("RoundToTenth(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRoundToTenthIdempotent(t *testing.T) {
	for x := -5.0; x < 30; x += 0.037 {
		once := RoundToTenth(x)
		if twice := RoundToTenth(once); twice != once {
			t.Fatalf("RoundToTenth not idempotent at %v: %v vs %v", x, once, twice)
		}
	}
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestParseHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{" 1.5 ", 1.5},
		{"abc", 0},
		{"", 0},
		{"NaN", 0},
	}
	for _, tt := range tests {
		if got := ParseHours(tt.in); got != tt.want {
			t.Errorf("ParseHours(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ============================================================
// Status cycles
// ============================================================

func TestHabitStatusCycle(t *testing.T) {
	for _, s := range []HabitStatus{HabitNone, HabitGreen, HabitRed} {
		if got := s.Next().Next().Next(); got != s {
			t.Errorf("three toggles from %s gave %s", s, got)
		}
	}
	if HabitNone.Next() != HabitGreen || HabitGreen.Next() != HabitRed || HabitRed.Next() != HabitNone {
		t.Fatal("habit cycle order wrong")
	}
	if HabitStatus("purple").Next() != HabitGreen {
		t.Fatal("unknown status should cycle as none")
	}
}

func TestWeekStatusCycle(t *testing.T) {
	for _, s := range []WeekStatus{WeekNone, WeekGreen, WeekYellow, WeekRed} {
		if got := s.Next().Next().Next().Next(); got != s {
			t.Errorf("four toggles from %s gave %s", s, got)
		}
	}
	if WeekYellow.Next() != WeekRed {
		t.Fatal("yellow should advance to red")
	}
	if WeekStatus("").Next() != WeekGreen {
		t.Fatal("unknown status should cycle as none")
	}
}

// ============================================================
// Tasks
// ============================================================

func TestAddRemoveTask(t *testing.T) {
	d := emptyData()
	d.TasksByDate["2024-03-02"] = []Task{{ID: "keep", Title: "Other day", Hours: 1}}

	d = AddTask(d, "2024-03-01", Task{Title: "Run", Hours: Hours(ParseHours("2")), Primary: PrimaryHealth})
	list := d.TasksOn("2024-03-01")
	if len(list) != 1 || list[0].Title != "Run" || list[0].Hours != 2 || list[0].ID == "" {
		t.Fatalf("unexpected list: %+v", list)
	}

	d = RemoveTask(d, "2024-03-01", list[0].ID)
	if got := d.TasksOn("2024-03-01"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
	if got := d.TasksOn("2024-03-02"); len(got) != 1 || got[0].ID != "keep" {
		t.Fatalf("other day changed: %+v", got)
	}
}

func TestAddTaskInsertsAtFront(t *testing.T) {
	d := AddTask(emptyData(), "2024-03-01", Task{Title: "first"})
	d = AddTask(d, "2024-03-01", Task{Title: "second"})
	list := d.TasksOn("2024-03-01")
	if list[0].Title != "second" || list[1].Title != "first" {
		t.Fatalf("wrong order: %+v", list)
	}
}

func TestAddTaskBlankTitle(t *testing.T) {
	d := AddTask(emptyData(), "2024-03-01", Task{Title: "   ", Hours: 1})
	if len(d.TasksByDate) != 0 {
		t.Fatal("blank title should be a no-op")
	}
}

func TestAddTaskClampsHours(t *testing.T) {
	d := AddTask(emptyData(), "2024-03-01", Task{Title: "long", Hours: 30})
	d = AddTask(d, "2024-03-01", Task{Title: "neg", Hours: -3})
	list := d.TasksOn("2024-03-01")
	if list[0].Hours != 0 || list[1].Hours != 24 {
		t.Fatalf("hours not clamped: %+v", list)
	}
}

func TestAddTaskDoesNotMutateInput(t *testing.T) {
	orig := emptyData()
	orig.TasksByDate["2024-03-01"] = []Task{{ID: "a", Title: "a"}}
	_ = AddTask(orig, "2024-03-01", Task{Title: "b"})
	if len(orig.TasksByDate["2024-03-01"]) != 1 {
		t.Fatal("input aggregate was mutated")
	}
	_ = RemoveTask(orig, "2024-03-01", "a")
	if len(orig.TasksByDate["2024-03-01"]) != 1 {
		t.Fatal("input aggregate was mutated by remove")
	}
}

func TestAddTaskNormalizesKey(t *testing.T) {
	fixedNow(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local))
	d := AddTask(emptyData(), "03.05", Task{Title: "legacy"})
	if len(d.TasksOn("2024-03-05")) != 1 {
		t.Fatalf("task stored under %v", d.TasksByDate)
	}
}

func TestRemoveTaskMissingID(t *testing.T) {
	d := AddTask(emptyData(), "2024-03-01", Task{Title: "x"})
	d = RemoveTask(d, "2024-03-01", "nope")
	if len(d.TasksOn("2024-03-01")) != 1 {
		t.Fatal("remove with unknown id should be a no-op")
	}
}

// ============================================================
// Habits
// ============================================================

func TestToggleHabitKeepsNote(t *testing.T) {
	d := emptyData()
	d.HabitChecks["2024-03-01"] = HabitRecord{Status: HabitGreen, Note: "ok"}
	d, status := ToggleHabit(d, "2024-03-01")
	if status != HabitRed {
		t.Fatalf("expected red, got %s", status)
	}
	if rec := d.HabitOn("2024-03-01"); rec.Note != "ok" || rec.Status != HabitRed {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestToggleHabitMissingDay(t *testing.T) {
	d, status := ToggleHabit(Data{}, "2024-03-01")
	if status != HabitGreen {
		t.Fatalf("expected green, got %s", status)
	}
	if d.HabitOn("2024-03-01").Status != HabitGreen {
		t.Fatal("record not stored")
	}
}

func TestUpdateHabitNoteKeepsStatus(t *testing.T) {
	d := emptyData()
	d.HabitChecks["2024-03-01"] = HabitRecord{Status: HabitRed}
	d = UpdateHabitNote(d, "2024-03-01", "sick")
	if rec := d.HabitOn("2024-03-01"); rec.Status != HabitRed || rec.Note != "sick" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestSaveMoodReplaces(t *testing.T) {
	d := SaveMood(emptyData(), "2024-03-01", MoodGood, "fine")
	d = SaveMood(d, "2024-03-01", MoodBad, "")
	rec, ok := d.MoodOn("2024-03-01")
	if !ok || rec.Mood != MoodBad || rec.Note != "" {
		t.Fatalf("unexpected mood %+v", rec)
	}
}

func TestCommitHabitSettings(t *testing.T) {
	fixedNow(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local))
	d := CommitHabitSettings(Data{}, "Read", "2024-03-01", "2024-03-31")
	if d.HabitSettings == nil || d.HabitSettings.Name != "Read" {
		t.Fatal("settings not stored")
	}
	if len(d.Habits) != 1 || d.Habits[0].CreatedAt != "2024-03-01" {
		t.Fatalf("expected one habit, got %+v", d.Habits)
	}

	d = CommitHabitSettings(d, "Read", "2024-03-01", "2024-03-31")
	if len(d.Habits) != 1 {
		t.Fatal("duplicate triple should not add a habit")
	}

	d = CommitHabitSettings(d, "Read", "2024-04-01", "2024-04-30")
	if len(d.Habits) != 2 {
		t.Fatal("new date range should add a habit")
	}
}

func TestCommitHabitSettingsIncomplete(t *testing.T) {
	tests := []struct {
		name, start, end string
	}{
		{"", "2024-03-01", "2024-03-31"},
		{"  ", "2024-03-01", "2024-03-31"},
		{DefaultHabitName, "2024-03-01", "2024-03-31"},
		{"Read", "", "2024-03-31"},
		{"Read", "2024-03-01", ""},
	}
	for _, tt := range tests {
		d := CommitHabitSettings(Data{}, tt.name, tt.start, tt.end)
		if d.HabitSettings == nil {
			t.Errorf("settings should always be stored for %+v", tt)
		}
		if len(d.Habits) != 0 {
			t.Errorf("no habit expected for %+v", tt)
		}
	}
}

// ============================================================
// Todos
// ============================================================

func TestTodos(t *testing.T) {
	d := AddTodo(Data{}, "first")
	d = AddTodo(d, "second")
	d = AddTodo(d, "  ")
	if len(d.Todos) != 2 || d.Todos[0].Title != "second" {
		t.Fatalf("unexpected todos %+v", d.Todos)
	}

	id := d.Todos[1].ID
	d = ToggleTodo(d, id)
	if !d.Todos[1].Completed {
		t.Fatal("todo should be completed")
	}
	d = ToggleTodo(d, id)
	if d.Todos[1].Completed {
		t.Fatal("todo should be open again")
	}

	d = RemoveTodo(d, id)
	if len(d.Todos) != 1 || d.Todos[0].Title != "second" {
		t.Fatalf("unexpected todos after remove %+v", d.Todos)
	}
}

// ============================================================
// Weekly tasks
// ============================================================

func TestWeeklyTaskMaxWeek(t *testing.T) {
	d := AddWeeklyTask(Data{}, "Ship side project")
	task := d.WeeklyTasks[0]
	if MaxWeek(task) != 4 {
		t.Fatalf("MaxWeek = %d, want 4", MaxWeek(task))
	}
	d = AddWeek(d, task.ID)
	task, _ = d.FindWeeklyTask(task.ID)
	if MaxWeek(task) != 5 {
		t.Fatalf("MaxWeek after AddWeek = %d, want 5", MaxWeek(task))
	}
	if task.Week(5).Status != WeekNone {
		t.Fatal("added week should be none")
	}
}

func TestDisplayWeeks(t *testing.T) {
	tasks := []WeeklyTask{
		{ID: "a", Weeks: map[int]WeekRecord{2: {Status: WeekGreen}}},
		{ID: "b", Weeks: map[int]WeekRecord{7: {Status: WeekRed}}},
	}
	if got := DisplayWeeks(tasks); got != 7 {
		t.Fatalf("DisplayWeeks = %d, want 7", got)
	}
	if got := DisplayWeeks(nil); got != 4 {
		t.Fatalf("DisplayWeeks(nil) = %d, want 4", got)
	}
}

func TestToggleWeekAndNote(t *testing.T) {
	d := AddWeeklyTask(Data{}, "Gym")
	id := d.WeeklyTasks[0].ID

	d = UpdateWeekNote(d, id, 2, "twice")
	task, _ := d.FindWeeklyTask(id)
	if r := task.Week(2); r.Status != WeekNone || r.Note != "twice" {
		t.Fatalf("unexpected week %+v", r)
	}

	before := d
	d = ToggleWeek(d, id, 2)
	d = ToggleWeek(d, id, 2)
	task, _ = d.FindWeeklyTask(id)
	if r := task.Week(2); r.Status != WeekYellow || r.Note != "twice" {
		t.Fatalf("unexpected week after toggles %+v", r)
	}
	if prev, _ := before.FindWeeklyTask(id); prev.Week(2).Status != WeekNone {
		t.Fatal("toggle mutated the previous aggregate")
	}
}

func TestAddWeeklyTaskBlank(t *testing.T) {
	if d := AddWeeklyTask(Data{}, " "); len(d.WeeklyTasks) != 0 {
		t.Fatal("blank title should be a no-op")
	}
}

func TestDeleteWeeklyTask(t *testing.T) {
	d := AddWeeklyTask(Data{}, "a")
	d = AddWeeklyTask(d, "b")
	d = DeleteWeeklyTask(d, d.WeeklyTasks[0].ID)
	if len(d.WeeklyTasks) != 1 || d.WeeklyTasks[0].Title != "b" {
		t.Fatalf("unexpected tasks %+v", d.WeeklyTasks)
	}
}

func TestWeekLabel(t *testing.T) {
	tests := map[int]string{1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th", 13: "13th", 21: "21st", 102: "102nd", 111: "111th"}
	for n, want := range tests {
		if got := WeekLabel(n); got != want {
			t.Errorf("WeekLabel(%d) = %q, want %q", n, got, want)
		}
	}
}

// ============================================================
// Categories
// ============================================================

func TestCategoryList(t *testing.T) {
	list, a, ok := AddCategory(nil, "Side hustle")
	if !ok || a.Label != "Side hustle" || a.Key == "" {
		t.Fatalf("unexpected category %+v", a)
	}
	list, b, _ := AddCategory(list, "Reading")
	list, c, _ := AddCategory(list, "Chores")
	if _, _, ok := AddCategory(list, "   "); ok {
		t.Fatal("blank label should be rejected")
	}
	if a.Key == b.Key || b.Key == c.Key {
		t.Fatal("keys should be unique")
	}

	moved := MoveCategoryUp(list, 2)
	if moved[1].Key != c.Key || moved[2].Key != b.Key {
		t.Fatalf("move up failed: %+v", moved)
	}
	if list[2].Key != c.Key {
		t.Fatal("move mutated input")
	}
	if same := MoveCategoryUp(list, 0); same[0].Key != a.Key {
		t.Fatal("moving the first item up should be a no-op")
	}
	if same := MoveCategoryDown(list, 2); same[2].Key != c.Key {
		t.Fatal("moving the last item down should be a no-op")
	}
	moved = MoveCategoryDown(list, 0)
	if moved[0].Key != b.Key || moved[1].Key != a.Key {
		t.Fatalf("move down failed: %+v", moved)
	}

	list, sel := RemoveCategory(list, b.Key, b.Key)
	if len(list) != 2 || sel != "" {
		t.Fatalf("remove selected: list=%+v sel=%q", list, sel)
	}
	list, sel = RemoveCategory(list, a.Key, c.Key)
	if len(list) != 1 || sel != c.Key {
		t.Fatalf("remove other: list=%+v sel=%q", list, sel)
	}
}

func TestLabels(t *testing.T) {
	if PrimaryLabel(PrimaryHealth) != "Health" || PrimaryLabel("zzz") != "zzz" {
		t.Fatal("PrimaryLabel")
	}
	custom := []Category{{Key: "custom-1", Label: "Mine"}}
	if SecondaryLabel("custom-1", custom) != "Mine" || SecondaryLabel("family", nil) != "Family" {
		t.Fatal("SecondaryLabel")
	}
}

// ============================================================
// Decoding and normalization
// ============================================================

func TestDecodeLenient(t *testing.T) {
	doc := `{
		"habitChecks": {"2024-03-01": {"status": "blue", "note": "x"}},
		"tasksByDate": {"2024-03-01": [{"id": "a", "title": "t", "hours": "2.5", "primary": "study"},
		                               {"id": "b", "title": "u", "hours": "lots", "primary": "study"}]},
		"moodByDate": {"2024-03-01": {"mood": "ecstatic", "note": ""}},
		"weeklyTasks": [{"id": "w", "title": "w", "weeks": {"1": {"status": "pink", "note": ""}, "x": {"status": "green"}}}]
	}`
	d, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	if d.HabitOn("2024-03-01").Status != HabitNone {
		t.Fatal("unknown habit status should read as none")
	}
	tasks := d.TasksOn("2024-03-01")
	if tasks[0].Hours != 2.5 || tasks[1].Hours != 0 {
		t.Fatalf("hours decoded as %v, %v", tasks[0].Hours, tasks[1].Hours)
	}
	if rec, _ := d.MoodOn("2024-03-01"); rec.Mood.Known() {
		t.Fatal("unknown mood should not be Known")
	}
	w := d.WeeklyTasks[0]
	if len(w.Weeks) != 1 || w.Week(1).Status != WeekNone {
		t.Fatalf("weeks decoded as %+v", w.Weeks)
	}
	if d.Habits != nil || d.Todos != nil {
		t.Fatal("absent collections should stay nil")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode([]byte("{not json")); err == nil {
		t.Fatal("expected error")
	}
}

func TestDecodeWrongTypedFields(t *testing.T) {
	doc := `{
		"tasksByDate": {"2024-03-01": [{"id": 12, "title": "Keep me", "hours": 1, "primary": "study"}]},
		"todos": [{"id": 7, "title": 42, "completed": "yes", "createdAt": "2024-03-01"},
		          {"id": "t2", "title": "plain", "completed": 0}],
		"habits": [{"id": "h", "name": "Run", "startDate": 20240301, "endDate": null}],
		"habitSettings": "not an object",
		"moodByDate": {"2024-03-01": {"mood": 3, "note": ["x"]}}
	}`
	d, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	tasks := d.TasksOn("2024-03-01")
	if len(tasks) != 1 || tasks[0].Title != "Keep me" || tasks[0].ID != "12" {
		t.Fatalf("tasks = %+v", tasks)
	}
	if len(d.Todos) != 2 {
		t.Fatalf("todos = %+v", d.Todos)
	}
	if got := d.Todos[0]; got.ID != "7" || got.Title != "42" || !got.Completed {
		t.Fatalf("todo[0] = %+v", got)
	}
	if d.Todos[1].Completed {
		t.Fatal("completed 0 should read as false")
	}
	if h := d.Habits[0]; h.StartDate != "20240301" || h.EndDate != "" {
		t.Fatalf("habit = %+v", h)
	}
	if d.HabitSettings != nil {
		t.Fatal("non-object habitSettings should be dropped")
	}
	rec, ok := d.MoodOn("2024-03-01")
	if !ok || rec.Mood.Known() || rec.Note != "" {
		t.Fatalf("mood = %+v, %v", rec, ok)
	}
}

func TestDecodeSkipsMalformedRecords(t *testing.T) {
	doc := `{
		"tasksByDate": {"2024-03-01": [{"title": "ok"}, "junk", 5], "2024-03-02": {"title": "not a list"}},
		"habitChecks": {"2024-03-01": "green", "2024-03-02": {"status": "green"}},
		"todos": {"id": "object instead of list"},
		"weeklyTasks": [null, {"id": "w", "title": "w", "weeks": []}]
	}`
	d, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n := len(d.TasksOn("2024-03-01")); n != 1 {
		t.Fatalf("expected 1 task, got %d", n)
	}
	if _, ok := d.TasksByDate["2024-03-02"]; ok {
		t.Fatal("non-list day should be skipped")
	}
	if _, ok := d.HabitChecks["2024-03-01"]; ok {
		t.Fatal("non-object habit record should be skipped")
	}
	if d.HabitOn("2024-03-02").Status != HabitGreen {
		t.Fatal("valid habit record lost")
	}
	if d.Todos != nil {
		t.Fatalf("todos = %+v", d.Todos)
	}
	if len(d.WeeklyTasks) != 1 || d.WeeklyTasks[0].Weeks == nil {
		t.Fatalf("weekly = %+v", d.WeeklyTasks)
	}
}

func TestNormalizeFillsIDs(t *testing.T) {
	d := Normalize(Data{
		Todos:       []TodoItem{{Title: "a"}, {Title: "b"}},
		Habits:      []Habit{{Name: "h"}},
		WeeklyTasks: []WeeklyTask{{Title: "w"}},
	}, time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local))
	if d.Todos[0].ID == "" || d.Todos[0].ID == d.Todos[1].ID {
		t.Fatalf("todo ids = %q, %q", d.Todos[0].ID, d.Todos[1].ID)
	}
	if d.Habits[0].ID == "" || d.WeeklyTasks[0].ID == "" {
		t.Fatal("missing ids not filled")
	}
}

func TestNormalizeLegacyDuplicates(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 20; i++ {
		d := Normalize(Data{
			HabitChecks: map[string]HabitRecord{
				"03.05": {Status: HabitRed, Note: "dot"},
				"03-05": {Status: HabitGreen, Note: "dash"},
			},
			TasksByDate: map[string][]Task{
				"03.05":      {{ID: "dot", Title: "dot"}},
				"03-05":      {{ID: "dash", Title: "dash"}},
				"2024-03-05": {{ID: "canon", Title: "canon"}},
			},
		}, today)
		// "03-05" sorts before "03.05".
		if rec := d.HabitOn("2024-03-05"); rec.Note != "dash" {
			t.Fatalf("run %d: habit = %+v", i, rec)
		}
		tasks := d.TasksOn("2024-03-05")
		if len(tasks) != 3 || tasks[0].ID != "canon" || tasks[1].ID != "dash" || tasks[2].ID != "dot" {
			t.Fatalf("run %d: tasks = %+v", i, tasks)
		}
	}
}

func TestNormalize(t *testing.T) {
	today := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	d := Data{
		HabitChecks: map[string]HabitRecord{
			"03-05":      {Status: HabitRed},
			"2024-03-05": {Status: HabitGreen},
			"04.01":      {Status: HabitRed, Note: "legacy"},
		},
		TasksByDate: map[string][]Task{"2024-3-7": {{Title: "no id", Hours: 99}}},
	}
	d = Normalize(d, today)
	if d.HabitOn("2024-03-05").Status != HabitGreen {
		t.Fatal("canonical key should win over legacy duplicate")
	}
	if d.HabitOn("2024-04-01").Note != "legacy" {
		t.Fatal("legacy key not migrated")
	}
	if _, ok := d.HabitChecks["04.01"]; ok {
		t.Fatal("legacy key should be gone")
	}
	tasks := d.TasksOn("2024-03-07")
	if len(tasks) != 1 || tasks[0].ID == "" || tasks[0].Hours != 24 {
		t.Fatalf("task not normalized: %+v", tasks)
	}
	if d.MoodByDate == nil {
		t.Fatal("missing map should be created")
	}
}

func TestEncodeShape(t *testing.T) {
	d := AddWeeklyTask(Data{}, "w")
	d = ToggleWeek(d, d.WeeklyTasks[0].ID, 3)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	weekly := raw["weeklyTasks"].([]any)[0].(map[string]any)
	weeks := weekly["weeks"].(map[string]any)
	if _, ok := weeks["3"]; !ok {
		t.Fatalf("week keys should be stringified integers: %v", weeks)
	}
	if _, ok := raw["habits"]; ok {
		t.Fatal("empty optional collections should be omitted")
	}
}

func TestSeed(t *testing.T) {
	today := time.Date(2024, 3, 10, 8, 0, 0, 0, time.Local)
	d := Seed(today)
	if d.HabitOn("2024-03-10").Status != HabitGreen || d.HabitOn("2024-03-09").Status != HabitRed {
		t.Fatal("unexpected seeded habit checks")
	}
	if len(d.TasksOn("2024-03-08")) != 2 || len(d.Todos) != 3 {
		t.Fatal("unexpected seeded tasks or todos")
	}
}
