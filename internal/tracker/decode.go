package tracker

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// Stored documents are read record by record. A field of the wrong type
// reads as its zero value, and a record that is not an object at all is
// skipped, so one bad value never costs the rest of the document.

var errNotObject = errors.New("not a JSON object")

type fields map[string]json.RawMessage

func objectFields(b []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errNotObject
	}
	return f, nil
}

// str reads a string field. Numbers and booleans keep their literal text.
func (f fields) str(name string) string {
	raw, ok := f[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return strconv.FormatBool(b)
	}
	return ""
}

// flag reads a boolean field the way a loosely typed reader would: numbers
// are true when non-zero, strings when non-empty and not a "false" word.
func (f fields) flag(name string) bool {
	raw, ok := f[name]
	if !ok {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return n != 0
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "", "false", "0", "no", "off":
			return false
		}
		return true
	}
	return false
}

// decodeList reads a JSON array, dropping elements that fail to decode.
// Anything other than an array gives nil.
func decodeList[T any](raw json.RawMessage) []T {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil || items == nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var v T
		if err := json.Unmarshal(item, &v); err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}

// decodeMap reads a JSON object, dropping values that fail to decode.
// Anything other than an object gives nil.
func decodeMap[V any](raw json.RawMessage) map[string]V {
	var entries map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &entries) != nil || entries == nil {
		return nil
	}
	out := make(map[string]V, len(entries))
	for k, entry := range entries {
		var v V
		if err := json.Unmarshal(entry, &v); err != nil {
			continue
		}
		out[k] = v
	}
	return out
}

// UnmarshalJSON fails only when the document is not a JSON object.
func (d *Data) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*d = Data{
		HabitChecks: decodeMap[HabitRecord](f["habitChecks"]),
		MoodByDate:  decodeMap[MoodRecord](f["moodByDate"]),
		Habits:      decodeList[Habit](f["habits"]),
		Todos:       decodeList[TodoItem](f["todos"]),
		WeeklyTasks: decodeList[WeeklyTask](f["weeklyTasks"]),
	}
	if lists := decodeMap[json.RawMessage](f["tasksByDate"]); lists != nil {
		d.TasksByDate = make(map[string][]Task, len(lists))
		for key, raw := range lists {
			if tasks := decodeList[Task](raw); tasks != nil {
				d.TasksByDate[key] = tasks
			}
		}
	}
	if raw, ok := f["habitSettings"]; ok {
		var s HabitSettings
		if err := json.Unmarshal(raw, &s); err == nil {
			d.HabitSettings = &s
		}
	}
	return nil
}

func (t *Task) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*t = Task{
		ID:        f.str("id"),
		Title:     f.str("title"),
		Primary:   f.str("primary"),
		Secondary: f.str("secondary"),
		Details:   f.str("details"),
	}
	if raw, ok := f["hours"]; ok {
		_ = t.Hours.UnmarshalJSON(raw)
	}
	return nil
}

func (r *MoodRecord) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*r = MoodRecord{Note: f.str("note")}
	return r.Mood.UnmarshalJSON(f["mood"])
}

func (r *HabitRecord) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*r = HabitRecord{Note: f.str("note")}
	return r.Status.UnmarshalJSON(f["status"])
}

func (s *HabitSettings) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*s = HabitSettings{Name: f.str("name"), StartDate: f.str("startDate"), EndDate: f.str("endDate")}
	return nil
}

func (h *Habit) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*h = Habit{
		ID:        f.str("id"),
		Name:      f.str("name"),
		StartDate: f.str("startDate"),
		EndDate:   f.str("endDate"),
		CreatedAt: f.str("createdAt"),
	}
	return nil
}

func (r *WeekRecord) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*r = WeekRecord{Note: f.str("note")}
	return r.Status.UnmarshalJSON(f["status"])
}

// UnmarshalJSON skips week keys that are not positive integers.
func (t *WeeklyTask) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*t = WeeklyTask{ID: f.str("id"), Title: f.str("title"), CreatedAt: f.str("createdAt")}
	weeks := decodeMap[WeekRecord](f["weeks"])
	t.Weeks = make(map[int]WeekRecord, len(weeks))
	for k, v := range weeks {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 {
			continue
		}
		t.Weeks[n] = v
	}
	return nil
}

func (t *TodoItem) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*t = TodoItem{
		ID:        f.str("id"),
		Title:     f.str("title"),
		Completed: f.flag("completed"),
		CreatedAt: f.str("createdAt"),
	}
	return nil
}

func (c *Category) UnmarshalJSON(b []byte) error {
	f, err := objectFields(b)
	if err != nil {
		return err
	}
	*c = Category{Key: f.str("key"), Label: f.str("label")}
	return nil
}

// DecodeCategories reads a stored category list, dropping malformed entries.
func DecodeCategories(b []byte) ([]Category, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, err
	}
	return decodeList[Category](b), nil
}
