package tracker

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type HabitStatus string

const (
	HabitNone  HabitStatus = "none"
	HabitGreen HabitStatus = "green"
	HabitRed   HabitStatus = "red"
)

var habitCycle = []HabitStatus{HabitNone, HabitGreen, HabitRed}

// ParseHabitStatus maps unknown values to none.
func ParseHabitStatus(s string) HabitStatus {
	switch HabitStatus(s) {
	case HabitGreen, HabitRed:
		return HabitStatus(s)
	}
	return HabitNone
}

// Next advances none -> green -> red -> none.
func (s HabitStatus) Next() HabitStatus {
	return habitCycle[(indexOf(habitCycle, ParseHabitStatus(string(s)))+1)%len(habitCycle)]
}

func (s *HabitStatus) UnmarshalJSON(b []byte) error {
	*s = ParseHabitStatus(decodeLoose(b))
	return nil
}

type WeekStatus string

const (
	WeekNone   WeekStatus = "none"
	WeekGreen  WeekStatus = "green"
	WeekYellow WeekStatus = "yellow"
	WeekRed    WeekStatus = "red"
)

var weekCycle = []WeekStatus{WeekNone, WeekGreen, WeekYellow, WeekRed}

// ParseWeekStatus maps unknown values to none.
func ParseWeekStatus(s string) WeekStatus {
	switch WeekStatus(s) {
	case WeekGreen, WeekYellow, WeekRed:
		return WeekStatus(s)
	}
	return WeekNone
}

// Next advances none -> green -> yellow -> red -> none.
func (s WeekStatus) Next() WeekStatus {
	return weekCycle[(indexOf(weekCycle, ParseWeekStatus(string(s)))+1)%len(weekCycle)]
}

func (s *WeekStatus) UnmarshalJSON(b []byte) error {
	*s = ParseWeekStatus(decodeLoose(b))
	return nil
}

func indexOf[T comparable](list []T, v T) int {
	for i, x := range list {
		if x == v {
			return i
		}
	}
	return 0
}

// Mood is kept verbatim so records with unknown moods survive a round trip;
// use Known before counting.
type Mood string

const (
	MoodGreat Mood = "great"
	MoodGood  Mood = "good"
	MoodOK    Mood = "ok"
	MoodBad   Mood = "bad"
)

type MoodOption struct {
	Key   Mood
	Label string
	Hint  string
}

// Moods is the fixed display order.
var Moods = []MoodOption{
	{Key: MoodGreat, Label: "Great", Hint: "full of energy"},
	{Key: MoodGood, Label: "Good", Hint: "on form"},
	{Key: MoodOK, Label: "OK", Hint: "getting by"},
	{Key: MoodBad, Label: "Bad", Hint: "needs rest"},
}

func (m Mood) Known() bool {
	for _, o := range Moods {
		if o.Key == m {
			return true
		}
	}
	return false
}

// Label returns the display label, or "" for an unknown mood.
func (m Mood) Label() string {
	for _, o := range Moods {
		if o.Key == m {
			return o.Label
		}
	}
	return ""
}

func (m *Mood) UnmarshalJSON(b []byte) error {
	*m = Mood(decodeLoose(b))
	return nil
}

// Hours accepts a JSON number or a numeric string. Anything else, including
// NaN and infinities, reads as zero.
type Hours float64

func (h *Hours) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*h = Hours(finite(f))
		return nil
	}
	*h = Hours(ParseHours(decodeLoose(b)))
	return nil
}

func (h Hours) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(finite(float64(h)), 'f', -1, 64)), nil
}

// ParseHours reads user-entered hours. Non-numeric input is zero.
func ParseHours(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return finite(f)
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// decodeLoose returns the string form of a JSON scalar; non-strings give "".
func decodeLoose(b []byte) string {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ""
	}
	return s
}
