package analytics

import (
	"sort"
	"strings"
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/tracker"
)

type MoodCount struct {
	Mood  tracker.Mood `json:"mood"`
	Label string       `json:"label"`
	Count int          `json:"count"`
}

// MoodHistogram counts stored moods in tracker.Moods order. Unknown moods
// are skipped.
func MoodHistogram(d tracker.Data) []MoodCount {
	counts := make(map[tracker.Mood]int)
	for _, rec := range d.MoodByDate {
		if rec.Mood.Known() {
			counts[rec.Mood]++
		}
	}
	out := make([]MoodCount, len(tracker.Moods))
	for i, m := range tracker.Moods {
		out[i] = MoodCount{Mood: m.Key, Label: m.Label, Count: counts[m.Key]}
	}
	return out
}

type MoodEntry struct {
	Date  string       `json:"date"`
	Label string       `json:"label"`
	Mood  tracker.Mood `json:"mood"`
	Note  string       `json:"note"`
}

// MonthGroup holds the noted moods of one calendar month.
type MonthGroup struct {
	Month   string      `json:"month"`
	Label   string      `json:"label"`
	Entries []MoodEntry `json:"entries"`
}

// MoodLog collects mood records with a non-blank note inside days, grouped
// by month. Groups and the entries inside them are newest first.
func MoodLog(d tracker.Data, days []time.Time) []MonthGroup {
	groups := make(map[string]*MonthGroup)
	for _, day := range days {
		key := dateutil.FormatKey(day)
		rec, ok := d.MoodOn(key)
		if !ok || strings.TrimSpace(rec.Note) == "" {
			continue
		}
		month := day.Format("2006-01")
		g, ok := groups[month]
		if !ok {
			g = &MonthGroup{Month: month, Label: day.Format("January 2006")}
			groups[month] = g
		}
		g.Entries = append(g.Entries, MoodEntry{
			Date:  key,
			Label: dateutil.FormatMMDD(day),
			Mood:  rec.Mood,
			Note:  rec.Note,
		})
	}

	out := make([]MonthGroup, 0, len(groups))
	for _, g := range groups {
		sort.Slice(g.Entries, func(i, j int) bool { return g.Entries[i].Date > g.Entries[j].Date })
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// PeriodMoodLog resolves p against today and runs MoodLog.
func PeriodMoodLog(d tracker.Data, p Period, today time.Time) []MonthGroup {
	return MoodLog(d, p.Resolve(today))
}
