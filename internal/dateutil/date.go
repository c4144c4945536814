// Package dateutil holds the calendar arithmetic used by the tracker.
// All functions work on local calendar fields of the supplied time.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// KeyLayout is the canonical date-key form.
const KeyLayout = "2006-01-02"

var weekConfig = &now.Config{WeekStartDay: time.Monday}

// FormatKey returns the canonical YYYY-MM-DD key for t.
func FormatKey(t time.Time) string {
	return t.Format(KeyLayout)
}

// FormatMMDD returns the short "MM.DD" label used in logs and strips.
func FormatMMDD(t time.Time) string {
	return t.Format("01.02")
}

// ParseKey builds a local-midnight time from a YYYY-MM-DD key. Month and day
// need not be zero-padded.
func ParseKey(s string) (time.Time, error) {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("parse date key %q: want YYYY-MM-DD", s)
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("parse date key %q: %w", s, err)
		}
		nums[i] = n
	}
	y, m, d := nums[0], nums[1], nums[2]
	if y < 1 || m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, fmt.Errorf("parse date key %q: out of range", s)
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	if t.Day() != d {
		return time.Time{}, fmt.Errorf("parse date key %q: no such day", s)
	}
	return t, nil
}

// StartOfDay truncates t to local midnight.
func StartOfDay(t time.Time) time.Time {
	return now.With(t).BeginningOfDay()
}

// ShiftDays moves t by n calendar days.
func ShiftDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// LastNDays returns the n consecutive days ending on end, oldest first.
func LastNDays(n int, end time.Time) []time.Time {
	if n <= 0 {
		return nil
	}
	start := ShiftDays(StartOfDay(end), -(n - 1))
	days := make([]time.Time, n)
	for i := range days {
		days[i] = ShiftDays(start, i)
	}
	return days
}

// WeekRange returns the Monday-start week containing t. A Sunday belongs to
// the week that began the preceding Monday.
func WeekRange(t time.Time) (start, end time.Time) {
	n := weekConfig.With(t)
	return n.BeginningOfWeek(), n.EndOfWeek().Truncate(time.Millisecond)
}

// MonthRange returns the first and last instant of t's month.
func MonthRange(t time.Time) (start, end time.Time) {
	n := now.With(t)
	return n.BeginningOfMonth(), n.EndOfMonth().Truncate(time.Millisecond)
}

// DateRange returns every calendar day from start to end inclusive, each at
// local midnight. Reversed bounds give an empty result.
func DateRange(start, end time.Time) []time.Time {
	cur := StartOfDay(start)
	last := StartOfDay(end)
	var days []time.Time
	for !cur.After(last) {
		days = append(days, cur)
		cur = ShiftDays(cur, 1)
	}
	return days
}

// KeyRange is DateRange over two date keys. Empty or unparsable bounds give
// an empty result.
func KeyRange(from, to string) []time.Time {
	if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
		return nil
	}
	start, err := ParseKey(from)
	if err != nil {
		return nil
	}
	end, err := ParseKey(to)
	if err != nil {
		return nil
	}
	return DateRange(start, end)
}

var (
	canonicalKey = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	dashMonthDay = regexp.MustCompile(`^(\d{2})-(\d{2})$`)
	dotMonthDay  = regexp.MustCompile(`^(\d{2})\.(\d{2})$`)
)

// NormalizeKey coerces legacy key forms (MM-DD, MM.DD, unpadded YYYY-M-D)
// to the canonical key, assuming the year of today for year-less forms.
// Keys that cannot be read are returned unchanged.
func NormalizeKey(key string, today time.Time) string {
	raw := key
	key = strings.TrimSpace(key)
	if canonicalKey.MatchString(key) {
		if _, err := ParseKey(key); err != nil {
			return raw
		}
		return key
	}
	for _, re := range []*regexp.Regexp{dashMonthDay, dotMonthDay} {
		if m := re.FindStringSubmatch(key); m != nil {
			nk := fmt.Sprintf("%04d-%s-%s", today.Year(), m[1], m[2])
			if _, err := ParseKey(nk); err != nil {
				return raw
			}
			return nk
		}
	}
	if t, err := ParseKey(key); err == nil {
		return FormatKey(t)
	}
	return raw
}
