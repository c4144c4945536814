package analytics

import (
	"fmt"
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
)

type PeriodKind string

const (
	PeriodDay    PeriodKind = "day"
	PeriodWeek   PeriodKind = "week"
	PeriodMonth  PeriodKind = "month"
	PeriodCustom PeriodKind = "custom"
)

// PeriodKinds is the selector order used by the UI.
var PeriodKinds = []PeriodKind{PeriodDay, PeriodWeek, PeriodMonth, PeriodCustom}

// ParsePeriodKind accepts the lower-case names above.
func ParsePeriodKind(s string) (PeriodKind, error) {
	for _, k := range PeriodKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("parse period %q: want day, week, month or custom", s)
}

// Next cycles through PeriodKinds.
func (k PeriodKind) Next() PeriodKind {
	for i, p := range PeriodKinds {
		if p == k {
			return PeriodKinds[(i+1)%len(PeriodKinds)]
		}
	}
	return PeriodKinds[0]
}

func (k PeriodKind) Label() string {
	switch k {
	case PeriodDay:
		return "Today"
	case PeriodWeek:
		return "This week"
	case PeriodMonth:
		return "This month"
	case PeriodCustom:
		return "Custom"
	}
	return string(k)
}

// Period selects a date range relative to today. From and To are date keys
// and only matter for PeriodCustom.
type Period struct {
	Kind PeriodKind
	From string
	To   string
}

// Resolve returns the days covered by p. A custom period with a blank,
// unparsable or reversed bound resolves to no days.
func (p Period) Resolve(today time.Time) []time.Time {
	switch p.Kind {
	case PeriodDay:
		return []time.Time{dateutil.StartOfDay(today)}
	case PeriodWeek:
		return dateutil.DateRange(dateutil.WeekRange(today))
	case PeriodMonth:
		return dateutil.DateRange(dateutil.MonthRange(today))
	case PeriodCustom:
		return dateutil.KeyRange(p.From, p.To)
	}
	return nil
}

func (p Period) String() string {
	if p.Kind == PeriodCustom {
		return fmt.Sprintf("%s to %s", p.From, p.To)
	}
	return p.Kind.Label()
}
