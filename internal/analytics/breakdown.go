package analytics

import (
	"math"
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// Slice is one primary category's share of a period.
type Slice struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Hours   float64 `json:"hours"`
	Percent int     `json:"percent"`
}

// PieBreakdown is the per-category split of the hours in a period.
type PieBreakdown struct {
	Total  float64 `json:"total"`
	Slices []Slice `json:"slices"`
}

// Breakdown totals hours per primary category across days. Percentages are
// rounded independently, so they may sum to slightly less than 100.
// Categories with no hours are left out. All four primary categories
// count, Other included, both as slices and toward Total. Tasks with a
// primary key outside the fixed set are ignored.
func Breakdown(d tracker.Data, days []time.Time) PieBreakdown {
	sums := make(map[string]float64)
	for _, day := range days {
		for k, v := range sumByPrimary(d.TasksOn(dateutil.FormatKey(day))) {
			sums[k] += v
		}
	}
	var total float64
	for _, c := range tracker.PrimaryCategories {
		total += sums[c.Key]
	}

	out := PieBreakdown{Total: tracker.RoundToTenth(total)}
	for _, c := range tracker.PrimaryCategories {
		hours := tracker.RoundToTenth(sums[c.Key])
		if hours <= 0 {
			continue
		}
		pct := 0
		if total > 0 {
			pct = int(math.Round(sums[c.Key] / total * 100))
		}
		out.Slices = append(out.Slices, Slice{Key: c.Key, Label: c.Label, Hours: hours, Percent: pct})
	}
	return out
}

// PeriodBreakdown resolves p against today and runs Breakdown.
func PeriodBreakdown(d tracker.Data, p Period, today time.Time) PieBreakdown {
	return Breakdown(d, p.Resolve(today))
}
