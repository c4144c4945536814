// Package analytics derives read-only views from tracker data. Nothing here
// mutates its input, and absent or malformed records degrade to zero values.
package analytics

import (
	"time"

	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// SeriesPoint is one day of the trailing hours series. ByPrimary holds an
// entry for every primary category, zero included.
type SeriesPoint struct {
	Date      string             `json:"date"`
	Label     string             `json:"label"`
	Total     float64            `json:"total"`
	ByPrimary map[string]float64 `json:"byPrimary"`
}

// Hours returns the value of one series line: "total" or a primary key.
func (p SeriesPoint) Hours(line string) float64 {
	if line == LineTotal {
		return p.Total
	}
	return p.ByPrimary[line]
}

// LineTotal names the total-hours line of a series.
const LineTotal = "total"

// Lines lists the series lines in display order.
func Lines() []string {
	lines := []string{LineTotal}
	for _, c := range tracker.PrimaryCategories {
		lines = append(lines, c.Key)
	}
	return lines
}

// Series builds one point per day, in the order given. Days without tasks
// contribute zeros rather than gaps.
func Series(d tracker.Data, days []time.Time) []SeriesPoint {
	points := make([]SeriesPoint, len(days))
	for i, day := range days {
		key := dateutil.FormatKey(day)
		tasks := d.TasksOn(key)
		p := SeriesPoint{
			Date:      key,
			Label:     dateutil.FormatMMDD(day),
			Total:     tracker.RoundToTenth(tracker.SumHours(tasks)),
			ByPrimary: make(map[string]float64, len(tracker.PrimaryCategories)),
		}
		byPrimary := sumByPrimary(tasks)
		for _, c := range tracker.PrimaryCategories {
			p.ByPrimary[c.Key] = tracker.RoundToTenth(byPrimary[c.Key])
		}
		points[i] = p
	}
	return points
}

// LastNDaysSeries is Series over the n days ending today.
func LastNDaysSeries(d tracker.Data, n int, today time.Time) []SeriesPoint {
	return Series(d, dateutil.LastNDays(n, today))
}

func sumByPrimary(tasks []tracker.Task) map[string]float64 {
	out := make(map[string]float64)
	for _, t := range tasks {
		out[t.Primary] += tracker.SumHours([]tracker.Task{t})
	}
	return out
}
