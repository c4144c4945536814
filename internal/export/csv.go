// Package export writes tracked data to CSV and JSON files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/sadopc/dualtrack/internal/tracker"
)

// ToCSV writes one row per task to path. See WriteCSV.
func ToCSV(d tracker.Data, custom []tracker.Category, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()
	return WriteCSV(f, d, custom)
}

// WriteCSV writes one row per task, dates ascending and tasks in stored
// order. Category columns hold labels; custom supplies the labels of
// user-defined secondary categories.
func WriteCSV(out io.Writer, d tracker.Data, custom []tracker.Category) error {
	w := csv.NewWriter(out)

	// Header
	if err := w.Write([]string{"Date", "ID", "Title", "Hours", "Primary", "Secondary", "Details"}); err != nil {
		return err
	}

	for _, key := range sortedDates(d) {
		for _, t := range d.TasksOn(key) {
			row := []string{
				key,
				t.ID,
				t.Title,
				formatHours(float64(t.Hours)),
				tracker.PrimaryLabel(t.Primary),
				secondaryLabel(t.Secondary, custom),
				t.Details,
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func sortedDates(d tracker.Data) []string {
	keys := make([]string, 0, len(d.TasksByDate))
	for k, list := range d.TasksByDate {
		if len(list) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

func secondaryLabel(key string, custom []tracker.Category) string {
	if key == "" {
		return ""
	}
	return tracker.SecondaryLabel(key, custom)
}

func formatHours(h float64) string {
	return strconv.FormatFloat(tracker.RoundToTenth(h), 'f', -1, 64)
}

// TaskCount is the number of tasks across all days.
func TaskCount(d tracker.Data) int {
	n := 0
	for _, list := range d.TasksByDate {
		n += len(list)
	}
	return n
}
