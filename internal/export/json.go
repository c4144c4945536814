package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sadopc/dualtrack/internal/tracker"
)

// Formats accepted by Write.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

type jsonExport struct {
	ExportedAt string             `json:"exported_at"`
	Count      int                `json:"count"`
	Categories []tracker.Category `json:"custom_categories,omitempty"`
	Data       tracker.Data       `json:"data"`
}

// ToJSON writes the full aggregate to path. See WriteJSON.
func ToJSON(d tracker.Data, custom []tracker.Category, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create json file: %w", err)
	}
	defer f.Close()
	if err := WriteJSON(f, d, custom, time.Now()); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}

// WriteJSON writes the aggregate wrapped with an export timestamp and the
// task count.
func WriteJSON(w io.Writer, d tracker.Data, custom []tracker.Category, at time.Time) error {
	export := jsonExport{
		ExportedAt: at.UTC().Format(time.RFC3339),
		Count:      TaskCount(d),
		Categories: custom,
		Data:       d,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	return nil
}

// Write dispatches on format.
func Write(w io.Writer, format string, d tracker.Data, custom []tracker.Category) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, d, custom)
	case FormatJSON:
		return WriteJSON(w, d, custom, time.Now())
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// ToFile writes format to path.
func ToFile(format string, d tracker.Data, custom []tracker.Category, path string) error {
	switch format {
	case FormatCSV:
		return ToCSV(d, custom, path)
	case FormatJSON:
		return ToJSON(d, custom, path)
	}
	return fmt.Errorf("export: unknown format %q", format)
}

// DefaultPath is dir/dualtrack-YYYY-MM-DD.<format>.
func DefaultPath(dir, format string, at time.Time) string {
	return filepath.Join(dir, fmt.Sprintf("dualtrack-%s.%s", at.Format("2006-01-02"), format))
}
