package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sadopc/dualtrack/internal/tracker"
)

func sampleData() (tracker.Data, []tracker.Category) {
	d := tracker.Data{
		TasksByDate: map[string][]tracker.Task{
			"2024-03-02": {
				{ID: "c", Title: "Dinner", Hours: 2, Primary: tracker.PrimaryExternal, Secondary: "family"},
			},
			"2024-03-01": {
				{ID: "a", Title: "Run", Hours: 1.25, Primary: tracker.PrimaryHealth, Secondary: "custom-1", Details: "tempo"},
				{ID: "b", Title: "Read", Hours: 0.5, Primary: tracker.PrimaryStudy},
			},
			"2024-02-28": {},
		},
		Todos: []tracker.TodoItem{{ID: "t", Title: "todo"}},
	}
	custom := []tracker.Category{{Key: "custom-1", Label: "Training"}}
	return d, custom
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	return records
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	d, custom := sampleData()
	path := filepath.Join(t.TempDir(), "test.csv")

	if err := ToCSV(d, custom, path); err != nil {
		t.Fatalf("ToCSV: %v", err)
	}
	records := readCSV(t, path)

	// header + 3 data rows
	if len(records) != 4 {
		t.Fatalf("expected 4 rows (1 header + 3 data), got %d", len(records))
	}

	header := records[0]
	expectedHeader := []string{"Date", "ID", "Title", "Hours", "Primary", "Secondary", "Details"}
	for i, h := range expectedHeader {
		if header[i] != h {
			t.Fatalf("header[%d] = %q, want %q", i, header[i], h)
		}
	}

	row := records[1]
	if row[0] != "2024-03-01" || row[1] != "a" {
		t.Fatalf("first row should be the earliest date in stored order: %v", row)
	}
	if row[3] != "1.3" {
		t.Fatalf("Hours = %q, want 1.3", row[3])
	}
	if row[4] != "Health" || row[5] != "Training" || row[6] != "tempo" {
		t.Fatalf("unexpected labels %v", row)
	}
	if records[2][5] != "" {
		t.Fatalf("missing secondary should be blank, got %q", records[2][5])
	}
	if records[3][0] != "2024-03-02" || records[3][5] != "Family" {
		t.Fatalf("unexpected last row %v", records[3])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := ToCSV(tracker.Data{}, nil, path); err != nil {
		t.Fatal(err)
	}
	if records := readCSV(t, path); len(records) != 1 {
		t.Fatalf("expected 1 row (header only), got %d", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(tracker.Data{}, nil, "/nonexistent/dir/file.csv"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestToCSVSpecialCharacters(t *testing.T) {
	d := tracker.Data{TasksByDate: map[string][]tracker.Task{
		"2024-03-01": {{ID: "x", Title: `Task "Special"`, Hours: 1, Details: `with "quotes" and, commas`}},
	}}
	path := filepath.Join(t.TempDir(), "special.csv")
	if err := ToCSV(d, nil, path); err != nil {
		t.Fatal(err)
	}
	records := readCSV(t, path)
	if records[1][2] != `Task "Special"` {
		t.Fatalf("title mangled: %q", records[1][2])
	}
	if records[1][6] != `with "quotes" and, commas` {
		t.Fatalf("details mangled: %q", records[1][6])
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	d, custom := sampleData()
	path := filepath.Join(t.TempDir(), "test.json")

	if err := ToJSON(d, custom, path); err != nil {
		t.Fatalf("ToJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var result jsonExport
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("count = %d, want 3", result.Count)
	}
	if _, err := time.Parse(time.RFC3339, result.ExportedAt); err != nil {
		t.Fatalf("exported_at is not valid RFC3339: %q", result.ExportedAt)
	}
	if len(result.Data.TasksOn("2024-03-01")) != 2 || len(result.Data.Todos) != 1 {
		t.Fatal("aggregate not exported in full")
	}
	if len(result.Categories) != 1 {
		t.Fatal("custom categories missing")
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(tracker.Data{}, nil, "/nonexistent/dir/file.json"); err == nil {
		t.Fatal("expected error for bad path")
	}
}

func TestWriteJSONPrettyPrinted(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	if err := WriteJSON(&buf, tracker.Data{}, nil, at); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\n  ") {
		t.Fatal("JSON should be indented")
	}
	if !strings.Contains(out, `"exported_at": "2024-03-01T12:00:00Z"`) {
		t.Fatalf("unexpected timestamp in %s", out)
	}
	if strings.Contains(out, "custom_categories") {
		t.Fatal("empty category list should be omitted")
	}
}

// ============================================================
// Dispatch
// ============================================================

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "xml", tracker.Data{}, nil); err == nil {
		t.Fatal("expected error")
	}
	if err := ToFile("xml", tracker.Data{}, nil, filepath.Join(t.TempDir(), "x")); err == nil {
		t.Fatal("expected error")
	}
}

func TestToFile(t *testing.T) {
	d, custom := sampleData()
	dir := t.TempDir()
	at := time.Date(2024, 3, 10, 0, 0, 0, 0, time.Local)
	for _, format := range []string{FormatCSV, FormatJSON} {
		path := DefaultPath(dir, format, at)
		if filepath.Base(path) != "dualtrack-2024-03-10."+format {
			t.Fatalf("unexpected path %q", path)
		}
		if err := ToFile(format, d, custom, path); err != nil {
			t.Fatal(err)
		}
		if fi, err := os.Stat(path); err != nil || fi.Size() == 0 {
			t.Fatalf("%s export missing: %v", format, err)
		}
	}
}
