package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"

	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/tracker"
)

type fixedSource struct {
	data  tracker.Data
	today time.Time
}

func (s fixedSource) Data() tracker.Data { return s.data }
func (s fixedSource) Today() time.Time   { return s.today }

func newTestServer(t *testing.T, d tracker.Data) *httptest.Server {
	t.Helper()
	log, _ := test.NewNullLogger()
	src := fixedSource{data: d, today: time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local)}
	srv := httptest.NewServer(Routes(NewHandler(src, log, 30)))
	t.Cleanup(srv.Close)
	return srv
}

func seeded() tracker.Data {
	d := tracker.Seed(time.Date(2024, 3, 10, 9, 0, 0, 0, time.Local))
	d.Habits = []tracker.Habit{{ID: "h", Name: "Run", StartDate: "2024-01-01", EndDate: "2024-12-31"}}
	d = tracker.AddWeeklyTask(d, "Gym")
	return d
}

func getJSON(t *testing.T, srv *httptest.Server, path string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(srv.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", path, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("GET %s: content type %q", path, ct)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("GET %s: decode: %v", path, err)
		}
	}
}

func TestState(t *testing.T) {
	srv := newTestServer(t, seeded())
	var d tracker.Data
	getJSON(t, srv, "/api/state", http.StatusOK, &d)
	if len(d.Todos) != 3 || d.HabitOn("2024-03-10").Status != tracker.HabitGreen {
		t.Fatalf("unexpected state %+v", d)
	}
}

func TestSeries(t *testing.T) {
	srv := newTestServer(t, seeded())

	var points []analytics.SeriesPoint
	getJSON(t, srv, "/api/series", http.StatusOK, &points)
	if len(points) != 30 {
		t.Fatalf("default series should have 30 points, got %d", len(points))
	}
	if points[29].Date != "2024-03-10" || points[29].Total != 1.8 {
		t.Fatalf("unexpected last point %+v", points[29])
	}

	getJSON(t, srv, "/api/series?days=7", http.StatusOK, &points)
	if len(points) != 7 {
		t.Fatalf("expected 7 points, got %d", len(points))
	}

	for _, bad := range []string{"0", "abc", "9999"} {
		getJSON(t, srv, "/api/series?days="+bad, http.StatusBadRequest, nil)
	}
}

func TestBreakdown(t *testing.T) {
	srv := newTestServer(t, seeded())

	var b analytics.PieBreakdown
	getJSON(t, srv, "/api/breakdown", http.StatusOK, &b)
	if b.Total != 1.8 || len(b.Slices) != 2 {
		t.Fatalf("unexpected day breakdown %+v", b)
	}

	getJSON(t, srv, "/api/breakdown?period=week", http.StatusOK, &b)
	if b.Total != 6.3 {
		t.Fatalf("week total = %v, want 6.3", b.Total)
	}

	getJSON(t, srv, "/api/breakdown?period=custom&from=2024-03-09&to=2024-03-09", http.StatusOK, &b)
	if len(b.Slices) != 1 || b.Slices[0].Key != tracker.PrimaryExternal || b.Slices[0].Percent != 100 {
		t.Fatalf("unexpected custom breakdown %+v", b)
	}

	getJSON(t, srv, "/api/breakdown?period=custom", http.StatusOK, &b)
	if len(b.Slices) != 0 {
		t.Fatal("blank custom range should be empty")
	}

	getJSON(t, srv, "/api/breakdown?period=decade", http.StatusBadRequest, nil)
}

func TestMoods(t *testing.T) {
	srv := newTestServer(t, seeded())
	var hist []analytics.MoodCount
	getJSON(t, srv, "/api/moods", http.StatusOK, &hist)
	if len(hist) != 4 || hist[0].Count != 1 || hist[1].Count != 1 || hist[2].Count != 1 || hist[3].Count != 0 {
		t.Fatalf("unexpected histogram %+v", hist)
	}
}

func TestMoodLog(t *testing.T) {
	srv := newTestServer(t, seeded())
	var groups []analytics.MonthGroup
	getJSON(t, srv, "/api/moodlog", http.StatusOK, &groups)
	if len(groups) != 1 || len(groups[0].Entries) != 3 || groups[0].Entries[0].Date != "2024-03-10" {
		t.Fatalf("unexpected mood log %+v", groups)
	}
}

func TestStreaks(t *testing.T) {
	srv := newTestServer(t, seeded())
	var streaks []analytics.HabitStreak
	getJSON(t, srv, "/api/streaks", http.StatusOK, &streaks)
	if len(streaks) != 1 || streaks[0].Days != 1 {
		t.Fatalf("unexpected streaks %+v", streaks)
	}
}

func TestWeekly(t *testing.T) {
	srv := newTestServer(t, seeded())
	var resp weeklyResponse
	getJSON(t, srv, "/api/weekly", http.StatusOK, &resp)
	if resp.Weeks != 4 || len(resp.Tasks) != 1 || resp.Tasks[0].Title != "Gym" {
		t.Fatalf("unexpected weekly %+v", resp)
	}

	empty := newTestServer(t, tracker.Data{})
	getJSON(t, empty, "/api/weekly", http.StatusOK, &resp)
	if resp.Tasks == nil || len(resp.Tasks) != 0 {
		t.Fatalf("expected empty list, got %+v", resp)
	}
}

func TestDay(t *testing.T) {
	srv := newTestServer(t, seeded())
	var resp dayResponse
	getJSON(t, srv, "/api/days/2024-03-09", http.StatusOK, &resp)
	if resp.TotalHours != 2 || len(resp.Tasks) != 1 || resp.Habit.Status != tracker.HabitRed || resp.Mood == nil {
		t.Fatalf("unexpected day %+v", resp)
	}

	var empty dayResponse
	getJSON(t, srv, "/api/days/2023-01-01", http.StatusOK, &empty)
	if empty.Mood != nil || empty.Habit.Status != tracker.HabitNone || empty.Tasks == nil {
		t.Fatalf("unexpected empty day %+v", empty)
	}

	getJSON(t, srv, "/api/days/yesterday", http.StatusBadRequest, nil)
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t, seeded())
	resp, err := http.Get(srv.URL + "/api/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
