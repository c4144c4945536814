// Package api serves read-only JSON views of the tracker over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/analytics"
	"github.com/sadopc/dualtrack/internal/dateutil"
	"github.com/sadopc/dualtrack/internal/tracker"
)

// Source is the live aggregate and the clock analytics run against.
type Source interface {
	Data() tracker.Data
	Today() time.Time
}

const maxSeriesDays = 366

type Handler struct {
	src        Source
	log        logrus.FieldLogger
	seriesDays int
}

func NewHandler(src Source, log logrus.FieldLogger, seriesDays int) *Handler {
	return &Handler{src: src, log: log, seriesDays: seriesDays}
}

// Routes builds the router. Every endpoint is a GET under /api.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.State)
		r.Get("/series", h.Series)
		r.Get("/breakdown", h.Breakdown)
		r.Get("/moods", h.Moods)
		r.Get("/moodlog", h.MoodLog)
		r.Get("/streaks", h.Streaks)
		r.Get("/weekly", h.Weekly)
		r.Get("/days/{date}", h.Day)
	})
	return r
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"duration":   time.Since(start).String(),
		}).Debug("request")
	})
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.src.Data())
}

func (h *Handler) Series(w http.ResponseWriter, r *http.Request) {
	days := h.seriesDays
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > maxSeriesDays {
			h.writeError(w, http.StatusBadRequest, errors.New("days must be between 1 and 366"))
			return
		}
		days = n
	}
	h.writeJSON(w, http.StatusOK, analytics.LastNDaysSeries(h.src.Data(), days, h.src.Today()))
}

func (h *Handler) Breakdown(w http.ResponseWriter, r *http.Request) {
	p, err := periodFromQuery(r, analytics.PeriodDay)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analytics.PeriodBreakdown(h.src.Data(), p, h.src.Today()))
}

func (h *Handler) Moods(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, analytics.MoodHistogram(h.src.Data()))
}

func (h *Handler) MoodLog(w http.ResponseWriter, r *http.Request) {
	p, err := periodFromQuery(r, analytics.PeriodMonth)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	h.writeJSON(w, http.StatusOK, analytics.PeriodMoodLog(h.src.Data(), p, h.src.Today()))
}

func (h *Handler) Streaks(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, analytics.Streaks(h.src.Data(), h.src.Today()))
}

type weeklyResponse struct {
	Weeks int                  `json:"weeks"`
	Tasks []tracker.WeeklyTask `json:"tasks"`
}

func (h *Handler) Weekly(w http.ResponseWriter, r *http.Request) {
	tasks := h.src.Data().WeeklyTasks
	if tasks == nil {
		tasks = []tracker.WeeklyTask{}
	}
	h.writeJSON(w, http.StatusOK, weeklyResponse{Weeks: tracker.DisplayWeeks(tasks), Tasks: tasks})
}

type dayResponse struct {
	Date       string              `json:"date"`
	TotalHours float64             `json:"totalHours"`
	Tasks      []tracker.Task      `json:"tasks"`
	Habit      tracker.HabitRecord `json:"habit"`
	Mood       *tracker.MoodRecord `json:"mood,omitempty"`
}

func (h *Handler) Day(w http.ResponseWriter, r *http.Request) {
	t, err := dateutil.ParseKey(chi.URLParam(r, "date"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}
	key := dateutil.FormatKey(t)
	s := analytics.Summarize(h.src.Data(), key)
	resp := dayResponse{
		Date:       key,
		TotalHours: s.TotalHours,
		Tasks:      h.src.Data().TasksOn(key),
		Habit:      s.Habit,
	}
	if resp.Tasks == nil {
		resp.Tasks = []tracker.Task{}
	}
	if s.HasMood {
		resp.Mood = &s.Mood
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func periodFromQuery(r *http.Request, def analytics.PeriodKind) (analytics.Period, error) {
	q := r.URL.Query()
	p := analytics.Period{Kind: def, From: q.Get("from"), To: q.Get("to")}
	if s := q.Get("period"); s != "" {
		k, err := analytics.ParsePeriodKind(s)
		if err != nil {
			return analytics.Period{}, err
		}
		p.Kind = k
	}
	return p, nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.WithError(err).Warn("encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
