// Package session owns the live tracker aggregate. Every change goes
// through Apply, which swaps in the mutation's result and writes it
// through to the persister.
package session

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/tracker"
)

// Persister is the load/save/clear contract of the state document.
// Implementations swallow their own failures.
type Persister interface {
	Load() *tracker.Data
	Save(tracker.Data)
	Clear()
}

type Session struct {
	mu    sync.RWMutex
	data  tracker.Data
	store Persister
	log   logrus.FieldLogger
	now   func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Open loads the stored aggregate, or seeds and saves sample data when
// there is none.
func Open(p Persister, log logrus.FieldLogger, opts ...Option) *Session {
	s := &Session{store: p, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	if d := p.Load(); d != nil {
		s.data = *d
		s.log.Debug("state loaded")
		return s
	}
	s.log.Info("no stored state, seeding sample data")
	s.data = tracker.Seed(s.now())
	p.Save(s.data)
	return s
}

// Data returns the current aggregate. Callers must treat it as read-only.
func (s *Session) Data() tracker.Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// Today returns the session clock's current time.
func (s *Session) Today() time.Time {
	return s.now()
}

// Apply runs one pure mutation against the current aggregate, stores the
// result and writes it through.
func (s *Session) Apply(fn func(tracker.Data) tracker.Data) tracker.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = fn(s.data)
	s.store.Save(s.data)
	return s.data
}

// ToggleHabit is Apply for tracker.ToggleHabit; it also returns the new
// status so the caller can react to a transition.
func (s *Session) ToggleHabit(dateKey string) tracker.HabitStatus {
	var status tracker.HabitStatus
	s.Apply(func(d tracker.Data) tracker.Data {
		d, status = tracker.ToggleHabit(d, dateKey)
		return d
	})
	return status
}

// Reset clears the stored document and starts again from sample data.
func (s *Session) Reset() tracker.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Clear()
	s.data = tracker.Seed(s.now())
	s.store.Save(s.data)
	s.log.Info("state reset")
	return s.data
}
