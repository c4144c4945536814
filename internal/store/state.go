package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sadopc/dualtrack/internal/tracker"
)

// Fixed storage keys of the two documents.
const (
	StateKey      = "habit-tracker-demo-v1"
	CategoriesKey = "custom-secondary-categories"

	// CorruptSuffix marks the copy of a document that could not be read.
	CorruptSuffix = ".corrupt"
)

// StateStore loads and saves the tracker aggregate as one JSON document.
// Failures are logged and swallowed: a bad read looks like no data, a
// failed write leaves the caller's in-memory copy authoritative.
type StateStore struct {
	b   Backend
	log logrus.FieldLogger
	now func() time.Time
}

func NewStateStore(b Backend, log logrus.FieldLogger) *StateStore {
	return &StateStore{b: b, log: log.WithField("key", StateKey), now: time.Now}
}

// Load returns the stored aggregate after normalization, or nil when there
// is none or it cannot be read. An unreadable document is copied to
// StateKey+CorruptSuffix first so that seeding over it loses nothing.
func (s *StateStore) Load() *tracker.Data {
	raw, err := s.b.Get(StateKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.WithError(err).Warn("load state")
		return nil
	}
	d, err := tracker.Decode(raw)
	if err != nil {
		backup := StateKey + CorruptSuffix
		if perr := s.b.Put(backup, raw); perr != nil {
			s.log.WithError(perr).Warn("back up unreadable state")
		}
		s.log.WithError(err).WithField("backup", backup).Warn("stored state unreadable, starting fresh")
		return nil
	}
	d = tracker.Normalize(d, s.now())
	return &d
}

func (s *StateStore) Save(d tracker.Data) {
	raw, err := json.Marshal(d)
	if err != nil {
		s.log.WithError(err).Warn("encode state")
		return
	}
	if err := s.b.Put(StateKey, raw); err != nil {
		s.log.WithError(err).Warn("save state")
	}
}

func (s *StateStore) Clear() {
	if err := s.b.Delete(StateKey); err != nil {
		s.log.WithError(err).Warn("clear state")
	}
}

// Categories is the repository of user-defined secondary categories. Every
// change is written through; write failures are logged and the in-memory
// list stays current.
type Categories struct {
	mu   sync.Mutex
	b    Backend
	log  logrus.FieldLogger
	list []tracker.Category
}

// NewCategories loads the stored list. A missing or unreadable document
// gives an empty list.
func NewCategories(b Backend, log logrus.FieldLogger) *Categories {
	c := &Categories{b: b, log: log.WithField("key", CategoriesKey)}
	raw, err := b.Get(CategoriesKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		c.log.WithError(err).Warn("load categories")
	default:
		list, err := tracker.DecodeCategories(raw)
		if err != nil {
			c.log.WithError(err).Warn("stored categories unreadable")
		}
		c.list = list
	}
	return c
}

// List returns a copy of the current order.
func (c *Categories) List() []tracker.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]tracker.Category(nil), c.list...)
}

// Add appends a category with a generated key. Blank labels are rejected.
func (c *Categories) Add(label string) (tracker.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, cat, ok := tracker.AddCategory(c.list, label)
	if ok {
		c.set(list)
	}
	return cat, ok
}

// Remove deletes key and returns the selection to use afterwards: selected
// itself, or "" if it pointed at the removed category.
func (c *Categories) Remove(key, selected string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	list, sel := tracker.RemoveCategory(c.list, key, selected)
	c.set(list)
	return sel
}

func (c *Categories) MoveUp(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(tracker.MoveCategoryUp(c.list, i))
}

func (c *Categories) MoveDown(i int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(tracker.MoveCategoryDown(c.list, i))
}

// Clear drops every custom category.
func (c *Categories) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = nil
	if err := c.b.Delete(CategoriesKey); err != nil {
		c.log.WithError(err).Warn("clear categories")
	}
}

func (c *Categories) set(list []tracker.Category) {
	c.list = list
	raw, err := json.Marshal(list)
	if err != nil {
		c.log.WithError(err).Warn("encode categories")
		return
	}
	if err := c.b.Put(CategoriesKey, raw); err != nil {
		c.log.WithError(err).Warn("save categories")
	}
}
