// Package click tells single presses from double presses on interactive
// cells. A single press is held for a window before it commits; a second
// press on the same cell inside the window cancels it and counts as a
// double. The package keeps no timers of its own: callers schedule a
// delivery after Window and hand the token back to Fire.
package click

import (
	"sync"
	"time"
)

// DefaultWindow is the delay before a single press commits.
const DefaultWindow = 200 * time.Millisecond

// Token identifies one pending press.
type Token uint64

// Debouncer tracks at most one pending press per cell.
type Debouncer struct {
	mu      sync.Mutex
	window  time.Duration
	seq     Token
	pending map[string]Token
}

// New returns a Debouncer with the given window. A non-positive window
// uses DefaultWindow.
func New(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Debouncer{window: window, pending: make(map[string]Token)}
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Click starts a pending press on cell, replacing any press already
// pending there. The returned token must be passed to Fire once the
// window has elapsed.
func (d *Debouncer) Click(cell string) Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.pending[cell] = d.seq
	return d.seq
}

// Cancel drops the pending press on cell and reports whether there was one.
func (d *Debouncer) Cancel(cell string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[cell]
	delete(d.pending, cell)
	return ok
}

// Press is the usual entry point. If a press is already pending on cell it
// is canceled and Press reports a double. Otherwise a new press starts and
// its token is returned.
func (d *Debouncer) Press(cell string) (tok Token, double bool) {
	if d.Cancel(cell) {
		return 0, true
	}
	return d.Click(cell), false
}

// Fire commits the press identified by tok. It returns false when the press
// was canceled or superseded, in which case the caller must not act.
func (d *Debouncer) Fire(cell string, tok Token) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if cur, ok := d.pending[cell]; !ok || cur != tok {
		return false
	}
	delete(d.pending, cell)
	return true
}

// Pending reports whether cell has a press waiting to commit.
func (d *Debouncer) Pending(cell string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[cell]
	return ok
}
