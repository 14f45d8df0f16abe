// Package timer provides a cancellable delayed-action abstraction for
// debounced background work.
package timer

import (
	"sync"
	"time"
)

// Debouncer schedules a function to run after a quiet period.
// Scheduling while a prior action is pending cancels it; the most
// recently scheduled function fires at most once. Safe for concurrent use.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given quiet period.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the quiet period elapses,
// cancelling any previously scheduled function that has not yet fired.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel stops any pending action. Reports whether an action was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer == nil {
		return false
	}

	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}

// Flush runs a pending action immediately instead of waiting out the
// quiet period. No-op if nothing is pending or the action already fired.
func (d *Debouncer) Flush(fn func()) {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		fn()
	}
}
