package timer_test

import (
	"sync/atomic"
	"testing"
	"time"

	"promptcraft/pkg/timer"
)

func TestScheduleFires(t *testing.T) {
	d := timer.NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{})
	d.Schedule(func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled action never fired")
	}
}

func TestScheduleReplacesPending(t *testing.T) {
	d := timer.NewDebouncer(20 * time.Millisecond)

	var first, second atomic.Int32
	d.Schedule(func() { first.Add(1) })
	d.Schedule(func() { second.Add(1) })

	time.Sleep(100 * time.Millisecond)

	if got := first.Load(); got != 0 {
		t.Errorf("replaced action fired %d times, want 0", got)
	}
	if got := second.Load(); got != 1 {
		t.Errorf("latest action fired %d times, want 1", got)
	}
}

func TestCancel(t *testing.T) {
	d := timer.NewDebouncer(20 * time.Millisecond)

	var fired atomic.Int32
	d.Schedule(func() { fired.Add(1) })

	if !d.Cancel() {
		t.Error("cancel reported no pending action")
	}

	time.Sleep(100 * time.Millisecond)

	if got := fired.Load(); got != 0 {
		t.Errorf("cancelled action fired %d times, want 0", got)
	}
}

func TestCancelWithoutPending(t *testing.T) {
	d := timer.NewDebouncer(time.Millisecond)

	if d.Cancel() {
		t.Error("cancel reported a pending action on a fresh debouncer")
	}
}

func TestFlushRunsPending(t *testing.T) {
	d := timer.NewDebouncer(time.Hour)

	var scheduled, flushed atomic.Int32
	d.Schedule(func() { scheduled.Add(1) })
	d.Flush(func() { flushed.Add(1) })

	if got := flushed.Load(); got != 1 {
		t.Errorf("flush ran %d times, want 1", got)
	}

	time.Sleep(20 * time.Millisecond)
	if got := scheduled.Load(); got != 0 {
		t.Errorf("original action fired %d times after flush, want 0", got)
	}
}

func TestFlushWithoutPending(t *testing.T) {
	d := timer.NewDebouncer(time.Millisecond)

	var fired atomic.Int32
	d.Flush(func() { fired.Add(1) })

	if got := fired.Load(); got != 0 {
		t.Errorf("flush ran %d times with nothing pending, want 0", got)
	}
}
