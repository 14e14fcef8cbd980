package reactive

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one invocation of the last
// submitted function, delay after the last trigger. It is single-slot: a
// new trigger cancels and replaces any pending one, so only the latest
// state within a window is ever acted on.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	clock   Clock
	timer   Timer
	waiters []chan struct{}
}

func NewDebouncer(delay time.Duration, clock Clock) *Debouncer {
	if clock == nil {
		clock = RealClock()
	}
	return &Debouncer{delay: delay, clock: clock}
}

// Trigger schedules fn to run once the debounce window closes. The returned
// channel is closed when the coalesced invocation (which may have been
// triggered by a later call) has completed, so callers can await the burst
// they were part of.
func (d *Debouncer) Trigger(fn func()) <-chan struct{} {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	done := make(chan struct{})
	d.waiters = append(d.waiters, done)
	d.timer = d.clock.AfterFunc(d.delay, func() {
		d.mu.Lock()
		waiters := d.waiters
		d.waiters = nil
		d.timer = nil
		d.mu.Unlock()
		fn()
		for _, w := range waiters {
			close(w)
		}
	})
	d.mu.Unlock()
	return done
}
