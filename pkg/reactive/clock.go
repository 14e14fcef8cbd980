package reactive

import (
	"sync"
	"time"
)

// Timer is the stoppable handle returned by Clock.AfterFunc.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred work. The production clock wraps time.AfterFunc;
// tests use ManualClock to fire pending timers without sleeping.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// RealClock returns the wall clock.
func RealClock() Clock {
	return realClock{}
}

// ManualClock is a virtual clock for tests. Scheduled functions only run
// when Advance is called.
type ManualClock struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	clock   *ManualClock
	at      time.Duration
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	was := t.stopped
	t.stopped = true
	return !was
}

func NewManualClock() *ManualClock {
	return &ManualClock{}
}

func (c *ManualClock) AfterFunc(d time.Duration, fn func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, at: c.now + d, fn: fn}
	c.pending = append(c.pending, t)
	return t
}

// Advance moves virtual time forward and runs every timer that came due,
// in scheduling order.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	due := make([]*manualTimer, 0, len(c.pending))
	rest := c.pending[:0]
	for _, t := range c.pending {
		if !t.stopped && t.at <= c.now {
			due = append(due, t)
		} else if !t.stopped {
			rest = append(rest, t)
		}
	}
	c.pending = rest
	c.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}
