// Package reactive holds the small state primitives the browse stores are
// built on: observable signals, derived values and a single-slot debouncer.
// Everything runs subscribers synchronously on the writer's goroutine so
// tests stay deterministic without a scheduler.
package reactive

import "sync"

// Subscribable is the type-erased view of a signal used when an effect only
// cares that something changed, not what the value is.
type Subscribable interface {
	Changed(fn func()) (unsubscribe func())
}

// Signal is a mutable observable value. Subscribers are invoked
// synchronously on Set, and once immediately on Subscribe with the current
// value. Stores that must not react to that initial emission guard it with
// a one-shot flag instead of relying on timing.
type Signal[T any] struct {
	mu     sync.Mutex
	value  T
	subs   map[int]func(T)
	nextId int
}

func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial, subs: map[int]func(T){}}
}

func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores the value and notifies every subscriber, even when the new
// value equals the old one. Loaders depend on that to publish "loaded but
// unchanged" results.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers fn and fires it once with the current value. The
// returned function removes the subscription.
func (s *Signal[T]) Subscribe(fn func(T)) func() {
	s.mu.Lock()
	id := s.nextId
	s.nextId++
	s.subs[id] = fn
	v := s.value
	s.mu.Unlock()
	fn(v)
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Changed implements Subscribable.
func (s *Signal[T]) Changed(fn func()) func() {
	return s.Subscribe(func(T) { fn() })
}

// Effect re-runs fn whenever any of the given sources change. The initial
// synchronous emission of each source is swallowed so constructing an
// effect never runs fn; only genuine writes do. Returns a disposer.
func Effect(fn func(), sources ...Subscribable) func() {
	disposers := make([]func(), 0, len(sources))
	for _, src := range sources {
		first := true
		disposers = append(disposers, src.Changed(func() {
			if first {
				first = false
				return
			}
			fn()
		}))
	}
	return func() {
		for _, d := range disposers {
			d()
		}
	}
}
