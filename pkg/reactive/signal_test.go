package reactive

import (
	"testing"
	"time"
)

func TestSignalSubscribeFiresImmediately(t *testing.T) {
	s := NewSignal(5)
	got := []int{}
	s.Subscribe(func(v int) {
		got = append(got, v)
	})
	s.Set(7)
	if len(got) != 2 || got[0] != 5 || got[1] != 7 {
		t.Errorf("expected [5 7], got %v", got)
	}
}

func TestSignalSetNotifiesOnEqualValue(t *testing.T) {
	s := NewSignal[*int](nil)
	fired := 0
	s.Subscribe(func(*int) { fired++ })
	s.Set(nil)
	if fired != 2 {
		t.Errorf("expected notification on equal value, fired=%d", fired)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	s := NewSignal(0)
	fired := 0
	unsub := s.Subscribe(func(int) { fired++ })
	unsub()
	s.Set(1)
	if fired != 1 {
		t.Errorf("expected only the initial emission, fired=%d", fired)
	}
}

func TestEffectSkipsInitialEmission(t *testing.T) {
	a := NewSignal("a")
	b := NewSignal(1)
	runs := 0
	Effect(func() { runs++ }, a, b)
	if runs != 0 {
		t.Fatalf("effect ran %d times on construction", runs)
	}
	a.Set("b")
	b.Set(2)
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestEffectDispose(t *testing.T) {
	a := NewSignal(0)
	runs := 0
	dispose := Effect(func() { runs++ }, a)
	a.Set(1)
	dispose()
	a.Set(2)
	if runs != 1 {
		t.Errorf("expected 1 run after dispose, got %d", runs)
	}
}

func TestDebouncerCoalesces(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(50*time.Millisecond, clock)
	runs := 0
	var done []<-chan struct{}
	for i := 0; i < 5; i++ {
		done = append(done, d.Trigger(func() { runs++ }))
		clock.Advance(2 * time.Millisecond)
	}
	if runs != 0 {
		t.Fatalf("ran before the window closed: %d", runs)
	}
	clock.Advance(50 * time.Millisecond)
	if runs != 1 {
		t.Errorf("expected one coalesced run, got %d", runs)
	}
	for i, ch := range done {
		select {
		case <-ch:
		default:
			t.Errorf("waiter %d not released", i)
		}
	}
}

func TestDebouncerRunsLatestFunction(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(50*time.Millisecond, clock)
	ran := ""
	d.Trigger(func() { ran = "first" })
	d.Trigger(func() { ran = "second" })
	clock.Advance(50 * time.Millisecond)
	if ran != "second" {
		t.Errorf("expected the last submitted function, ran %q", ran)
	}
}

func TestDebouncerSeparateWindows(t *testing.T) {
	clock := NewManualClock()
	d := NewDebouncer(50*time.Millisecond, clock)
	runs := 0
	d.Trigger(func() { runs++ })
	clock.Advance(50 * time.Millisecond)
	d.Trigger(func() { runs++ })
	clock.Advance(50 * time.Millisecond)
	if runs != 2 {
		t.Errorf("expected 2 runs across separate windows, got %d", runs)
	}
}
