package scheduler

import (
	"sync"
	"time"
)

// Loop serializes event handlers and timer callbacks onto one logical thread.
type Loop struct {
	mu    sync.Mutex
	clock Clock
}

// NewLoop creates a loop driven by clock
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = RealClock{}
	}
	return &Loop{clock: clock}
}

// Clock returns the loop's clock
func (l *Loop) Clock() Clock {
	return l.clock
}

// Now returns the loop clock's current time
func (l *Loop) Now() time.Time {
	return l.clock.Now()
}

// Do runs f on the loop. Calls must not nest.
func (l *Loop) Do(f func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	f()
}

// NewSlot creates an idle slot bound to the loop
func (l *Loop) NewSlot(name string) *Slot {
	return &Slot{loop: l, name: name}
}

// Slot holds at most one live timer. All methods must be called on the loop.
type Slot struct {
	loop  *Loop
	name  string
	gen   uint64
	timer Timer
	armed bool
}

// Name returns the slot name
func (s *Slot) Name() string {
	return s.name
}

// After arms a one-shot timer, cancelling whatever the slot held before.
func (s *Slot) After(d time.Duration, f func()) {
	gen := s.rearm()
	s.timer = s.loop.clock.AfterFunc(d, func() {
		s.loop.mu.Lock()
		defer s.loop.mu.Unlock()
		if !s.armed || s.gen != gen {
			return
		}
		s.armed = false
		s.timer = nil
		f()
	})
}

// Every arms a repeating ticker, cancelling whatever the slot held before.
func (s *Slot) Every(d time.Duration, f func()) {
	gen := s.rearm()
	s.timer = s.loop.clock.Every(d, func() {
		s.loop.mu.Lock()
		defer s.loop.mu.Unlock()
		if !s.armed || s.gen != gen {
			return
		}
		f()
	})
}

// Cancel stops the held timer. It reports whether a timer was live.
func (s *Slot) Cancel() bool {
	was := s.armed
	s.gen++
	s.armed = false
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	return was
}

// Active reports whether the slot holds a live timer
func (s *Slot) Active() bool {
	return s.armed
}

func (s *Slot) rearm() uint64 {
	s.Cancel()
	s.armed = true
	return s.gen
}
