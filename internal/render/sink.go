package render

import (
	"sync"
	"time"
)

// Sink receives render events. Render is called on the device loop and
// must not block.
type Sink interface {
	Render(Event)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(Event)

// Render calls f(e)
func (f SinkFunc) Render(e Event) { f(e) }

// Nop discards events
var Nop Sink = SinkFunc(func(Event) {})

// Fanout delivers each event to every sink in order
type Fanout []Sink

// Render implements Sink
func (f Fanout) Render(e Event) {
	for _, s := range f {
		s.Render(e)
	}
}

// Recorder keeps every event it receives. Used by tests and by the state
// endpoint's debug view.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Render implements Sink
func (r *Recorder) Render(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns recorded events of kind, optionally narrowed to target
func (r *Recorder) Filter(kind Kind, target string) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, e := range r.events {
		if e.Kind == kind && (target == "" || e.Target == target) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events of kind/target were recorded
func (r *Recorder) Count(kind Kind, target string) int {
	return len(r.Filter(kind, target))
}

// Last returns the most recent event of kind/target
func (r *Recorder) Last(kind Kind, target string) (Event, bool) {
	events := r.Filter(kind, target)
	if len(events) == 0 {
		return Event{}, false
	}
	return events[len(events)-1], true
}

// Reset drops everything recorded so far
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Stamp wraps sink so events without a time get one from now
func Stamp(sink Sink, now func() time.Time) Sink {
	return SinkFunc(func(e Event) {
		if e.At.IsZero() {
			e.At = now()
		}
		sink.Render(e)
	})
}
