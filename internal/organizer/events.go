package organizer

import (
	"sync"
	"time"
)

// EventKind is the outcome recorded for one file
type EventKind string

const (
	EventMoved          EventKind = "moved"
	EventArchived       EventKind = "archived"
	EventError          EventKind = "error"
	EventAgeCheckFailed EventKind = "age-check-failed"
	EventSkipped        EventKind = "skipped"
)

// Event is emitted once per processed file outcome. A file whose age check
// fails produces an EventAgeCheckFailed followed by its placement event.
type Event struct {
	Filename string
	Kind     EventKind
	Category string // Destination folder, empty when not applicable
	Reason   string // Classification phase or skip reason
	Size     int64
	DryRun   bool
	Err      error
	Time     time.Time
}

// Failed reports whether the event carries an error
func (e Event) Failed() bool {
	return e.Kind == EventError || e.Kind == EventAgeCheckFailed
}

// EventSink receives organizer events. Implementations must not block for long;
// events are delivered synchronously from the run loop.
type EventSink interface {
	Handle(Event)
}

// SinkFunc adapts a function to EventSink
type SinkFunc func(Event)

// Handle implements EventSink
func (f SinkFunc) Handle(e Event) {
	f(e)
}

// MultiSink fans events out to several sinks in order
type MultiSink []EventSink

// Handle implements EventSink
func (m MultiSink) Handle(e Event) {
	for _, s := range m {
		if s != nil {
			s.Handle(e)
		}
	}
}

// Collector records every event it receives
type Collector struct {
	mu     sync.Mutex
	events []Event
}

// Handle implements EventSink
func (c *Collector) Handle(e Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

// Events returns a copy of the recorded events
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// ForFile returns the recorded events for one filename
func (c *Collector) ForFile(name string) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Filename == name {
			out = append(out, e)
		}
	}
	return out
}
