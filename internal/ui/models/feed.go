package models

import "github.com/fenilsonani/folder-organizer/internal/organizer"

// EventFeed forwards organizer events to the TUI. Events are dropped when
// the view falls behind; the final result still carries all of them.
type EventFeed struct {
	ch chan organizer.Event
}

// NewEventFeed creates a feed with room for size pending events
func NewEventFeed(size int) *EventFeed {
	return &EventFeed{ch: make(chan organizer.Event, size)}
}

// Handle implements organizer.EventSink
func (f *EventFeed) Handle(e organizer.Event) {
	select {
	case f.ch <- e:
	default:
	}
}

// Events returns the receive side of the feed
func (f *EventFeed) Events() <-chan organizer.Event {
	return f.ch
}
