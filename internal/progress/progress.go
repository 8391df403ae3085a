package progress

import (
	"fmt"
	"sync"
	"time"
)

// Phase represents the current phase of operation
type Phase string

const (
	PhaseProvisioning Phase = "provisioning"
	PhaseOrganizing   Phase = "organizing"
	PhaseComplete     Phase = "complete"
	PhaseError        Phase = "error"
)

// Snapshot represents progress of one organize run
type Snapshot struct {
	Phase       Phase
	CurrentFile string
	Processed   int
	Total       int
	Moved       int
	Archived    int
	Failed      int
	Skipped     int
	DryRun      bool
	StartTime   time.Time
	Error       error
}

// Percent returns the processed fraction in [0, 1]
func (s Snapshot) Percent() float64 {
	if s.Total <= 0 {
		if s.Phase == PhaseComplete {
			return 1
		}
		return 0
	}
	p := float64(s.Processed) / float64(s.Total)
	if p > 1 {
		return 1
	}
	return p
}

// terminalSendTimeout bounds how long a final snapshot waits for a slow listener
const terminalSendTimeout = time.Second

// Reporter provides thread-safe progress reporting
type Reporter struct {
	current   *Snapshot
	mu        sync.RWMutex
	listeners []chan Snapshot
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan Snapshot, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Snapshot, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Update stores a snapshot and notifies listeners.
// Listeners that are not keeping up miss intermediate updates; the final
// complete or error snapshot waits briefly for room.
func (r *Reporter) Update(update Snapshot) {
	r.mu.Lock()
	r.current = &update
	listeners := make([]chan Snapshot, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	terminal := update.Phase == PhaseComplete || update.Phase == PhaseError
	for _, listener := range listeners {
		if terminal {
			select {
			case listener <- update:
			case <-time.After(terminalSendTimeout):
			}
			continue
		}
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// Current returns the latest snapshot, or nil before the first update
func (r *Reporter) Current() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return nil
	}
	s := *r.current
	return &s
}

// Format returns a human-readable progress string
func Format(p *Snapshot) string {
	if p == nil {
		return "Preparing..."
	}

	elapsed := time.Since(p.StartTime)

	switch p.Phase {
	case PhaseProvisioning:
		return "Creating category folders..."
	case PhaseOrganizing:
		verb := "Organizing"
		if p.DryRun {
			verb = "Planning"
		}
		return fmt.Sprintf("%s... %d/%d entries (%d%%) - %d moved, %d archived, %d failed",
			verb,
			p.Processed,
			p.Total,
			int(p.Percent()*100),
			p.Moved,
			p.Archived,
			p.Failed)
	case PhaseComplete:
		return fmt.Sprintf("Organization complete: %d moved, %d archived, %d failed in %s",
			p.Moved,
			p.Archived,
			p.Failed,
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Organization error: %v", p.Error)
	default:
		return "Preparing..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
