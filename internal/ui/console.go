package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/ui/styles"
)

// ConsoleSink prints one line per organizer event
type ConsoleSink struct {
	mu      sync.Mutex
	w       io.Writer
	verbose bool
}

// NewConsoleSink creates a sink writing to w. Skip events are only shown
// when verbose is set.
func NewConsoleSink(w io.Writer, verbose bool) *ConsoleSink {
	return &ConsoleSink{w: w, verbose: verbose}
}

// Handle implements organizer.EventSink
func (c *ConsoleSink) Handle(e organizer.Event) {
	line := FormatEvent(e, c.verbose)
	if line == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, line)
}

// FormatEvent renders an event as a single console line. It returns an
// empty string for events that are hidden at this verbosity.
func FormatEvent(e organizer.Event, verbose bool) string {
	prefix := ""
	if e.DryRun {
		prefix = styles.DimStyle.Render("[dry run] ")
	}

	switch e.Kind {
	case organizer.EventMoved:
		return fmt.Sprintf("%sMoved: %s -> %s", prefix, e.Filename, styles.Folder(e.Category, false))
	case organizer.EventArchived:
		return fmt.Sprintf("%sArchived: %s -> %s", prefix, e.Filename, styles.Folder(e.Category, true))
	case organizer.EventError:
		msg := fmt.Sprintf("%v", e.Err)
		if me, ok := e.Err.(*organizer.MoveError); ok {
			msg = me.UserMessage()
		}
		return prefix + styles.ErrorStyle.Render("Error: ") + msg
	case organizer.EventAgeCheckFailed:
		return fmt.Sprintf("%s%s could not read modification time of %s: %v",
			prefix, styles.WarningStyle.Render("Warning:"), e.Filename, e.Err)
	case organizer.EventSkipped:
		if !verbose {
			return ""
		}
		return fmt.Sprintf("%s%s %s (%s)", prefix, styles.DimStyle.Render("Skipped:"), e.Filename, e.Reason)
	}
	return ""
}
