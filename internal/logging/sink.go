package logging

import (
	"context"
	"log/slog"

	"github.com/fenilsonani/folder-organizer/internal/organizer"
)

// EventSink writes organizer events to a logger. Moves and archives log at
// info, skips at debug, and failures at warn or error.
type EventSink struct {
	logger *slog.Logger
}

// NewEventSink returns a sink tagging every record with runID.
func NewEventSink(logger *slog.Logger, runID string) *EventSink {
	if logger == nil {
		logger = NewNop()
	}
	if runID != "" {
		logger = logger.With(slog.String("run_id", runID))
	}
	return &EventSink{logger: logger}
}

// Handle implements organizer.EventSink.
func (s *EventSink) Handle(e organizer.Event) {
	attrs := []slog.Attr{
		slog.String("file", e.Filename),
		slog.String("kind", string(e.Kind)),
	}
	if e.Category != "" {
		attrs = append(attrs, slog.String("category", e.Category))
	}
	if e.Reason != "" {
		attrs = append(attrs, slog.String("reason", e.Reason))
	}
	if e.Size > 0 {
		attrs = append(attrs, slog.Int64("size", e.Size))
	}
	if e.DryRun {
		attrs = append(attrs, slog.Bool("dry_run", true))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	level, msg := slog.LevelInfo, "file moved"
	switch e.Kind {
	case organizer.EventArchived:
		msg = "file archived"
	case organizer.EventSkipped:
		level, msg = slog.LevelDebug, "file skipped"
	case organizer.EventAgeCheckFailed:
		level, msg = slog.LevelWarn, "age check failed"
	case organizer.EventError:
		level, msg = slog.LevelError, "move failed"
	}

	s.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
