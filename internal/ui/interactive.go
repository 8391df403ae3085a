package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/fenilsonani/folder-organizer/internal/ui/models"
)

// RunInteractive runs org inside the full-screen TUI. feed must already be
// one of org's event sinks; it may be nil.
func RunInteractive(ctx context.Context, org *organizer.Organizer, feed *models.EventFeed) (*organizer.Result, error) {
	reporter := progress.NewReporter()
	org.SetProgressReporter(reporter)
	snapshots := reporter.Subscribe()
	defer reporter.Unsubscribe(snapshots)

	var events <-chan organizer.Event
	if feed != nil {
		events = feed.Events()
	}

	m := models.NewRunModel(ctx, org.Run, snapshots, events)

	// Create the Bubble Tea program
	p := tea.NewProgram(m, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("error running interactive mode: %w", err)
	}

	rm, ok := final.(*models.RunModel)
	if !ok {
		return nil, fmt.Errorf("unexpected interactive model %T", final)
	}
	return rm.Result()
}
