package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/fenilsonani/folder-organizer/internal/ui/components"
	"github.com/fenilsonani/folder-organizer/internal/ui/styles"
	uiutils "github.com/fenilsonani/folder-organizer/internal/ui/utils"
)

// recentEvents is how many event lines the run view keeps on screen
const recentEvents = 8

// RunFunc performs the organize run; it must honor ctx cancellation
type RunFunc func(ctx context.Context) (*organizer.Result, error)

// SnapshotMsg carries a progress snapshot into the model
type SnapshotMsg progress.Snapshot

// EventMsg carries one organizer event into the model
type EventMsg organizer.Event

// RunCompleteMsg is sent when the run returns
type RunCompleteMsg struct {
	Result *organizer.Result
	Err    error
}

// RunModel shows a spinner, a progress bar and the latest events while a
// run is in flight, then switches to the summary view.
type RunModel struct {
	ctx       context.Context
	cancel    context.CancelFunc
	run       RunFunc
	snapshots <-chan progress.Snapshot
	events    <-chan organizer.Event

	spinner   spinner.Model
	progress  progressbar.Model
	statusBar *components.StatusBar

	snap       progress.Snapshot
	recent     []organizer.Event
	movedSize  int64
	cancelling bool
	startTime  time.Time

	summary *SummaryViewModel
	result  *organizer.Result
	err     error

	width  int
	height int
}

// NewRunModel creates the run view. Either channel may be nil.
func NewRunModel(ctx context.Context, run RunFunc, snapshots <-chan progress.Snapshot, events <-chan organizer.Event) *RunModel {
	ctx, cancel := context.WithCancel(ctx)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle

	p := progressbar.New(progressbar.WithDefaultGradient())

	sb := components.NewStatusBar()
	sb.SetView("Organizing")
	sb.SetShortcuts([2]string{"ctrl+c", "cancel"})

	return &RunModel{
		ctx:       ctx,
		cancel:    cancel,
		run:       run,
		snapshots: snapshots,
		events:    events,
		spinner:   s,
		progress:  p,
		statusBar: sb,
		startTime: time.Now(),
	}
}

// Init starts the spinner, the run and the listeners
func (m *RunModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.performRun,
		waitForSnapshot(m.snapshots),
		waitForEvent(m.events),
	)
}

// Update handles messages
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.summary != nil {
		if _, ok := msg.(tea.KeyMsg); ok {
			var cmd tea.Cmd
			m.summary, cmd = m.summary.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			// Stop between files; the run returns a partial result
			m.cancelling = true
			m.cancel()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = clamp(msg.Width-4, 10, 60)

	case spinner.TickMsg:
		if m.summary != nil {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case SnapshotMsg:
		m.snap = progress.Snapshot(msg)
		m.statusBar.SetProgress(m.snap.Processed, m.snap.Total, m.movedSize)
		return m, waitForSnapshot(m.snapshots)

	case EventMsg:
		e := organizer.Event(msg)
		m.recent = append(m.recent, e)
		if len(m.recent) > recentEvents {
			m.recent = m.recent[len(m.recent)-recentEvents:]
		}
		if e.Kind == organizer.EventMoved || e.Kind == organizer.EventArchived {
			m.movedSize += e.Size
		}
		return m, waitForEvent(m.events)

	case RunCompleteMsg:
		m.result = msg.Result
		m.err = msg.Err
		m.cancel()
		m.summary = NewSummaryViewModel(msg.Result, msg.Err)
		return m, nil
	}

	return m, nil
}

// View renders the run view
func (m *RunModel) View() string {
	if m.summary != nil {
		return m.summary.View()
	}

	var b strings.Builder

	b.WriteString(uiutils.GetSizeWarningBanner(m.width, m.height))

	title := "📂 Organizing Folder"
	if m.snap.DryRun {
		title = "📂 Planning (dry run)"
	}
	b.WriteString(styles.TitleStyle.Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(progress.Format(snapshotOrNil(m.snap)))
	b.WriteString(" ")
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("(%s)", time.Since(m.startTime).Round(time.Second))))
	b.WriteString("\n\n")

	b.WriteString(m.progress.ViewAs(m.snap.Percent()))
	b.WriteString("\n\n")

	if m.snap.CurrentFile != "" {
		b.WriteString(styles.DimStyle.Render("Current: "))
		b.WriteString(styles.FileNameStyle.Render(uiutils.TruncateName(m.snap.CurrentFile, 60)))
		b.WriteString("\n\n")
	}

	for _, e := range m.recent {
		b.WriteString("  ")
		b.WriteString(renderEvent(e))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.cancelling {
		b.WriteString(styles.WarningStyle.Render("Cancelling after the current file..."))
		b.WriteString("\n")
	}
	b.WriteString(m.statusBar.Render(m.width))

	return b.String()
}

// Result returns the run result once the run has finished
func (m *RunModel) Result() (*organizer.Result, error) {
	return m.result, m.err
}

func (m *RunModel) performRun() tea.Msg {
	result, err := m.run(m.ctx)
	return RunCompleteMsg{Result: result, Err: err}
}

func waitForSnapshot(ch <-chan progress.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return nil
		}
		return SnapshotMsg(snap)
	}
}

func waitForEvent(ch <-chan organizer.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return nil
		}
		return EventMsg(e)
	}
}

func renderEvent(e organizer.Event) string {
	name := uiutils.TruncateName(e.Filename, 40)
	switch e.Kind {
	case organizer.EventMoved:
		return styles.SuccessStyle.Render("✓ ") + name + " → " + styles.Folder(e.Category, false)
	case organizer.EventArchived:
		return styles.SuccessStyle.Render("✓ ") + name + " → " + styles.Folder(e.Category, true)
	case organizer.EventError:
		return styles.ErrorStyle.Render("✗ ") + name + " " + styles.DimStyle.Render(e.Reason)
	case organizer.EventAgeCheckFailed:
		return styles.WarningStyle.Render("⚠ ") + name + " " + styles.DimStyle.Render("age unknown")
	default:
		return styles.DimStyle.Render("- " + name + " skipped")
	}
}

func snapshotOrNil(s progress.Snapshot) *progress.Snapshot {
	if s.Phase == "" {
		return nil
	}
	return &s
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
