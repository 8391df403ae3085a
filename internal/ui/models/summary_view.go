package models

import (
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/ui/styles"
	"github.com/fenilsonani/folder-organizer/pkg/utils"
)

// SummaryViewModel handles the summary/results view
type SummaryViewModel struct {
	result *organizer.Result
	err    error
}

// NewSummaryViewModel creates a new summary view model
func NewSummaryViewModel(result *organizer.Result, err error) *SummaryViewModel {
	return &SummaryViewModel{
		result: result,
		err:    err,
	}
}

// Update handles messages
func (m *SummaryViewModel) Update(msg tea.Msg) (*SummaryViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "enter", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the summary view
func (m *SummaryViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("✨ Organize Summary"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ Run aborted: %v", m.err)))
		b.WriteString("\n")
	}

	if m.result != nil {
		verb := "Moved"
		if m.result.DryRun {
			verb = "Would move"
		}
		b.WriteString(styles.SuccessStyle.Render(fmt.Sprintf("✓ %s %d files, archived %d",
			verb, m.result.Moved, m.result.Archived)))
		b.WriteString("\n")

		b.WriteString(styles.BoldStyle.Render(fmt.Sprintf("Total size: %s",
			utils.FormatBytes(m.result.MovedSize))))
		b.WriteString("\n\n")

		folders := make([]string, 0, len(m.result.ByCategory))
		for name := range m.result.ByCategory {
			folders = append(folders, name)
		}
		sort.Strings(folders)
		for _, name := range folders {
			b.WriteString(fmt.Sprintf("  %s %d\n", styles.Folder(name, false), m.result.ByCategory[name]))
		}

		if m.result.Skipped > 0 {
			b.WriteString("\n")
			b.WriteString(styles.WarningStyle.Render(fmt.Sprintf("⚠ Skipped %d files", m.result.Skipped)))
		}

		if m.result.Failed > 0 {
			b.WriteString("\n")
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %d errors occurred", m.result.Failed)))
		}

		if m.result.Interrupted {
			b.WriteString("\n")
			b.WriteString(styles.WarningStyle.Render("Run was cancelled before every file was processed."))
		}

		if m.result.DryRun {
			b.WriteString("\n\n")
			b.WriteString(styles.InfoStyle.Render("Note: This was a dry run. No files were actually moved."))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("Press q or enter to exit"))

	return b.String()
}
