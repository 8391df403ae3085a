package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/pkg/utils"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"gopkg.in/yaml.v3"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatYAML    OutputFormat = "yaml"
	FormatSummary OutputFormat = "summary"
)

// ParseFormat validates a format name
func ParseFormat(name string) (OutputFormat, error) {
	switch f := OutputFormat(name); f {
	case FormatTable, FormatJSON, FormatYAML, FormatSummary:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", name)
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Report generates a report from a run result
func (r *Reporter) Report(result *organizer.Result) error {
	switch r.format {
	case FormatTable:
		return r.reportTable(result)
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	case FormatSummary:
		return r.reportSummary(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// reportSummary generates a summary report
func (r *Reporter) reportSummary(result *organizer.Result) error {
	title := "=== Organize Summary ==="
	if result.DryRun {
		title = "=== Organize Plan (dry run) ==="
	}
	fmt.Fprintf(r.writer, "%s\n", title)
	fmt.Fprintf(r.writer, "Directory: %s\n", result.Target)
	fmt.Fprintf(r.writer, "Moved: %d files\n", result.Moved)
	fmt.Fprintf(r.writer, "Archived: %d files\n", result.Archived)
	fmt.Fprintf(r.writer, "Total Size: %s\n", utils.FormatBytes(result.MovedSize))

	if categories := sortedCategories(result.ByCategory); len(categories) > 0 {
		fmt.Fprintf(r.writer, "\nBreakdown by Folder:\n")
		for _, category := range categories {
			fmt.Fprintf(r.writer, "  %s: %d files\n", category, result.ByCategory[category])
		}
	}

	if result.Skipped > 0 {
		fmt.Fprintf(r.writer, "\nSkipped: %d\n", result.Skipped)
	}
	if result.AgeFailures > 0 {
		fmt.Fprintf(r.writer, "Age checks failed: %d\n", result.AgeFailures)
	}
	if result.Failed > 0 {
		fmt.Fprintf(r.writer, "\nErrors: %d\n", result.Failed)
	}
	if result.Interrupted {
		fmt.Fprintf(r.writer, "\nInterrupted before all files were processed\n")
	}

	return nil
}

// reportTable generates a table report with one row per event
func (r *Reporter) reportTable(result *organizer.Result) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Action", "Destination", "Size", "Detail"})

	for _, e := range result.Events {
		action := string(e.Kind)
		if e.DryRun {
			action = "would " + action
		}
		detail := e.Reason
		if e.Err != nil {
			detail = e.Err.Error()
		}
		destination := ""
		if e.Category != "" {
			destination = e.Category + "/"
		}
		tw.AppendRow(table.Row{truncate(e.Filename, 48), action, destination, utils.FormatBytes(e.Size), truncate(detail, 60)})
	}

	tw.AppendFooter(table.Row{
		"Total",
		fmt.Sprintf("%d moved, %d archived", result.Moved, result.Archived),
		"",
		utils.FormatBytes(result.MovedSize),
		fmt.Sprintf("%d errors", result.Failed),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	_, err := fmt.Fprintln(r.writer, tw.Render())
	return err
}

type eventRecord struct {
	File     string `json:"file" yaml:"file"`
	Kind     string `json:"kind" yaml:"kind"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Reason   string `json:"reason,omitempty" yaml:"reason,omitempty"`
	Size     int64  `json:"size" yaml:"size"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
	Time     string `json:"time" yaml:"time"`
}

type report struct {
	RunID              string         `json:"run_id" yaml:"run_id"`
	Timestamp          string         `json:"timestamp" yaml:"timestamp"`
	Directory          string         `json:"directory" yaml:"directory"`
	DryRun             bool           `json:"dry_run" yaml:"dry_run"`
	Threshold          string         `json:"archive_threshold" yaml:"archive_threshold"`
	Duration           string         `json:"duration" yaml:"duration"`
	Moved              int            `json:"moved" yaml:"moved"`
	Archived           int            `json:"archived" yaml:"archived"`
	Failed             int            `json:"failed" yaml:"failed"`
	Skipped            int            `json:"skipped" yaml:"skipped"`
	AgeFailures        int            `json:"age_check_failures" yaml:"age_check_failures"`
	TotalSize          int64          `json:"total_size" yaml:"total_size"`
	TotalSizeFormatted string         `json:"total_size_formatted" yaml:"total_size_formatted"`
	ByCategory         map[string]int `json:"by_category" yaml:"by_category"`
	Interrupted        bool           `json:"interrupted" yaml:"interrupted"`
	Events             []eventRecord  `json:"events" yaml:"events"`
}

func buildReport(result *organizer.Result) report {
	rep := report{
		RunID:              result.RunID,
		Timestamp:          result.StartedAt.Format(time.RFC3339),
		Directory:          result.Target,
		DryRun:             result.DryRun,
		Threshold:          result.Threshold.Format(time.RFC3339),
		Duration:           result.FinishedAt.Sub(result.StartedAt).String(),
		Moved:              result.Moved,
		Archived:           result.Archived,
		Failed:             result.Failed,
		Skipped:            result.Skipped,
		AgeFailures:        result.AgeFailures,
		TotalSize:          result.MovedSize,
		TotalSizeFormatted: utils.FormatBytes(result.MovedSize),
		ByCategory:         result.ByCategory,
		Interrupted:        result.Interrupted,
		Events:             make([]eventRecord, 0, len(result.Events)),
	}
	for _, e := range result.Events {
		rec := eventRecord{
			File:     e.Filename,
			Kind:     string(e.Kind),
			Category: e.Category,
			Reason:   e.Reason,
			Size:     e.Size,
			Time:     e.Time.Format(time.RFC3339),
		}
		if e.Err != nil {
			rec.Error = e.Err.Error()
		}
		rep.Events = append(rep.Events, rec)
	}
	return rep
}

// reportJSON generates a JSON report
func (r *Reporter) reportJSON(result *organizer.Result) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(buildReport(result))
}

// reportYAML generates a YAML report
func (r *Reporter) reportYAML(result *organizer.Result) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(buildReport(result))
}

// SaveToFile saves the report to a file
func SaveToFile(result *organizer.Result, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	reporter := New(file, format)
	return reporter.Report(result)
}

func sortedCategories(counts map[string]int) []string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-(max-3):]
}
