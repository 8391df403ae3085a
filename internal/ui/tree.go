package ui

import (
	"fmt"
	"io"
	"sort"

	"github.com/fenilsonani/folder-organizer/internal/organizer"
	"github.com/fenilsonani/folder-organizer/internal/ui/styles"
	"github.com/fenilsonani/folder-organizer/pkg/utils"
)

// maxFilesPerFolder limits how many files are listed under each folder
const maxFilesPerFolder = 5

// PrintPlanTree prints the placements of a run grouped by destination folder
func PrintPlanTree(w io.Writer, result *organizer.Result) {
	folders := make(map[string][]organizer.Event)
	sizes := make(map[string]int64)
	archived := make(map[string]bool)

	for _, e := range result.Events {
		if e.Kind != organizer.EventMoved && e.Kind != organizer.EventArchived {
			continue
		}
		folders[e.Category] = append(folders[e.Category], e)
		sizes[e.Category] += e.Size
		if e.Kind == organizer.EventArchived {
			archived[e.Category] = true
		}
	}

	names := make([]string, 0, len(folders))
	for name := range folders {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		events := folders[name]
		fmt.Fprintf(w, "\n╭─ %s (%d files, %s)\n", styles.Folder(name, archived[name]), len(events), utils.FormatBytes(sizes[name]))

		shown := len(events)
		if shown > maxFilesPerFolder {
			shown = maxFilesPerFolder
		}
		for i := 0; i < shown; i++ {
			connector := "├"
			if i == shown-1 && len(events) <= maxFilesPerFolder {
				connector = "╰"
			}
			fmt.Fprintf(w, "%s── %s (%s)\n", connector, events[i].Filename, utils.FormatBytes(events[i].Size))
		}
		if len(events) > maxFilesPerFolder {
			fmt.Fprintf(w, "╰── ... and %d more files\n", len(events)-maxFilesPerFolder)
		}
	}

	fmt.Fprintf(w, "\n════════════════════════════════════════════════════════\n")
	fmt.Fprintf(w, "Total: %d files | %s\n", result.Moved+result.Archived, utils.FormatBytes(result.MovedSize))
}
