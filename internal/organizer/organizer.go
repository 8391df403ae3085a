// Package organizer provisions category folders under a target directory and
// moves each top-level regular file into the folder chosen by the classifier.
package organizer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fenilsonani/folder-organizer/internal/classifier"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/fenilsonani/folder-organizer/internal/security"
	"github.com/google/uuid"
)

// Options controls how a run behaves
type Options struct {
	// Overwrite replaces a destination file of the same name instead of
	// reporting a per-file error
	Overwrite bool
	// DryRun classifies entries and emits events without touching the filesystem
	DryRun bool
	// Exclude holds glob patterns matched against filenames; matches stay in place
	Exclude []string
	// Now overrides the clock used for the archive threshold
	Now func() time.Time
	// RunID tags the result; a random ID is generated when empty
	RunID string
	// Keep lists paths (such as the open log file) that must stay where
	// they are even when they sit directly inside the target
	Keep []string
}

// Result summarizes one run
type Result struct {
	RunID       string
	Target      string
	DryRun      bool
	StartedAt   time.Time
	FinishedAt  time.Time
	Threshold   time.Time
	Events      []Event
	Errors      []*MoveError
	ByCategory  map[string]int
	Moved       int
	Archived    int
	Failed      int
	Skipped     int
	AgeFailures int
	MovedSize   int64
	Interrupted bool
}

// Organizer runs the provisioning and classify-and-move steps for one directory
type Organizer struct {
	target           string
	classifier       *classifier.Classifier
	sink             EventSink
	opts             Options
	progressReporter *progress.Reporter

	keep map[string]bool

	stat func(string) (os.FileInfo, error)
	move func(src, dst string, overwrite bool) error
}

// New creates an Organizer for target. A nil sink discards events.
func New(target string, c *classifier.Classifier, sink EventSink, opts Options) *Organizer {
	if sink == nil {
		sink = SinkFunc(func(Event) {})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	keep := make(map[string]bool, len(opts.Keep))
	for _, p := range opts.Keep {
		if abs, err := filepath.Abs(p); err == nil {
			keep[abs] = true
		}
	}
	return &Organizer{
		target:     target,
		classifier: c,
		sink:       sink,
		opts:       opts,
		keep:       keep,
		stat:       os.Stat,
		move:       moveFile,
	}
}

// SetProgressReporter sets a progress reporter that receives run snapshots
func (o *Organizer) SetProgressReporter(pr *progress.Reporter) {
	o.progressReporter = pr
}

// Target returns the directory being organized
func (o *Organizer) Target() string {
	return o.target
}

// Run provisions every destination folder, then processes the target's
// entries one at a time in enumeration order. Provisioning and enumeration
// failures are fatal; per-file failures become events. Cancelling ctx stops
// the run between files and marks the result as interrupted.
func (o *Organizer) Run(ctx context.Context) (*Result, error) {
	now := o.opts.Now()
	runID := o.opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &Result{
		RunID:      runID,
		Target:     o.target,
		DryRun:     o.opts.DryRun,
		StartedAt:  now,
		Threshold:  o.classifier.Threshold(now),
		ByCategory: make(map[string]int),
	}
	snap := progress.Snapshot{DryRun: o.opts.DryRun, StartTime: time.Now()}

	if !o.opts.DryRun {
		snap.Phase = progress.PhaseProvisioning
		o.reportProgress(snap)

		if err := Provision(o.target, o.classifier.Rules().Destinations()); err != nil {
			o.fail(snap, err, result)
			return result, err
		}
	}

	entries, err := os.ReadDir(o.target)
	if err != nil {
		err = fmt.Errorf("failed to read target directory: %w", err)
		o.fail(snap, err, result)
		return result, err
	}

	snap.Phase = progress.PhaseOrganizing
	snap.Total = len(entries)
	o.reportProgress(snap)

	for i, entry := range entries {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}

		snap.CurrentFile = entry.Name()
		o.processEntry(entry, result)

		snap.Processed = i + 1
		snap.Moved, snap.Archived = result.Moved, result.Archived
		snap.Failed, snap.Skipped = result.Failed, result.Skipped
		o.reportProgress(snap)
	}

	result.FinishedAt = o.opts.Now()
	snap.Phase = progress.PhaseComplete
	snap.CurrentFile = ""
	o.reportProgress(snap)

	return result, nil
}

// processEntry handles one directory entry. Nothing here returns an error:
// every failure is converted into an event.
func (o *Organizer) processEntry(entry os.DirEntry, result *Result) {
	name := entry.Name()
	src := filepath.Join(o.target, name)

	if !o.isRegularFile(entry, src) {
		return
	}

	if o.kept(src) {
		o.emit(result, Event{
			Filename: name,
			Kind:     EventSkipped,
			Reason:   "in use by the organizer",
			DryRun:   o.opts.DryRun,
		})
		return
	}

	if pattern, ok := o.excluded(name); ok {
		o.emit(result, Event{
			Filename: name,
			Kind:     EventSkipped,
			Reason:   fmt.Sprintf("matches exclude pattern %q", pattern),
			DryRun:   o.opts.DryRun,
		})
		return
	}

	var (
		decision classifier.Decision
		size     int64
	)
	info, err := o.stat(src)
	if err != nil {
		o.emit(result, Event{
			Filename: name,
			Kind:     EventAgeCheckFailed,
			Err:      err,
			DryRun:   o.opts.DryRun,
		})
		decision = o.classifier.ByType(name)
	} else {
		size = info.Size()
		decision = o.classifier.Classify(name, info.ModTime(), result.Threshold)
	}

	kind := EventMoved
	if decision.Archived() {
		kind = EventArchived
	}
	event := Event{
		Filename: name,
		Kind:     kind,
		Category: decision.Category,
		Reason:   string(decision.Reason),
		Size:     size,
		DryRun:   o.opts.DryRun,
	}

	if o.opts.DryRun {
		o.emit(result, event)
		return
	}

	dst := filepath.Join(o.target, decision.Category, name)
	if err := security.ValidateDestination(o.target, dst); err != nil {
		moveErr := &MoveError{File: name, Destination: decision.Category, Reason: ErrorInvalidPath, Original: err}
		o.emitError(result, event, moveErr)
		return
	}

	if err := o.move(src, dst, o.opts.Overwrite); err != nil {
		o.emitError(result, event, CategorizeError(name, decision.Category, err))
		return
	}

	o.emit(result, event)
}

// isRegularFile reports whether the entry is a regular file, following symlinks
func (o *Organizer) isRegularFile(entry os.DirEntry, path string) bool {
	mode := entry.Type()
	if mode.IsRegular() {
		return true
	}
	if mode&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func (o *Organizer) kept(path string) bool {
	if len(o.keep) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	return err == nil && o.keep[abs]
}

func (o *Organizer) excluded(name string) (string, bool) {
	for _, pattern := range o.opts.Exclude {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return pattern, true
		}
	}
	return "", false
}

func (o *Organizer) emitError(result *Result, placement Event, moveErr *MoveError) {
	result.Errors = append(result.Errors, moveErr)
	o.emit(result, Event{
		Filename: placement.Filename,
		Kind:     EventError,
		Category: placement.Category,
		Reason:   moveErr.Reason.String(),
		Size:     placement.Size,
		Err:      moveErr,
	})
}

func (o *Organizer) emit(result *Result, e Event) {
	if e.Time.IsZero() {
		e.Time = o.opts.Now()
	}

	switch e.Kind {
	case EventMoved:
		result.Moved++
		result.ByCategory[e.Category]++
		result.MovedSize += e.Size
	case EventArchived:
		result.Archived++
		result.ByCategory[e.Category]++
		result.MovedSize += e.Size
	case EventError:
		result.Failed++
	case EventAgeCheckFailed:
		result.AgeFailures++
	case EventSkipped:
		result.Skipped++
	}
	result.Events = append(result.Events, e)

	o.sink.Handle(e)
}

func (o *Organizer) fail(snap progress.Snapshot, err error, result *Result) {
	result.FinishedAt = o.opts.Now()
	snap.Phase = progress.PhaseError
	snap.Error = err
	o.reportProgress(snap)
}

// reportProgress reports run progress to listeners
func (o *Organizer) reportProgress(snap progress.Snapshot) {
	if o.progressReporter == nil {
		return
	}
	o.progressReporter.Update(snap)
}
