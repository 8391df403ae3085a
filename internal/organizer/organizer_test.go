package organizer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fenilsonani/folder-organizer/internal/classifier"
	"github.com/fenilsonani/folder-organizer/internal/progress"
	"github.com/fenilsonani/folder-organizer/internal/testutil"
)

func newTestOrganizer(target string, opts Options) (*Organizer, *Collector) {
	c := classifier.New(classifier.DefaultRules(), classifier.NewExtensionResolver(nil).WithoutPlatform())
	events := &Collector{}
	return New(target, c, events, opts), events
}

func TestRunScenarios(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("report.pdf", 1)
	f.CreateAgedFile("old_script.py", 40)
	f.CreateFileWithAge("photo.heic", []byte("heic"), time.Hour)
	f.CreateFileWithAge("data.xyz", []byte("xyz"), time.Hour)
	f.CreateDir("backups")
	f.CreateFile(filepath.Join("backups", "keep.zip"), []byte("zip"))

	org, events := newTestOrganizer(f.Target, Options{})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	tests := []struct {
		file     string
		category string
		kind     EventKind
	}{
		{"report.pdf", "Documents", EventMoved},
		{"old_script.py", "Old_Files", EventArchived},
		{"photo.heic", "Images", EventMoved},
		{"data.xyz", "Miscellaneous", EventMoved},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			f.AssertFileExists(f.Path(tt.category, tt.file))
			f.AssertFileNotExists(f.Path(tt.file))
			f.AssertContent(f.Path(tt.category, tt.file), contentFor(tt.file))

			got := events.ForFile(tt.file)
			if len(got) != 1 {
				t.Fatalf("expected 1 event for %s, got %d: %+v", tt.file, len(got), got)
			}
			if got[0].Kind != tt.kind || got[0].Category != tt.category {
				t.Errorf("event = %s -> %s, want %s -> %s", got[0].Kind, got[0].Category, tt.kind, tt.category)
			}
		})
	}

	// Scenario E: pre-existing directories are never moved and never reported
	f.AssertIsDir(f.Path("backups"))
	f.AssertFileExists(f.Path("backups", "keep.zip"))
	if got := events.ForFile("backups"); len(got) != 0 {
		t.Errorf("expected no events for directory, got %+v", got)
	}

	if result.Moved != 3 || result.Archived != 1 || result.Failed != 0 {
		t.Errorf("result counts moved=%d archived=%d failed=%d", result.Moved, result.Archived, result.Failed)
	}
	if result.ByCategory["Old_Files"] != 1 || result.ByCategory["Documents"] != 1 {
		t.Errorf("ByCategory = %v", result.ByCategory)
	}
	if result.RunID == "" {
		t.Error("expected run ID")
	}
	if len(result.Events) != len(events.Events()) {
		t.Errorf("result holds %d events, sink saw %d", len(result.Events), len(events.Events()))
	}
}

func contentFor(name string) string {
	switch name {
	case "photo.heic":
		return "heic"
	case "data.xyz":
		return "xyz"
	default:
		return name
	}
}

func TestRunProvisionsAllDestinations(t *testing.T) {
	f := testutil.NewFixture(t)

	org, _ := newTestOrganizer(f.Target, Options{})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	for _, folder := range classifier.DefaultRules().Destinations() {
		f.AssertIsDir(f.Path(folder))
	}
}

func TestRunCreatesMissingTarget(t *testing.T) {
	f := testutil.NewFixture(t)
	target := filepath.Join(f.RootDir, "nested", "new")

	org, _ := newTestOrganizer(target, Options{})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(target, "Old_Files")); err != nil {
		t.Errorf("expected folders under missing target to be created: %v", err)
	}
}

func TestProvisionIdempotent(t *testing.T) {
	f := testutil.NewFixture(t)
	folders := classifier.DefaultRules().Destinations()

	f.CreateDir("Documents")
	existing := f.CreateFile(filepath.Join("Documents", "existing.pdf"), []byte("keep me"))

	if err := Provision(f.Target, folders); err != nil {
		t.Fatalf("first Provision failed: %v", err)
	}
	first := f.Names("")

	if err := Provision(f.Target, folders); err != nil {
		t.Fatalf("second Provision failed: %v", err)
	}
	second := f.Names("")

	if len(first) != len(second) {
		t.Fatalf("folder set changed: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("folder set changed: %v vs %v", first, second)
		}
	}
	f.AssertContent(existing, "keep me")
}

func TestProvisionFailureAbortsRun(t *testing.T) {
	f := testutil.NewFixture(t)
	// A regular file occupying a category name makes provisioning impossible
	f.CreateFile("Documents", []byte("not a folder"))
	f.CreateAgedFile("report.pdf", 1)

	org, events := newTestOrganizer(f.Target, Options{})
	_, err := org.Run(context.Background())
	if err == nil {
		t.Fatal("expected provisioning failure")
	}

	var provErr *ProvisionError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisionError, got %T: %v", err, err)
	}
	if provErr.Folder != "Documents" {
		t.Errorf("failed folder = %q, want Documents", provErr.Folder)
	}

	if len(events.Events()) != 0 {
		t.Errorf("no files should be processed after provisioning failure, got %+v", events.Events())
	}
	f.AssertFileExists(f.Path("report.pdf"))
}

func TestProvisionRejectsUnsafeFolderName(t *testing.T) {
	f := testutil.NewFixture(t)

	err := Provision(f.Target, []string{"Images", "../escape"})
	var provErr *ProvisionError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected ProvisionError, got %v", err)
	}
	f.AssertFileNotExists(filepath.Join(f.RootDir, "escape"))
}

func TestAgeCheckFailureFallsThroughToType(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("ancient.pdf", 400)
	f.CreateAgedFile("fresh.txt", 1)

	org, events := newTestOrganizer(f.Target, Options{})
	statErr := errors.New("stat: input/output error")
	org.stat = func(path string) (os.FileInfo, error) {
		if filepath.Base(path) == "ancient.pdf" {
			return nil, statErr
		}
		return os.Stat(path)
	}

	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := events.ForFile("ancient.pdf")
	if len(got) != 2 {
		t.Fatalf("expected age-check-failed and moved events, got %+v", got)
	}
	if got[0].Kind != EventAgeCheckFailed || !errors.Is(got[0].Err, statErr) {
		t.Errorf("first event = %+v, want age-check-failed carrying the stat error", got[0])
	}
	if got[1].Kind != EventMoved || got[1].Category != "Documents" {
		t.Errorf("second event = %+v, want moved to Documents", got[1])
	}

	f.AssertFileExists(f.Path("Documents", "ancient.pdf"))
	f.AssertFileExists(f.Path("Documents", "fresh.txt"))
	if result.AgeFailures != 1 {
		t.Errorf("AgeFailures = %d, want 1", result.AgeFailures)
	}
}

func TestDestinationCollision(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDir("Documents")
	existing := f.CreateFile(filepath.Join("Documents", "report.pdf"), []byte("from last run"))
	f.CreateAgedFile("report.pdf", 1)
	f.CreateAgedFile("notes.txt", 1)

	org, events := newTestOrganizer(f.Target, Options{})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := events.ForFile("report.pdf")
	if len(got) != 1 || got[0].Kind != EventError {
		t.Fatalf("expected a single error event, got %+v", got)
	}

	var moveErr *MoveError
	if !errors.As(got[0].Err, &moveErr) || moveErr.Reason != ErrorDestinationExists {
		t.Errorf("expected ErrorDestinationExists, got %v", got[0].Err)
	}
	if !errors.Is(got[0].Err, ErrDestinationExists) {
		t.Error("error should wrap ErrDestinationExists")
	}

	f.AssertContent(existing, "from last run")
	f.AssertContent(f.Path("report.pdf"), "report.pdf")
	f.AssertFileExists(f.Path("Documents", "notes.txt"))

	if result.Failed != 1 || len(result.Errors) != 1 {
		t.Errorf("Failed = %d, Errors = %d, want 1 and 1", result.Failed, len(result.Errors))
	}
}

func TestDestinationCollisionOverwrite(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateDir("Documents")
	f.CreateFile(filepath.Join("Documents", "report.pdf"), []byte("from last run"))
	f.CreateAgedFile("report.pdf", 1)

	org, events := newTestOrganizer(f.Target, Options{Overwrite: true})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := events.ForFile("report.pdf")
	if len(got) != 1 || got[0].Kind != EventMoved {
		t.Fatalf("expected moved event, got %+v", got)
	}
	f.AssertContent(f.Path("Documents", "report.pdf"), "report.pdf")
	f.AssertFileNotExists(f.Path("report.pdf"))
}

func TestMoveFailureDoesNotAbort(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("a.pdf", 1)
	f.CreateAgedFile("b.pdf", 1)
	f.CreateAgedFile("c.pdf", 1)

	org, events := newTestOrganizer(f.Target, Options{})
	org.move = func(src, dst string, overwrite bool) error {
		if filepath.Base(src) == "b.pdf" {
			return &os.LinkError{Op: "rename", Old: src, New: dst, Err: os.ErrPermission}
		}
		return moveFile(src, dst, overwrite)
	}

	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f.AssertFileExists(f.Path("Documents", "a.pdf"))
	f.AssertFileExists(f.Path("b.pdf"))
	f.AssertFileExists(f.Path("Documents", "c.pdf"))

	got := events.ForFile("b.pdf")
	if len(got) != 1 || got[0].Kind != EventError {
		t.Fatalf("expected error event for b.pdf, got %+v", got)
	}
	var moveErr *MoveError
	if !errors.As(got[0].Err, &moveErr) || moveErr.Reason != ErrorPermissionDenied {
		t.Errorf("expected permission denied, got %v", got[0].Err)
	}
	if result.Moved != 2 || result.Failed != 1 {
		t.Errorf("moved=%d failed=%d, want 2 and 1", result.Moved, result.Failed)
	}
}

func TestMoveFailureOnReadOnlyDestination(t *testing.T) {
	testutil.SkipOnWindows(t)
	testutil.SkipIfRoot(t)

	f := testutil.NewFixture(t)
	f.CreateReadOnlyDir("Documents")
	f.CreateAgedFile("report.pdf", 1)

	org, events := newTestOrganizer(f.Target, Options{})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	got := events.ForFile("report.pdf")
	if len(got) != 1 || got[0].Kind != EventError {
		t.Fatalf("expected error event, got %+v", got)
	}
	f.AssertFileExists(f.Path("report.pdf"))
}

func TestNoFileLostOrDuplicated(t *testing.T) {
	f := testutil.NewFixture(t)
	names := []string{"a.jpg", "b.png", "c.docx", "d.zip", "e.js", "f.mp3", "g.unknown", "h", "i.pdf"}
	for i, name := range names {
		f.CreateAgedFile(name, i*10)
	}
	f.CreateDir("Images")
	f.CreateFile(filepath.Join("Images", "a.jpg"), []byte("collides"))

	before, err := testutil.CountFiles(f.Target)
	if err != nil {
		t.Fatal(err)
	}

	org, _ := newTestOrganizer(f.Target, Options{})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	after, err := testutil.CountFiles(f.Target)
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("file count changed from %d to %d", before, after)
	}

	for _, name := range names {
		locations := 0
		if f.FileExists(f.Path(name)) {
			locations++
		}
		for _, folder := range classifier.DefaultRules().Destinations() {
			p := f.Path(folder, name)
			if f.FileExists(p) {
				if folder == "Images" && name == "a.jpg" {
					continue // pre-existing file of the same name
				}
				locations++
			}
		}
		if locations != 1 {
			t.Errorf("%s found at %d locations, want exactly 1", name, locations)
		}
	}
}

func TestSymlinkHandling(t *testing.T) {
	testutil.SkipOnWindows(t)

	f := testutil.NewFixture(t)
	outsideDir := filepath.Join(f.RootDir, "outside")
	if err := os.MkdirAll(outsideDir, 0755); err != nil {
		t.Fatal(err)
	}
	outsideFile := filepath.Join(f.RootDir, "outside.pdf")
	if err := os.WriteFile(outsideFile, []byte("pdf"), 0644); err != nil {
		t.Fatal(err)
	}

	f.CreateSymlink(outsideDir, "linked-dir")
	f.CreateSymlink(outsideFile, "linked.pdf")
	f.CreateBrokenSymlink("dangling.pdf")

	org, events := newTestOrganizer(f.Target, Options{})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f.AssertFileExists(f.Path("linked-dir"))
	f.AssertFileExists(f.Path("dangling.pdf"))
	if len(events.ForFile("linked-dir")) != 0 || len(events.ForFile("dangling.pdf")) != 0 {
		t.Error("non-regular entries must not produce events")
	}

	f.AssertFileExists(f.Path("Documents", "linked.pdf"))
	f.AssertFileExists(outsideFile)
}

func TestExcludePatterns(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("organize.log", 100)
	f.CreateAgedFile("report.pdf", 1)

	org, events := newTestOrganizer(f.Target, Options{Exclude: []string{"*.log"}})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f.AssertFileExists(f.Path("organize.log"))
	got := events.ForFile("organize.log")
	if len(got) != 1 || got[0].Kind != EventSkipped {
		t.Errorf("expected skipped event, got %+v", got)
	}
	if result.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", result.Skipped)
	}
}

func TestKeepLeavesLogFileInPlace(t *testing.T) {
	f := testutil.NewFixture(t)
	logPath := f.CreateAgedFile("organize.log", 0)
	f.CreateAgedFile("notes.log", 0)

	org, events := newTestOrganizer(f.Target, Options{Keep: []string{logPath}})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	f.AssertFileExists(f.Path("organize.log"))
	f.AssertFileExists(f.Path("Miscellaneous", "notes.log"))
	got := events.ForFile("organize.log")
	if len(got) != 1 || got[0].Kind != EventSkipped {
		t.Errorf("expected skipped event, got %+v", got)
	}
	if result.Skipped != 1 || result.Moved != 1 {
		t.Errorf("Skipped = %d, Moved = %d, want 1 and 1", result.Skipped, result.Moved)
	}
}

func TestKeepMatchesRelativeTarget(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("organize.log", 0)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(f.RootDir); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	org, _ := newTestOrganizer("cluttered_folder", Options{Keep: []string{filepath.Join(f.Target, "organize.log")}})
	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	f.AssertFileExists(f.Path("organize.log"))
}

func TestDryRunTouchesNothing(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("report.pdf", 1)
	f.CreateAgedFile("old.zip", 90)

	org, events := newTestOrganizer(f.Target, Options{DryRun: true})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	names := f.Names("")
	if len(names) != 2 {
		t.Errorf("dry run changed the directory: %v", names)
	}

	for _, e := range events.Events() {
		if !e.DryRun {
			t.Errorf("event %+v should be flagged dry run", e)
		}
	}
	if got := events.ForFile("old.zip"); len(got) != 1 || got[0].Kind != EventArchived {
		t.Errorf("old.zip planned as %+v, want archived", got)
	}
	if !result.DryRun || result.Moved != 1 || result.Archived != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestFixedClock(t *testing.T) {
	f := testutil.NewFixture(t)
	path := f.CreateFile("report.pdf", []byte("pdf"))
	mod := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, mod, mod); err != nil {
		t.Fatal(err)
	}

	now := mod.Add(30*testutil.Day + time.Minute)
	org, events := newTestOrganizer(f.Target, Options{Now: func() time.Time { return now }})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got := events.ForFile("report.pdf"); len(got) != 1 || got[0].Kind != EventArchived {
		t.Errorf("expected archived, got %+v", got)
	}
	if !result.Threshold.Equal(now.Add(-30 * testutil.Day)) {
		t.Errorf("Threshold = %v", result.Threshold)
	}
}

func TestCancelledContextStopsBetweenFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("a.pdf", 1)
	f.CreateAgedFile("b.pdf", 1)

	ctx, cancel := context.WithCancel(context.Background())
	org, _ := newTestOrganizer(f.Target, Options{})
	org.sink = SinkFunc(func(Event) { cancel() })

	result, err := org.Run(ctx)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !result.Interrupted {
		t.Error("expected interrupted result")
	}
	if result.Moved != 1 {
		t.Errorf("Moved = %d, want exactly 1 before stopping", result.Moved)
	}
	f.AssertFileExists(f.Path("b.pdf"))
}

func TestProgressReporting(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("a.pdf", 1)
	f.CreateAgedFile("b.zip", 1)

	pr := progress.NewReporter()
	org, _ := newTestOrganizer(f.Target, Options{})
	org.SetProgressReporter(pr)

	if _, err := org.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	cur := pr.Current()
	if cur == nil {
		t.Fatal("expected a progress snapshot")
	}
	if cur.Phase != progress.PhaseComplete {
		t.Errorf("Phase = %s, want complete", cur.Phase)
	}
	if cur.Moved != 2 || cur.Processed != cur.Total {
		t.Errorf("snapshot = %+v", cur)
	}
}

func TestReadDirFailureIsFatal(t *testing.T) {
	f := testutil.NewFixture(t)
	missing := filepath.Join(f.RootDir, "missing")

	org, _ := newTestOrganizer(missing, Options{DryRun: true})
	if _, err := org.Run(context.Background()); err == nil {
		t.Error("expected error for unreadable target in dry run")
	}
}

func TestRunUsesProvidedRunID(t *testing.T) {
	f := testutil.NewFixture(t)
	f.CreateAgedFile("report.pdf", 1)

	org, _ := newTestOrganizer(f.Target, Options{RunID: "fixed-run"})
	result, err := org.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.RunID != "fixed-run" {
		t.Errorf("RunID = %q, want fixed-run", result.RunID)
	}
}
