// Package testutil provides test helpers and fixtures for organizer tests.
// All file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"
	"time"
)

// Day is a convenience duration for file ages
const Day = 24 * time.Hour

// TestFixture holds a temporary target directory to organize
type TestFixture struct {
	T       *testing.T
	RootDir string // Root temp directory (auto-cleaned)
	Target  string // Directory handed to the organizer
}

// NewFixture creates a new test fixture with an empty target directory
func NewFixture(t *testing.T) *TestFixture {
	t.Helper()

	root := t.TempDir()
	target := filepath.Join(root, "cluttered_folder")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", target, err)
	}

	return &TestFixture{
		T:       t,
		RootDir: root,
		Target:  target,
	}
}

// =============================================================================
// File Creation Helpers
// =============================================================================

// CreateFile creates a file relative to the target with the given content
// and returns its path
func (f *TestFixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.Target, relPath)
	dir := filepath.Dir(fullPath)

	if err := os.MkdirAll(dir, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateFileWithAge creates a file and sets its modification time to the past
func (f *TestFixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)

	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to set file time for %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateAgedFile creates a file whose content is its own name, aged by days
func (f *TestFixture) CreateAgedFile(name string, days int) string {
	f.T.Helper()
	return f.CreateFileWithAge(name, []byte(name), time.Duration(days)*Day)
}

// =============================================================================
// Directory Helpers
// =============================================================================

// CreateDir creates a directory relative to the target and returns its path
func (f *TestFixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.Target, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}

	return fullPath
}

// CreateReadOnlyDir creates a directory whose entries cannot be added or removed
func (f *TestFixture) CreateReadOnlyDir(relPath string) string {
	f.T.Helper()

	dirPath := f.CreateDir(relPath)
	if err := os.Chmod(dirPath, 0555); err != nil {
		f.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}

	// Register cleanup to restore permissions so TempDir cleanup works
	f.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})

	return dirPath
}

// =============================================================================
// Symlink Helpers
// =============================================================================

// CreateSymlink creates a symbolic link at linkPath (relative to the target)
func (f *TestFixture) CreateSymlink(target, linkPath string) string {
	f.T.Helper()

	fullLinkPath := filepath.Join(f.Target, linkPath)
	if err := os.Symlink(target, fullLinkPath); err != nil {
		f.T.Fatalf("failed to create symlink %s -> %s: %v", fullLinkPath, target, err)
	}

	return fullLinkPath
}

// CreateBrokenSymlink creates a symlink pointing to a non-existent target
func (f *TestFixture) CreateBrokenSymlink(linkPath string) string {
	f.T.Helper()
	return f.CreateSymlink(filepath.Join(f.RootDir, "does-not-exist"), linkPath)
}

// =============================================================================
// Path Helpers
// =============================================================================

// Path returns the full path for a path relative to the target
func (f *TestFixture) Path(relPath ...string) string {
	return filepath.Join(append([]string{f.Target}, relPath...)...)
}

// Names returns the sorted entry names directly under a target-relative directory
func (f *TestFixture) Names(relPath string) []string {
	f.T.Helper()

	entries, err := os.ReadDir(f.Path(relPath))
	if err != nil {
		f.T.Fatalf("failed to read %s: %v", relPath, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// Assertion Helpers
// =============================================================================

// FileExists checks if a file exists without following symlinks
func (f *TestFixture) FileExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// AssertFileExists fails the test if the file doesn't exist
func (f *TestFixture) AssertFileExists(path string) {
	f.T.Helper()
	if !f.FileExists(path) {
		f.T.Errorf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists fails the test if the file exists
func (f *TestFixture) AssertFileNotExists(path string) {
	f.T.Helper()
	if f.FileExists(path) {
		f.T.Errorf("expected file to not exist: %s", path)
	}
}

// AssertIsDir fails if path is not a directory
func (f *TestFixture) AssertIsDir(path string) {
	f.T.Helper()
	info, err := os.Stat(path)
	if err != nil {
		f.T.Errorf("failed to stat %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		f.T.Errorf("expected %s to be a directory", path)
	}
}

// AssertContent fails if the file content differs from want
func (f *TestFixture) AssertContent(path, want string) {
	f.T.Helper()
	got, err := os.ReadFile(path)
	if err != nil {
		f.T.Errorf("failed to read %s: %v", path, err)
		return
	}
	if string(got) != want {
		f.T.Errorf("file %s has content %q, want %q", path, got, want)
	}
}

// =============================================================================
// Utility Functions
// =============================================================================

// CountFiles returns the number of non-directory entries under path (recursive)
func CountFiles(path string) (int, error) {
	var count int
	err := filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			count++
		}
		return nil
	})
	return count, err
}

// IsRoot returns true if running as root/admin
func IsRoot() bool {
	return os.Geteuid() == 0
}

// SkipIfRoot skips the test if running as root
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if IsRoot() {
		t.Skip("skipping test when running as root")
	}
}

// SkipOnWindows skips tests relying on POSIX permissions or symlinks
func SkipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on windows")
	}
}
