package security

import (
	"fmt"
	"path/filepath"
	"strings"
)

// reservedNames cannot be used as folder names on at least one supported platform
var reservedNames = []string{"CON", "PRN", "AUX", "NUL", "COM1", "COM2", "COM3", "LPT1", "LPT2", "LPT3"}

// ValidateFolderName checks that name is a single, plain path element that
// cannot escape the directory it is joined to
func ValidateFolderName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("folder name must not be empty")
	}
	if name == "." || name == ".." {
		return fmt.Errorf("folder name %q is not allowed", name)
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("folder name must not contain path separators: %s", name)
	}
	if strings.ContainsRune(name, 0) {
		return fmt.Errorf("folder name contains a null byte: %q", name)
	}

	// Dangerous shell metacharacters
	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">", "\n", "\r"}
	for _, char := range dangerousChars {
		if strings.Contains(name, char) {
			return fmt.Errorf("folder name contains dangerous characters: %s", name)
		}
	}

	for _, reserved := range reservedNames {
		if strings.EqualFold(name, reserved) {
			return fmt.Errorf("folder name %q is reserved", name)
		}
	}

	return nil
}

// ContainedIn reports whether path resolves to root itself or somewhere beneath it
func ContainedIn(root, path string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(path))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ValidateDestination checks that dest is strictly inside root
func ValidateDestination(root, dest string) error {
	if filepath.Clean(root) == filepath.Clean(dest) {
		return fmt.Errorf("destination is the target directory itself: %s", dest)
	}
	if !ContainedIn(root, dest) {
		return fmt.Errorf("destination escapes target directory: %s", dest)
	}
	return nil
}

// ValidateGlobPattern validates that a glob pattern is safe
func ValidateGlobPattern(pattern string) error {
	// Check for dangerous characters
	if strings.Contains(pattern, "..") {
		return fmt.Errorf("glob pattern contains directory traversal: %s", pattern)
	}

	// Try to match the pattern to ensure it's valid
	_, err := filepath.Match(pattern, "test")
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}

	return nil
}
