package organizer

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// ErrDestinationExists is returned when the destination already holds a file
// of the same name and overwriting is disabled
var ErrDestinationExists = errors.New("destination already exists")

// ErrorReason categorizes why a move failed
type ErrorReason int

const (
	ErrorPermissionDenied ErrorReason = iota
	ErrorFileInUse
	ErrorFileNotFound
	ErrorDestinationExists
	ErrorCrossDevice
	ErrorInvalidPath
	ErrorUnknown
)

// String returns a human-readable error reason
func (e ErrorReason) String() string {
	switch e {
	case ErrorPermissionDenied:
		return "Permission denied"
	case ErrorFileInUse:
		return "File is in use"
	case ErrorFileNotFound:
		return "File not found"
	case ErrorDestinationExists:
		return "Destination exists"
	case ErrorCrossDevice:
		return "Cross-device move failed"
	case ErrorInvalidPath:
		return "Invalid path"
	case ErrorUnknown:
		return "Unknown error"
	default:
		return "Unspecified error"
	}
}

// MoveError represents a failed per-file move. The source file is left in place.
type MoveError struct {
	File        string
	Destination string
	Reason      ErrorReason
	Original    error
}

// Error implements the error interface
func (e *MoveError) Error() string {
	return fmt.Sprintf("%s -> %s: %s (%v)", e.File, e.Destination, e.Reason, e.Original)
}

// Unwrap returns the underlying error
func (e *MoveError) Unwrap() error {
	return e.Original
}

// UserMessage returns a user-friendly error message
func (e *MoveError) UserMessage() string {
	switch e.Reason {
	case ErrorPermissionDenied:
		return fmt.Sprintf("Permission denied moving %s to %s/", e.File, e.Destination)
	case ErrorFileInUse:
		return fmt.Sprintf("%s is being used (close the application and try again)", e.File)
	case ErrorFileNotFound:
		return fmt.Sprintf("%s disappeared before it could be moved", e.File)
	case ErrorDestinationExists:
		return fmt.Sprintf("%s/%s already exists, left in place (use --overwrite to replace)", e.Destination, e.File)
	case ErrorCrossDevice:
		return fmt.Sprintf("Could not copy %s across devices: %v", e.File, e.Original)
	case ErrorInvalidPath:
		return fmt.Sprintf("Invalid or unsafe destination for %s: %v", e.File, e.Original)
	default:
		return fmt.Sprintf("Error moving %s: %v", e.File, e.Original)
	}
}

// ProvisionError is fatal: a destination folder could not be created
type ProvisionError struct {
	Folder string
	Err    error
}

// Error implements the error interface
func (e *ProvisionError) Error() string {
	return fmt.Sprintf("failed to provision folder %q: %v", e.Folder, e.Err)
}

// Unwrap returns the underlying error
func (e *ProvisionError) Unwrap() error {
	return e.Err
}

// CategorizeError analyzes an error and returns a categorized MoveError
func CategorizeError(file, destination string, err error) *MoveError {
	if err == nil {
		return nil
	}

	moveErr := &MoveError{
		File:        file,
		Destination: destination,
		Original:    err,
		Reason:      ErrorUnknown,
	}

	if errors.Is(err, ErrDestinationExists) {
		moveErr.Reason = ErrorDestinationExists
		return moveErr
	}

	if os.IsNotExist(err) || errors.Is(err, os.ErrNotExist) {
		moveErr.Reason = ErrorFileNotFound
		return moveErr
	}

	if os.IsPermission(err) || errors.Is(err, os.ErrPermission) {
		moveErr.Reason = ErrorPermissionDenied
		return moveErr
	}

	// Check syscall errors
	var errno syscall.Errno
	if errors.As(err, &errno) {
		switch errno {
		case syscall.EACCES, syscall.EPERM:
			moveErr.Reason = ErrorPermissionDenied
		case syscall.EBUSY, syscall.ETXTBSY:
			moveErr.Reason = ErrorFileInUse
		case syscall.ENOENT:
			moveErr.Reason = ErrorFileNotFound
		case syscall.EEXIST, syscall.ENOTEMPTY, syscall.EISDIR:
			moveErr.Reason = ErrorDestinationExists
		case syscall.EXDEV:
			moveErr.Reason = ErrorCrossDevice
		}
	}

	return moveErr
}

// GroupErrors groups move errors by reason
func GroupErrors(errs []*MoveError) map[ErrorReason][]*MoveError {
	grouped := make(map[ErrorReason][]*MoveError)
	for _, err := range errs {
		grouped[err.Reason] = append(grouped[err.Reason], err)
	}
	return grouped
}

// FormatErrorSummary creates a user-friendly summary of errors
func FormatErrorSummary(errs []*MoveError) string {
	if len(errs) == 0 {
		return ""
	}

	grouped := GroupErrors(errs)
	summary := "\nIssues encountered:\n"

	if perms, ok := grouped[ErrorPermissionDenied]; ok {
		summary += fmt.Sprintf("   ├─ Permission denied: %d files\n", len(perms))
		summary += "   │  └─ Tip: Check ownership of the target directory\n"
	}

	if busy, ok := grouped[ErrorFileInUse]; ok {
		summary += fmt.Sprintf("   ├─ File in use: %d files\n", len(busy))
		summary += "   │  └─ Tip: Close applications and retry\n"
	}

	if exists, ok := grouped[ErrorDestinationExists]; ok {
		summary += fmt.Sprintf("   ├─ Destination exists: %d files\n", len(exists))
		summary += "   │  └─ Tip: Rename the files or rerun with --overwrite\n"
	}

	if notFound, ok := grouped[ErrorFileNotFound]; ok {
		summary += fmt.Sprintf("   ├─ Vanished during run: %d files\n", len(notFound))
	}

	if xdev, ok := grouped[ErrorCrossDevice]; ok {
		summary += fmt.Sprintf("   ├─ Cross-device copy failed: %d files\n", len(xdev))
	}

	if invalid, ok := grouped[ErrorInvalidPath]; ok {
		summary += fmt.Sprintf("   ├─ Invalid destination: %d files\n", len(invalid))
	}

	if unknown, ok := grouped[ErrorUnknown]; ok {
		summary += fmt.Sprintf("   └─ Other errors: %d files\n", len(unknown))
	}

	return summary
}
