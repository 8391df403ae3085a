package organizer

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		reason ErrorReason
	}{
		{"EACCES - permission denied", syscall.EACCES, ErrorPermissionDenied},
		{"EPERM - operation not permitted", syscall.EPERM, ErrorPermissionDenied},
		{"ENOENT - file vanished", syscall.ENOENT, ErrorFileNotFound},
		{"EBUSY - resource busy", syscall.EBUSY, ErrorFileInUse},
		{"EXDEV - cross device", syscall.EXDEV, ErrorCrossDevice},
		{"EEXIST - destination exists", syscall.EEXIST, ErrorDestinationExists},
		{"sentinel destination exists", ErrDestinationExists, ErrorDestinationExists},
		{"wrapped sentinel", fmt.Errorf("%w: dir", ErrDestinationExists), ErrorDestinationExists},
		{"wrapped EACCES", fmt.Errorf("failed to rename: %w", syscall.EACCES), ErrorPermissionDenied},
		{"os.LinkError with EACCES", &os.LinkError{Op: "rename", Old: "/a", New: "/b", Err: syscall.EACCES}, ErrorPermissionDenied},
		{"os.ErrNotExist", os.ErrNotExist, ErrorFileNotFound},
		{"generic error", errors.New("unknown error"), ErrorUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			moveErr := CategorizeError("file.txt", "Documents", tt.err)
			if moveErr == nil {
				t.Fatal("CategorizeError returned nil")
			}
			if moveErr.Reason != tt.reason {
				t.Errorf("Reason = %v, want %v", moveErr.Reason, tt.reason)
			}
			if moveErr.File != "file.txt" || moveErr.Destination != "Documents" {
				t.Errorf("unexpected file/destination: %+v", moveErr)
			}
			if !errors.Is(moveErr, tt.err) {
				t.Error("MoveError should unwrap to the original error")
			}
		})
	}
}

func TestCategorizeErrorNil(t *testing.T) {
	if CategorizeError("a", "b", nil) != nil {
		t.Error("CategorizeError(nil) should return nil")
	}
}

func TestErrorReasonString(t *testing.T) {
	tests := []struct {
		reason ErrorReason
		want   string
	}{
		{ErrorPermissionDenied, "Permission denied"},
		{ErrorFileInUse, "File is in use"},
		{ErrorFileNotFound, "File not found"},
		{ErrorDestinationExists, "Destination exists"},
		{ErrorCrossDevice, "Cross-device move failed"},
		{ErrorInvalidPath, "Invalid path"},
		{ErrorUnknown, "Unknown error"},
		{ErrorReason(99), "Unspecified error"},
	}
	for _, tt := range tests {
		if got := tt.reason.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.reason, got, tt.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		reason ErrorReason
		want   string
	}{
		{ErrorPermissionDenied, "Permission denied"},
		{ErrorFileInUse, "being used"},
		{ErrorFileNotFound, "disappeared"},
		{ErrorDestinationExists, "--overwrite"},
		{ErrorCrossDevice, "across devices"},
		{ErrorInvalidPath, "unsafe"},
		{ErrorUnknown, "Error moving"},
	}
	for _, tt := range tests {
		e := &MoveError{File: "a.pdf", Destination: "Documents", Reason: tt.reason, Original: errors.New("x")}
		if got := e.UserMessage(); !strings.Contains(got, tt.want) {
			t.Errorf("UserMessage(%v) = %q, want substring %q", tt.reason, got, tt.want)
		}
	}
}

func TestProvisionErrorUnwrap(t *testing.T) {
	err := &ProvisionError{Folder: "Images", Err: os.ErrPermission}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("ProvisionError should unwrap")
	}
	if !strings.Contains(err.Error(), "Images") {
		t.Errorf("Error() = %q, want folder name", err.Error())
	}
}

func TestFormatErrorSummary(t *testing.T) {
	if FormatErrorSummary(nil) != "" {
		t.Error("empty summary expected for no errors")
	}

	errs := []*MoveError{
		{File: "a", Reason: ErrorDestinationExists},
		{File: "b", Reason: ErrorDestinationExists},
		{File: "c", Reason: ErrorPermissionDenied},
		{File: "d", Reason: ErrorUnknown},
	}
	summary := FormatErrorSummary(errs)

	for _, want := range []string{"Destination exists: 2 files", "Permission denied: 1 files", "Other errors: 1 files"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	grouped := GroupErrors(errs)
	if len(grouped[ErrorDestinationExists]) != 2 {
		t.Errorf("GroupErrors = %v", grouped)
	}
}
