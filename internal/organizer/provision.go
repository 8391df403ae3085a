package organizer

import (
	"os"
	"path/filepath"

	"github.com/fenilsonani/folder-organizer/internal/security"
)

// Provision ensures every destination folder exists under target. Existing
// folders are left untouched. The first failure aborts provisioning.
func Provision(target string, folders []string) error {
	for _, folder := range folders {
		if err := security.ValidateFolderName(folder); err != nil {
			return &ProvisionError{Folder: folder, Err: err}
		}

		path := filepath.Join(target, folder)
		if err := os.MkdirAll(path, 0o755); err != nil {
			return &ProvisionError{Folder: folder, Err: err}
		}
	}
	return nil
}
