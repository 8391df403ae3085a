package organizer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/fenilsonani/folder-organizer/pkg/utils"
)

// moveFile renames src to dst, falling back to a verified copy when the two
// paths live on different filesystems. The source is only removed once the
// copy is complete and verified.
func moveFile(src, dst string, overwrite bool) error {
	info, err := os.Lstat(dst)
	switch {
	case err == nil && !overwrite:
		return ErrDestinationExists
	case err == nil && info.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrDestinationExists, dst)
	case err != nil && !os.IsNotExist(err):
		return err
	}

	err = os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	return copyAcrossDevices(src, dst)
}

// copyAcrossDevices copies src into a temporary file next to dst, verifies
// size and hash, renames it into place and removes src.
func copyAcrossDevices(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".organize-*.partial")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	written, err := io.Copy(tmp, in)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if written != srcInfo.Size() {
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}

	srcHash, err := utils.HashFile(src)
	if err != nil {
		return fmt.Errorf("hash source: %w", err)
	}
	dstHash, err := utils.HashFile(tmpPath)
	if err != nil {
		return fmt.Errorf("hash copy: %w", err)
	}
	if srcHash != dstHash {
		return fmt.Errorf("copy hash mismatch: file corrupted during copy")
	}

	_ = os.Chmod(tmpPath, srcInfo.Mode().Perm())
	_ = os.Chtimes(tmpPath, srcInfo.ModTime(), srcInfo.ModTime())

	if err := os.Rename(tmpPath, dst); err != nil {
		return fmt.Errorf("place copy: %w", err)
	}
	if err := os.Remove(src); err != nil {
		// Both copies exist now; drop the new one so the file is at exactly one location
		_ = os.Remove(dst)
		return fmt.Errorf("remove source after copy: %w", err)
	}
	return nil
}
