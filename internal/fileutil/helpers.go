package fileutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EnsureParentDir creates parent directories for the given path if they do not exist.
func EnsureParentDir(filePath string) error {
	dir := filepath.Dir(filePath)
	return os.MkdirAll(dir, 0755)
}

// ReplaceFileAtomically renames tempPath to targetPath. On systems where
// cross-device rename fails, it falls back to remove-then-rename.
func ReplaceFileAtomically(tempPath, targetPath string) error {
	if err := os.Rename(tempPath, targetPath); err == nil {
		return nil
	}

	if err := os.Remove(targetPath); err != nil && !os.IsNotExist(err) {
		return err
	}

	return os.Rename(tempPath, targetPath)
}

// WriteFileAtomically writes data next to targetPath under a unique temporary
// name and then swaps it into place, so readers see either the old or the new
// content. The parent directory must already exist.
func WriteFileAtomically(targetPath string, data []byte, perm os.FileMode) error {
	tempPath := filepath.Join(
		filepath.Dir(targetPath),
		fmt.Sprintf(".%s.%s.tmp", filepath.Base(targetPath), uuid.NewString()),
	)

	if err := os.WriteFile(tempPath, data, perm); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	if err := ReplaceFileAtomically(tempPath, targetPath); err != nil {
		_ = os.Remove(tempPath)
		return err
	}
	return nil
}
