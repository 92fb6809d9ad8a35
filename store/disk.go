package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/yoanbernabeu/slotsave/internal/fileutil"
)

// DiskStore is the FileStore backed by the local filesystem.
type DiskStore struct{}

// NewDiskStore returns a filesystem store.
func NewDiskStore() *DiskStore {
	return &DiskStore{}
}

func (s *DiskStore) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w %s: %w", ErrDirCreate, dir, err)
	}
	return nil
}

func (s *DiskStore) WriteText(dir, name, text string) error {
	return s.WriteBytes(dir, name, []byte(text))
}

func (s *DiskStore) ReadText(dir, name string) (string, bool, error) {
	data, found, err := s.ReadBytes(dir, name)
	if err != nil || !found {
		return "", found, err
	}
	return string(data), true, nil
}

func (s *DiskStore) WriteBytes(dir, name string, data []byte) error {
	if err := s.EnsureDir(dir); err != nil {
		return err
	}

	path := filepath.Join(dir, name)
	if err := fileutil.WriteFileAtomically(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (s *DiskStore) ReadBytes(dir, name string) ([]byte, bool, error) {
	path := filepath.Join(dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, true, nil
}

func (s *DiskStore) List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *DiskStore) RemoveAll(dir string) error {
	names, err := s.List(dir)
	if err != nil {
		return err
	}

	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

var _ FileStore = (*DiskStore)(nil)
