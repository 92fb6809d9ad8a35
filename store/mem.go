package store

import (
	"path/filepath"
	"sort"
	"sync"
)

// MemStore is an in-memory FileStore for tests that never touches disk.
type MemStore struct {
	mu    sync.Mutex
	dirs  map[string]bool
	files map[string][]byte // dir/name -> content

	// DirErr, when set, is returned (wrapped in ErrDirCreate) by EnsureDir.
	DirErr error
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		dirs:  make(map[string]bool),
		files: make(map[string][]byte),
	}
}

func (m *MemStore) EnsureDir(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DirErr != nil {
		return &dirError{dir: dir, err: m.DirErr}
	}
	m.dirs[filepath.Clean(dir)] = true
	return nil
}

func (m *MemStore) WriteText(dir, name, text string) error {
	return m.WriteBytes(dir, name, []byte(text))
}

func (m *MemStore) ReadText(dir, name string) (string, bool, error) {
	data, found, err := m.ReadBytes(dir, name)
	return string(data), found, err
}

func (m *MemStore) WriteBytes(dir, name string, data []byte) error {
	if err := m.EnsureDir(dir); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Join(dir, name)] = append([]byte(nil), data...)
	return nil
}

func (m *MemStore) ReadBytes(dir, name string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[filepath.Join(dir, name)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

func (m *MemStore) List(dir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)

	var names []string
	for path := range m.files {
		if filepath.Dir(path) == dir {
			names = append(names, filepath.Base(path))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (m *MemStore) RemoveAll(dir string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	dir = filepath.Clean(dir)

	for path := range m.files {
		if filepath.Dir(path) == dir {
			delete(m.files, path)
		}
	}
	return nil
}

// dirError carries a simulated directory failure while still matching ErrDirCreate.
type dirError struct {
	dir string
	err error
}

func (e *dirError) Error() string {
	return ErrDirCreate.Error() + " " + e.dir + ": " + e.err.Error()
}

func (e *dirError) Unwrap() []error { return []error{ErrDirCreate, e.err} }

var _ FileStore = (*MemStore)(nil)
