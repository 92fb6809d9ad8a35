// Package store reads and writes named files under a directory.
//
// The store is suffix-agnostic: callers pass complete file names
// ("SData.json", "portrait.png"). A missing file is a normal outcome and is
// reported as found == false with a nil error.
package store

import "errors"

// ErrDirCreate is returned when a storage directory cannot be created. It is
// the one storage failure callers cannot recover from by falling back to
// defaults.
var ErrDirCreate = errors.New("cannot create storage directory")

// FileStore defines the file operations the saver needs.
type FileStore interface {
	// EnsureDir creates dir and its parents if absent. Idempotent.
	EnsureDir(dir string) error

	// WriteText replaces dir/name with text, creating dir first.
	WriteText(dir, name, text string) error

	// ReadText returns the content of dir/name. found is false when the file
	// does not exist.
	ReadText(dir, name string) (text string, found bool, err error)

	// WriteBytes replaces dir/name with data, creating dir first.
	WriteBytes(dir, name string, data []byte) error

	// ReadBytes returns the content of dir/name. found is false when the file
	// does not exist.
	ReadBytes(dir, name string) (data []byte, found bool, err error)

	// List returns the names of regular files directly inside dir.
	// A missing dir yields an empty list.
	List(dir string) ([]string, error)

	// RemoveAll deletes every regular file directly inside dir. Subdirectories
	// are left alone. A missing dir is not an error.
	RemoveAll(dir string) error
}
