package fs

import (
	"errors"
	"io/fs"
	"os"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// FS wraps the filesystem operations used by the daemon.
type FS interface {
	MkdirAll(path string) error
	FileExists(path string) (bool, error)
	WriteFile(name string, data []byte) error
	Remove(name string) error
	// TempFile creates a new file in dir, see os.CreateTemp.
	TempFile(dir, pattern string) (*os.File, error)
}

type fsImpl struct{}

// New creates a new FS.
func New() FS {
	return fsImpl{}
}

// MkdirAll creates a directory and all its parents.
func (fsImpl) MkdirAll(path string) error { return os.MkdirAll(path, 0755) }

func (fsImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

func (fsImpl) WriteFile(name string, data []byte) error {
	return os.WriteFile(name, data, 0644)
}

func (fsImpl) TempFile(dir, pattern string) (*os.File, error) {
	return os.CreateTemp(dir, pattern)
}

// Remove deletes a file. A file that is already gone is not an error.
func (fsImpl) Remove(name string) error {
	if err := os.Remove(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
