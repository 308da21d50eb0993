package install

import (
	"io/fs"
	"os"

	"github.com/arthur-debert/macgen/pkg/errors"
	"github.com/arthur-debert/macgen/pkg/types"
)

// ManifestStore reads and writes a project manifest
type ManifestStore interface {
	Read() ([]byte, error)
	Write(data []byte) error
	Path() string
}

// FileStore is a ManifestStore backed by a file on a types.FS
type FileStore struct {
	fs   types.FS
	path string
}

// NewFileStore returns a store for path on fsys
func NewFileStore(fsys types.FS, path string) *FileStore {
	return &FileStore{fs: fsys, path: path}
}

// Path returns the manifest location
func (s *FileStore) Path() string { return s.path }

// Read returns the manifest content
func (s *FileStore) Read() ([]byte, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		return nil, errors.FileSystem(err, "read", s.path)
	}
	return data, nil
}

// Write replaces the manifest content, keeping the file's mode
func (s *FileStore) Write(data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := s.fs.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.FileSystem(err, "stat", s.path)
	}
	if err := s.fs.WriteFile(s.path, data, mode); err != nil {
		return errors.FileSystem(err, "write", s.path)
	}
	return nil
}
