package types

import (
	"io/fs"
)

// FS is the filesystem interface required for template materialization
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// AppendFile appends data to name, creating it with perm when absent.
	// Existing content is never truncated.
	AppendFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	Remove(name string) error
}
