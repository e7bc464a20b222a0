package types

import (
	"io"
	"io/fs"
)

// FS is the filesystem interface required for deepsearch operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	ReadDir(name string) ([]fs.DirEntry, error)

	// Rename moves a file or directory without following symlinks
	Rename(oldpath, newpath string) error
}
