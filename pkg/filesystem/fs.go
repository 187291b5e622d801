package filesystem

import (
	"io"
	"io/fs"
	"path/filepath"
)

// FS is the set of filesystem operations vpath performs
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Open(name string) (io.ReadCloser, error)
	ReadFile(name string) ([]byte, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	Walk(root string, fn filepath.WalkFunc) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
}
