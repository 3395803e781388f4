package filesystem

import (
	"io"
	"io/fs"
)

// FileSystem provides an abstraction over the local files the tool itself
// owns (config, plans, logs) for testability. Project files are only ever
// touched by the backend.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	OpenAppend(path string) (io.WriteCloser, error)

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Exists(path string) bool
	UserConfigDir() (string, error)
}
