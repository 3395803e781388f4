package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"time"
)

// MockFileSystem keeps config, plan and log files in memory for tests
type MockFileSystem struct {
	entries   map[string]*MockFile
	configDir string
}

// MockFile is one entry of the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// NewMockFileSystem creates an empty filesystem with the user config dir
// at /home/user/.config
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		entries:   make(map[string]*MockFile),
		configDir: "/home/user/.config",
	}
}

// AddFile stores content at path, creating missing parent directories
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	path = filepath.Clean(path)
	mfs.mkdirs(filepath.Dir(path), 0755)
	mfs.entries[path] = &MockFile{Content: content, Mode: 0644, ModTime: time.Now()}
}

// AddDir creates path and its parents
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mkdirs(filepath.Clean(path), 0755)
}

func (mfs *MockFileSystem) mkdirs(dir string, perm fs.FileMode) {
	for ; dir != "." && dir != "/"; dir = filepath.Dir(dir) {
		if _, ok := mfs.entries[dir]; ok {
			return
		}
		mfs.entries[dir] = &MockFile{Mode: perm | fs.ModeDir, ModTime: time.Now(), IsDir: true}
	}
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	f, ok := mfs.entries[filepath.Clean(path)]
	switch {
	case !ok:
		return nil, fs.ErrNotExist
	case f.IsDir:
		return nil, errors.New("is a directory")
	}
	return f.Content, nil
}

// WriteFile fails like os.WriteFile when the parent directory is missing
func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	path = filepath.Clean(path)
	if dir := filepath.Dir(path); dir != "." && dir != "/" && !mfs.Exists(dir) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	mfs.entries[path] = &MockFile{Content: data, Mode: perm, ModTime: time.Now()}
	return nil
}

func (mfs *MockFileSystem) MkdirAll(path string, perm fs.FileMode) error {
	mfs.mkdirs(filepath.Clean(path), perm)
	return nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	_, ok := mfs.entries[filepath.Clean(path)]
	return ok
}

func (mfs *MockFileSystem) UserConfigDir() (string, error) {
	if mfs.configDir == "" {
		return "", errors.New("neither $XDG_CONFIG_HOME nor $HOME are defined")
	}
	return mfs.configDir, nil
}

// appendWriter appends to a mock file on every Write
type appendWriter struct {
	file *MockFile
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.file.Content = append(w.file.Content, p...)
	return len(p), nil
}

func (w *appendWriter) Close() error {
	return nil
}

func (mfs *MockFileSystem) OpenAppend(path string) (io.WriteCloser, error) {
	path = filepath.Clean(path)
	if f, ok := mfs.entries[path]; ok {
		if f.IsDir {
			return nil, errors.New("is a directory")
		}
		return &appendWriter{file: f}, nil
	}

	if err := mfs.WriteFile(path, nil, 0644); err != nil {
		return nil, err
	}
	return &appendWriter{file: mfs.entries[path]}, nil
}

// SetConfigDir sets the directory UserConfigDir reports; "" makes it fail
func (mfs *MockFileSystem) SetConfigDir(dir string) {
	mfs.configDir = dir
}

// Paths returns every file and directory path in sorted order
func (mfs *MockFileSystem) Paths() []string {
	out := make([]string, 0, len(mfs.entries))
	for p := range mfs.entries {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
