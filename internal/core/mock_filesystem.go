package core

import (
	"context"
	"io/fs"
	"path"
	"slices"
	"strings"
	"sync"
	"time"
)

// MockFileSystem is an in-memory FileSystem for tests. Paths always use
// forward slashes and must be absolute.
type MockFileSystem struct {
	mu        sync.RWMutex
	dirs      map[string]bool
	files     map[string][]byte
	readErrs  map[string]error
	statCalls int
}

// NewMockFileSystem returns an empty MockFileSystem containing only "/".
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		dirs:     map[string]bool{"/": true},
		files:    make(map[string][]byte),
		readErrs: make(map[string]error),
	}
}

// Verify MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)

// AddDir registers a directory together with all of its parents.
func (m *MockFileSystem) AddDir(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addDirLocked(path.Clean(name))
}

// SetFile registers a regular file and creates its parent directories.
func (m *MockFileSystem) SetFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = path.Clean(name)
	m.files[name] = data
	m.addDirLocked(path.Dir(name))
}

// SetReadDirError makes ReadDir fail for the given directory.
func (m *MockFileSystem) SetReadDirError(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErrs[path.Clean(name)] = err
}

// StatCalls reports how many times Stat was invoked.
func (m *MockFileSystem) StatCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statCalls
}

func (m *MockFileSystem) addDirLocked(name string) {
	for {
		m.dirs[name] = true
		parent := path.Dir(name)
		if parent == name {
			return
		}
		name = parent
	}
}

func (m *MockFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.statCalls++

	name = path.Clean(name)
	if m.dirs[name] {
		return &mockFileInfo{name: path.Base(name), dir: true}, nil
	}
	if data, ok := m.files[name]; ok {
		return &mockFileInfo{name: path.Base(name), size: int64(len(data))}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
}

func (m *MockFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	name = path.Clean(name)
	if err, ok := m.readErrs[name]; ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: err}
	}
	if !m.dirs[name] {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}

	var entries []fs.DirEntry
	for d := range m.dirs {
		if isDirectChild(name, d) {
			entries = append(entries, fs.FileInfoToDirEntry(&mockFileInfo{name: path.Base(d), dir: true}))
		}
	}
	for f, data := range m.files {
		if isDirectChild(name, f) {
			entries = append(entries, fs.FileInfoToDirEntry(&mockFileInfo{name: path.Base(f), size: int64(len(data))}))
		}
	}

	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}

func isDirectChild(parent, child string) bool {
	return child != parent && path.Dir(child) == parent
}

// mockFileInfo is a minimal fs.FileInfo for MockFileSystem entries.
type mockFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi *mockFileInfo) Name() string { return fi.name }
func (fi *mockFileInfo) Size() int64  { return fi.size }
func (fi *mockFileInfo) Mode() fs.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (fi *mockFileInfo) ModTime() time.Time { return time.Time{} }
func (fi *mockFileInfo) IsDir() bool        { return fi.dir }
func (fi *mockFileInfo) Sys() any           { return nil }
