// Package core holds the small abstractions shared by the discovery
// strategies, chiefly the read-only FileSystem used to stat and list
// directories.
package core

import (
	"context"
	"io/fs"
	"os"
)

// FileSystem is the read-only filesystem surface needed for discovery.
type FileSystem interface {
	// Stat follows symlinks, like os.Stat.
	Stat(ctx context.Context, name string) (fs.FileInfo, error)

	// ReadDir lists a directory sorted by filename. Symlinks are reported
	// as such and never resolved.
	ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error)
}

// OSFileSystem implements FileSystem on top of the os package.
type OSFileSystem struct{}

// NewOSFileSystem returns a FileSystem backed by the host filesystem.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// Verify OSFileSystem implements FileSystem.
var _ FileSystem = (*OSFileSystem)(nil)

func (o *OSFileSystem) Stat(ctx context.Context, name string) (fs.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Stat(name)
}

func (o *OSFileSystem) ReadDir(ctx context.Context, name string) ([]fs.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadDir(name)
}
