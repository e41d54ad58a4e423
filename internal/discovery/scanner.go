package discovery

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/wfroots/internal/core"
	"github.com/indaco/wfroots/internal/logger"
)

// DefaultMaxDepth bounds how many directory levels below a scan root are
// searched. Deep trees are common under /usr and /home.
const DefaultMaxDepth = 8

// Scanner searches scan roots for installed servers.
type Scanner struct {
	fs       core.FileSystem
	sig      Signature
	maxDepth int
	logger   *log.Logger
}

// NewScanner creates a Scanner. A zero Signature selects DefaultSignature.
func NewScanner(fs core.FileSystem, sig Signature, maxDepth int, l *log.Logger) *Scanner {
	if sig.IsZero() {
		sig = DefaultSignature()
	}
	return &Scanner{
		fs:       fs,
		sig:      sig,
		maxDepth: maxDepth,
		logger:   logger.OrDiscard(l),
	}
}

// Scan returns the installation roots found below scanRoots.
//
// Depth counts directory levels below a scan root, the same way
// find -maxdepth does: a signature directory is reported when it sits at
// most maxDepth levels down. Unreadable or missing directories contribute
// nothing. Only context cancellation is returned as an error.
func (s *Scanner) Scan(ctx context.Context, scanRoots []string) (RootSet, error) {
	roots := NewRootSet()

	for _, scanRoot := range scanRoots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		scanRoot = filepath.Clean(scanRoot)
		s.logger.Debug("scanning", "root", scanRoot, "maxDepth", s.maxDepth)

		before := roots.Len()
		if err := s.walkDirectory(ctx, scanRoot, 0, roots); err != nil {
			return nil, err
		}
		s.logger.Debug("scan finished", "root", scanRoot, "found", roots.Len()-before)
	}

	return roots, nil
}

// walkDirectory visits dir, found at the given depth below its scan root.
func (s *Scanner) walkDirectory(ctx context.Context, dir string, depth int, roots RootSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// A scan root may itself be a signature directory. Like find, it is
	// reported even when its contents cannot be listed.
	if depth == 0 {
		if root, ok := s.sig.Root(dir); ok {
			if info, err := s.fs.Stat(ctx, dir); err == nil && info.IsDir() {
				roots.Add(root)
			}
			return ctx.Err()
		}
	}

	entries, err := s.fs.ReadDir(ctx, dir)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		// Skip directories we can't read
		s.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	childDepth := depth + 1
	if childDepth > s.maxDepth {
		return nil
	}

	for _, entry := range entries {
		// Symlinks report IsDir false and are not followed.
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if root, ok := s.sig.Root(path); ok {
			s.logger.Debug("found installation", "root", root, "depth", childDepth)
			roots.Add(root)
			continue
		}

		if childDepth == s.maxDepth {
			continue
		}
		if err := s.walkDirectory(ctx, path, childDepth, roots); err != nil {
			return err
		}
	}

	return nil
}
