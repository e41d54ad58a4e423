package discovery

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/indaco/wfroots/internal/core"
	"github.com/indaco/wfroots/internal/logger"
)

// Locator maps files held open by running servers to the installation they
// were loaded from.
type Locator struct {
	fs     core.FileSystem
	sig    Signature
	logger *log.Logger
}

// NewLocator creates a Locator. A zero Signature selects DefaultSignature.
func NewLocator(fs core.FileSystem, sig Signature, l *log.Logger) *Locator {
	if sig.IsZero() {
		sig = DefaultSignature()
	}
	return &Locator{
		fs:     fs,
		sig:    sig,
		logger: logger.OrDiscard(l),
	}
}

// Locate returns the installation roots owning the given open file paths.
// Paths without a signature ancestor are dropped.
func (l *Locator) Locate(ctx context.Context, paths []string) (RootSet, error) {
	roots := NewRootSet()
	seen := make(map[string]bool, len(paths))

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		abs, err := filepath.Abs(p)
		if err != nil {
			l.logger.Debug("skipping open file", "path", p, "error", err)
			continue
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true

		root, ok, err := l.locate(ctx, abs)
		if err != nil {
			return nil, err
		}
		if !ok {
			l.logger.Debug("open file outside any installation", "path", abs)
			continue
		}
		roots.Add(root)
	}

	return roots, nil
}

// locate walks from path towards the filesystem root, stopping at the first
// existing directory that ends with the signature.
func (l *Locator) locate(ctx context.Context, path string) (string, bool, error) {
	dir := path
	for {
		if root, ok := l.sig.Root(dir); ok {
			info, err := l.fs.Stat(ctx, dir)
			if err == nil && info.IsDir() {
				return root, true, nil
			}
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", false, ctxErr
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}
