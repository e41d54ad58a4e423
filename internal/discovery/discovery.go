package discovery

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/indaco/wfroots/internal/core"
	"github.com/indaco/wfroots/internal/logger"
	"github.com/indaco/wfroots/internal/openfiles"
)

// Options controls a discovery run.
type Options struct {
	// Signature identifies an installation. Zero means DefaultSignature.
	Signature Signature

	// MaxDepth bounds the filesystem scan below each scan root.
	MaxDepth int

	// ProcessClass selects the server processes whose open files are inspected.
	ProcessClass string

	// ScanRoots are the directories searched. Empty means DefaultScanRoots.
	ScanRoots []string

	// SkipRunning disables the open-file strategy.
	SkipRunning bool

	// SkipInstalled disables the filesystem scan.
	SkipInstalled bool
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Signature:    DefaultSignature(),
		MaxDepth:     DefaultMaxDepth,
		ProcessClass: openfiles.DefaultProcessClass,
	}
}

// Service runs both discovery strategies and merges their results.
type Service struct {
	fs         core.FileSystem
	enumerator openfiles.Enumerator
	logger     *log.Logger
}

// NewService creates a new discovery Service.
func NewService(fs core.FileSystem, enumerator openfiles.Enumerator, l *log.Logger) *Service {
	return &Service{
		fs:         fs,
		enumerator: enumerator,
		logger:     logger.OrDiscard(l),
	}
}

// Discover runs the configured strategies. The process query runs first
// and any failure of it aborts the run before the filesystem is scanned.
func (s *Service) Discover(ctx context.Context, opts Options) (*Result, error) {
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d", opts.MaxDepth)
	}
	if opts.Signature.IsZero() {
		opts.Signature = DefaultSignature()
	}
	if opts.ProcessClass == "" {
		opts.ProcessClass = openfiles.DefaultProcessClass
	}

	result := &Result{
		Running:   NewRootSet(),
		Installed: NewRootSet(),
	}

	if !opts.SkipRunning {
		running, err := s.discoverRunning(ctx, opts)
		if err != nil {
			return nil, err
		}
		result.Running = running
	}

	if !opts.SkipInstalled {
		scanRoots := opts.ScanRoots
		if len(scanRoots) == 0 {
			scanRoots = DefaultScanRoots()
		}
		installed, err := NewScanner(s.fs, opts.Signature, opts.MaxDepth, s.logger).Scan(ctx, scanRoots)
		if err != nil {
			return nil, err
		}
		result.Installed = installed
	}

	s.logger.Debug("discovery complete",
		"running", result.Running.Len(),
		"installed", result.Installed.Len(),
		"total", len(result.Roots()))

	return result, nil
}

func (s *Service) discoverRunning(ctx context.Context, opts Options) (RootSet, error) {
	if s.enumerator == nil {
		return nil, errors.New("no open-file enumerator configured")
	}

	paths, err := s.enumerator.OpenFiles(ctx, opts.ProcessClass)
	if err != nil {
		return nil, fmt.Errorf("listing files open by %q processes: %w", opts.ProcessClass, err)
	}
	s.logger.Debug("open files listed", "process", opts.ProcessClass, "count", len(paths))

	return NewLocator(s.fs, opts.Signature, s.logger).Locate(ctx, paths)
}
