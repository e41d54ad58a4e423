package openfiles

import (
	"context"
	"strings"

	"github.com/indaco/wfroots/internal/core"
	"github.com/shirou/gopsutil/v4/process"
)

// processHandle is the subset of *process.Process used by ProcEnumerator.
type processHandle interface {
	NameWithContext(ctx context.Context) (string, error)
	OpenFilesWithContext(ctx context.Context) ([]process.OpenFilesStat, error)
}

// ProcEnumerator implements Enumerator by reading the process table
// directly, without an external tool.
type ProcEnumerator struct {
	fs        core.FileSystem
	processes func(ctx context.Context) ([]processHandle, error)
}

// NewProcEnumerator creates a ProcEnumerator. fs is used to keep only
// regular files.
func NewProcEnumerator(fs core.FileSystem) *ProcEnumerator {
	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &ProcEnumerator{
		fs:        fs,
		processes: listProcesses,
	}
}

// Verify ProcEnumerator implements Enumerator.
var _ Enumerator = (*ProcEnumerator)(nil)

func listProcesses(ctx context.Context) ([]processHandle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}
	handles := make([]processHandle, len(procs))
	for i, p := range procs {
		handles[i] = p
	}
	return handles, nil
}

func (e *ProcEnumerator) OpenFiles(ctx context.Context, processClass string) ([]string, error) {
	procs, err := e.processes(ctx)
	if err != nil {
		return nil, &EnumerationError{Tool: "process table", Err: err}
	}

	var paths []string
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, &EnumerationError{Tool: "process table", Err: err}
		}

		// Processes may exit or be owned by another user; skip them.
		name, err := p.NameWithContext(ctx)
		if err != nil || !strings.HasPrefix(name, processClass) {
			continue
		}
		files, err := p.OpenFilesWithContext(ctx)
		if err != nil {
			continue
		}

		for _, f := range files {
			info, err := e.fs.Stat(ctx, f.Path)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			paths = append(paths, f.Path)
		}
	}

	return distinct(paths), nil
}
