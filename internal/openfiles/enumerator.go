// Package openfiles lists the regular files held open by a class of
// processes. Two backends exist: lsof, which shells out to the lsof tool,
// and proc, which reads the process table through gopsutil.
package openfiles

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/indaco/wfroots/internal/core"
)

// DefaultProcessClass is the command name of a WildFly / JBoss server.
const DefaultProcessClass = "java"

// Backend names accepted by New.
const (
	BackendLsof = "lsof"
	BackendProc = "proc"
)

// Backends lists the supported backend names.
func Backends() []string {
	return []string{BackendLsof, BackendProc}
}

// Enumerator lists open regular files for processes of a given class.
// A process belongs to the class when its command name starts with the
// class, which is how lsof -c selects processes.
type Enumerator interface {
	// OpenFiles returns distinct absolute paths. Any failure of the
	// underlying query is returned as an *EnumerationError.
	OpenFiles(ctx context.Context, processClass string) ([]string, error)
}

// New returns the Enumerator for the named backend.
func New(backend string, fs core.FileSystem) (Enumerator, error) {
	switch backend {
	case BackendLsof, "":
		return NewLsofEnumerator(), nil
	case BackendProc:
		return NewProcEnumerator(fs), nil
	default:
		return nil, fmt.Errorf("unknown enumerator %q (want one of: %s)", backend, strings.Join(Backends(), ", "))
	}
}

// EnumerationError reports that the process query could not run or failed.
type EnumerationError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *EnumerationError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s failed: %s: %v", e.Tool, e.Stderr, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Tool, e.Err)
}

func (e *EnumerationError) Unwrap() error {
	return e.Err
}

// distinct sorts paths and removes duplicates in place.
func distinct(paths []string) []string {
	slices.Sort(paths)
	return slices.Compact(paths)
}
