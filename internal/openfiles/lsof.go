package openfiles

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strings"
)

// LsofEnumerator implements Enumerator by running lsof in field output mode.
type LsofEnumerator struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewLsofEnumerator creates a LsofEnumerator with the default exec.CommandContext.
func NewLsofEnumerator() *LsofEnumerator {
	return &LsofEnumerator{
		execCommand: exec.CommandContext,
	}
}

// Verify LsofEnumerator implements Enumerator.
var _ Enumerator = (*LsofEnumerator)(nil)

func (e *LsofEnumerator) OpenFiles(ctx context.Context, processClass string) ([]string, error) {
	// -n/-P skip name resolution, -w silences warnings, -F ftn selects fields.
	cmd := e.execCommand(ctx, "lsof", "-n", "-P", "-w", "-F", "ftn", "-c", processClass)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &EnumerationError{
			Tool:   "lsof",
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}

	return parseLsofFields(stdout.Bytes()), nil
}

// parseLsofFields extracts regular file names from lsof -F ftn output.
// Each record line starts with its field letter: p (pid), f (descriptor),
// t (type) and n (name). The type applies to the name that follows it
// within the same descriptor set.
func parseLsofFields(out []byte) []string {
	var paths []string
	var fileType string

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}

		value := line[1:]
		switch line[0] {
		case 'p', 'f':
			fileType = ""
		case 't':
			fileType = value
		case 'n':
			if fileType != "REG" {
				continue
			}
			name := strings.TrimSuffix(value, " (deleted)")
			if filepath.IsAbs(name) {
				paths = append(paths, filepath.Clean(name))
			}
		}
	}

	return distinct(paths)
}
