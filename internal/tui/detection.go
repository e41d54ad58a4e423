// Package tui answers terminal questions: whether a stream is attached to a
// terminal and whether colour output is appropriate there.
package tui

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}

// ColorEnabled reports whether styled output should be written to f.
// NO_COLOR is honoured as the de-facto convention for colour output.
func ColorEnabled(f *os.File, noColorFlag bool) bool {
	if noColorFlag || os.Getenv("NO_COLOR") != "" {
		return false
	}
	return IsTerminal(f)
}
