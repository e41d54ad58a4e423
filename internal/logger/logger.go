// Package logger builds the structured stderr logger used across wfroots.
package logger

import (
	"io"

	"github.com/charmbracelet/log"
)

// Prefix is printed in front of every log record.
const Prefix = "wfroots"

// New returns a logger writing to w. Verbose enables debug records;
// otherwise only warnings and errors are emitted.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: Prefix,
		Level:  level,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *log.Logger) *log.Logger {
	if l == nil {
		return Discard()
	}
	return l
}
