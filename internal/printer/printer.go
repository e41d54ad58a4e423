// Package printer renders the diagnostics wfroots writes to stderr.
// Results on stdout are never styled.
package printer

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Style definitions for consistent diagnostics.
var (
	faintStyle   = lipgloss.NewStyle().Faint(true)
	boldStyle    = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // Red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // Yellow
)

var defaultProfile = lipgloss.ColorProfile()

// SetNoColor disables or restores ANSI styling.
func SetNoColor(noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(defaultProfile)
}

// Faint returns text with faint styling.
func Faint(text string) string {
	return faintStyle.Render(text)
}

// Bold returns text with bold styling.
func Bold(text string) string {
	return boldStyle.Render(text)
}

// Success returns text with success (green) styling.
func Success(text string) string {
	return successStyle.Render(text)
}

// Error returns text with error (red) styling.
func Error(text string) string {
	return errorStyle.Render(text)
}

// Warning returns text with warning (yellow) styling.
func Warning(text string) string {
	return warningStyle.Render(text)
}

// PrintError writes err to w as "Error: <err>".
func PrintError(w io.Writer, err error) {
	fmt.Fprintln(w, Error("Error: "+err.Error()))
}

// PrintWarning writes a warning line to w.
func PrintWarning(w io.Writer, text string) {
	fmt.Fprintln(w, Warning("Warning: "+text))
}

// PrintSummary writes the per-strategy counts of a run to w.
func PrintSummary(w io.Writer, running, installed, total int) {
	fmt.Fprintf(w, "%s %s %s\n",
		Success("✓"),
		Bold(fmt.Sprintf("%d installation(s)", total)),
		Faint(fmt.Sprintf("(running: %d, installed: %d)", running, installed)))
}
