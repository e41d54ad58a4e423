package discovery

import (
	"os"
	"path/filepath"
	"runtime"
)

// DefaultScanRoots returns the conventional installation locations searched
// when no scan root is given.
func DefaultScanRoots() []string {
	return defaultScanRootsFor(runtime.GOOS, os.Getenv)
}

func defaultScanRootsFor(goos string, getenv func(string) string) []string {
	if goos != "windows" {
		return []string{"/opt", "/usr", "/home"}
	}

	var roots []string
	for _, env := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if v := getenv(env); v != "" {
			roots = append(roots, v)
		}
	}
	drive := getenv("SystemDrive")
	if drive == "" {
		drive = "C:"
	}
	return append(roots, drive+string(filepath.Separator))
}
