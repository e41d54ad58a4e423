package discovery

import (
	"maps"
	"path/filepath"
	"slices"
)

// RootSet is a set of installation roots keyed by cleaned path.
type RootSet map[string]struct{}

// NewRootSet returns a set holding the given roots.
func NewRootSet(roots ...string) RootSet {
	s := make(RootSet, len(roots))
	for _, r := range roots {
		s.Add(r)
	}
	return s
}

// Add inserts root after cleaning it.
func (s RootSet) Add(root string) {
	s[filepath.Clean(root)] = struct{}{}
}

// Contains reports whether root is in the set.
func (s RootSet) Contains(root string) bool {
	_, ok := s[filepath.Clean(root)]
	return ok
}

// Len returns the number of roots.
func (s RootSet) Len() int {
	return len(s)
}

// Union returns a new set holding the roots of both s and other.
func (s RootSet) Union(other RootSet) RootSet {
	out := make(RootSet, len(s)+len(other))
	maps.Copy(out, s)
	maps.Copy(out, other)
	return out
}

// Sorted returns the roots in ascending lexicographic order.
func (s RootSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Result is the outcome of a discovery run.
type Result struct {
	// Running holds roots derived from files open by server processes.
	Running RootSet

	// Installed holds roots found by the bounded filesystem scan.
	Installed RootSet
}

// Merge returns the sorted, deduplicated union of both strategies.
func Merge(running, installed RootSet) []string {
	return running.Union(installed).Sorted()
}

// Roots returns the merged installation roots.
func (r *Result) Roots() []string {
	return Merge(r.Running, r.Installed)
}

// IsEmpty returns true if neither strategy found anything.
func (r *Result) IsEmpty() bool {
	return r.Running.Len() == 0 && r.Installed.Len() == 0
}
