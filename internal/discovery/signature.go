package discovery

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultSignaturePath is the layout every WildFly / JBoss EAP module tree
// carries below its installation root.
const DefaultSignaturePath = "modules/system/layers/base"

// Signature identifies an installation by a relative directory suffix.
// Matching is done on whole path segments.
type Signature struct {
	segments []string
}

// ParseSignature builds a Signature from a slash separated relative path.
func ParseSignature(s string) (Signature, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Signature{}, errors.New("signature path is empty")
	}
	slashed := filepath.ToSlash(s)
	if strings.HasPrefix(slashed, "/") || filepath.IsAbs(s) {
		return Signature{}, fmt.Errorf("signature path %q must be relative", s)
	}

	segments := strings.FieldsFunc(slashed, func(r rune) bool { return r == '/' })
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return Signature{}, fmt.Errorf("signature path %q must not contain %q", s, seg)
		}
	}
	if len(segments) == 0 {
		return Signature{}, fmt.Errorf("signature path %q has no segments", s)
	}

	return Signature{segments: segments}, nil
}

// DefaultSignature returns the Signature for DefaultSignaturePath.
func DefaultSignature() Signature {
	return Signature{segments: strings.Split(DefaultSignaturePath, "/")}
}

// IsZero reports whether the Signature was never initialised.
func (s Signature) IsZero() bool {
	return len(s.segments) == 0
}

// Len returns the number of path segments in the signature.
func (s Signature) Len() int {
	return len(s.segments)
}

// String returns the signature in slash separated form.
func (s Signature) String() string {
	return strings.Join(s.segments, "/")
}

// Match reports whether dir ends with the signature.
func (s Signature) Match(dir string) bool {
	_, ok := s.Root(dir)
	return ok
}

// Root strips the signature suffix from dir and returns the installation
// root. It returns false when dir does not end with the signature.
func (s Signature) Root(dir string) (string, bool) {
	if s.IsZero() {
		return "", false
	}

	cur := filepath.Clean(dir)
	for i := len(s.segments) - 1; i >= 0; i-- {
		if filepath.Base(cur) != s.segments[i] {
			return "", false
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", false
		}
		cur = parent
	}
	return cur, true
}
