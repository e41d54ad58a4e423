package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name      string
		verbose   bool
		wantDebug bool
	}{
		{"quiet", false, false},
		{"verbose", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(&buf, tt.verbose)

			l.Debug("scanning", "root", "/opt")
			l.Warn("careful")

			out := buf.String()
			if got := strings.Contains(out, "scanning"); got != tt.wantDebug {
				t.Errorf("debug record present = %v, want %v; output %q", got, tt.wantDebug, out)
			}
			if !strings.Contains(out, "careful") {
				t.Errorf("warning missing from output %q", out)
			}
			if !strings.Contains(out, Prefix) {
				t.Errorf("prefix %q missing from output %q", Prefix, out)
			}
		})
	}
}

func TestOrDiscard(t *testing.T) {
	if OrDiscard(nil) == nil {
		t.Fatal("OrDiscard(nil) returned nil")
	}

	var buf bytes.Buffer
	l := New(&buf, false)
	if OrDiscard(l) != l {
		t.Error("OrDiscard(l) did not return l")
	}
}
