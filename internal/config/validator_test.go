package config

import (
	"context"
	"testing"

	"github.com/indaco/wfroots/internal/core"
)

func TestValidator_Validate(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.AddDir("/opt")

	negative := -2

	tests := []struct {
		name         string
		mutate       func(*Config)
		wantErrors   bool
		wantWarnings int
	}{
		{
			name:   "defaults",
			mutate: func(*Config) {},
		},
		{
			name:   "existing scan root",
			mutate: func(c *Config) { c.ScanRoots = []string{"/opt"} },
		},
		{
			name:         "missing scan root is a warning",
			mutate:       func(c *Config) { c.ScanRoots = []string{"/opt", "/nope"} },
			wantWarnings: 1,
		},
		{
			name:       "relative scan root",
			mutate:     func(c *Config) { c.ScanRoots = []string{"opt"} },
			wantErrors: true,
		},
		{
			name:       "negative depth",
			mutate:     func(c *Config) { c.MaxDepth = &negative },
			wantErrors: true,
		},
		{
			name:       "unknown format",
			mutate:     func(c *Config) { c.Format = "xml" },
			wantErrors: true,
		},
		{
			name:       "unknown enumerator",
			mutate:     func(c *Config) { c.Enumerator = "ps" },
			wantErrors: true,
		},
		{
			name:       "bad signature",
			mutate:     func(c *Config) { c.Signature = "../base" },
			wantErrors: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			results := NewValidator(fs, cfg).Validate(context.Background())

			if got := HasErrors(results); got != tt.wantErrors {
				t.Errorf("HasErrors() = %v, want %v (results %+v)", got, tt.wantErrors, results)
			}
			if got := Errors(results) != nil; got != tt.wantErrors {
				t.Errorf("Errors() != nil is %v, want %v", got, tt.wantErrors)
			}
			if got := len(Warnings(results)); got != tt.wantWarnings {
				t.Errorf("len(Warnings()) = %d, want %d", got, tt.wantWarnings)
			}
		})
	}
}
