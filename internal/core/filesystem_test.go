package core

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestOSFileSystem_StatAndReadDir(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "b", "c"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmp, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	osfs := NewOSFileSystem()
	ctx := context.Background()

	info, err := osfs.Stat(ctx, filepath.Join(tmp, "b"))
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Errorf("Stat(%q).IsDir() = false, want true", "b")
	}

	entries, err := osfs.ReadDir(ctx, tmp)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name() != "a.txt" || entries[1].Name() != "b" {
		t.Errorf("entries = [%s %s], want [a.txt b]", entries[0].Name(), entries[1].Name())
	}
}

func TestOSFileSystem_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	osfs := NewOSFileSystem()
	if _, err := osfs.Stat(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("Stat() error = %v, want context.Canceled", err)
	}
	if _, err := osfs.ReadDir(ctx, t.TempDir()); !errors.Is(err, context.Canceled) {
		t.Errorf("ReadDir() error = %v, want context.Canceled", err)
	}
}

func TestMockFileSystem(t *testing.T) {
	m := NewMockFileSystem()
	m.AddDir("/opt/wildfly/modules")
	m.SetFile("/opt/wildfly/jboss-modules.jar", []byte("jar"))
	ctx := context.Background()

	tests := []struct {
		name    string
		path    string
		wantDir bool
		wantErr bool
	}{
		{"root", "/", true, false},
		{"implicit parent", "/opt", true, false},
		{"explicit dir", "/opt/wildfly/modules", true, false},
		{"file", "/opt/wildfly/jboss-modules.jar", false, false},
		{"missing", "/usr", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := m.Stat(ctx, tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Stat(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					t.Errorf("Stat(%q) error = %v, want fs.ErrNotExist", tt.path, err)
				}
				return
			}
			if info.IsDir() != tt.wantDir {
				t.Errorf("Stat(%q).IsDir() = %v, want %v", tt.path, info.IsDir(), tt.wantDir)
			}
		})
	}

	entries, err := m.ReadDir(ctx, "/opt/wildfly")
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Name() != "jboss-modules.jar" || entries[0].IsDir() {
		t.Errorf("entries[0] = %s (dir=%v), want jboss-modules.jar file", entries[0].Name(), entries[0].IsDir())
	}
	if entries[1].Name() != "modules" || !entries[1].IsDir() {
		t.Errorf("entries[1] = %s (dir=%v), want modules dir", entries[1].Name(), entries[1].IsDir())
	}

	if m.StatCalls() != len(tests) {
		t.Errorf("StatCalls() = %d, want %d", m.StatCalls(), len(tests))
	}
}

func TestMockFileSystem_ReadDirError(t *testing.T) {
	m := NewMockFileSystem()
	m.AddDir("/home/locked")
	m.SetReadDirError("/home/locked", fs.ErrPermission)

	_, err := m.ReadDir(context.Background(), "/home/locked")
	if !errors.Is(err, fs.ErrPermission) {
		t.Errorf("ReadDir() error = %v, want fs.ErrPermission", err)
	}
}
