package discovery

import (
	"context"
	"errors"
	"testing"

	"github.com/indaco/wfroots/internal/core"
)

func TestLocator_Locate(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.AddDir("/opt/wildfly/modules/system/layers/base/org/jboss/as/server/main")
	fs.SetFile("/opt/wildfly/jboss-modules.jar", []byte("jar"))
	fs.AddDir("/srv/eap/modules/system/layers/base")
	fs.SetFile("/srv/eap/modules/system/layers/base/org/hibernate/main/hibernate-core.jar", []byte("jar"))

	tests := []struct {
		name  string
		paths []string
		want  []string
	}{
		{
			name:  "empty input",
			paths: nil,
			want:  []string{},
		},
		{
			name:  "signature directory matches without traversal",
			paths: []string{"/opt/wildfly/modules/system/layers/base"},
			want:  []string{"/opt/wildfly"},
		},
		{
			name:  "module jar walks up to signature",
			paths: []string{"/srv/eap/modules/system/layers/base/org/hibernate/main/hibernate-core.jar"},
			want:  []string{"/srv/eap"},
		},
		{
			name:  "no matching ancestor is discarded",
			paths: []string{"/a/b/c", "/opt/wildfly/jboss-modules.jar"},
			want:  []string{},
		},
		{
			name: "duplicates collapse",
			paths: []string{
				"/opt/wildfly/modules/system/layers/base/org/jboss/as/server/main",
				"/opt/wildfly/modules/system/layers/base/org/jboss/as/server/main",
				"/opt/wildfly/modules/system/layers/base/org/jboss",
			},
			want: []string{"/opt/wildfly"},
		},
		{
			name:  "signature-shaped path that does not exist",
			paths: []string{"/ghost/modules/system/layers/base/x.jar"},
			want:  []string{},
		},
	}

	loc := NewLocator(fs, Signature{}, nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := loc.Locate(context.Background(), tt.paths)
			if err != nil {
				t.Fatalf("Locate() error = %v", err)
			}
			assertRoots(t, got.Sorted(), tt.want)
		})
	}
}

func TestLocator_ZeroTraversalStatsOnce(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.AddDir("/opt/wildfly/modules/system/layers/base")

	loc := NewLocator(fs, DefaultSignature(), nil)
	if _, err := loc.Locate(context.Background(), []string{"/opt/wildfly/modules/system/layers/base"}); err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	if fs.StatCalls() != 1 {
		t.Errorf("StatCalls() = %d, want 1", fs.StatCalls())
	}
}

func TestLocator_CustomSignature(t *testing.T) {
	fs := core.NewMockFileSystem()
	fs.SetFile("/opt/tomcat/lib/catalina.jar", []byte("jar"))

	sig, err := ParseSignature("lib")
	if err != nil {
		t.Fatal(err)
	}

	got, err := NewLocator(fs, sig, nil).Locate(context.Background(), []string{"/opt/tomcat/lib/catalina.jar"})
	if err != nil {
		t.Fatalf("Locate() error = %v", err)
	}
	assertRoots(t, got.Sorted(), []string{"/opt/tomcat"})
}

func TestLocator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLocator(core.NewMockFileSystem(), Signature{}, nil).Locate(ctx, []string{"/opt/x"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Locate() error = %v, want context.Canceled", err)
	}
}

func assertRoots(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("roots = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("roots[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
