package device

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	present := filepath.Join(dir, "version")
	require.NoError(t, os.WriteFile(present, []byte("NVRM version"), 0o644))
	missing := filepath.Join(dir, "absent")

	tests := []struct {
		name    string
		mode    string
		probe   string
		want    bool
		wantErr bool
	}{
		{name: "auto with driver", mode: "auto", probe: present, want: true},
		{name: "auto without driver", mode: "auto", probe: missing, want: false},
		{name: "empty means auto", mode: "", probe: present, want: true},
		{name: "forced on", mode: "TRUE", probe: missing, want: true},
		{name: "forced off", mode: "false", probe: present, want: false},
		{name: "unknown", mode: "maybe", probe: present, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := detect(tt.mode, tt.probe)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDescribeHost(t *testing.T) {
	t.Parallel()

	info := DescribeHost()
	require.NotEmpty(t, info.OS)
	require.NotEmpty(t, info.CPU)
}
