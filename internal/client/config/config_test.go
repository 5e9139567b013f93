package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = append([]string{"examdesk"}, args...)
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cli.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"server_endpoint_addr": "exams.local:7000",
		"delivery_delay": "2s",
		"download_dir": "/srv/docs",
		"history_file": "desk.db"
	}`), 0o600))

	tests := []struct {
		name string
		args []string
		want func(c *Config)
	}{
		{name: "defaults", want: func(*Config) {}},
		{
			name: "json file",
			args: []string{"-c", file},
			want: func(c *Config) {
				c.ServerEndpointAddr = "exams.local:7000"
				c.DeliveryDelay = 2 * time.Second
				c.DownloadDir = "/srv/docs"
				c.HistoryFile = "desk.db"
			},
		},
		{
			name: "flags win over json",
			args: []string{"-config", file, "-a", "10.0.0.5:50051", "-timeout", "3s", "-db", "/tmp/h.db", "-http", "http://10.0.0.5:8080"},
			want: func(c *Config) {
				c.ServerEndpointAddr = "10.0.0.5:50051"
				c.HTTPBaseURL = "http://10.0.0.5:8080"
				c.CallTimeout = 3 * time.Second
				c.DeliveryDelay = 2 * time.Second
				c.DownloadDir = "/srv/docs"
				c.HistoryFile = "/tmp/h.db"
			},
		},
		{
			name: "delivery delay flag",
			args: []string{"-delivery-delay", "0s", "-o", "out"},
			want: func(c *Config) {
				c.DeliveryDelay = 0
				c.DownloadDir = "out"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			want := defaults()
			tt.want(want)

			got := LoadConfig()
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestLoadConfig_Panics(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))

	for name, args := range map[string][]string{
		"bad duration flag": {"-timeout", "soon"},
		"invalid json":      {"-c", bad},
		"missing file":      {"-c", filepath.Join(dir, "absent.json")},
	} {
		t.Run(name, func(t *testing.T) {
			withArgs(t, args...)
			assert.Panics(t, func() { LoadConfig() })
		})
	}
}
