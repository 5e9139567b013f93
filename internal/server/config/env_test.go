package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("EXAMDESK_DATABASE_DSN", "postgres://env")
	t.Setenv("EXAMDESK_SESSION_TTL", "20m")
	t.Setenv("EXAMDESK_REDIS_DB", "3")
	t.Setenv("EXAMDESK_SUPERUSER_KINDS", "practice_test")
	t.Setenv("EXAMDESK_ADMIN_USER", "root")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "postgres://env", cfg.DatabaseDSN)
	assert.Equal(t, 20*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, []string{"practice_test"}, cfg.SuperUserKinds)
	assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
	assert.Equal(t, "root", cfg.BootstrapAdminUser)
}

func TestParseEnv_DotenvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "server.env")
	require.NoError(t, os.WriteFile(path, []byte("EXAMDESK_GATEWAY_KEY_ID=rzp_live_x\nEXAMDESK_HTTP_ADDR=:9999\n"), 0o600))
	os.Args = []string{"testbin", "-env", path}

	// process environment wins over the file
	t.Setenv("EXAMDESK_HTTP_ADDR", ":7777")
	// godotenv sets variables it loads; clear after the test
	t.Setenv("EXAMDESK_GATEWAY_KEY_ID", "")
	require.NoError(t, os.Unsetenv("EXAMDESK_GATEWAY_KEY_ID"))

	cfg := &Config{}
	parseEnv(cfg)

	assert.Equal(t, "rzp_live_x", cfg.GatewayKeyID)
	assert.Equal(t, ":7777", cfg.EndpointAddrHTTP)
}

func TestParseEnv_BadValuePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	t.Setenv("EXAMDESK_ORDER_RATE_LIMIT", "many")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
