package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAML(t *testing.T) {
	path := write(t, "dfacheck.yaml", `
log_level: debug
server:
  address: ":9090"
cache:
  backend: redis
  redis:
    address: "redis:6379"
    ttl: 10m
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Server.Metrics, "unset fields keep defaults")
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Address)
	assert.Equal(t, 10*time.Minute, cfg.Cache.Redis.TTL)
	assert.Equal(t, "dfacheck:verdict:", cfg.Cache.Redis.Prefix)
}

func TestLoad_JSON(t *testing.T) {
	path := write(t, "dfacheck.json", `{"mcp": {"transport": "sse", "port": 7000}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sse", cfg.MCP.Transport)
	assert.Equal(t, 7000, cfg.MCP.Port)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(write(t, "bad.yaml", "cache: [oops"))
	assert.Error(t, err)

	_, err = Load(write(t, "enum.yaml", "cache:\n  backend: memcached\n"))
	assert.ErrorContains(t, err, "memcached")
}
