package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "\t", cfg.Sync.Delimiter)
	assert.Equal(t, "NODE", cfg.Sync.NodeKeywords)
	assert.Equal(t, "gsa", cfg.Sync.InternalPrefix)
	assert.Equal(t, 600, cfg.Sync.TTLSeconds)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	env := "SYNC_TTL_SECONDS=30\nSYNC_NODE_KEYWORDS=NODE,GRID_PLANE\nSERVER_PORT=9090\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("SYNC_TTL_SECONDS")
		os.Unsetenv("SYNC_NODE_KEYWORDS")
		os.Unsetenv("SERVER_PORT")
	})

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.Sync.TTLSeconds)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"NODE", "GRID_PLANE"}, cfg.Sync.CacheOptions().NodeKeywords)
}
