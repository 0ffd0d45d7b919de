package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "muse_session", cfg.Session.CookieName)
	assert.Equal(t, 336, cfg.Session.TTLHours)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.False(t, cfg.App.TrustProxy)
}

func TestLoadConfig_ReadsFileAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=9000\nDB_NAME=muse\nCORS_ALLOWED_ORIGINS=http://a.test, http://b.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_NAME", "muse_test")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, "muse_test", cfg.Database.Name)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORS.AllowedOrigins)
}
