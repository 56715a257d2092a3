package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsAndRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://pantry@localhost/pantry")
	t.Setenv("JWT_SECRET_KEY", "s3cret")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 60*time.Minute, cfg.TokenExpiry)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.TelegramEnabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://pantry@localhost/pantry")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("DB_TIMEOUT_SEC", "2")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, int64(-100200), cfg.TelegramChatID)
	assert.True(t, cfg.TelegramEnabled())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := LoadConfig("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}

func TestLoadConfig_File(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "from-env")
	path := filepath.Join(t.TempDir(), "pantry.env")
	require.NoError(t, os.WriteFile(path, []byte("DATABASE_URL=postgres://file/pantry\nJWT_SECRET_KEY=from-file\nRATE_LIMIT_MAX_REQUESTS=7\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "postgres://file/pantry", cfg.DatabaseURL)
	assert.Equal(t, "from-env", cfg.JWTSecretKey)
	assert.Equal(t, 7, cfg.RateLimitMaxRequests)
}

func TestLoadMigrateConfig_OnlyNeedsDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://pantry@localhost/pantry")
	t.Setenv("JWT_SECRET_KEY", "")
	t.Setenv("MIGRATIONS_DIR", "/srv/sql")

	cfg, err := LoadMigrateConfig("")
	require.NoError(t, err)
	assert.Equal(t, "/srv/sql", cfg.MigrationsDir)

	_, err = LoadConfig("")
	assert.Error(t, err)
}
