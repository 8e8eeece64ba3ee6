package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	require.NotNil(t, cfg)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "biobank_db", cfg.Database.Name)
	assert.Equal(t, 2000, cfg.Database.LockTimeoutMS)
	assert.Equal(t, 24, cfg.JWT.ExpirationHours)
	assert.Equal(t, "biobank-backend", cfg.JWT.Issuer)
	assert.Equal(t, "test-secret", cfg.JWT.Secret)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "biobank")
	t.Setenv("DB_NAME", "biobank_prod")
	t.Setenv("REDIS_SERVICE_HOST", "redis.internal")
	t.Setenv("REDIS_SERVICE_PORT", "6380")
	t.Setenv("ARCHIVE_BUCKET", "custody-archives")

	cfg := Load()

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5433, cfg.Database.Port)
	assert.Equal(t, "biobank", cfg.Database.User)
	assert.Equal(t, "biobank_prod", cfg.Database.Name)
	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, "custody-archives", cfg.Archive.Bucket)
}

func TestLoadIgnoresBadPort(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_PORT", "not-a-port")

	cfg := Load()
	assert.Equal(t, 5432, cfg.Database.Port)
}
