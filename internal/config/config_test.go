package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_TYPE", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("TIMEZONE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "data/synapz.db", cfg.DSN())
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/synapz")
	t.Setenv("TOKEN_TTL", "36h")
	t.Setenv("NOTIFICATION_START_HOUR", "6")
	t.Setenv("NOTIFICATION_END_HOUR", "99")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("ENABLE_SCHEDULER", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/synapz", cfg.DSN())
	assert.Equal(t, 36*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 6, cfg.NotificationStartHour)
	assert.Equal(t, DefaultNotificationEndHour, cfg.NotificationEndHour)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.False(t, cfg.EnableScheduler)
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "x")
	t.Setenv("DB_TYPE", "mysql")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err = Load()
	assert.Error(t, err)
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("X_TTL", "3d")
	assert.Equal(t, 72*time.Hour, getEnvDuration("X_TTL", time.Hour))
	t.Setenv("X_TTL", "garbage")
	assert.Equal(t, time.Hour, getEnvDuration("X_TTL", time.Hour))
}
