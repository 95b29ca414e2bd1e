package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef" // 32 chars

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("NEXOTIME_DATABASE_URL", "postgres://localhost:5432/nexotime_test")
	t.Setenv("NEXOTIME_AUTH_JWT_SECRET", testSecret)
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)
	assert.Equal(t, 10080, cfg.Auth.RefreshTokenLifetimeMinutes)
	assert.Equal(t, 10, cfg.Auth.BCryptCost)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "UTC", cfg.Scheduler.Timezone)
}

func TestLoadEnvOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NEXOTIME_SERVER_PORT", "9090")
	t.Setenv("NEXOTIME_SERVER_LOG_LEVEL", "debug")
	t.Setenv("NEXOTIME_SCHEDULER_TIMEZONE", "Europe/Madrid")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "Europe/Madrid", cfg.Scheduler.Timezone)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing jwt secret",
			env: map[string]string{
				"NEXOTIME_DATABASE_URL": "postgres://localhost/db",
			},
		},
		{
			name: "jwt secret too short",
			env: map[string]string{
				"NEXOTIME_DATABASE_URL":    "postgres://localhost/db",
				"NEXOTIME_AUTH_JWT_SECRET": "tooshort",
			},
		},
		{
			name: "missing database url",
			env: map[string]string{
				"NEXOTIME_AUTH_JWT_SECRET": testSecret,
			},
		},
		{
			name: "invalid log level",
			env: map[string]string{
				"NEXOTIME_DATABASE_URL":     "postgres://localhost/db",
				"NEXOTIME_AUTH_JWT_SECRET":  testSecret,
				"NEXOTIME_SERVER_LOG_LEVEL": "verbose",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
