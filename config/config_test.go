package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"PORT", "DATABASE_URL", "DB_CONNECT_TIMEOUT", "LEADERBOARD_FALLBACK",
	"CORS_ALLOWED_ORIGINS", "ADMIN_JWT_SECRET", "LOG_LEVEL",
	"R2_ACCOUNT_ID", "R2_ACCESS_KEY_ID", "R2_SECRET_ACCESS_KEY", "R2_BUCKET_NAME", "R2_PUBLIC_BASE_URL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnvKeys {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.ServerPort)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 5*time.Second, cfg.DBConnectTimeout)
	assert.False(t, cfg.LeaderboardFallback)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.AdminJWTSecret)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.False(t, cfg.R2.Enabled())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://localhost/ohm?sslmode=disable")
	t.Setenv("DB_CONNECT_TIMEOUT", "2s")
	t.Setenv("LEADERBOARD_FALLBACK", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://ohm.example.com ,")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "boards")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example.com")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/ohm?sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, 2*time.Second, cfg.DBConnectTimeout)
	assert.True(t, cfg.LeaderboardFallback)
	assert.Equal(t, []string{"http://localhost:3000", "https://ohm.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "s3cret", cfg.AdminJWTSecret)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.R2.Enabled())
	assert.Equal(t, "boards", cfg.R2.BucketName)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value, wantErr string
	}{
		{"PORT", "abc", "invalid PORT"},
		{"PORT", "70000", "PORT must be between"},
		{"DB_CONNECT_TIMEOUT", "soon", "invalid DB_CONNECT_TIMEOUT"},
		{"DB_CONNECT_TIMEOUT", "-1s", "must be positive"},
		{"LEADERBOARD_FALLBACK", "maybe", "invalid LEADERBOARD_FALLBACK"},
		{"LOG_LEVEL", "loud", "invalid LOG_LEVEL"},
		{"R2_BUCKET_NAME", "only-bucket", "must be set together"},
	}

	for _, tc := range tests {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := FromEnv()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
