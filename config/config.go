package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Dosada05/ohm-scoreboard/utils"
	"github.com/joho/godotenv"
)

// R2Config holds Cloudflare R2 credentials for leaderboard snapshots.
type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicBaseURL   string
}

// Enabled reports whether any R2 setting was provided.
func (c R2Config) Enabled() bool {
	return c.AccountID != "" || c.AccessKeyID != "" || c.SecretAccessKey != "" || c.BucketName != "" || c.PublicBaseURL != ""
}

func (c R2Config) complete() bool {
	return c.AccountID != "" && c.AccessKeyID != "" && c.SecretAccessKey != "" && c.BucketName != "" && c.PublicBaseURL != ""
}

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	ServerPort          int
	DatabaseURL         string // пусто: документы хранятся в памяти
	DBConnectTimeout    time.Duration
	LeaderboardFallback bool
	CORSAllowedOrigins  []string
	AdminJWTSecret      string
	LogLevel            slog.Level
	R2                  R2Config
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the configuration from the process environment only.
func FromEnv() (*Config, error) {
	port, err := strconv.Atoi(utils.GetEnvOrDefault("PORT", "3000"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}

	timeout, err := time.ParseDuration(utils.GetEnvOrDefault("DB_CONNECT_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT environment variable: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("DB_CONNECT_TIMEOUT must be positive, got %s", timeout)
	}

	fallback, err := strconv.ParseBool(utils.GetEnvOrDefault("LEADERBOARD_FALLBACK", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEADERBOARD_FALLBACK environment variable: %w", err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(utils.GetEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL environment variable: %w", err)
	}

	r2 := R2Config{
		AccountID:       utils.GetEnvOrDefault("R2_ACCOUNT_ID", ""),
		AccessKeyID:     utils.GetEnvOrDefault("R2_ACCESS_KEY_ID", ""),
		SecretAccessKey: utils.GetEnvOrDefault("R2_SECRET_ACCESS_KEY", ""),
		BucketName:      utils.GetEnvOrDefault("R2_BUCKET_NAME", ""),
		PublicBaseURL:   utils.GetEnvOrDefault("R2_PUBLIC_BASE_URL", ""),
	}
	if r2.Enabled() && !r2.complete() {
		return nil, errors.New("R2_ACCOUNT_ID, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_BUCKET_NAME and R2_PUBLIC_BASE_URL must be set together")
	}

	cfg := &Config{
		ServerPort:          port,
		DatabaseURL:         utils.GetEnvOrDefault("DATABASE_URL", ""),
		DBConnectTimeout:    timeout,
		LeaderboardFallback: fallback,
		CORSAllowedOrigins:  splitList(utils.GetEnvOrDefault("CORS_ALLOWED_ORIGINS", "*")),
		AdminJWTSecret:      utils.GetEnvOrDefault("ADMIN_JWT_SECRET", ""),
		LogLevel:            level,
		R2:                  r2,
	}

	return cfg, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
