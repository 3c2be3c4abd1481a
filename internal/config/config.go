package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration, loaded from the environment with
// an optional .env file for local development.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// DatabasePath is the SQLite file backing the embedded store.
	DatabasePath string

	// RedisURL enables the dashboard cache when set.
	RedisURL string

	JWTSecret  string
	SessionTTL time.Duration

	// ModelPath points at the serialized fatigue model artifact.
	ModelPath string

	MaxUploadMB int64
}

// LoadConfig reads configuration from environment variables. A missing .env
// file is not an error; a missing JWT secret outside development is.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Environment:  getEnv("ENVIRONMENT", "development"),
		LogLevel:     parseLogLevel(getEnv("LOG_LEVEL", "info")),
		DatabasePath: getEnv("DATABASE_PATH", "athlete-monitor.db"),
		RedisURL:     getEnv("REDIS_URL", ""),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		ModelPath:    getEnv("MODEL_PATH", "fatigue_model.json"),
		MaxUploadMB:  getEnvInt64("MAX_UPLOAD_MB", 8),
	}

	ttlMinutes := getEnvInt64("SESSION_TTL_MINUTES", 12*60)
	cfg.SessionTTL = time.Duration(ttlMinutes) * time.Minute

	if cfg.JWTSecret == "" {
		if cfg.Environment == "production" {
			return nil, fmt.Errorf("JWT_SECRET is required in production")
		}
		cfg.JWTSecret = "dev-only-secret"
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
