package config

import (
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	// Server
	HTTPAddr  string
	RedisAddr string
	RedisPass string

	// Remote ERP backend
	ERPBaseURL     string
	ERPCSRFToken   string
	RequestTimeout time.Duration

	// Route guard
	LoginPath string

	// Snapshot keys live under this prefix in Redis
	SnapshotKeyPrefix string
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:  getEnv("HTTP_ADDR", ":8080"),
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass: getEnv("REDIS_PASS", ""),

		ERPBaseURL:     getEnv("ERP_BASE_URL", "http://localhost:8000"),
		ERPCSRFToken:   getEnv("ERP_CSRF_TOKEN", ""),
		RequestTimeout: getEnvDuration("ERP_REQUEST_TIMEOUT_SECONDS", 30) * time.Second,

		LoginPath: getEnv("LOGIN_PATH", "/login"),

		SnapshotKeyPrefix: getEnv("SNAPSHOT_KEY_PREFIX", "lenddesk:auth"),
	}
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback int64) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return time.Duration(n)
		}
	}
	return time.Duration(fallback)
}
