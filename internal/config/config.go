package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"kanban/internal/logger"

	"github.com/joho/godotenv"
)

const (
	defaultDatabaseURL   = "./instance/kanban.sqlite"
	defaultSessionSecret = "dev"
)

type Config struct {
	AppPort       string
	DatabaseURL   string
	SessionSecret string
	SessionTTL    time.Duration
	CookieSecure  bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	AuthRateLimit  int
	AuthRateWindow time.Duration

	// per-user limit on task writes, only enforced with Redis
	TaskWriteLimit  int
	TaskWriteWindow time.Duration

	LogLevel string
	LogJSON  bool
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		AppPort:        envString("APP_PORT", "8080"),
		DatabaseURL:    envString("DATABASE_URL", defaultDatabaseURL),
		SessionSecret:  envString("SESSION_SECRET", defaultSessionSecret),
		SessionTTL:     time.Duration(envInt("SESSION_TTL_HOURS", 24)) * time.Hour,
		CookieSecure:   envBool("COOKIE_SECURE", false),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        envInt("REDIS_DB", 0),
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 20),
		AuthRateWindow: time.Duration(envInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:       strings.ToLower(envString("LOG_LEVEL", "info")),
		LogJSON:        envBool("LOG_JSON", false),

		TaskWriteLimit:  envInt("TASK_WRITE_LIMIT", 120),
		TaskWriteWindow: time.Duration(envInt("TASK_WRITE_WINDOW_SECONDS", 60)) * time.Second,
	}

	if cfg.SessionSecret == defaultSessionSecret {
		// same default as a fresh dev checkout; must be overridden in production
		logger.Warn("SESSION_SECRET is not set, using insecure default")
	}

	return cfg
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		logger.Warn("ignoring invalid integer env value", "key", key, "value", v)
		return def
	}
	return n
}

func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
