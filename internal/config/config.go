package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config is the process configuration, read once at startup and passed down
// explicitly; nothing else reads the environment.
type Config struct {
	Port     string
	DBPath   string
	BasePath string

	LogLevel  string
	LogFormat string

	BcryptCost    int
	SessionTTL    time.Duration
	SweepInterval time.Duration

	AdminUsername string
	AdminPassword string

	SentryDSN string
	AppEnv    string
}

// Load reads configuration from a .env file (if present) and the
// environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:          envOrDefault("VIMANA_PORT", "8081"),
		DBPath:        envOrDefault("VIMANA_DB_PATH", "vimana.db"),
		BasePath:      envOrDefault("VIMANA_BASE_PATH", "/"),
		LogLevel:      envOrDefault("VIMANA_LOG_LEVEL", "info"),
		LogFormat:     envOrDefault("VIMANA_LOG_FORMAT", "text"),
		BcryptCost:    envIntOrDefault("VIMANA_BCRYPT_COST", bcrypt.DefaultCost),
		SessionTTL:    time.Duration(envIntOrDefault("VIMANA_SESSION_TTL_HOURS", 24)) * time.Hour,
		SweepInterval: time.Duration(envIntOrDefault("VIMANA_SESSION_SWEEP_MINUTES", 60)) * time.Minute,
		AdminUsername: os.Getenv("VIMANA_ADMIN_USERNAME"),
		AdminPassword: os.Getenv("VIMANA_ADMIN_PASSWORD"),
		SentryDSN:     os.Getenv("SENTRY_DSN"),
		AppEnv:        envOrDefault("APP_ENV", "development"),
	}
}

func envOrDefault(name, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envIntOrDefault(name string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
