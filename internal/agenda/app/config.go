package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/teyroberto/agenda/pkg/jwtx"
)

type Config struct {
	JWTSecret string        // Required: shared secret for signing session tokens
	Issuer    string        // Optional: issuer claim for tokens (default: agenda)
	TokenTTL  time.Duration // Optional: session token lifetime (default: 30m)

	DatabaseFile string   // Optional: path to SQLite database file (default: ./agenda.db)
	CORSOrigins  []string // Optional: allowed CORS origins (default: *)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("AGENDA_JWT_SECRET"),
		Issuer:              getEnvOrDefault("AGENDA_ISSUER", "agenda"),
		TokenTTL:            getEnvDurationOrDefault("AGENDA_TOKEN_TTL", jwtx.DefaultSessionTTL),
		DatabaseFile:        getEnvOrDefault("AGENDA_DATABASE_FILE", "agenda.db"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Comma-separated list, e.g. "https://a.example,https://b.example"
	if origins := os.Getenv("AGENDA_CORS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Accepts duration strings (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
