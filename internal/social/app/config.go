package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer        string // Issuer claim for session tokens (default: tether-social)
	SessionSecret string // Required: HS256 signing secret, at least 32 bytes

	DatabaseFile       string        // Path to SQLite database file (default: ./social.db)
	DefaultCountryCode string        // Country code for national phone numbers (default: +61)
	SessionTTL         time.Duration // Session token lifetime (default: 7 days)
	InviteTTL          time.Duration // Default invite lifetime (default: 24h)

	Env                   string        // Environment (dev, staging, prod) (default: dev)
	LogLevel              string        // Log level (debug, info, warn, error) (default: info)
	LogFormat             string        // Log format (json, text) (default: json)
	Port                  int           // HTTP server port (default: 8080)
	ShutdownGracePeriod   time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval  time.Duration // Housekeeping interval (default: 1h)
	NotificationRetention time.Duration // How long read notifications are kept (default: 30 days)
}

func LoadConfig() Config {
	return Config{
		Issuer:             getEnvOrDefault("SOCIAL_ISSUER", "tether-social"),
		SessionSecret:      os.Getenv("SOCIAL_SESSION_SECRET"),
		DatabaseFile:       getEnvOrDefault("SOCIAL_DATABASE_FILE", "social.db"),
		DefaultCountryCode: getEnvOrDefault("SOCIAL_DEFAULT_COUNTRY_CODE", "+61"),
		SessionTTL:         getEnvDurationOrDefault("SOCIAL_SESSION_TTL", 7*24*time.Hour),
		InviteTTL:          getEnvDurationOrDefault("SOCIAL_INVITE_TTL", 24*time.Hour),

		Env:                   getEnvOrDefault("ENV", "dev"),
		LogLevel:              getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:             getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                  getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:   getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval:  getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
		NotificationRetention: getEnvDurationOrDefault("NOTIFICATION_RETENTION", 30*24*time.Hour),
	}
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

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
