package app

import (
	"os"
	"strconv"
	"time"

	"github.com/taskhubhq/taskhub/pkg/jwtx"
)

type Config struct {
	ListenAddr string // HTTP bind address (default: :8080)
	Issuer     string // Issuer claim stamped into session tokens (default: taskhub-auth)

	TokenTTL        time.Duration // Lifetime of issued session tokens (default: 30m)
	TokenSecretFile string        // Path to the HS256 signing secret file, generated on first boot (default: ./token_secret)
	DatabaseFile    string        // Path to SQLite database file (default: ./auth.db)
	PepperFile      string        // Path to the password hashing pepper file, generated on first boot (default: ./pepper)

	SMTPHost     string // SMTP server host; empty switches mail delivery to the log
	SMTPPort     string // SMTP server port (default: 465)
	SMTPUsername string // Optional: SMTP auth username
	SMTPPassword string // Optional: SMTP auth password
	SMTPFrom     string // From address on outbound mail

	BootstrapEmail    string // Optional: email of the manager account seeded on boot
	BootstrapName     string // Optional: display name of the seeded manager
	BootstrapPassword string // Optional: password of the seeded manager

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Expired-record sweep interval (default: 1h)
}

func LoadConfig() Config {
	return Config{
		ListenAddr:      getEnvOrDefault("AUTH_LISTEN_ADDR", ":8080"),
		Issuer:          getEnvOrDefault("AUTH_ISSUER", "taskhub-auth"),
		TokenTTL:        getEnvDurationOrDefault("AUTH_TOKEN_TTL", jwtx.DefaultSessionTokenTTL),
		TokenSecretFile: getEnvOrDefault("AUTH_TOKEN_SECRET_FILE", "token_secret"),
		DatabaseFile:    getEnvOrDefault("AUTH_DATABASE_FILE", "auth.db"),
		PepperFile:      getEnvOrDefault("AUTH_PEPPER_FILE", "pepper"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvOrDefault("SMTP_PORT", "465"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:     getEnvOrDefault("SMTP_FROM", "no-reply@taskhub.local"),

		BootstrapEmail:    os.Getenv("AUTH_BOOTSTRAP_EMAIL"),
		BootstrapName:     getEnvOrDefault("AUTH_BOOTSTRAP_NAME", "TaskHub Admin"),
		BootstrapPassword: os.Getenv("AUTH_BOOTSTRAP_PASSWORD"),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration syntax first (e.g. "1h", "30m", "90s").
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// A bare integer reads as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
