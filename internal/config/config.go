package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server  ServerConfig
	MongoDB MongoDBConfig
	Auth    AuthConfig
	Alerts  AlertsConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port     string
	LogLevel string
}

// MongoDBConfig holds settings for MongoDB.
type MongoDBConfig struct {
	URI    string
	DBName string
}

// AuthConfig holds token signing settings and the seed password for the
// built-in accounts.
type AuthConfig struct {
	JWTSecret       string
	TokenTTL        time.Duration
	DefaultPassword string
}

// AlertsConfig holds the low-stock scan schedule and webhook target.
type AlertsConfig struct {
	CronSchedule string
	WebhookURL   string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	tokenTTL, err := time.ParseDuration(getenvWithDefault("JWT_TOKEN_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TOKEN_TTL: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:     getenvWithDefault("APP_PORT", "8080"),
			LogLevel: getenvWithDefault("LOG_LEVEL", "info"),
		},
		MongoDB: MongoDBConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "mahameru_inventory"),
		},
		Auth: AuthConfig{
			JWTSecret:       os.Getenv("JWT_SECRET"),
			TokenTTL:        tokenTTL,
			DefaultPassword: getenvWithDefault("SEED_USER_PASSWORD", "mahameru123"),
		},
		Alerts: AlertsConfig{
			CronSchedule: getenvWithDefault("ALERT_CRON_SCHEDULE", "0 7 * * *"),
			WebhookURL:   os.Getenv("ALERT_WEBHOOK_URL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must be provided")
	}
	if c.MongoDB.DBName == "" {
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("JWT_TOKEN_TTL must be positive")
	}

	if c.Alerts.CronSchedule == "" {
		return errors.New("ALERT_CRON_SCHEDULE must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
