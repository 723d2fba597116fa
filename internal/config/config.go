// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every runtime setting of the server.
type Config struct {
	// HTTP Server
	Port               string
	StaticCacheSeconds int

	// Database
	DBPath string

	// Sessions and login
	JWTSecret        string
	SessionTTL       time.Duration
	LoginMaxAttempts int
	LoginLockout     time.Duration
	SecureCookies    bool

	// Logging
	LogLevel  string
	LogFormat string

	// AMQP fan-out of committed log entries. Disabled when AMQPURL is empty.
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// Load reads the configuration from environment variables, applying defaults.
// Call godotenv.Load first to pick up a .env file.
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		StaticCacheSeconds: getEnvInt("STATIC_CACHE_SECONDS", 3600),

		DBPath: getEnv("DB_PATH", "./data/konta.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		SessionTTL:       getEnvDuration("SESSION_TTL", 24*time.Hour),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 15*time.Minute),
		SecureCookies:    getEnvBool("SECURE_COOKIES", false),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AMQPURL:        getEnv("AMQP_URL", ""),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "konta"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "ledger.events"),
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if c.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	} else if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT_SECRET must be at least 16 characters")
	}

	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if c.LoginMaxAttempts < 0 {
		errors = append(errors, fmt.Sprintf("invalid login max attempts %d: must not be negative", c.LoginMaxAttempts))
	}
	if c.LoginMaxAttempts > 0 && c.LoginLockout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid login lockout %v: must be positive", c.LoginLockout))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.StaticCacheSeconds < 0 {
		errors = append(errors, fmt.Sprintf("invalid static cache seconds %d: must not be negative", c.StaticCacheSeconds))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
