package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequireJWTSecret  bool
	RequireDBPassword bool
	MinSecretLength   int
}

var (
	// Environment-specific requirements
	requirements = map[Environment]ConfigRequirements{
		Development: {RequireJWTSecret: true},
		Test:        {RequireJWTSecret: true},
		CI:          {RequireJWTSecret: true},
		Production: {
			RequireJWTSecret:  true,
			RequireDBPassword: true,
			MinSecretLength:   32,
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the given environment
func ValidateConfig(cfg *Config, env Environment) error {
	reqs := requirements[env]

	var errs []string
	add := func(field, msg string) {
		errs = append(errs, ValidationError{Field: field, Message: msg}.Error())
	}

	if strings.TrimSpace(cfg.ServerPort) == "" {
		add("SERVER_PORT", "must not be empty")
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.DBHost == "" || cfg.DBName == "" {
			add("DB_HOST", "host and DB_NAME are required for postgres")
		}
		if reqs.RequireDBPassword && cfg.DBPassword == "" {
			add("DB_PASSWORD", "is required in "+string(env))
		}
	case "sqlite":
		if cfg.SQLitePath == "" {
			add("SQLITE_PATH", "is required for sqlite")
		}
	default:
		add("DB_DRIVER", "must be one of: postgres, sqlite")
	}

	if reqs.RequireJWTSecret && cfg.JWTSecret == "" {
		add("JWT_SECRET", "is required")
	}
	if reqs.MinSecretLength > 0 && cfg.JWTSecret != "" && len(cfg.JWTSecret) < reqs.MinSecretLength {
		add("JWT_SECRET", fmt.Sprintf("must be at least %d characters", reqs.MinSecretLength))
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		add("LOG_LEVEL", "must be one of: debug, info, warn, error")
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		add("GIN_MODE", "must be one of: debug, release, test")
	}

	if cfg.RateLimitCreatePerHour < 1 {
		add("RATE_LIMIT_CREATE_PER_HOUR", "must be at least 1")
	}
	if cfg.RateLimitModifyPerHour < 1 {
		add("RATE_LIMIT_MODIFY_PER_HOUR", "must be at least 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}
