package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort      string
	ServerHost      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	GinMode         string

	// Database configuration
	DBDriver      string // postgres | sqlite
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSSLMode     string
	SQLitePath    string
	MigrationsDir string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Identity provider token configuration
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// HTTP
	CORSAllowedOrigins []string

	// Logging
	LogLevel  string
	LogPretty bool

	// Rate limits, per owner per hour
	RateLimitCreatePerHour int
	RateLimitModifyPerHour int

	// Export archives
	S3BucketName string
	AWSRegion    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	if env == Development {
		// .env is optional; a missing file is not an error
		_ = godotenv.Load()
	}

	cfg := &Config{
		ServerPort:      get("SERVER_PORT", "8080"),
		ServerHost:      get("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:     getDuration("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:     getDuration("IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		GinMode:         strings.ToLower(get("GIN_MODE", defaultGinMode(env))),

		DBDriver:      strings.ToLower(get("DB_DRIVER", "postgres")),
		DBHost:        get("DB_HOST", "localhost"),
		DBPort:        get("DB_PORT", "5432"),
		DBUser:        get("DB_USER", "postgres"),
		DBPassword:    get("DB_PASSWORD", ""),
		DBName:        get("DB_NAME", "recipebox"),
		DBSSLMode:     get("DB_SSL_MODE", "disable"),
		SQLitePath:    get("SQLITE_PATH", "recipebox.db"),
		MigrationsDir: get("MIGRATIONS_DIR", "migrations"),

		RedisHost:     get("REDIS_HOST", ""),
		RedisPort:     get("REDIS_PORT", "6379"),
		RedisPassword: get("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		RedisURL:      get("REDIS_URL", ""),

		JWTSecret:   get("JWT_SECRET", ""),
		JWTIssuer:   get("JWT_ISSUER", ""),
		JWTAudience: get("JWT_AUDIENCE", ""),

		CORSAllowedOrigins: splitCSV(get("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),

		LogLevel:  strings.ToLower(get("LOG_LEVEL", "info")),
		LogPretty: getBool("LOG_PRETTY", env == Development),

		RateLimitCreatePerHour: getInt("RATE_LIMIT_CREATE_PER_HOUR", 60),
		RateLimitModifyPerHour: getInt("RATE_LIMIT_MODIFY_PER_HOUR", 120),

		S3BucketName: get("S3_BUCKET_NAME", ""),
		AWSRegion:    get("AWS_REGION", ""),
	}

	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}

	// Validate the configuration
	if err := ValidateConfig(cfg, env); err != nil {
		return nil, err
	}

	return cfg, nil
}

// RedisEnabled reports whether a redis endpoint has been configured.
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func defaultGinMode(env Environment) string {
	if env == Production {
		return "release"
	}
	return "debug"
}

// get reads key from the environment, then from a Docker secret named after
// the lowercased key, then falls back to def.
func get(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(key)); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	v := get(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := get(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getDuration(key string, def time.Duration) time.Duration {
	v := get(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// String renders the configuration without secrets, for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("addr=%s db=%s redis=%t s3=%t log=%s",
		c.ListenAddr(), c.DBDriver, c.RedisEnabled(), c.S3BucketName != "", c.LogLevel)
}
