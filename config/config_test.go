package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfig(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_USER", "recipes")
	t.Setenv("DB_PASSWORD", "postgres")
	t.Setenv("DB_NAME", "recipebox")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("READ_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "recipes", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 3*time.Second, cfg.ReadTimeout)
}

func TestLoadConfigWithDefaults(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "test-secret")
	for _, key := range []string{"DB_HOST", "DB_PORT", "DB_DRIVER", "SERVER_PORT", "REDIS_URL", "REDIS_HOST", "LOG_LEVEL", "GIN_MODE"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RedisEnabled())
	assert.Equal(t, 60, cfg.RateLimitCreatePerHour)
}

func TestLoadConfigReadsDockerSecrets(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "")
	dir := os.Getenv("SECRETS_DIR")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "jwt_secret"), []byte("from-secret\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.JWTSecret)
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	setTestEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidateConfigProduction(t *testing.T) {
	cfg := &Config{
		ServerPort:             "8080",
		DBDriver:               "postgres",
		DBHost:                 "db",
		DBName:                 "recipebox",
		JWTSecret:              "short",
		LogLevel:               "info",
		GinMode:                "release",
		RateLimitCreatePerHour: 1,
		RateLimitModifyPerHour: 1,
	}

	err := ValidateConfig(cfg, Production)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.Contains(t, err.Error(), "at least 32 characters")

	assert.NoError(t, ValidateConfig(cfg, Development))
}

func TestValidateConfigRejectsUnknownDriver(t *testing.T) {
	cfg := &Config{
		ServerPort:             "8080",
		DBDriver:               "mysql",
		JWTSecret:              "secret",
		LogLevel:               "info",
		GinMode:                "debug",
		RateLimitCreatePerHour: 1,
		RateLimitModifyPerHour: 1,
	}
	err := ValidateConfig(cfg, Test)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_DRIVER")
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, Production, ParseEnvironment("prod"))
	assert.Equal(t, Test, ParseEnvironment(" TEST "))
	assert.Equal(t, Development, ParseEnvironment(""))
	assert.Equal(t, Development, ParseEnvironment("staging"))
}
