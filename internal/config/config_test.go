package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	for k, v := range map[string]string{
		"USERSVC_PRIMARY.ENV":                 "development",
		"USERSVC_SERVER.PORT":                 "8080",
		"USERSVC_SERVER.READ_TIMEOUT":         "30",
		"USERSVC_SERVER.WRITE_TIMEOUT":        "30",
		"USERSVC_SERVER.IDLE_TIMEOUT":         "60",
		"USERSVC_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000",
		"USERSVC_DATABASE.HOST":               "localhost",
		"USERSVC_DATABASE.PORT":               "5432",
		"USERSVC_DATABASE.USER":               "postgres",
		"USERSVC_DATABASE.PASSWORD":           "p@ss:word",
		"USERSVC_DATABASE.NAME":               "users",
		"USERSVC_DATABASE.SSL_MODE":           "disable",
		"USERSVC_DATABASE.MAX_OPEN_CONNS":     "25",
		"USERSVC_DATABASE.MAX_IDLE_CONNS":     "5",
		"USERSVC_DATABASE.CONN_MAX_LIFETIME":  "300",
		"USERSVC_DATABASE.CONN_MAX_IDLE_TIME": "300",
		"USERSVC_REDIS.ADDRESS":               "localhost:6379",
	} {
		t.Setenv(k, v)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "development", cfg.Observability.Environment)
	assert.True(t, cfg.Observability.HealthCheckEnabled("database"))

	assert.Zero(t, cfg.Server.RateLimit.RequestsPerSecond)
	assert.Equal(t, DefaultRateLimitExpiry, cfg.Server.RateLimit.ExpiresIn)
}

func TestLoadConfig_PartialObservabilityKeepsDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USERSVC_OBSERVABILITY.LOGGING.LEVEL", "warn")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Observability.Logging.Level)
	assert.Equal(t, 5*time.Second, cfg.Observability.HealthChecks.Timeout)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USERSVC_REDIS.ADDRESS", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "config validation failed")
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("USERSVC_OBSERVABILITY.LOGGING.LEVEL", "loud")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid logging level")
}

func TestDatabaseDSN_EscapesPassword(t *testing.T) {
	dsn := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "app",
		Password: "p@ss:word",
		Name:     "users",
		SSLMode:  "disable",
	}.DSN()

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/users?sslmode=disable", dsn)
}

func TestObservability_GetLogLevel(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	cfg.Logging.Level = ""

	cfg.Environment = "production"
	assert.Equal(t, "info", cfg.GetLogLevel())

	cfg.Environment = "local"
	assert.Equal(t, "debug", cfg.GetLogLevel())

	cfg.Logging.Level = "error"
	assert.Equal(t, "error", cfg.GetLogLevel())
}

func TestObservability_HealthCheckEnabled(t *testing.T) {
	cfg := DefaultObservabilityConfig()
	assert.True(t, cfg.HealthCheckEnabled("redis"))
	assert.False(t, cfg.HealthCheckEnabled("kafka"))

	cfg.HealthChecks.Enabled = false
	assert.False(t, cfg.HealthCheckEnabled("database"))
}
