package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("APP_TIMEZONE", "")
	t.Setenv("TRUST_PROXY", "")
	t.Setenv("RATE_LIMIT_IDLE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "", cfg.Redis.Addr)
	assert.Equal(t, 10*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, time.Hour, cfg.Cron.AttendanceSummaryEvery)
	assert.False(t, cfg.App.TrustProxy)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL)
	assert.Equal(t, time.Local, cfg.Location())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:5173, https://hr.example.com")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("CRON_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, []string{"http://localhost:5173", "https://hr.example.com"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.False(t, cfg.Cron.Enabled)
}

func TestLoad_Timezone(t *testing.T) {
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Jakarta", cfg.Location().String())

	t.Setenv("APP_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.ErrorContains(t, err, "APP_TIMEZONE")
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-port")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid DB_PORT")
}

func TestValidate_ProductionRequiresPassword(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")
	_, err := Load()
	assert.ErrorContains(t, err, "DB_PASSWORD is required")
}

func TestDatabaseURL(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "hr", Password: "secret", Name: "hrms", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://hr:secret@db:5433/hrms?sslmode=disable", cfg.DatabaseURL())
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for level, want := range cases {
		cfg := &Config{App: AppConfig{LogLevel: level}}
		assert.Equal(t, want, cfg.SlogLevel(), level)
	}
}
