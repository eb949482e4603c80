package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_FILE", "TELEGRAM_TOKEN", "DATABASE_URL", "HTTP_ADDR", "REPORT_INTERVAL_HOURS", "REPORT_DAY", "REPORT_TIME", "MONTH_LOCALE", "DEFAULT_RANGE"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "task_tracker.db", cfg.DatabaseURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 168*time.Hour, cfg.ReportInterval)
	assert.Empty(t, cfg.ReportDay)
	assert.Equal(t, "09:00", cfg.ReportTime)
	assert.Equal(t, "en", cfg.MonthLocale)
	assert.Equal(t, "30", cfg.DefaultRange)
	assert.False(t, cfg.BotEnabled())
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", " token ")
	t.Setenv("DATABASE_URL", "data/app.db")
	t.Setenv("REPORT_INTERVAL_HOURS", "12")
	t.Setenv("MONTH_LOCALE", "es-MX")
	t.Setenv("REPORT_DAY", " Monday ")
	t.Setenv("REPORT_TIME", "07:30")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "token", cfg.TelegramToken)
	assert.True(t, cfg.BotEnabled())
	assert.Equal(t, "data/app.db", cfg.DatabaseURL)
	assert.Equal(t, 12*time.Hour, cfg.ReportInterval)
	assert.Equal(t, "es-MX", cfg.MonthLocale)
	assert.Equal(t, "monday", cfg.ReportDay)
	assert.Equal(t, "07:30", cfg.ReportTime)
}

func TestLoad_FileWithEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
database_url: file.db
http_addr: ":9090"
report_interval_hours: "24"
default_range: "90"
report_day: daily
`), 0o644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("HTTP_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file.db", cfg.DatabaseURL)
	assert.Equal(t, ":7070", cfg.HTTPAddr)
	assert.Equal(t, 24*time.Hour, cfg.ReportInterval)
	assert.Equal(t, "90", cfg.DefaultRange)
	assert.Equal(t, "daily", cfg.ReportDay)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("http_addr: [unterminated"), 0o644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load()
	assert.Error(t, err)
}

func TestParseInterval(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseInterval(""))
	assert.Equal(t, time.Duration(0), parseInterval("-3"))
	assert.Equal(t, time.Duration(0), parseInterval("abc"))
	assert.Equal(t, 90*time.Minute, parseInterval("1.5"))
}
