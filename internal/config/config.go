package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	TelegramToken  string
	DatabaseURL    string
	HTTPAddr       string
	ReportInterval time.Duration
	// ReportDay is "daily", a weekday name, or empty to use ReportInterval.
	ReportDay    string
	ReportTime   string
	MonthLocale  string
	DefaultRange string
}

// fileConfig mirrors Config for the optional YAML file.
type fileConfig struct {
	TelegramToken       string `yaml:"telegram_token"`
	DatabaseURL         string `yaml:"database_url"`
	HTTPAddr            string `yaml:"http_addr"`
	ReportIntervalHours string `yaml:"report_interval_hours"`
	ReportDay           string `yaml:"report_day"`
	ReportTime          string `yaml:"report_time"`
	MonthLocale         string `yaml:"month_locale"`
	DefaultRange        string `yaml:"default_range"`
}

// BotEnabled reports whether a Telegram token was configured.
func (c Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

// Load reads configuration from an optional YAML file (CONFIG_FILE) and
// environment variables, environment taking precedence, with sane defaults.
func Load() (Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		var err error
		if file, err = readFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		TelegramToken:  pick("TELEGRAM_TOKEN", file.TelegramToken),
		DatabaseURL:    pick("DATABASE_URL", file.DatabaseURL),
		HTTPAddr:       pick("HTTP_ADDR", file.HTTPAddr),
		ReportInterval: parseInterval(pick("REPORT_INTERVAL_HOURS", file.ReportIntervalHours)),
		ReportDay:      strings.ToLower(pick("REPORT_DAY", file.ReportDay)),
		ReportTime:     pick("REPORT_TIME", file.ReportTime),
		MonthLocale:    pick("MONTH_LOCALE", file.MonthLocale),
		DefaultRange:   pick("DEFAULT_RANGE", file.DefaultRange),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "task_tracker.db"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}
	if cfg.ReportInterval == 0 {
		cfg.ReportInterval = 7 * 24 * time.Hour
	}
	if cfg.ReportTime == "" {
		cfg.ReportTime = "09:00"
	}
	if cfg.MonthLocale == "" {
		cfg.MonthLocale = "en"
	}
	if cfg.DefaultRange == "" {
		cfg.DefaultRange = "30"
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var file fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %q: %w", path, err)
	}
	return file, nil
}

func pick(envKey, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return strings.TrimSpace(fallback)
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}
