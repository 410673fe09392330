package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Alerts    AlertConfig
	Schedules ScheduleConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	DSN string
}

// AlertConfig holds the thresholds and notification options consumed by the
// evaluation jobs.
type AlertConfig struct {
	// WarningDays is the outer expiry window: batches expiring within this
	// many days raise a warning alert.
	WarningDays int
	// CriticalDays is the inner expiry window and must be strictly smaller
	// than WarningDays.
	CriticalDays int
	// LowStockThreshold is the inclusive quantity bound for low-stock alerts.
	LowStockThreshold int
	// WebhookURL, when set, enables the outbound webhook notifier. Empty
	// means notifications are logged only.
	WebhookURL string
	// NotifyLowStock controls whether low-stock alerts are also dispatched
	// through the notifier.
	NotifyLowStock bool
}

// ScheduleConfig holds the job cadences and the timezone the jobs evaluate
// calendar days in.
type ScheduleConfig struct {
	ExpiryCheck   string
	LowStockCheck string
	Timezone      string
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
		// Ignore the returned error here; missing .env files are acceptable
		// when configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("HTTP_PORT", "8080"),
		},
		Database: DatabaseConfig{
			DSN: getenvWithDefault("DATABASE_DSN",
				"host=localhost user=postgres password=postgres dbname=expiryx port=5432 sslmode=disable"),
		},
		Alerts: AlertConfig{
			WarningDays:       getenvInt("EXPIRY_WARNING_DAYS", 5),
			CriticalDays:      getenvInt("EXPIRY_CRITICAL_DAYS", 1),
			LowStockThreshold: getenvInt("LOW_STOCK_THRESHOLD", 5),
			WebhookURL:        os.Getenv("ALERT_WEBHOOK_URL"),
			NotifyLowStock:    getenvBool("NOTIFY_LOW_STOCK", false),
		},
		Schedules: ScheduleConfig{
			ExpiryCheck:   getenvWithDefault("EXPIRY_CHECK_SCHEDULE", "0 0,12 * * *"),
			LowStockCheck: getenvWithDefault("LOW_STOCK_SCHEDULE", "0 */6 * * *"),
			Timezone:      getenvWithDefault("TIMEZONE", "Asia/Kolkata"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures the configuration is usable; threshold ordering is
// rejected here rather than silently reordered.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("HTTP_PORT must be provided")
	}
	if c.Database.DSN == "" {
		return errors.New("DATABASE_DSN must be provided")
	}

	if c.Alerts.WarningDays <= 0 {
		return errors.New("EXPIRY_WARNING_DAYS must be positive")
	}
	if c.Alerts.CriticalDays <= 0 {
		return errors.New("EXPIRY_CRITICAL_DAYS must be positive")
	}
	if c.Alerts.CriticalDays >= c.Alerts.WarningDays {
		return fmt.Errorf("EXPIRY_CRITICAL_DAYS (%d) must be smaller than EXPIRY_WARNING_DAYS (%d)",
			c.Alerts.CriticalDays, c.Alerts.WarningDays)
	}
	if c.Alerts.LowStockThreshold <= 0 {
		return errors.New("LOW_STOCK_THRESHOLD must be positive")
	}

	if _, err := cron.ParseStandard(c.Schedules.ExpiryCheck); err != nil {
		return fmt.Errorf("invalid EXPIRY_CHECK_SCHEDULE %q: %w", c.Schedules.ExpiryCheck, err)
	}
	if _, err := cron.ParseStandard(c.Schedules.LowStockCheck); err != nil {
		return fmt.Errorf("invalid LOW_STOCK_SCHEDULE %q: %w", c.Schedules.LowStockCheck, err)
	}
	if _, err := time.LoadLocation(c.Schedules.Timezone); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Schedules.Timezone, err)
	}

	return nil
}

// Location resolves the configured timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedules.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}
