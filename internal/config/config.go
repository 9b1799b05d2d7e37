// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"

	"github.com/justiceplatform/courtnotify/internal/notify"
)

// AppConfig holds all application-level configuration loaded from
// environment variables. Endpoint URLs and the jurisdiction are supplied
// here and consumed by the core; they are never hard-coded in decision
// logic.
type AppConfig struct {
	// Port is the HTTP server port. Defaults to 8880.
	Port int `envconfig:"PORT" default:"8880"`

	// DataDir is the root data directory. Defaults to ~/.courtnotify.
	DataDir string `envconfig:"COURTNOTIFY_DATA_DIR"`

	// LogLevel sets the minimum log level (debug, info, warn, error). Defaults to info.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Jurisdiction selects the public-holiday calendar for working-day
	// arithmetic.
	Jurisdiction string `envconfig:"JURISDICTION" default:"england-and-wales"`

	// BoxworkWorkingDays is the action window for boxwork notices: the
	// action-by date is this many working days after the ordered date.
	BoxworkWorkingDays int `envconfig:"BOXWORK_WORKING_DAYS" default:"5"`

	// HolidayAPIURL is the base URL of the reference-data holiday calendar
	// service.
	HolidayAPIURL string `envconfig:"HOLIDAY_API_URL"`

	// HolidayFile optionally replaces the holiday service with a local
	// YAML fixture (development / offline fallback).
	HolidayFile string `envconfig:"HOLIDAY_FILE"`

	// CaseDocumentAPIURL is the case-document delivery endpoint.
	CaseDocumentAPIURL string `envconfig:"CASE_DOCUMENT_API_URL"`

	// NotificationAPIURL is the generic API notification endpoint.
	NotificationAPIURL string `envconfig:"NOTIFICATION_API_URL"`

	// FileStoreURL is the base URL of the file storage service.
	FileStoreURL string `envconfig:"FILE_STORE_URL"`

	// RefDataAPIURL is the base URL of the reference-data service used for
	// prosecutor lookups.
	RefDataAPIURL string `envconfig:"REF_DATA_API_URL"`

	// Admin alert mailer. Disabled unless ALERT_SMTP_HOST is set.
	AlertSMTPHost       string `envconfig:"ALERT_SMTP_HOST"`
	AlertSMTPPort       int    `envconfig:"ALERT_SMTP_PORT" default:"587"`
	AlertSMTPUsername   string `envconfig:"ALERT_SMTP_USERNAME"`
	AlertSMTPPassword   string `envconfig:"ALERT_SMTP_PASSWORD"`
	AlertFromAddr       string `envconfig:"ALERT_FROM_ADDRESS"`
	AlertToAddrs        string `envconfig:"ALERT_TO_ADDRESSES"`
	AlertSMTPEncryption string `envconfig:"ALERT_SMTP_ENCRYPTION" default:"starttls"`
}

// Load reads AppConfig from environment variables using envconfig.
// DataDir defaults to ~/.courtnotify if not set.
func Load() (*AppConfig, error) {
	var c AppConfig
	if err := envconfig.Process("", &c); err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		c.DataDir = filepath.Join(home, ".courtnotify")
	}
	return &c, nil
}

// SlogLevel converts the LogLevel string to a slog.Level.
// Unknown values default to slog.LevelInfo.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogDir returns the path to the log directory.
func (c *AppConfig) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// DBPath returns the path to the SQLite dispatch-log database.
func (c *AppConfig) DBPath() string {
	return filepath.Join(c.DataDir, "courtnotify.db")
}

// AlertSettings converts the SMTP fields into the alerter's settings.
// Alerting is enabled only when a host is configured.
func (c *AppConfig) AlertSettings() notify.AlertSettings {
	return notify.AlertSettings{
		Enabled: c.AlertSMTPHost != "",
		SMTP: notify.SMTPConfig{
			Host:       c.AlertSMTPHost,
			Port:       c.AlertSMTPPort,
			Username:   c.AlertSMTPUsername,
			Password:   c.AlertSMTPPassword,
			FromAddr:   c.AlertFromAddr,
			ToAddrs:    c.AlertToAddrs,
			Encryption: c.AlertSMTPEncryption,
		},
	}
}
