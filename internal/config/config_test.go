package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if c.Port != 8880 {
		t.Errorf("expected default port 8880, got %d", c.Port)
	}
	if c.Jurisdiction != "england-and-wales" {
		t.Errorf("unexpected default jurisdiction %q", c.Jurisdiction)
	}
	if c.BoxworkWorkingDays != 5 {
		t.Errorf("unexpected default working days %d", c.BoxworkWorkingDays)
	}
	if c.DataDir == "" {
		t.Error("data dir must default to a home-relative path")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("JURISDICTION", "scotland")
	t.Setenv("COURTNOTIFY_DATA_DIR", "/tmp/cn-test")

	c, err := Load()
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if c.Port != 9999 {
		t.Errorf("expected port 9999, got %d", c.Port)
	}
	if c.Jurisdiction != "scotland" {
		t.Errorf("expected scotland, got %q", c.Jurisdiction)
	}
	if c.DBPath() != "/tmp/cn-test/courtnotify.db" {
		t.Errorf("unexpected db path %q", c.DBPath())
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"unknown": slog.LevelInfo,
	}
	for in, want := range cases {
		c := &AppConfig{LogLevel: in}
		if got := c.SlogLevel(); got != want {
			t.Errorf("SlogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestAlertSettings_EnabledOnlyWithHost(t *testing.T) {
	c := &AppConfig{}
	if c.AlertSettings().Enabled {
		t.Error("alerting must be disabled without a host")
	}

	c = &AppConfig{AlertSMTPHost: "smtp.example.com", AlertSMTPPort: 587}
	s := c.AlertSettings()
	if !s.Enabled {
		t.Error("alerting must be enabled when a host is configured")
	}
	if s.SMTP.Host != "smtp.example.com" {
		t.Errorf("unexpected host %q", s.SMTP.Host)
	}
}
