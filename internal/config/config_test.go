package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8082" {
		t.Errorf("expected default port 8082, got %s", cfg.Port)
	}
	if cfg.DataBackend != "rest" {
		t.Errorf("expected default backend rest, got %s", cfg.DataBackend)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("expected default timeout 10s, got %v", cfg.RequestTimeout)
	}
	if cfg.ExportBatchSize != 10 {
		t.Errorf("expected default batch size 10, got %d", cfg.ExportBatchSize)
	}
	if cfg.GoogleSheetName != "Donations" {
		t.Errorf("expected default sheet name Donations, got %s", cfg.GoogleSheetName)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("API_BASE_URL", "https://api.example.com")
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("EXPORT_INTERVAL", "1m")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("expected overridden base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.DataBackend != "memory" {
		t.Errorf("expected memory backend, got %s", cfg.DataBackend)
	}
	if cfg.ExportInterval != time.Minute {
		t.Errorf("expected interval 1m, got %v", cfg.ExportInterval)
	}
}

func TestValidateOK(t *testing.T) {
	cfg := &Config{
		Port:            "8082",
		APIBaseURL:      "http://localhost:8080",
		RequestTimeout:  10 * time.Second,
		DataBackend:     "rest",
		SQLiteDBPath:    t.TempDir() + "/test.db",
		ExportBatchSize: 10,
		ExportInterval:  30 * time.Second,
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := &Config{
		Port:            "not-a-port",
		APIBaseURL:      "::broken",
		RequestTimeout:  0,
		DataBackend:     "rest",
		SQLiteDBPath:    "",
		ExportBatchSize: 0,
		ExportInterval:  0,
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected errors")
	}
	for _, want := range []string{"invalid port", "API base URL", "timeout", "database path", "batch size", "interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected error to mention %q, got: %v", want, err)
		}
	}
}

func TestValidateBadBackend(t *testing.T) {
	cfg := &Config{
		Port:            "8082",
		RequestTimeout:  time.Second,
		DataBackend:     "sheets",
		SQLiteDBPath:    t.TempDir() + "/test.db",
		ExportBatchSize: 1,
		ExportInterval:  time.Second,
	}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "data backend") {
		t.Fatalf("expected backend error, got %v", err)
	}
}
