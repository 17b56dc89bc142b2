package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig loads embedded example", func(t *testing.T) {
		config := DefaultConfig()

		if config.Catalog.BaseURL != "https://beatsaver.com/api" {
			t.Errorf("unexpected catalog base URL: %s", config.Catalog.BaseURL)
		}
		if config.Catalog.CoverBaseURL != "https://beatsaver.com" {
			t.Errorf("unexpected cover base URL: %s", config.Catalog.CoverBaseURL)
		}
		if config.Session.DeadlineSeconds != 120 {
			t.Errorf("unexpected session deadline: %d", config.Session.DeadlineSeconds)
		}
		if config.Database.Path != "saberlist.db" {
			t.Errorf("unexpected database path: %s", config.Database.Path)
		}
	})

	t.Run("LoadConfig parses TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[catalog]
base_url = "http://localhost:1234"
rate_limit = 2.5

[session]
deadline_seconds = 30

[gateway]
port = 9000
secret = "hunter2"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}

		if config.Catalog.BaseURL != "http://localhost:1234" {
			t.Errorf("unexpected base URL: %s", config.Catalog.BaseURL)
		}
		if config.Catalog.RateLimit != 2.5 {
			t.Errorf("unexpected rate limit: %v", config.Catalog.RateLimit)
		}
		if config.Session.Deadline() != 30*time.Second {
			t.Errorf("unexpected deadline: %v", config.Session.Deadline())
		}
		if config.Gateway.Secret != "hunter2" {
			t.Errorf("unexpected secret: %s", config.Gateway.Secret)
		}
	})

	t.Run("LoadConfig fails on missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("LoadConfig fails on malformed TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[catalog\nbad"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("CreateConfigFile writes template once", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("CreateConfigFile failed: %v", err)
		}
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected config file to exist: %v", err)
		}
		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error when file already exists")
		}
	})
}

func TestConfigDefaults(t *testing.T) {
	t.Run("catalog timeout", func(t *testing.T) {
		if (CatalogConfig{}).Timeout() != 10*time.Second {
			t.Error("expected 10s default timeout")
		}
		if (CatalogConfig{TimeoutSeconds: 3}).Timeout() != 3*time.Second {
			t.Error("expected configured timeout")
		}
	})

	t.Run("session deadline", func(t *testing.T) {
		if (SessionConfig{}).Deadline() != 120*time.Second {
			t.Error("expected 120s default deadline")
		}
	})

	t.Run("gateway addr", func(t *testing.T) {
		if got := (GatewayConfig{}).Addr(); got != "localhost:8484" {
			t.Errorf("unexpected default addr: %s", got)
		}
		if got := (GatewayConfig{Host: "0.0.0.0", Port: 9000}).Addr(); got != "0.0.0.0:9000" {
			t.Errorf("unexpected addr: %s", got)
		}
	})
}
