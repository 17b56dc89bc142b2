package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Playlist PlaylistConfig `toml:"playlist"`
	Session  SessionConfig  `toml:"session"`
	Gateway  GatewayConfig  `toml:"gateway"`
	Database DatabaseConfig `toml:"database"`
}

// CatalogConfig contains BeatSaver catalog API settings.
type CatalogConfig struct {
	BaseURL        string  `toml:"base_url"`
	CoverBaseURL   string  `toml:"cover_base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RateLimit      float64 `toml:"rate_limit"`
}

// Timeout returns the catalog request timeout as a [time.Duration].
func (c CatalogConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// PlaylistConfig contains playlist artifact settings.
type PlaylistConfig struct {
	Author    string `toml:"author"`
	OutputDir string `toml:"output_dir"`
}

// SessionConfig contains difficulty-selection session settings.
type SessionConfig struct {
	DeadlineSeconds int `toml:"deadline_seconds"`
}

// Deadline returns the per-session input deadline as a [time.Duration].
func (c SessionConfig) Deadline() time.Duration {
	if c.DeadlineSeconds <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.DeadlineSeconds) * time.Second
}

// GatewayConfig contains the chat-event webhook settings: the inbound listen
// address and the chat integration's outbound callback base URL.
type GatewayConfig struct {
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Secret      string `toml:"secret"`
	OutboundURL string `toml:"outbound_url"`
}

// Addr returns the listen address in host:port form.
func (c GatewayConfig) Addr() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	port := c.Port
	if port == 0 {
		port = 8484
	}
	return fmt.Sprintf("%s:%d", host, port)
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
