package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// DatabaseConfig holds the MongoDB connection configuration. An empty URI
// means the service runs on the in-memory store.
type DatabaseConfig struct {
	URI                   string        `yaml:"uri"`
	Name                  string        `yaml:"name"`
	Collection            string        `yaml:"collection"`
	ConnectTimeoutSeconds int           `yaml:"connect_timeout_seconds"`
	ConnectTimeout        time.Duration `yaml:"-"` // Derived from ConnectTimeoutSeconds
}

// Load reads the configuration from the given path. A missing file is not an
// error; defaults and environment variables still apply.
func Load(path string) (*Config, error) {
	// Try to load .env first, but don't fail if it doesn't exist.
	// Environment variables can also be set directly.
	_ = godotenv.Load()

	var cfg Config

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8001
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 20
	}
	if cfg.Server.CacheTTLSeconds < 0 {
		cfg.Server.CacheTTLSeconds = 0
	}

	// MONGO_URL wins over the YAML value so deployments can keep the
	// connection string out of the config file.
	if uri := os.Getenv("MONGO_URL"); uri != "" {
		cfg.Database.URI = uri
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "parking_management"
	}
	if cfg.Database.Collection == "" {
		cfg.Database.Collection = "parking_spots"
	}
	if cfg.Database.ConnectTimeoutSeconds <= 0 {
		cfg.Database.ConnectTimeoutSeconds = 10
	}
	cfg.Database.ConnectTimeout = time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second

	return &cfg, nil
}
