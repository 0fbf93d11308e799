package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port string
}

type StoreConfig struct {
	Path string
}

// MockConfig controls the artificial latency applied to store and session
// operations. Zero disables it.
type MockConfig struct {
	Latency time.Duration
}

type Config struct {
	App   AppConfig
	Store StoreConfig
	Mock  MockConfig
}

// Load reads configuration from the environment, optionally hydrated from a
// .env file at path. Every setting has a default.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: failed to load %s: %w", path, err)
		}
	}

	cfg := &Config{}

	cfg.App.Port = os.Getenv("APP_PORT")
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}

	cfg.Store.Path = os.Getenv("STORE_PATH")
	if cfg.Store.Path == "" {
		cfg.Store.Path = "storefront.db"
	}

	if raw := os.Getenv("MOCK_LATENCY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms < 0 {
			return nil, fmt.Errorf("config: invalid MOCK_LATENCY_MS %q", raw)
		}
		cfg.Mock.Latency = time.Duration(ms) * time.Millisecond
	}

	return cfg, nil
}
