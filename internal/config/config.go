package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

// Backend names accepted by store.backend.
const (
	BackendLocal  = "local"
	BackendSQLite = "sqlite"
)

type Config struct {
	Server struct {
		Env string `yaml:"env"`
	} `yaml:"server"`

	Store StoreConfig `yaml:"store"`
}

// StoreConfig selects and parameterizes the persistence backend.
type StoreConfig struct {
	Backend      string `yaml:"backend"`   // local | sqlite
	BasePath     string `yaml:"base_path"` // blob store directory (collections and session pointer)
	DSN          string `yaml:"dsn"`       // sqlite database file
	SeedDemoData bool   `yaml:"seed_demo_data"`
}

// Load reads config.yaml (path overridable via CONFIG_PATH), applies
// environment variable overrides and falls back to working defaults when no
// file exists.
func Load() (*Config, error) {
	cfg := defaults()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open config file at %s: %w", configPath, err)
		}
		// No file: defaults plus env overrides
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file at %s: %w", configPath, err)
	}

	applyEnv(cfg)

	if cfg.Store.Backend != BackendLocal && cfg.Store.Backend != BackendSQLite {
		return nil, fmt.Errorf("unsupported store backend: %s", cfg.Store.Backend)
	}

	return cfg, nil
}

func defaults() *Config {
	cfg := &Config{}
	cfg.Server.Env = "development"
	cfg.Store = StoreConfig{
		Backend:      BackendLocal,
		BasePath:     "./data",
		DSN:          "./data/jobhub.db",
		SeedDemoData: true,
	}
	return cfg
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SERVER_ENV"); v != "" {
		cfg.Server.Env = v
	}
	if v := os.Getenv("STORE_BACKEND"); v != "" {
		cfg.Store.Backend = v
	}
	if v := os.Getenv("STORE_BASE_PATH"); v != "" {
		cfg.Store.BasePath = v
	}
	if v := os.Getenv("STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("SEED_DEMO_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Store.SeedDemoData = b
		}
	}
}
