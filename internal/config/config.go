// Package config loads the station configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds settings for the local store and the optional remote
// backends. Postgres, ClickHouse and NATS are disabled unless configured.
type Config struct {
	// SQLitePath is the local database file. Empty means "loadtrack.db"
	// in the working directory.
	SQLitePath string `yaml:"sqlite_path"`

	// LogMode selects zap's production or development configuration.
	LogMode string `yaml:"log_mode"`

	Postgres   PostgresConfig   `yaml:"postgres"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	NATS       NATSConfig       `yaml:"nats"`
}

// PostgresConfig points at the shared office database used to mirror
// launcher life aggregates across stations.
type PostgresConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// ClickHouseConfig points at the analytics warehouse for recorded-data
// export.
type ClickHouseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// NATSConfig points at the event feed broker.
type NATSConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
}

// Default returns a configuration for single-station local use.
func Default() Config {
	return Config{
		SQLitePath: "loadtrack.db",
		LogMode:    "development",
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "loadtrack",
			User:     "loadtrack",
			Password: "loadtrack",
		},
		ClickHouse: ClickHouseConfig{
			Host:     "localhost",
			Port:     9000,
			Database: "loadtrack",
			User:     "default",
		},
		NATS: NATSConfig{
			URL: "nats://localhost:4222",
		},
	}
}

// Load reads a yaml config file, filling unset fields from Default.
// A missing path returns the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "loadtrack.db"
	}
	return cfg, nil
}
