package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SQLitePath != "loadtrack.db" {
		t.Errorf("SQLitePath = %q, want loadtrack.db", cfg.SQLitePath)
	}
	if cfg.Postgres.Enabled || cfg.ClickHouse.Enabled || cfg.NATS.Enabled {
		t.Error("remote backends should default to disabled")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "loadtrack.yml")
	data := `
sqlite_path: /var/lib/loadtrack/station.db
log_mode: production
postgres:
  enabled: true
  host: db.office.local
  port: 5433
nats:
  enabled: true
  url: nats://feed.office.local:4222
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SQLitePath != "/var/lib/loadtrack/station.db" {
		t.Errorf("SQLitePath = %q", cfg.SQLitePath)
	}
	if !cfg.Postgres.Enabled || cfg.Postgres.Host != "db.office.local" || cfg.Postgres.Port != 5433 {
		t.Errorf("Postgres = %+v", cfg.Postgres)
	}
	// Fields not present in the file keep their defaults.
	if cfg.Postgres.Database != "loadtrack" {
		t.Errorf("Postgres.Database = %q, want default", cfg.Postgres.Database)
	}
	if !cfg.NATS.Enabled || cfg.NATS.URL != "nats://feed.office.local:4222" {
		t.Errorf("NATS = %+v", cfg.NATS)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogMode != "development" {
		t.Errorf("LogMode = %q, want development", cfg.LogMode)
	}
}
