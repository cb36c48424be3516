// Package store provides persistent storage for the station: a local
// SQLite database for master data, missions, loadouts and post-flight
// records, plus optional Postgres (shared office aggregates) and
// ClickHouse (analytics export) backends.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// ErrImmutableKey is returned by update operations on entities whose only
// identity is their key. Renames are create-new plus delete-old.
var ErrImmutableKey = errors.New("primary key is immutable")

// Store wraps the station's SQLite database.
type Store struct {
	db  *sql.DB
	log *zap.Logger
}

// Open opens or creates the station database at the given path and
// provisions the schema. If path is empty or ":memory:", an in-memory
// database is used.
func Open(path string, log *zap.Logger) (*Store, error) {
	if path == "" {
		path = ":memory:"
	}
	if log == nil {
		log = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single operator, and an in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy timeout: %w", err)
	}

	for _, ddl := range []string{schema, historicalDDL, lifeStatusView} {
		if _, err := db.Exec(ddl); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Store{db: db, log: log}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// tableExists checks the catalog for a table of the given name.
func (s *Store) tableExists(q querier, name string) bool {
	var one int
	err := q.QueryRow(`SELECT 1 FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&one)
	return err == nil
}

// querier is the subset of *sql.DB and *sql.Tx the helpers need.
type querier interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
