package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"loadtrack/internal/model"
)

// PostgresConfig holds PostgreSQL connection settings for the shared
// office mirror.
type PostgresConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// PostgresDB mirrors launcher life aggregates to a shared PostgreSQL
// instance so other offices can read them without the station database.
type PostgresDB struct {
	pool *pgxpool.Pool
}

// OpenPostgres opens a connection pool to PostgreSQL.
func OpenPostgres(ctx context.Context, cfg PostgresConfig) (*PostgresDB, error) {
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)

	poolCfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return nil, fmt.Errorf("parse postgres config: %w", err)
	}

	poolCfg.MaxConns = 10
	poolCfg.MinConns = 2
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresDB{pool: pool}, nil
}

// Close closes the PostgreSQL connection pool.
func (d *PostgresDB) Close() {
	d.pool.Close()
}

// CreateSchema creates the mirror tables.
func (d *PostgresDB) CreateSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS launcher_life_status (
		serial             TEXT PRIMARY KEY,
		part_number        TEXT NOT NULL,
		nomenclature       TEXT,
		missions           INTEGER NOT NULL DEFAULT 0,
		missions_fired     INTEGER NOT NULL DEFAULT 0,
		missions_not_fired INTEGER NOT NULL DEFAULT 0,
		flight_hours       DOUBLE PRECISION NOT NULL DEFAULT 0,
		residual_life_pct  DOUBLE PRECISION NOT NULL DEFAULT 100,
		synced_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_life_status_part ON launcher_life_status(part_number);
	`

	if _, err := d.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// SyncLifeStatus upserts one launcher's life aggregate into the mirror.
func (d *PostgresDB) SyncLifeStatus(ctx context.Context, st model.LauncherLifeStatus) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO launcher_life_status (serial, part_number, nomenclature, missions, missions_fired, missions_not_fired, flight_hours, residual_life_pct, synced_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		ON CONFLICT (serial) DO UPDATE SET
			part_number = EXCLUDED.part_number,
			nomenclature = EXCLUDED.nomenclature,
			missions = EXCLUDED.missions,
			missions_fired = EXCLUDED.missions_fired,
			missions_not_fired = EXCLUDED.missions_not_fired,
			flight_hours = EXCLUDED.flight_hours,
			residual_life_pct = EXCLUDED.residual_life_pct,
			synced_at = NOW()
	`, st.Serial, st.PartNumber, st.Nomenclature, st.Missions, st.MissionsFired, st.MissionsNotFired, st.FlightHours, st.ResidualLifePct)
	return err
}

// LifeStatus retrieves one launcher's mirrored aggregate by serial.
func (d *PostgresDB) LifeStatus(ctx context.Context, serial string) (*model.LauncherLifeStatus, error) {
	var st model.LauncherLifeStatus
	err := d.pool.QueryRow(ctx, `
		SELECT nomenclature, part_number, serial, missions, missions_fired, missions_not_fired, flight_hours, residual_life_pct
		FROM launcher_life_status WHERE serial = $1
	`, serial).Scan(&st.Nomenclature, &st.PartNumber, &st.Serial, &st.Missions, &st.MissionsFired, &st.MissionsNotFired, &st.FlightHours, &st.ResidualLifePct)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}
