package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"loadtrack/internal/model"
)

// ClickHouseConfig holds ClickHouse connection settings.
type ClickHouseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
}

// ClickHouseDB wraps a ClickHouse connection for post-flight analytics
// export. Recorded data accumulates there across stations and years;
// the station database only keeps the working set.
type ClickHouseDB struct {
	conn driver.Conn
}

// OpenClickHouse opens a connection to ClickHouse.
func OpenClickHouse(ctx context.Context, cfg ClickHouseConfig) (*ClickHouseDB, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.User,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		DialTimeout:     10 * time.Second,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}

	return &ClickHouseDB{conn: conn}, nil
}

// Close closes the ClickHouse connection.
func (d *ClickHouseDB) Close() error {
	return d.conn.Close()
}

// CreateSchema creates the warehouse table.
func (d *ClickHouseDB) CreateSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS flight_records (
		id              UInt64,
		aircraft        LowCardinality(String),
		flight_number   UInt32,
		gload_max       Float64,
		gload_min       Float64,
		avg_altitude    Int32,
		max_speed       Int32,
		missile_status  String,
		exported_at     DateTime64(3) DEFAULT now64(3)
	)
	ENGINE = MergeTree()
	PARTITION BY toYYYYMM(exported_at)
	ORDER BY (aircraft, flight_number, id)
	SETTINGS index_granularity = 8192`

	if err := d.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// ExportRecordedData ships a batch of post-flight records to the
// warehouse.
func (d *ClickHouseDB) ExportRecordedData(ctx context.Context, records []model.RecordedData) error {
	if len(records) == 0 {
		return nil
	}

	batch, err := d.conn.PrepareBatch(ctx, `
		INSERT INTO flight_records (id, aircraft, flight_number, gload_max, gload_min, avg_altitude, max_speed, missile_status)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, rd := range records {
		err := batch.Append(uint64(rd.ID), rd.Aircraft, uint32(rd.FlightNumber),
			rd.GLoadMax, rd.GLoadMin, int32(rd.AvgAltitude), int32(rd.MaxSpeed), rd.MissileStatus)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}
