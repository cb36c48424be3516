package store

// schema contains the SQLite table definitions for the station database.
const schema = `
-- Master data: aircraft on charge with the office.
CREATE TABLE IF NOT EXISTS aircraft (
	serial TEXT PRIMARY KEY
);

-- Master data: weapon catalogue.
CREATE TABLE IF NOT EXISTS weapon (
	part_number  TEXT PRIMARY KEY,
	nomenclature TEXT NOT NULL,
	manufacturer TEXT,
	mass_kg      REAL
);

-- Master data: launcher catalogue.
CREATE TABLE IF NOT EXISTS launcher (
	part_number  TEXT PRIMARY KEY,
	nomenclature TEXT NOT NULL,
	manufacturer TEXT,
	life_hours   REAL NOT NULL DEFAULT 0
);

-- Operator accounts.
CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	username      TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL DEFAULT '',
	full_name     TEXT
);

-- Missions flown.
CREATE TABLE IF NOT EXISTS mission (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	aircraft      TEXT NOT NULL,
	flight_number INTEGER NOT NULL,
	mission_date  TEXT NOT NULL,
	departure     TEXT NOT NULL,
	arrival       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_mission_aircraft ON mission(aircraft);
CREATE INDEX IF NOT EXISTS idx_mission_date ON mission(mission_date);

-- Post-flight telemetry, one row per (aircraft, flight number).
CREATE TABLE IF NOT EXISTS recorded_data (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	aircraft       TEXT NOT NULL,
	flight_number  INTEGER NOT NULL,
	gload_max      REAL,
	gload_min      REAL,
	avg_altitude   INTEGER,
	max_speed      INTEGER,
	missile_status TEXT,
	processed      INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_recorded_flight ON recorded_data(aircraft, flight_number);

-- Automatic position overrides attached to a mission.
CREATE TABLE IF NOT EXISTS auto_position_override (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	mission_id INTEGER NOT NULL,
	position   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_auto_position_mission ON auto_position_override(mission_id);
`

// historicalDDL creates the two per-mission load relations. They also ship
// with databases created before this schema existed only partially, so the
// save path re-runs this best-effort before writing (see SaveLoadout).
const historicalDDL = `
CREATE TABLE IF NOT EXISTS historical_load (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	mission_id         INTEGER NOT NULL,
	position           TEXT NOT NULL,
	weapon_part_number TEXT NOT NULL,
	serial_number      TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_historical_load_mission ON historical_load(mission_id);

CREATE TABLE IF NOT EXISTS historical_launcher (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	mission_id           INTEGER NOT NULL,
	position             TEXT NOT NULL,
	launcher_part_number TEXT NOT NULL,
	serial_number        TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_historical_launcher_mission ON historical_launcher(mission_id);
`

// lifeStatusView aggregates a launcher serial's mission history. A mission
// counts as fired when its recorded missile-status string contains any
// fire token.
const lifeStatusView = `
CREATE VIEW IF NOT EXISTS launcher_life_status AS
SELECT
	l.nomenclature                                                   AS nomenclature,
	hl.launcher_part_number                                          AS part_number,
	hl.serial_number                                                 AS serial,
	COUNT(*)                                                         AS missions,
	SUM(CASE WHEN IFNULL(rd.missile_status, '') LIKE '%SPARATO%' THEN 1 ELSE 0 END) AS missions_fired,
	SUM(CASE WHEN IFNULL(rd.missile_status, '') LIKE '%SPARATO%' THEN 0 ELSE 1 END) AS missions_not_fired,
	SUM((strftime('%s', '2000-01-01 ' || m.arrival || ':00') -
	     strftime('%s', '2000-01-01 ' || m.departure || ':00')) / 3600.0) AS flight_hours,
	CASE
		WHEN IFNULL(l.life_hours, 0) > 0 THEN
			MAX(0.0, (1.0 - SUM((strftime('%s', '2000-01-01 ' || m.arrival || ':00') -
			                     strftime('%s', '2000-01-01 ' || m.departure || ':00')) / 3600.0) / l.life_hours) * 100.0)
		ELSE 100.0
	END                                                              AS residual_life_pct
FROM historical_launcher hl
JOIN mission m ON m.id = hl.mission_id
LEFT JOIN launcher l ON l.part_number = hl.launcher_part_number
LEFT JOIN recorded_data rd ON rd.aircraft = m.aircraft AND rd.flight_number = m.flight_number
GROUP BY hl.serial_number, hl.launcher_part_number;
`
