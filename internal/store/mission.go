package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"loadtrack/internal/model"
)

// InsertMission stores a new mission and fills in the generated id.
func (s *Store) InsertMission(m *model.Mission) error {
	res, err := s.db.Exec(
		`INSERT INTO mission (aircraft, flight_number, mission_date, departure, arrival) VALUES (?, ?, ?, ?, ?)`,
		m.Aircraft, m.FlightNumber, m.Date.Format(model.DateLayout), m.Departure, m.Arrival,
	)
	if err != nil {
		return fmt.Errorf("insert mission: %w", err)
	}
	m.ID, _ = res.LastInsertId()
	return nil
}

// UpdateMission rewrites an existing mission row.
func (s *Store) UpdateMission(m *model.Mission) error {
	res, err := s.db.Exec(
		`UPDATE mission SET aircraft = ?, flight_number = ?, mission_date = ?, departure = ?, arrival = ? WHERE id = ?`,
		m.Aircraft, m.FlightNumber, m.Date.Format(model.DateLayout), m.Departure, m.Arrival, m.ID,
	)
	if err != nil {
		return fmt.Errorf("update mission: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("mission %d not found", m.ID)
	}
	return nil
}

// DeleteMission removes a mission and everything hanging off it: the
// historical load rows, the historical launcher rows and any automatic
// position overrides, then the mission row itself, in one transaction.
// Failures on the related tables (for example a table that does not exist
// yet) are logged and skipped; they never block the mission delete.
func (s *Store) DeleteMission(id int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin delete mission: %w", err)
	}

	related := []struct {
		table string
		query string
	}{
		{"historical_load", `DELETE FROM historical_load WHERE mission_id = ?`},
		{"historical_launcher", `DELETE FROM historical_launcher WHERE mission_id = ?`},
		{"auto_position_override", `DELETE FROM auto_position_override WHERE mission_id = ?`},
	}
	for _, r := range related {
		if _, err := tx.Exec(r.query, id); err != nil {
			s.log.Warn("cascade delete skipped",
				zap.String("table", r.table),
				zap.Int64("mission_id", id),
				zap.Error(err))
		}
	}

	res, err := tx.Exec(`DELETE FROM mission WHERE id = ?`, id)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", zap.Error(rbErr))
		}
		return fmt.Errorf("delete mission: %w", err)
	}
	n, _ := res.RowsAffected()

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", zap.Error(rbErr))
		}
		return fmt.Errorf("commit delete mission: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("mission %d not found", id)
	}
	return nil
}

// MissionByID looks up one mission. Absent ids return (nil, nil).
func (s *Store) MissionByID(id int64) (*model.Mission, error) {
	row := s.db.QueryRow(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival FROM mission WHERE id = ?`, id,
	)
	m, err := scanMission(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// MissionByFlight returns the first mission recorded for an aircraft and
// flight number. Flight numbers are not unique; callers get the first
// match. Absent pairs return (nil, nil).
func (s *Store) MissionByFlight(aircraft string, flightNumber int) (*model.Mission, error) {
	row := s.db.QueryRow(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival
		 FROM mission WHERE aircraft = ? AND flight_number = ? ORDER BY id LIMIT 1`,
		aircraft, flightNumber,
	)
	m, err := scanMission(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Missions returns all missions, most recent date first.
func (s *Store) Missions() ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival FROM mission ORDER BY mission_date DESC`,
	)
}

// MissionsByAircraft returns an aircraft's missions, most recent first.
func (s *Store) MissionsByAircraft(aircraft string) ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival
		 FROM mission WHERE aircraft = ? ORDER BY mission_date DESC`,
		aircraft,
	)
}

// MissionsByDateRange returns missions flown between from and to inclusive.
func (s *Store) MissionsByDateRange(from, to time.Time) ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival
		 FROM mission WHERE mission_date BETWEEN ? AND ? ORDER BY mission_date DESC`,
		from.Format(model.DateLayout), to.Format(model.DateLayout),
	)
}

// MissionsByAircraftAndDateRange narrows MissionsByDateRange to one airframe.
func (s *Store) MissionsByAircraftAndDateRange(aircraft string, from, to time.Time) ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival
		 FROM mission WHERE aircraft = ? AND mission_date BETWEEN ? AND ? ORDER BY mission_date DESC`,
		aircraft, from.Format(model.DateLayout), to.Format(model.DateLayout),
	)
}

// LatestMissions returns the n most recently created missions.
func (s *Store) LatestMissions(n int) ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT id, aircraft, flight_number, mission_date, departure, arrival
		 FROM mission ORDER BY id DESC LIMIT ?`,
		n,
	)
}

// PendingMissions returns an aircraft's missions that have no recorded
// post-flight data yet. These are the only ones offered for new entry.
func (s *Store) PendingMissions(aircraft string) ([]model.Mission, error) {
	return s.queryMissions(
		`SELECT m.id, m.aircraft, m.flight_number, m.mission_date, m.departure, m.arrival
		 FROM mission m
		 WHERE m.aircraft = ?
		   AND NOT EXISTS (
		     SELECT 1 FROM recorded_data rd
		     WHERE rd.aircraft = m.aircraft AND rd.flight_number = m.flight_number
		   )
		 ORDER BY m.id`,
		aircraft,
	)
}

func (s *Store) queryMissions(query string, args ...any) ([]model.Mission, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query missions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Mission
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanMission(r rowScanner) (model.Mission, error) {
	var m model.Mission
	var date string
	if err := r.Scan(&m.ID, &m.Aircraft, &m.FlightNumber, &date, &m.Departure, &m.Arrival); err != nil {
		return m, fmt.Errorf("scan mission: %w", err)
	}
	d, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return m, fmt.Errorf("parse mission date %q: %w", date, err)
	}
	m.Date = d
	return m, nil
}
