package store

import (
	"fmt"

	"loadtrack/internal/model"
)

// InsertRecordedData stores a post-flight record and fills in the
// generated id.
func (s *Store) InsertRecordedData(rd *model.RecordedData) error {
	res, err := s.db.Exec(
		`INSERT INTO recorded_data (aircraft, flight_number, gload_max, gload_min, avg_altitude, max_speed, missile_status, processed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rd.Aircraft, rd.FlightNumber, rd.GLoadMax, rd.GLoadMin, rd.AvgAltitude, rd.MaxSpeed, rd.MissileStatus, rd.Processed,
	)
	if err != nil {
		return fmt.Errorf("insert recorded data: %w", err)
	}
	rd.ID, _ = res.LastInsertId()
	return nil
}

// UpdateRecordedData rewrites an existing post-flight record.
func (s *Store) UpdateRecordedData(rd *model.RecordedData) error {
	res, err := s.db.Exec(
		`UPDATE recorded_data SET aircraft = ?, flight_number = ?, gload_max = ?, gload_min = ?,
		 avg_altitude = ?, max_speed = ?, missile_status = ?, processed = ? WHERE id = ?`,
		rd.Aircraft, rd.FlightNumber, rd.GLoadMax, rd.GLoadMin, rd.AvgAltitude, rd.MaxSpeed,
		rd.MissileStatus, rd.Processed, rd.ID,
	)
	if err != nil {
		return fmt.Errorf("update recorded data: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recorded data %d not found", rd.ID)
	}
	return nil
}

// DeleteRecordedData removes a post-flight record by id.
func (s *Store) DeleteRecordedData(id int64) error {
	res, err := s.db.Exec(`DELETE FROM recorded_data WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete recorded data: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recorded data %d not found", id)
	}
	return nil
}

// RecordedByFlight returns the post-flight record for an aircraft and
// flight number, or (nil, nil) when none has been entered yet.
func (s *Store) RecordedByFlight(aircraft string, flightNumber int) (*model.RecordedData, error) {
	row := s.db.QueryRow(
		`SELECT id, aircraft, flight_number, gload_max, gload_min, avg_altitude, max_speed, missile_status, processed
		 FROM recorded_data WHERE aircraft = ? AND flight_number = ? ORDER BY id LIMIT 1`,
		aircraft, flightNumber,
	)
	rd, err := scanRecorded(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &rd, nil
}

// AllRecordedData returns every post-flight record, newest first.
func (s *Store) AllRecordedData() ([]model.RecordedData, error) {
	rows, err := s.db.Query(
		`SELECT id, aircraft, flight_number, gload_max, gload_min, avg_altitude, max_speed, missile_status, processed
		 FROM recorded_data ORDER BY id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("query recorded data: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.RecordedData
	for rows.Next() {
		rd, err := scanRecorded(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rd)
	}
	return out, rows.Err()
}

// HasRecordedData reports whether a mission's flight already has a
// post-flight record.
func (s *Store) HasRecordedData(aircraft string, flightNumber int) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM recorded_data WHERE aircraft = ? AND flight_number = ?`,
		aircraft, flightNumber,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count recorded data: %w", err)
	}
	return n > 0, nil
}

// MarkProcessed flags a record as exported to the analytics warehouse.
func (s *Store) MarkProcessed(id int64) error {
	if _, err := s.db.Exec(`UPDATE recorded_data SET processed = 1 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	return nil
}

func scanRecorded(r rowScanner) (model.RecordedData, error) {
	var rd model.RecordedData
	if err := r.Scan(&rd.ID, &rd.Aircraft, &rd.FlightNumber, &rd.GLoadMax, &rd.GLoadMin,
		&rd.AvgAltitude, &rd.MaxSpeed, &rd.MissileStatus, &rd.Processed); err != nil {
		return rd, fmt.Errorf("scan recorded data: %w", err)
	}
	return rd, nil
}
