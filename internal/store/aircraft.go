package store

import (
	"fmt"

	"loadtrack/internal/model"
)

// InsertAircraft registers a new airframe.
func (s *Store) InsertAircraft(a model.Aircraft) error {
	if _, err := s.db.Exec(`INSERT INTO aircraft (serial) VALUES (?)`, a.Serial); err != nil {
		return fmt.Errorf("insert aircraft: %w", err)
	}
	return nil
}

// UpdateAircraft exists for interface symmetry with the other master-data
// entities, but the serial number is the aircraft's only attribute and
// doubles as the key missions reference, so it cannot be changed in place.
func (s *Store) UpdateAircraft(model.Aircraft) error {
	return ErrImmutableKey
}

// DeleteAircraft removes an airframe from the register.
func (s *Store) DeleteAircraft(serial string) error {
	res, err := s.db.Exec(`DELETE FROM aircraft WHERE serial = ?`, serial)
	if err != nil {
		return fmt.Errorf("delete aircraft: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("aircraft %q not found", serial)
	}
	return nil
}

// Aircraft returns all registered airframes.
func (s *Store) Aircraft() ([]model.Aircraft, error) {
	rows, err := s.db.Query(`SELECT serial FROM aircraft ORDER BY serial`)
	if err != nil {
		return nil, fmt.Errorf("query aircraft: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Aircraft
	for rows.Next() {
		var a model.Aircraft
		if err := rows.Scan(&a.Serial); err != nil {
			return nil, fmt.Errorf("scan aircraft: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// AircraftExists reports whether a serial is registered.
func (s *Store) AircraftExists(serial string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM aircraft WHERE serial = ?`, serial).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("check aircraft: %w", err)
}
