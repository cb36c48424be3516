package store

import (
	"database/sql"
	"fmt"

	"loadtrack/internal/model"
)

// InsertLauncher adds a launcher type to the catalogue.
func (s *Store) InsertLauncher(l model.Launcher) error {
	_, err := s.db.Exec(
		`INSERT INTO launcher (part_number, nomenclature, manufacturer, life_hours) VALUES (?, ?, ?, ?)`,
		l.PartNumber, l.Nomenclature, l.Manufacturer, l.LifeHours,
	)
	if err != nil {
		return fmt.Errorf("insert launcher: %w", err)
	}
	return nil
}

// UpdateLauncher rewrites the attributes of an existing launcher type.
func (s *Store) UpdateLauncher(l model.Launcher) error {
	res, err := s.db.Exec(
		`UPDATE launcher SET nomenclature = ?, manufacturer = ?, life_hours = ? WHERE part_number = ?`,
		l.Nomenclature, l.Manufacturer, l.LifeHours, l.PartNumber,
	)
	if err != nil {
		return fmt.Errorf("update launcher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("launcher %q not found", l.PartNumber)
	}
	return nil
}

// DeleteLauncher removes a launcher type from the catalogue.
func (s *Store) DeleteLauncher(partNumber string) error {
	res, err := s.db.Exec(`DELETE FROM launcher WHERE part_number = ?`, partNumber)
	if err != nil {
		return fmt.Errorf("delete launcher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("launcher %q not found", partNumber)
	}
	return nil
}

// Launchers returns the full launcher catalogue.
func (s *Store) Launchers() ([]model.Launcher, error) {
	rows, err := s.db.Query(`SELECT part_number, nomenclature, manufacturer, life_hours FROM launcher ORDER BY part_number`)
	if err != nil {
		return nil, fmt.Errorf("query launchers: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Launcher
	for rows.Next() {
		l, err := scanLauncher(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// LauncherByPartNumber looks up one launcher type. Absent part numbers
// return (nil, nil).
func (s *Store) LauncherByPartNumber(partNumber string) (*model.Launcher, error) {
	row := s.db.QueryRow(
		`SELECT part_number, nomenclature, manufacturer, life_hours FROM launcher WHERE part_number = ?`,
		partNumber,
	)
	l, err := scanLauncher(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// LauncherExists reports whether a part number is in the catalogue.
func (s *Store) LauncherExists(partNumber string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM launcher WHERE part_number = ?`, partNumber).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("check launcher: %w", err)
}

func scanLauncher(r rowScanner) (model.Launcher, error) {
	var l model.Launcher
	var manufacturer sql.NullString
	if err := r.Scan(&l.PartNumber, &l.Nomenclature, &manufacturer, &l.LifeHours); err != nil {
		return l, fmt.Errorf("scan launcher: %w", err)
	}
	l.Manufacturer = manufacturer.String
	return l, nil
}
