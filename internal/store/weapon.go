package store

import (
	"database/sql"
	"fmt"

	"loadtrack/internal/model"
)

// InsertWeapon adds a weapon type to the catalogue.
func (s *Store) InsertWeapon(w model.Weapon) error {
	_, err := s.db.Exec(
		`INSERT INTO weapon (part_number, nomenclature, manufacturer, mass_kg) VALUES (?, ?, ?, ?)`,
		w.PartNumber, w.Nomenclature, w.Manufacturer, w.MassKg,
	)
	if err != nil {
		return fmt.Errorf("insert weapon: %w", err)
	}
	return nil
}

// UpdateWeapon rewrites the attributes of an existing weapon type.
func (s *Store) UpdateWeapon(w model.Weapon) error {
	res, err := s.db.Exec(
		`UPDATE weapon SET nomenclature = ?, manufacturer = ?, mass_kg = ? WHERE part_number = ?`,
		w.Nomenclature, w.Manufacturer, w.MassKg, w.PartNumber,
	)
	if err != nil {
		return fmt.Errorf("update weapon: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("weapon %q not found", w.PartNumber)
	}
	return nil
}

// DeleteWeapon removes a weapon type from the catalogue.
func (s *Store) DeleteWeapon(partNumber string) error {
	res, err := s.db.Exec(`DELETE FROM weapon WHERE part_number = ?`, partNumber)
	if err != nil {
		return fmt.Errorf("delete weapon: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("weapon %q not found", partNumber)
	}
	return nil
}

// Weapons returns the full weapon catalogue.
func (s *Store) Weapons() ([]model.Weapon, error) {
	rows, err := s.db.Query(`SELECT part_number, nomenclature, manufacturer, mass_kg FROM weapon ORDER BY part_number`)
	if err != nil {
		return nil, fmt.Errorf("query weapons: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.Weapon
	for rows.Next() {
		w, err := scanWeapon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// WeaponByPartNumber looks up one weapon type. Absent part numbers return
// (nil, nil).
func (s *Store) WeaponByPartNumber(partNumber string) (*model.Weapon, error) {
	row := s.db.QueryRow(
		`SELECT part_number, nomenclature, manufacturer, mass_kg FROM weapon WHERE part_number = ?`,
		partNumber,
	)
	w, err := scanWeapon(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

// WeaponExists reports whether a part number is in the catalogue.
func (s *Store) WeaponExists(partNumber string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM weapon WHERE part_number = ?`, partNumber).Scan(&one)
	if err == nil {
		return true, nil
	}
	if isNoRows(err) {
		return false, nil
	}
	return false, fmt.Errorf("check weapon: %w", err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeapon(r rowScanner) (model.Weapon, error) {
	var w model.Weapon
	var manufacturer sql.NullString
	var mass sql.NullFloat64
	if err := r.Scan(&w.PartNumber, &w.Nomenclature, &manufacturer, &mass); err != nil {
		return w, fmt.Errorf("scan weapon: %w", err)
	}
	w.Manufacturer = manufacturer.String
	if mass.Valid {
		w.MassKg = &mass.Float64
	}
	return w, nil
}
