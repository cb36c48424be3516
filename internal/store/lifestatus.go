package store

import (
	"database/sql"
	"fmt"

	"loadtrack/internal/model"
)

// LauncherLifeStatus returns the derived life aggregate for one launcher
// serial, or (nil, nil) when the serial has never flown.
func (s *Store) LauncherLifeStatus(serial string) (*model.LauncherLifeStatus, error) {
	row := s.db.QueryRow(
		`SELECT nomenclature, part_number, serial, missions, missions_fired, missions_not_fired, flight_hours, residual_life_pct
		 FROM launcher_life_status WHERE serial = ?`, serial,
	)
	st, err := scanLifeStatus(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// LauncherLifeStatuses returns the life aggregate for every launcher
// serial that has flown at least one mission.
func (s *Store) LauncherLifeStatuses() ([]model.LauncherLifeStatus, error) {
	rows, err := s.db.Query(
		`SELECT nomenclature, part_number, serial, missions, missions_fired, missions_not_fired, flight_hours, residual_life_pct
		 FROM launcher_life_status ORDER BY serial`,
	)
	if err != nil {
		return nil, fmt.Errorf("query life status: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []model.LauncherLifeStatus
	for rows.Next() {
		st, err := scanLifeStatus(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func scanLifeStatus(r rowScanner) (model.LauncherLifeStatus, error) {
	var st model.LauncherLifeStatus
	var nomenclature sql.NullString
	if err := r.Scan(&nomenclature, &st.PartNumber, &st.Serial, &st.Missions,
		&st.MissionsFired, &st.MissionsNotFired, &st.FlightHours, &st.ResidualLifePct); err != nil {
		return st, fmt.Errorf("scan life status: %w", err)
	}
	st.Nomenclature = nomenclature.String
	return st, nil
}
