package store

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"loadtrack/internal/loadout"
)

// ErrNoLoadoutTables is returned by LoadLoadout when neither historical
// relation exists yet. Callers treat it as an empty loadout; it is a
// sentinel so the UI can tell "never saved anything" from "saved an
// empty loadout".
var ErrNoLoadoutTables = errors.New("loadout tables do not exist")

// SaveLoadout replaces a mission's stored loadout with the given one, in
// a single transaction. Both historical relations are wiped for the
// mission and repopulated from the assignments, weapons to one table and
// launchers to the other.
//
// The relations are created on demand before the transaction opens, and
// per-statement failures inside the transaction are logged and skipped
// rather than aborting the save. Only failures to begin or commit
// surface as errors.
func (s *Store) SaveLoadout(missionID int64, l *loadout.Loadout) error {
	if _, err := s.db.Exec(historicalDDL); err != nil {
		s.log.Warn("ensure loadout tables", zap.Error(err))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save loadout: %w", err)
	}

	for _, query := range []string{
		`DELETE FROM historical_load WHERE mission_id = ?`,
		`DELETE FROM historical_launcher WHERE mission_id = ?`,
	} {
		if _, err := tx.Exec(query, missionID); err != nil {
			s.log.Warn("clear loadout rows",
				zap.Int64("mission_id", missionID),
				zap.Error(err))
		}
	}

	for pos, a := range l.Assignments() {
		var query string
		switch a.Kind {
		case loadout.KindWeapon:
			query = `INSERT INTO historical_load (mission_id, position, weapon_part_number, serial_number) VALUES (?, ?, ?, ?)`
		case loadout.KindLauncher:
			query = `INSERT INTO historical_launcher (mission_id, position, launcher_part_number, serial_number) VALUES (?, ?, ?, ?)`
		default:
			s.log.Warn("skipping assignment with unknown kind",
				zap.String("position", pos),
				zap.String("kind", string(a.Kind)))
			continue
		}
		if _, err := tx.Exec(query, missionID, pos, a.PartNumber, a.Serial); err != nil {
			s.log.Warn("insert loadout row",
				zap.Int64("mission_id", missionID),
				zap.String("position", pos),
				zap.Error(err))
		}
	}

	if err := tx.Commit(); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.log.Error("rollback failed", zap.Error(rbErr))
		}
		return fmt.Errorf("commit save loadout: %w", err)
	}
	return nil
}

// LoadLoadout rebuilds a mission's loadout from both historical
// relations. When neither relation exists the result is an empty loadout
// and ErrNoLoadoutTables. Rows that no longer satisfy the assignment
// rules (an unknown position, a serial reused across positions) are
// logged and skipped so one bad row cannot hide the rest.
func (s *Store) LoadLoadout(missionID int64) (*loadout.Loadout, error) {
	l := loadout.New()

	relations := []struct {
		table string
		query string
		kind  loadout.Kind
	}{
		{"historical_load",
			`SELECT position, weapon_part_number, serial_number FROM historical_load WHERE mission_id = ?`,
			loadout.KindWeapon},
		{"historical_launcher",
			`SELECT position, launcher_part_number, serial_number FROM historical_launcher WHERE mission_id = ?`,
			loadout.KindLauncher},
	}

	present := 0
	for _, rel := range relations {
		if !s.tableExists(s.db, rel.table) {
			continue
		}
		present++
		if err := s.loadAssignments(l, missionID, rel.query, rel.kind); err != nil {
			return nil, err
		}
	}
	if present == 0 {
		return l, ErrNoLoadoutTables
	}
	return l, nil
}

func (s *Store) loadAssignments(l *loadout.Loadout, missionID int64, query string, kind loadout.Kind) error {
	rows, err := s.db.Query(query, missionID)
	if err != nil {
		return fmt.Errorf("query loadout rows: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var pos, pn, serial string
		if err := rows.Scan(&pos, &pn, &serial); err != nil {
			return fmt.Errorf("scan loadout row: %w", err)
		}
		if err := l.Assign(pos, loadout.Assignment{Kind: kind, PartNumber: pn, Serial: serial}); err != nil {
			s.log.Warn("skipping stored assignment",
				zap.Int64("mission_id", missionID),
				zap.String("position", pos),
				zap.Error(err))
		}
	}
	return rows.Err()
}
