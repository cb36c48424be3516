// Package postflight drives the post-flight data-entry workflow: it
// validates the record, serializes the weapon status from the mission's
// loadout, stores everything and announces the save on the event feed.
package postflight

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"loadtrack/internal/events"
	"loadtrack/internal/loadout"
	"loadtrack/internal/model"
	"loadtrack/internal/session"
	"loadtrack/internal/store"
)

// ErrAlreadyRecorded is returned when a flight already has post-flight
// data. A flight gets exactly one record; corrections go through update.
var ErrAlreadyRecorded = errors.New("flight already has recorded data")

// Recorder walks a post-flight entry from validation to storage.
type Recorder struct {
	store  *store.Store
	events *events.Publisher
	sess   *session.Session
	log    *zap.Logger
}

// NewRecorder wires a recorder. The publisher may be nil when no event
// feed is configured.
func NewRecorder(st *store.Store, pub *events.Publisher, sess *session.Session, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{store: st, events: pub, sess: sess, log: log}
}

// Record stores the post-flight data for a mission. The missile-status
// string is derived from the mission's stored loadout and the fired
// flags, never taken from the caller. The mission must exist and must
// not have recorded data yet.
func (r *Recorder) Record(missionID int64, rd *model.RecordedData, fired *loadout.FiredStatus) error {
	m, err := r.store.MissionByID(missionID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("mission %d not found", missionID)
	}

	rd.Aircraft = m.Aircraft
	rd.FlightNumber = m.FlightNumber
	if err := rd.Validate(); err != nil {
		return err
	}

	exists, err := r.store.HasRecordedData(m.Aircraft, m.FlightNumber)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyRecorded
	}

	l, err := r.store.LoadLoadout(missionID)
	if err != nil && !errors.Is(err, store.ErrNoLoadoutTables) {
		return err
	}
	rd.MissileStatus = loadout.StatusString(l, fired)

	if err := r.store.InsertRecordedData(rd); err != nil {
		return err
	}

	if err := r.events.PublishFlightRecorded(events.FlightRecorded{
		Aircraft:      rd.Aircraft,
		FlightNumber:  rd.FlightNumber,
		MissileStatus: rd.MissileStatus,
		Operator:      r.sess.Operator(),
		RecordedAt:    time.Now(),
	}); err != nil {
		r.log.Warn("publish flight recorded", zap.Error(err))
	}

	r.log.Info("post-flight data recorded",
		zap.String("aircraft", rd.Aircraft),
		zap.Int("flight_number", rd.FlightNumber),
		zap.String("missile_status", rd.MissileStatus))
	return nil
}

// SaveLoadout replaces a mission's loadout and announces the save.
func (r *Recorder) SaveLoadout(missionID int64, l *loadout.Loadout) error {
	m, err := r.store.MissionByID(missionID)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("mission %d not found", missionID)
	}

	if err := r.store.SaveLoadout(missionID, l); err != nil {
		return err
	}

	if err := r.events.PublishLoadoutSaved(events.LoadoutSaved{
		MissionID: missionID,
		Positions: l.Len(),
		Operator:  r.sess.Operator(),
		SavedAt:   time.Now(),
	}); err != nil {
		r.log.Warn("publish loadout saved", zap.Error(err))
	}
	return nil
}
