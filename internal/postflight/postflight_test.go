package postflight

import (
	"errors"
	"testing"
	"time"

	"loadtrack/internal/loadout"
	"loadtrack/internal/model"
	"loadtrack/internal/session"
	"loadtrack/internal/store"
)

func newTestRecorder(t *testing.T) (*Recorder, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	sess := session.New(model.User{Username: "armorer"})
	return NewRecorder(s, nil, sess, nil), s
}

func insertMission(t *testing.T, s *store.Store, flight int) *model.Mission {
	t.Helper()
	m := &model.Mission{
		Aircraft:     "MM7001",
		FlightNumber: flight,
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Departure:    "08:00",
		Arrival:      "09:45",
	}
	if err := s.InsertMission(m); err != nil {
		t.Fatalf("insert mission: %v", err)
	}
	return m
}

func TestRecordDerivesStatusFromLoadout(t *testing.T) {
	r, s := newTestRecorder(t)
	m := insertMission(t, s, 1)

	l := loadout.New()
	if err := l.Assign("TIP 1", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-1"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Assign("FWD 9", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-2"}); err != nil {
		t.Fatal(err)
	}
	if err := r.SaveLoadout(m.ID, l); err != nil {
		t.Fatalf("save loadout: %v", err)
	}

	fired := loadout.NewFiredStatus()
	if err := fired.Toggle(l, "FWD 9"); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	rd := &model.RecordedData{GLoadMax: 5.1, GLoadMin: -0.8, AvgAltitude: 15000, MaxSpeed: 480}
	if err := r.Record(m.ID, rd, fired); err != nil {
		t.Fatalf("record: %v", err)
	}

	want := "TIP 1:A_BORDO; FWD 9:SPARATO"
	if rd.MissileStatus != want {
		t.Fatalf("missile status = %q, want %q", rd.MissileStatus, want)
	}

	stored, err := s.RecordedByFlight("MM7001", 1)
	if err != nil || stored == nil {
		t.Fatalf("stored = %v, %v", stored, err)
	}
	if stored.MissileStatus != want {
		t.Fatalf("stored status = %q, want %q", stored.MissileStatus, want)
	}
}

func TestRecordWithoutLoadout(t *testing.T) {
	r, s := newTestRecorder(t)
	m := insertMission(t, s, 2)

	rd := &model.RecordedData{GLoadMax: 3.0, GLoadMin: 0}
	if err := r.Record(m.ID, rd, nil); err != nil {
		t.Fatalf("record: %v", err)
	}
	if rd.MissileStatus != "" {
		t.Fatalf("missile status = %q, want empty for an unloaded mission", rd.MissileStatus)
	}
}

func TestRecordRejectsSecondEntry(t *testing.T) {
	r, s := newTestRecorder(t)
	m := insertMission(t, s, 3)

	if err := r.Record(m.ID, &model.RecordedData{GLoadMax: 2}, nil); err != nil {
		t.Fatalf("first record: %v", err)
	}
	err := r.Record(m.ID, &model.RecordedData{GLoadMax: 2}, nil)
	if !errors.Is(err, ErrAlreadyRecorded) {
		t.Fatalf("second record err = %v, want ErrAlreadyRecorded", err)
	}
}

func TestRecordRejectsInvalidMetrics(t *testing.T) {
	r, s := newTestRecorder(t)
	m := insertMission(t, s, 4)

	rd := &model.RecordedData{GLoadMax: 1.0, GLoadMin: 2.0}
	if err := r.Record(m.ID, rd, nil); err == nil {
		t.Fatal("max G-load below min should be rejected")
	}
}

func TestRecordUnknownMission(t *testing.T) {
	r, _ := newTestRecorder(t)
	if err := r.Record(999, &model.RecordedData{}, nil); err == nil {
		t.Fatal("recording against an absent mission should fail")
	}
}

func TestSaveLoadoutUnknownMission(t *testing.T) {
	r, _ := newTestRecorder(t)
	if err := r.SaveLoadout(999, loadout.New()); err == nil {
		t.Fatal("saving a loadout for an absent mission should fail")
	}
}
