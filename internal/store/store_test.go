package store

import (
	"errors"
	"testing"
	"time"

	"loadtrack/internal/loadout"
	"loadtrack/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:", nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustInsertMission(t *testing.T, s *Store, aircraft string, flight int) *model.Mission {
	t.Helper()
	m := &model.Mission{
		Aircraft:     aircraft,
		FlightNumber: flight,
		Date:         time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Departure:    "08:00",
		Arrival:      "10:30",
	}
	if err := s.InsertMission(m); err != nil {
		t.Fatalf("insert mission: %v", err)
	}
	if m.ID == 0 {
		t.Fatal("insert mission did not set id")
	}
	return m
}

func TestAircraftLifecycle(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertAircraft(model.Aircraft{Serial: "MM7001"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ok, err := s.AircraftExists("MM7001")
	if err != nil || !ok {
		t.Fatalf("exists = %v, %v; want true", ok, err)
	}

	if err := s.UpdateAircraft(model.Aircraft{Serial: "MM7001"}); !errors.Is(err, ErrImmutableKey) {
		t.Fatalf("update error = %v, want ErrImmutableKey", err)
	}

	if err := s.DeleteAircraft("MM7001"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteAircraft("MM7001"); err == nil {
		t.Fatal("deleting an absent aircraft should fail")
	}
}

func TestWeaponOptionalMass(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertWeapon(model.Weapon{PartNumber: "W-100", Nomenclature: "AIM-X"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	w, err := s.WeaponByPartNumber("W-100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if w == nil || w.MassKg != nil {
		t.Fatalf("got %+v, want weapon with nil mass", w)
	}

	mass := 85.3
	if err := s.UpdateWeapon(model.Weapon{PartNumber: "W-100", Nomenclature: "AIM-X", MassKg: &mass}); err != nil {
		t.Fatalf("update: %v", err)
	}
	w, err = s.WeaponByPartNumber("W-100")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if w.MassKg == nil || *w.MassKg != 85.3 {
		t.Fatalf("mass = %v, want 85.3", w.MassKg)
	}
}

func TestLookupAbsentReturnsNilNil(t *testing.T) {
	s := openTestStore(t)

	w, err := s.WeaponByPartNumber("nope")
	if err != nil || w != nil {
		t.Fatalf("weapon = %v, %v; want nil, nil", w, err)
	}
	l, err := s.LauncherByPartNumber("nope")
	if err != nil || l != nil {
		t.Fatalf("launcher = %v, %v; want nil, nil", l, err)
	}
	m, err := s.MissionByID(999)
	if err != nil || m != nil {
		t.Fatalf("mission = %v, %v; want nil, nil", m, err)
	}
	rd, err := s.RecordedByFlight("MM7001", 1)
	if err != nil || rd != nil {
		t.Fatalf("recorded = %v, %v; want nil, nil", rd, err)
	}
	st, err := s.LauncherLifeStatus("L-1")
	if err != nil || st != nil {
		t.Fatalf("life status = %v, %v; want nil, nil", st, err)
	}
}

func TestMissionByFlightReturnsFirstMatch(t *testing.T) {
	s := openTestStore(t)

	first := mustInsertMission(t, s, "MM7001", 12)
	mustInsertMission(t, s, "MM7001", 12)

	got, err := s.MissionByFlight("MM7001", 12)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if got == nil || got.ID != first.ID {
		t.Fatalf("got %+v, want mission id %d", got, first.ID)
	}
}

func TestPendingMissions(t *testing.T) {
	s := openTestStore(t)

	mustInsertMission(t, s, "MM7001", 1)
	m2 := mustInsertMission(t, s, "MM7001", 2)
	mustInsertMission(t, s, "MM7002", 3)

	rd := &model.RecordedData{Aircraft: "MM7001", FlightNumber: 1, GLoadMax: 4.2, GLoadMin: -1.1}
	if err := s.InsertRecordedData(rd); err != nil {
		t.Fatalf("insert recorded: %v", err)
	}

	pending, err := s.PendingMissions("MM7001")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != m2.ID {
		t.Fatalf("pending = %+v, want only mission %d", pending, m2.ID)
	}
}

func TestSaveLoadLoadoutRoundTrip(t *testing.T) {
	s := openTestStore(t)
	m := mustInsertMission(t, s, "MM7001", 5)

	l := loadout.New()
	assign := func(pos string, a loadout.Assignment) {
		t.Helper()
		if err := l.Assign(pos, a); err != nil {
			t.Fatalf("assign %s: %v", pos, err)
		}
	}
	assign("TIP 1", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-1"})
	assign("O/B 3", loadout.Assignment{Kind: loadout.KindLauncher, PartNumber: "L-200", Serial: "SN-2"})
	assign("REA 11", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-3"})

	if err := s.SaveLoadout(m.ID, l); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadLoadout(m.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(l) {
		t.Fatalf("round trip mismatch: got %+v", got.Assignments())
	}

	// Saving the same loadout again must not change anything.
	if err := s.SaveLoadout(m.ID, l); err != nil {
		t.Fatalf("second save: %v", err)
	}
	got, err = s.LoadLoadout(m.ID)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if !got.Equal(l) {
		t.Fatalf("idempotence broken: got %+v", got.Assignments())
	}
}

func TestSaveLoadoutReplacesAll(t *testing.T) {
	s := openTestStore(t)
	m := mustInsertMission(t, s, "MM7001", 6)

	first := loadout.New()
	if err := first.Assign("TIP 1", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLoadout(m.ID, first); err != nil {
		t.Fatalf("first save: %v", err)
	}

	// A disjoint second save must fully displace the first.
	second := loadout.New()
	if err := second.Assign("CTR 5", loadout.Assignment{Kind: loadout.KindLauncher, PartNumber: "L-200", Serial: "SN-9"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLoadout(m.ID, second); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := s.LoadLoadout(m.ID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.Equal(second) {
		t.Fatalf("got %+v, want only the second loadout", got.Assignments())
	}
	if _, ok := got.Get("TIP 1"); ok {
		t.Fatal("stale assignment from the first save survived")
	}
}

func TestLoadLoadoutMissingTables(t *testing.T) {
	s := openTestStore(t)
	m := mustInsertMission(t, s, "MM7001", 7)

	for _, table := range []string{"historical_load", "historical_launcher"} {
		if _, err := s.db.Exec("DROP TABLE " + table); err != nil {
			t.Fatalf("drop %s: %v", table, err)
		}
	}

	l, err := s.LoadLoadout(m.ID)
	if !errors.Is(err, ErrNoLoadoutTables) {
		t.Fatalf("err = %v, want ErrNoLoadoutTables", err)
	}
	if l == nil || l.Len() != 0 {
		t.Fatalf("got %+v, want empty loadout", l)
	}

	// The save path recreates the tables on demand.
	fresh := loadout.New()
	if err := fresh.Assign("TIP 1", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLoadout(m.ID, fresh); err != nil {
		t.Fatalf("save after drop: %v", err)
	}
	l, err = s.LoadLoadout(m.ID)
	if err != nil {
		t.Fatalf("load after save: %v", err)
	}
	if !l.Equal(fresh) {
		t.Fatalf("got %+v after recreate", l.Assignments())
	}
}

func TestDeleteMissionCascades(t *testing.T) {
	s := openTestStore(t)
	m := mustInsertMission(t, s, "MM7001", 8)

	l := loadout.New()
	if err := l.Assign("TIP 1", loadout.Assignment{Kind: loadout.KindWeapon, PartNumber: "W-100", Serial: "SN-1"}); err != nil {
		t.Fatal(err)
	}
	if err := l.Assign("O/B 3", loadout.Assignment{Kind: loadout.KindLauncher, PartNumber: "L-200", Serial: "SN-2"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveLoadout(m.ID, l); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := s.DeleteMission(m.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	got, err := s.MissionByID(m.ID)
	if err != nil || got != nil {
		t.Fatalf("mission survived delete: %v, %v", got, err)
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM historical_load WHERE mission_id = ?`, m.ID).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("%d historical_load rows survived delete", n)
	}
}

func TestDeleteMissionSurvivesMissingRelatedTable(t *testing.T) {
	s := openTestStore(t)
	m := mustInsertMission(t, s, "MM7001", 9)

	if _, err := s.db.Exec(`DROP TABLE historical_load`); err != nil {
		t.Fatalf("drop: %v", err)
	}

	if err := s.DeleteMission(m.ID); err != nil {
		t.Fatalf("delete with a missing related table should succeed: %v", err)
	}
	got, err := s.MissionByID(m.ID)
	if err != nil || got != nil {
		t.Fatalf("mission survived delete: %v, %v", got, err)
	}
}

func TestLauncherLifeStatusView(t *testing.T) {
	s := openTestStore(t)

	if err := s.InsertLauncher(model.Launcher{PartNumber: "L-200", Nomenclature: "LAU-7", LifeHours: 10.0}); err != nil {
		t.Fatalf("insert launcher: %v", err)
	}

	// Two missions of 2.5h each on the same launcher serial, one fired.
	for i, flight := range []int{20, 21} {
		m := mustInsertMission(t, s, "MM7001", flight)
		l := loadout.New()
		if err := l.Assign("O/B 3", loadout.Assignment{Kind: loadout.KindLauncher, PartNumber: "L-200", Serial: "SN-77"}); err != nil {
			t.Fatal(err)
		}
		if err := s.SaveLoadout(m.ID, l); err != nil {
			t.Fatalf("save: %v", err)
		}
		status := "TIP 1:A_BORDO"
		if i == 0 {
			status = "TIP 1:SPARATO"
		}
		rd := &model.RecordedData{Aircraft: "MM7001", FlightNumber: flight, MissileStatus: status}
		if err := s.InsertRecordedData(rd); err != nil {
			t.Fatalf("insert recorded: %v", err)
		}
	}

	st, err := s.LauncherLifeStatus("SN-77")
	if err != nil {
		t.Fatalf("life status: %v", err)
	}
	if st == nil {
		t.Fatal("life status = nil, want a row")
	}
	if st.Missions != 2 || st.MissionsFired != 1 || st.MissionsNotFired != 1 {
		t.Fatalf("missions = %d/%d/%d, want 2/1/1", st.Missions, st.MissionsFired, st.MissionsNotFired)
	}
	if st.FlightHours != 5.0 {
		t.Fatalf("flight hours = %v, want 5.0", st.FlightHours)
	}
	// 5h of a 10h life leaves 50%.
	if st.ResidualLifePct != 50.0 {
		t.Fatalf("residual life = %v, want 50.0", st.ResidualLifePct)
	}
	if st.Nomenclature != "LAU-7" {
		t.Fatalf("nomenclature = %q", st.Nomenclature)
	}
}

func TestHasRecordedData(t *testing.T) {
	s := openTestStore(t)

	ok, err := s.HasRecordedData("MM7001", 1)
	if err != nil || ok {
		t.Fatalf("has = %v, %v; want false", ok, err)
	}
	rd := &model.RecordedData{Aircraft: "MM7001", FlightNumber: 1}
	if err := s.InsertRecordedData(rd); err != nil {
		t.Fatalf("insert: %v", err)
	}
	ok, err = s.HasRecordedData("MM7001", 1)
	if err != nil || !ok {
		t.Fatalf("has = %v, %v; want true", ok, err)
	}
}
