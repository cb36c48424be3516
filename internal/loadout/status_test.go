package loadout

import (
	"errors"
	"testing"
)

func TestStatusStringSingleFiredWeapon(t *testing.T) {
	l := New()
	if err := l.Assign("TIP 1", Assignment{Kind: KindWeapon, PartNumber: "AIM-9X", Serial: "SN-001"}); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if err := l.Assign("CTR 5", Assignment{Kind: KindLauncher, PartNumber: "LAU-7", Serial: "SN-002"}); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	f := NewFiredStatus()
	if err := f.Toggle(l, "TIP 1"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	got := StatusString(l, f)
	if got != "TIP 1:SPARATO" {
		t.Errorf("StatusString = %q, want %q", got, "TIP 1:SPARATO")
	}
}

func TestStatusStringEmptyLoadout(t *testing.T) {
	if got := StatusString(New(), NewFiredStatus()); got != "" {
		t.Errorf("StatusString = %q, want empty", got)
	}
}

func TestStatusStringAirframeOrder(t *testing.T) {
	l := New()
	// Assigned out of order; emission must follow airframe order.
	_ = l.Assign("TIP 2", Assignment{Kind: KindWeapon, PartNumber: "AIM-9X", Serial: "SN-003"})
	_ = l.Assign("O/B 3", Assignment{Kind: KindWeapon, PartNumber: "AIM-120", Serial: "SN-004"})
	_ = l.Assign("FWD 9", Assignment{Kind: KindWeapon, PartNumber: "GBU-12", Serial: "SN-005"})

	f := NewFiredStatus()
	if err := f.Toggle(l, "FWD 9"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	want := "O/B 3:A_BORDO; FWD 9:SPARATO; TIP 2:A_BORDO"
	if got := StatusString(l, f); got != want {
		t.Errorf("StatusString = %q, want %q", got, want)
	}
}

func TestStatusStringOmitsLaunchersAndREA11(t *testing.T) {
	l := New()
	_ = l.Assign("CTR 5", Assignment{Kind: KindLauncher, PartNumber: "LAU-7", Serial: "SN-010"})
	_ = l.Assign("REA 11", Assignment{Kind: KindWeapon, PartNumber: "GBU-12", Serial: "SN-011"})

	if got := StatusString(l, NewFiredStatus()); got != "" {
		t.Errorf("StatusString = %q, want empty", got)
	}
}

func TestToggleReversible(t *testing.T) {
	l := New()
	_ = l.Assign("I/B 7", Assignment{Kind: KindWeapon, PartNumber: "AIM-120", Serial: "SN-020"})
	f := NewFiredStatus()

	if err := f.Toggle(l, "I/B 7"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if !f.Fired("I/B 7") {
		t.Error("expected fired after first toggle")
	}
	if err := f.Toggle(l, "I/B 7"); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if f.Fired("I/B 7") {
		t.Error("expected still aboard after second toggle")
	}
}

func TestToggleRejections(t *testing.T) {
	l := New()
	_ = l.Assign("CTR 6", Assignment{Kind: KindLauncher, PartNumber: "LAU-7", Serial: "SN-030"})
	_ = l.Assign("REA 11", Assignment{Kind: KindWeapon, PartNumber: "GBU-12", Serial: "SN-031"})
	f := NewFiredStatus()

	if err := f.Toggle(l, "TIP 1"); !errors.Is(err, ErrNothingMounted) {
		t.Errorf("empty position: err = %v, want ErrNothingMounted", err)
	}
	if err := f.Toggle(l, "CTR 6"); !errors.Is(err, ErrLauncherUnfired) {
		t.Errorf("launcher position: err = %v, want ErrLauncherUnfired", err)
	}
	if err := f.Toggle(l, "REA 11"); !errors.Is(err, ErrNothingMounted) {
		t.Errorf("untracked position: err = %v, want ErrNothingMounted", err)
	}
}

func TestStatusStringNilFiredMap(t *testing.T) {
	l := New()
	_ = l.Assign("TIP 1", Assignment{Kind: KindWeapon, PartNumber: "AIM-9X", Serial: "SN-040"})
	if got := StatusString(l, nil); got != "TIP 1:A_BORDO" {
		t.Errorf("StatusString = %q, want %q", got, "TIP 1:A_BORDO")
	}
}
