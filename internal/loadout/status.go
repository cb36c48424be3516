package loadout

import (
	"errors"
	"strings"
)

// Post-flight status tokens. These literals appear verbatim in stored
// reports and must not change.
const (
	StatusFired  = "SPARATO"
	StatusAboard = "A_BORDO"
)

// FiredStatus tracks which weapon positions were fired during a mission.
// It is transient session state; it is never persisted directly, only
// serialized into the missile-status string at save time.
type FiredStatus struct {
	fired map[string]bool
}

// NewFiredStatus returns a status tracker with every position not fired.
func NewFiredStatus() *FiredStatus {
	return &FiredStatus{fired: make(map[string]bool)}
}

var (
	ErrNothingMounted  = errors.New("no weapon loaded at position")
	ErrLauncherUnfired = errors.New("launchers cannot be fired")
)

// Toggle flips the fired flag for a position. Only trackable positions
// holding a weapon can be toggled; toggling again before save reverts the
// weapon to still-aboard.
func (f *FiredStatus) Toggle(l *Loadout, position string) error {
	a, ok := l.Get(position)
	if !ok || !Trackable(position) {
		return ErrNothingMounted
	}
	if a.Kind == KindLauncher {
		return ErrLauncherUnfired
	}
	f.fired[position] = !f.fired[position]
	return nil
}

// Fired reports whether the weapon at a position was marked fired.
func (f *FiredStatus) Fired(position string) bool {
	return f.fired[position]
}

// Reset clears all fired flags.
func (f *FiredStatus) Reset() {
	f.fired = make(map[string]bool)
}

// StatusString serializes the post-flight weapon state as
// "POSITION:STATE" entries joined by "; ", in airframe order. Positions
// holding a launcher, untrackable positions, and empty positions are
// omitted. An empty loadout yields the empty string.
func StatusString(l *Loadout, f *FiredStatus) string {
	var sb strings.Builder
	for _, p := range Positions {
		if !p.Trackable {
			continue
		}
		a, ok := l.Get(p.Code)
		if !ok || a.Kind != KindWeapon {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p.Code)
		sb.WriteByte(':')
		if f != nil && f.Fired(p.Code) {
			sb.WriteString(StatusFired)
		} else {
			sb.WriteString(StatusAboard)
		}
	}
	return sb.String()
}
