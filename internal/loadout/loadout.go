package loadout

import (
	"errors"
	"fmt"
)

// Kind distinguishes the two things a hardpoint can carry.
type Kind string

const (
	KindWeapon   Kind = "weapon"
	KindLauncher Kind = "launcher"
)

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindWeapon || k == KindLauncher
}

// Assignment is one item mounted at one position. The serial number is
// caller-supplied free text; it is not checked against any registry.
type Assignment struct {
	Kind       Kind   `json:"kind"`
	PartNumber string `json:"part_number"`
	Serial     string `json:"serial"`
}

// Loadout maps hardpoint positions to assigned items for one mission.
// At most one item per position; at most one position per serial number.
type Loadout struct {
	byPosition map[string]Assignment
}

// New returns an empty loadout.
func New() *Loadout {
	return &Loadout{byPosition: make(map[string]Assignment)}
}

var (
	ErrUnknownPosition = errors.New("unknown position")
	ErrInvalidKind     = errors.New("kind must be weapon or launcher")
	ErrEmptyPartNumber = errors.New("part number is required")
	ErrEmptySerial     = errors.New("serial number is required")
)

// Assign mounts an item at a position, overwriting any previous item
// there. A serial number already mounted at a different position is
// rejected: two hardpoints cannot carry the same physical store.
func (l *Loadout) Assign(position string, a Assignment) error {
	if !ValidPosition(position) {
		return fmt.Errorf("%w: %q", ErrUnknownPosition, position)
	}
	if !a.Kind.Valid() {
		return ErrInvalidKind
	}
	if a.PartNumber == "" {
		return ErrEmptyPartNumber
	}
	if a.Serial == "" {
		return ErrEmptySerial
	}
	for pos, existing := range l.byPosition {
		if pos != position && existing.Serial == a.Serial {
			return fmt.Errorf("serial %q already assigned to position %q", a.Serial, pos)
		}
	}
	l.byPosition[position] = a
	return nil
}

// Clear removes the item at a position. Clearing an empty position is a
// no-op.
func (l *Loadout) Clear(position string) {
	delete(l.byPosition, position)
}

// Get returns the assignment at a position, if any.
func (l *Loadout) Get(position string) (Assignment, bool) {
	a, ok := l.byPosition[position]
	return a, ok
}

// Len returns the number of occupied positions.
func (l *Loadout) Len() int {
	return len(l.byPosition)
}

// Assignments returns a copy of the occupied positions.
func (l *Loadout) Assignments() map[string]Assignment {
	out := make(map[string]Assignment, len(l.byPosition))
	for pos, a := range l.byPosition {
		out[pos] = a
	}
	return out
}

// Equal reports whether two loadouts carry the same items at the same
// positions.
func (l *Loadout) Equal(other *Loadout) bool {
	if l.Len() != other.Len() {
		return false
	}
	for pos, a := range l.byPosition {
		b, ok := other.byPosition[pos]
		if !ok || a != b {
			return false
		}
	}
	return true
}
