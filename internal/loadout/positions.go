// Package loadout models the per-mission assignment of weapons and
// launchers to aircraft hardpoint positions, the fired/aboard status of
// mounted weapons, and its serialized post-flight form.
package loadout

// Position is a fixed named mounting point on the aircraft.
type Position struct {
	Code string
	// Trackable positions have a fired/aboard slot in the post-flight
	// status string. REA 11 is assignable but carries no status slot.
	Trackable bool
}

// Positions lists the hardpoints in airframe order. The order is also the
// emission order of the status string.
var Positions = []Position{
	{Code: "TIP 1", Trackable: true},
	{Code: "O/B 3", Trackable: true},
	{Code: "CTR 5", Trackable: true},
	{Code: "I/B 7", Trackable: true},
	{Code: "REA 11", Trackable: false},
	{Code: "FWD 9", Trackable: true},
	{Code: "CL 13", Trackable: true},
	{Code: "FWD 10", Trackable: true},
	{Code: "REA 12", Trackable: true},
	{Code: "I/B 8", Trackable: true},
	{Code: "CTR 6", Trackable: true},
	{Code: "O/B 4", Trackable: true},
	{Code: "TIP 2", Trackable: true},
}

var positionIndex = func() map[string]Position {
	m := make(map[string]Position, len(Positions))
	for _, p := range Positions {
		m[p.Code] = p
	}
	return m
}()

// ValidPosition reports whether code names a hardpoint on this airframe.
func ValidPosition(code string) bool {
	_, ok := positionIndex[code]
	return ok
}

// Trackable reports whether the position has a fired/aboard status slot.
// Unknown positions are not trackable.
func Trackable(code string) bool {
	return positionIndex[code].Trackable
}
