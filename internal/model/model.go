// Package model defines the entities tracked by the maintenance office:
// aircraft, weapons, launchers, missions and post-flight recorded data.
package model

import (
	"errors"
	"fmt"
	"time"
)

// TimeLayout is the wall-clock format used for departure and arrival times.
const TimeLayout = "15:04"

// DateLayout is the calendar format used for mission dates.
const DateLayout = "2006-01-02"

// Aircraft is identified solely by its serial number.
type Aircraft struct {
	Serial string `json:"serial"`
}

// Weapon is a store that can be mounted on a hardpoint and expended.
type Weapon struct {
	PartNumber   string   `json:"part_number"`
	Nomenclature string   `json:"nomenclature"`
	Manufacturer string   `json:"manufacturer"`
	MassKg       *float64 `json:"mass_kg,omitempty"` // optional
}

// Launcher is a reusable rail/pylon adapter with a certified service life.
type Launcher struct {
	PartNumber   string  `json:"part_number"`
	Nomenclature string  `json:"nomenclature"`
	Manufacturer string  `json:"manufacturer"`
	LifeHours    float64 `json:"life_hours"`
}

// Mission is one flight of one aircraft. Flight numbers are not unique;
// lookups by (aircraft, flight number) return the first match.
type Mission struct {
	ID           int64     `json:"id"`
	Aircraft     string    `json:"aircraft"`
	FlightNumber int       `json:"flight_number"`
	Date         time.Time `json:"date"`
	Departure    string    `json:"departure"` // HH:MM
	Arrival      string    `json:"arrival"`   // HH:MM
}

// Validate checks the fields a data-entry form must reject before any
// storage call is made. Arrival equal to departure is accepted.
func (m *Mission) Validate() error {
	if m.Aircraft == "" {
		return errors.New("aircraft is required")
	}
	if m.FlightNumber <= 0 {
		return errors.New("flight number must be positive")
	}
	if m.Date.IsZero() {
		return errors.New("mission date is required")
	}
	dep, err := time.Parse(TimeLayout, m.Departure)
	if err != nil {
		return fmt.Errorf("departure time: %w", err)
	}
	arr, err := time.Parse(TimeLayout, m.Arrival)
	if err != nil {
		return fmt.Errorf("arrival time: %w", err)
	}
	if arr.Before(dep) {
		return errors.New("arrival time must not precede departure time")
	}
	return nil
}

// Duration returns the flight time implied by the departure and arrival
// fields. Call Validate first; malformed times return zero.
func (m *Mission) Duration() time.Duration {
	dep, err1 := time.Parse(TimeLayout, m.Departure)
	arr, err2 := time.Parse(TimeLayout, m.Arrival)
	if err1 != nil || err2 != nil {
		return 0
	}
	return arr.Sub(dep)
}

// RecordedData is the post-flight telemetry row captured once per
// (aircraft, flight number).
type RecordedData struct {
	ID            int64   `json:"id"`
	Aircraft      string  `json:"aircraft"`
	FlightNumber  int     `json:"flight_number"`
	GLoadMax      float64 `json:"gload_max"`
	GLoadMin      float64 `json:"gload_min"`
	AvgAltitude   int     `json:"avg_altitude"`
	MaxSpeed      int     `json:"max_speed"`
	MissileStatus string  `json:"missile_status"`
	Processed     bool    `json:"processed"`
}

// Validate rejects physically meaningless metric combinations at entry time.
func (r *RecordedData) Validate() error {
	if r.Aircraft == "" {
		return errors.New("aircraft is required")
	}
	if r.FlightNumber <= 0 {
		return errors.New("flight number must be positive")
	}
	if r.GLoadMax < r.GLoadMin {
		return errors.New("max G-load below min G-load")
	}
	if r.AvgAltitude < 0 {
		return errors.New("average altitude must not be negative")
	}
	if r.MaxSpeed < 0 {
		return errors.New("max speed must not be negative")
	}
	return nil
}

// LauncherLifeStatus is the per-serial aggregate derived from mission
// history. It is read from a view and never written directly.
type LauncherLifeStatus struct {
	Nomenclature     string  `json:"nomenclature"`
	PartNumber       string  `json:"part_number"`
	Serial           string  `json:"serial"`
	Missions         int     `json:"missions"`
	MissionsFired    int     `json:"missions_fired"`
	MissionsNotFired int     `json:"missions_not_fired"`
	FlightHours      float64 `json:"flight_hours"`
	ResidualLifePct  float64 `json:"residual_life_pct"`
}

// User is an office operator account. Authentication flows are out of
// scope here; the entity exists so sessions can carry an identity. The
// password hash is stored but never interpreted by this module.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FullName     string `json:"full_name"`
}
