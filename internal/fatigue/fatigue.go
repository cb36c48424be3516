// Package fatigue computes the launcher fatigue index used by the
// monitoring report.
package fatigue

import (
	"fmt"
	"math"
	"math/rand"

	"loadtrack/internal/model"
)

// Index computes the fatigue index for a launcher: flight hours scaled
// against a 10000-hour reference life, adjusted by a usage factor, capped
// at 1.0 and rounded half-up to two decimals.
func Index(flightHours, factor float64) float64 {
	idx := math.Min(1.0, flightHours/10000.0*factor)
	return math.Floor(idx*100+0.5) / 100
}

// Model produces fatigue report data for a launcher. The simulated
// implementation below is a placeholder; a real model fed by sensor data
// can replace it without touching callers.
type Model interface {
	Report(launcher *model.Launcher, serial string) Report
}

// Report is the data set rendered by the fatigue monitoring report.
type Report struct {
	PylonID      string  `json:"pylon_id"`
	AircraftType string  `json:"aircraft_type"`
	Launcher     string  `json:"launcher"`
	PartNumber   string  `json:"part_number"`
	Serial       string  `json:"serial"`
	FlightHours  float64 `json:"flight_hours"`
	Index        float64 `json:"index"`
}

var aircraftTypes = []string{
	"Typhoon", "F-35", "F-16", "F/A-18", "Rafale",
	"Eurofighter", "Su-35", "MiG-29", "Gripen", "F-22",
}

// Simulated is the demonstration model. It draws flight hours and a usage
// factor from a pseudo-random source; pass a seeded *rand.Rand for
// reproducible output.
type Simulated struct {
	rng *rand.Rand
}

// NewSimulated returns a simulated model backed by rng.
func NewSimulated(rng *rand.Rand) *Simulated {
	return &Simulated{rng: rng}
}

// Report synthesizes pylon, airframe and usage data for the launcher and
// computes the index from them.
func (s *Simulated) Report(launcher *model.Launcher, serial string) Report {
	hours := float64(1000 + s.rng.Intn(4000))
	factor := 0.8 + s.rng.Float64()*0.4
	return Report{
		PylonID:      fmt.Sprintf("%05d", 10000+s.rng.Intn(90000)),
		AircraftType: aircraftTypes[s.rng.Intn(len(aircraftTypes))],
		Launcher:     launcher.Nomenclature,
		PartNumber:   launcher.PartNumber,
		Serial:       serial,
		FlightHours:  hours,
		Index:        Index(hours, factor),
	}
}
