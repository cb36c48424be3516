package fatigue

import (
	"math/rand"
	"testing"

	"loadtrack/internal/model"
)

func TestIndex(t *testing.T) {
	tests := []struct {
		hours  float64
		factor float64
		want   float64
	}{
		{10000, 1.0, 1.00},
		{0, 1.2, 0.00},
		{0, 0.8, 0.00},
		{5000, 1.0, 0.50},
		{5000, 0.8, 0.40},
		{20000, 0.9, 1.00}, // capped
		{1234, 1.0, 0.12},
		{1250, 1.0, 0.13}, // half rounds up
	}
	for _, tt := range tests {
		if got := Index(tt.hours, tt.factor); got != tt.want {
			t.Errorf("Index(%v, %v) = %v, want %v", tt.hours, tt.factor, got, tt.want)
		}
	}
}

func TestSimulatedReportBounds(t *testing.T) {
	m := NewSimulated(rand.New(rand.NewSource(1)))
	launcher := &model.Launcher{PartNumber: "LAU-7/A", Nomenclature: "Missile Launcher", LifeHours: 8000}

	for i := 0; i < 100; i++ {
		r := m.Report(launcher, "SN-100")
		if r.Index < 0 || r.Index > 1 {
			t.Fatalf("Index = %v, want within [0, 1]", r.Index)
		}
		if r.FlightHours < 1000 || r.FlightHours >= 5000 {
			t.Fatalf("FlightHours = %v, want within [1000, 5000)", r.FlightHours)
		}
		if len(r.PylonID) != 5 {
			t.Fatalf("PylonID = %q, want 5 digits", r.PylonID)
		}
		if r.Serial != "SN-100" || r.PartNumber != "LAU-7/A" {
			t.Fatalf("report identity = %q/%q, want SN-100/LAU-7/A", r.Serial, r.PartNumber)
		}
	}
}

func TestSimulatedReportReproducible(t *testing.T) {
	launcher := &model.Launcher{PartNumber: "LAU-7/A", Nomenclature: "Missile Launcher"}
	a := NewSimulated(rand.New(rand.NewSource(42))).Report(launcher, "SN-1")
	b := NewSimulated(rand.New(rand.NewSource(42))).Report(launcher, "SN-1")
	if a != b {
		t.Errorf("same seed produced different reports: %+v vs %+v", a, b)
	}
}
