package service_test

import (
	"math"
	"testing"

	"github.com/proximark/server/internal/attendance/service"
)

func TestDistanceMeters_SamePoint_Zero(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{12.000000, 77.000000},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		if d := service.DistanceMeters(p[0], p[1], p[0], p[1]); d != 0 {
			t.Errorf("DistanceMeters(%v, %v, same) = %v, want 0", p[0], p[1], d)
		}
	}
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	ab := service.DistanceMeters(12.0, 77.0, 12.1, 77.1)
	ba := service.DistanceMeters(12.1, 77.1, 12.0, 77.0)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("expected symmetric distance, got %v vs %v", ab, ba)
	}
}

func TestDistanceMeters_FiftyMeterFixture(t *testing.T) {
	// 0.00045 degrees of longitude at the equator is ~50 m — the boundary
	// of the geofence gate.
	d := service.DistanceMeters(0, 0, 0, 0.00045)
	if d < 49.5 || d > 50.5 {
		t.Errorf("expected ~50m, got %v", d)
	}
}

func TestDistanceMeters_ShortHop(t *testing.T) {
	// ~3.3 m east at latitude 12 — well inside the 50 m gate.
	d := service.DistanceMeters(12.000000, 77.000000, 12.000000, 77.000030)
	if d < 2 || d > 5 {
		t.Errorf("expected ~3.3m, got %v", d)
	}
}
