package guidance

import (
	"math"
	"testing"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

func TestPredict_NotDescending(t *testing.T) {
	testCases := []struct {
		name string
		vAlt float64
	}{
		{"ascending", 50},
		{"level flight", 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := Sample{
				Second: vehicle.State{Altitude: 5000},
				VAlt:   tc.vAlt,
			}

			pred := Predict(s, 1000)
			if pred.Status != NotDescending {
				t.Errorf("expected NotDescending, got %v", pred.Status)
			}
		})
	}
}

func TestPredict_BelowTarget(t *testing.T) {
	s := Sample{
		Second: vehicle.State{Altitude: 900},
		VAlt:   -50,
	}

	pred := Predict(s, 1000)
	if pred.Status != BelowTarget {
		t.Errorf("expected BelowTarget, got %v", pred.Status)
	}
}

func TestPredict_Extrapolation(t *testing.T) {
	// Descending at 100 m/s from 9 km toward a 1 km target: 80 seconds to
	// go, during which the drift rates carry the landing point forward.
	s := Sample{
		Second: vehicle.State{
			Latitude:  -0.5,
			Longitude: -74.0,
			Altitude:  9000,
		},
		Interval: time.Second,
		OmegaLat: 0.005,
		OmegaLon: 0.002,
		VAlt:     -100,
	}

	pred := Predict(s, 1000)
	if pred.Status != Descending {
		t.Fatalf("expected Descending, got %v", pred.Status)
	}

	const eps = 1e-9
	if math.Abs(pred.TimeToTarget-80) > eps {
		t.Errorf("expected 80s to target, got %v", pred.TimeToTarget)
	}
	if math.Abs(pred.Latitude-(-0.1)) > eps {
		t.Errorf("expected predicted latitude -0.1, got %v", pred.Latitude)
	}
	if math.Abs(pred.Longitude-(-73.84)) > eps {
		t.Errorf("expected predicted longitude -73.84, got %v", pred.Longitude)
	}
}

func TestPredict_ZeroDriftLandsStraightDown(t *testing.T) {
	s := Sample{
		Second: vehicle.State{Latitude: 1.5, Longitude: 2.5, Altitude: 3000},
		VAlt:   -60,
	}

	pred := Predict(s, 1000)
	if pred.Status != Descending {
		t.Fatalf("expected Descending, got %v", pred.Status)
	}
	if pred.Latitude != 1.5 || pred.Longitude != 2.5 {
		t.Errorf("expected landing at current coordinate, got (%v, %v)", pred.Latitude, pred.Longitude)
	}
}
