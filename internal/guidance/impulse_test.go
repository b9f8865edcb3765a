package guidance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

func TestSelectTier(t *testing.T) {
	testCases := []struct {
		name   string
		errLat float64
		errLon float64
		want   float64
	}{
		{"large error", 15, 0, TierCoarse},
		{"coarse boundary", 10, 0, TierCoarse},
		{"medium error", 0, 7, TierMedium},
		{"medium boundary", 5, 0, TierMedium},
		{"just below medium", 4.9, 0, TierFine},
		{"small error", 0.5, 0.5, TierFine},
		{"sign insensitive", -12, 0, TierCoarse},
		{"dominant axis wins", 0.1, -11, TierCoarse},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectTier(tc.errLat, tc.errLon); got != tc.want {
				t.Errorf("SelectTier(%v, %v) = %v, want %v", tc.errLat, tc.errLon, got, tc.want)
			}
		})
	}
}

func TestBurnSeconds_Clamp(t *testing.T) {
	a := NewActuator(&scriptVehicle{}, newFakeClock(), ActuatorConfig{Floor: 0.1, Cap: 5})

	testCases := []struct {
		name   string
		mass   float64
		deltaV float64
		thrust float64
		want   float64
	}{
		{"below floor", 5000, 0.1, 120_000, 0.1},
		{"above cap", 5000, 500, 120_000, 5},
		{"within clamp", 5000, 24, 120_000, 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := a.BurnSeconds(tc.mass, tc.deltaV, tc.thrust); got != tc.want {
				t.Errorf("BurnSeconds(%v, %v, %v) = %v, want %v", tc.mass, tc.deltaV, tc.thrust, got, tc.want)
			}
		})
	}
}

func TestActuatorApply(t *testing.T) {
	v := &scriptVehicle{
		thrust: 120_000,
		states: []vehicle.State{{Altitude: 5000, Mass: 5000}},
	}
	clock := newFakeClock()
	a := NewActuator(v, clock, ActuatorConfig{Floor: 0.1, Cap: 5})

	start := clock.Now()
	burn, err := a.Apply(context.Background(), DeltaV{Lat: 24}, TierMedium)
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if burn != 1 {
		t.Errorf("expected 1s burn, got %v", burn)
	}
	if len(v.throttles) != 2 || v.throttles[0] != TierMedium || v.throttles[1] != 0 {
		t.Errorf("expected throttle commands [%v 0], got %v", TierMedium, v.throttles)
	}
	if elapsed := clock.Now().Sub(start); elapsed != time.Second {
		t.Errorf("expected the burn to hold for 1s, got %s", elapsed)
	}
}

func TestActuatorApply_NoThrust(t *testing.T) {
	v := &scriptVehicle{
		thrust: 0,
		states: []vehicle.State{{Altitude: 5000, Mass: 5000}},
	}
	a := NewActuator(v, newFakeClock(), ActuatorConfig{Floor: 0.1, Cap: 5})

	_, err := a.Apply(context.Background(), DeltaV{Lat: 10}, TierCoarse)
	if !errors.Is(err, ErrNoThrust) {
		t.Fatalf("expected ErrNoThrust, got %v", err)
	}
	if len(v.throttles) != 0 {
		t.Errorf("no throttle command must be issued without thrust, got %v", v.throttles)
	}
}
