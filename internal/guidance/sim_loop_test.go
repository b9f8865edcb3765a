package guidance

import (
	"context"
	"testing"

	"github.com/mkarpov/precision-landing/internal/vehicle/sim"
)

// TestRun_ClosedLoopWithSimVehicle drives the full controller against the
// kinematic simulator, with the simulation following the controller's fake
// clock so the whole flight runs without real waiting. The craft starts on a
// ballistic arc whose drift carries the landing point onto the target, so
// the first prediction already falls within tolerance and the run proceeds
// straight through staging to touchdown.
func TestRun_ClosedLoopWithSimVehicle(t *testing.T) {
	clock := newFakeClock()

	simCfg := sim.DefaultConfig()
	simCfg.Latitude = -0.2
	simCfg.Longitude = -74.8
	simCfg.OmegaLat = 0.0008
	simCfg.OmegaLon = 0.0019

	v, err := sim.New(simCfg, sim.WithTimeSource(clock.Now))
	if err != nil {
		t.Fatalf("failed to create sim vehicle: %v", err)
	}

	cfg := DefaultConfig()
	cfg.TargetLatitude = -0.096944
	cfg.TargetLongitude = -74.5575

	obs := &recordingObserver{}
	ctrl, err := New(v, cfg, WithClock(clock), WithObserver(obs))
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}

	res, err := ctrl.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if !res.Converged {
		t.Errorf("expected convergence, final error (%v, %v)", res.ErrLat, res.ErrLon)
	}
	if res.Phase != PhaseLanded {
		t.Errorf("expected phase %s, got %s", PhaseLanded, res.Phase)
	}

	if len(obs.attempts) == 0 {
		t.Fatal("expected attempt records")
	}
	if last := obs.attempts[len(obs.attempts)-1]; last.Outcome != OutcomeConverged {
		t.Errorf("expected final outcome %s, got %s", OutcomeConverged, last.Outcome)
	}

	// The vehicle must actually be on the ground.
	st, err := v.Telemetry(context.Background())
	if err != nil {
		t.Fatalf("telemetry failed: %v", err)
	}
	if st.Altitude != 0 {
		t.Errorf("expected touchdown at zero altitude, got %v", st.Altitude)
	}
}
