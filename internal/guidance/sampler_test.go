package guidance

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

func TestSamplerSample(t *testing.T) {
	v := &scriptVehicle{
		states: []vehicle.State{
			{Latitude: 1.0, Longitude: -75.0, Altitude: 8000, Mass: 5000},
			{Latitude: 1.1, Longitude: -75.4, Altitude: 7800, Mass: 5000},
		},
	}
	clock := newFakeClock()
	s := NewSampler(v, clock)

	start := clock.Now()
	sample, err := s.Sample(context.Background(), 2*time.Second)
	if err != nil {
		t.Fatalf("sample failed: %v", err)
	}

	if sample.Interval != 2*time.Second {
		t.Errorf("expected interval 2s, got %s", sample.Interval)
	}
	if elapsed := clock.Now().Sub(start); elapsed != 2*time.Second {
		t.Errorf("expected the sampler to wait 2s, got %s", elapsed)
	}

	const eps = 1e-9
	if math.Abs(sample.OmegaLat-0.05) > eps {
		t.Errorf("expected latitude rate 0.05 deg/s, got %v", sample.OmegaLat)
	}
	if math.Abs(sample.OmegaLon-(-0.2)) > eps {
		t.Errorf("expected longitude rate -0.2 deg/s, got %v", sample.OmegaLon)
	}
	if math.Abs(sample.VAlt-(-100)) > eps {
		t.Errorf("expected altitude rate -100 m/s, got %v", sample.VAlt)
	}
}

func TestSamplerSample_InvalidInterval(t *testing.T) {
	s := NewSampler(&scriptVehicle{}, newFakeClock())

	for _, dt := range []time.Duration{0, -time.Second} {
		if _, err := s.Sample(context.Background(), dt); !errors.Is(err, ErrInvalidInterval) {
			t.Errorf("Sample(%s): expected ErrInvalidInterval, got %v", dt, err)
		}
	}
}

func TestSamplerSample_Cancellation(t *testing.T) {
	v := &scriptVehicle{
		states: []vehicle.State{{Altitude: 8000, Mass: 5000}},
	}
	s := NewSampler(v, newFakeClock())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Sample(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
