package guidance

import (
	"context"
	"fmt"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// Sample holds two time-separated state snapshots and the rates derived from
// them by finite difference. Angular rates are in degrees per second,
// vertical rate in meters per second.
type Sample struct {
	First    vehicle.State
	Second   vehicle.State
	Interval time.Duration

	OmegaLat float64
	OmegaLon float64
	VAlt     float64
}

// Sampler derives trajectory rates from paired telemetry reads. The sampling
// interval is a real-time wait: angular rate cannot be measured faster than
// the vehicle actually moves, so noise in a single sample is tolerated and
// corrected by re-sampling on the next iteration.
type Sampler struct {
	vehicle vehicle.Vehicle
	clock   Clock
}

func NewSampler(v vehicle.Vehicle, clock Clock) *Sampler {
	return &Sampler{vehicle: v, clock: clock}
}

// Sample reads the vehicle state, waits dt, reads again and returns the
// finite-difference rates. A non-positive dt is a contract violation and
// returns ErrInvalidInterval.
func (s *Sampler) Sample(ctx context.Context, dt time.Duration) (Sample, error) {
	if dt <= 0 {
		return Sample{}, fmt.Errorf("%w: got %s", ErrInvalidInterval, dt)
	}

	first, err := s.vehicle.Telemetry(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("reading telemetry: %w", err)
	}

	if err = s.clock.Sleep(ctx, dt); err != nil {
		return Sample{}, err
	}

	second, err := s.vehicle.Telemetry(ctx)
	if err != nil {
		return Sample{}, fmt.Errorf("reading telemetry: %w", err)
	}

	secs := dt.Seconds()
	return Sample{
		First:    first,
		Second:   second,
		Interval: dt,
		OmegaLat: (second.Latitude - first.Latitude) / secs,
		OmegaLon: (second.Longitude - first.Longitude) / secs,
		VAlt:     (second.Altitude - first.Altitude) / secs,
	}, nil
}
