// Package sim provides an in-process kinematic vehicle binding, used for dry
// runs of the guidance loop and for integration tests. The model is
// deliberately simple: point mass, constant gravity, attitude error closing
// at a fixed rate, thrust resolved along the commanded direction.
package sim

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// Vehicle is a simulated craft implementing the vehicle interface. State
// advances lazily: every call integrates the elapsed time since the previous
// call, so the simulation needs no background goroutine and follows whatever
// clock drives the caller.
type Vehicle struct {
	mu  sync.Mutex
	now func() time.Time

	cfg  Config
	last time.Time

	lat, lon, alt float64
	vAlt          float64
	omegaLat      float64 // deg/s
	omegaLon      float64

	throttle float64
	staged   bool

	holdEngaged bool
	sas         bool
	target      vehicle.Direction
	attErr      float64 // degrees to commanded attitude
}

// WithTimeSource overrides the wall clock, letting tests drive the
// simulation deterministically.
func WithTimeSource(now func() time.Time) func(*Vehicle) {
	return func(v *Vehicle) {
		v.now = now
	}
}

// New creates a simulated vehicle from the given initial conditions.
func New(cfg *Config, options ...func(*Vehicle)) (*Vehicle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating sim config: %w", err)
	}

	v := Vehicle{
		now:      time.Now,
		cfg:      *cfg,
		lat:      cfg.Latitude,
		lon:      cfg.Longitude,
		alt:      cfg.Altitude,
		vAlt:     cfg.VerticalSpeed,
		omegaLat: cfg.OmegaLat,
		omegaLon: cfg.OmegaLon,
	}

	for _, option := range options {
		option(&v)
	}

	v.last = v.now()
	return &v, nil
}

// advance integrates the model forward to the current time. Callers must
// hold the mutex.
func (v *Vehicle) advance() {
	now := v.now()
	dt := now.Sub(v.last).Seconds()
	v.last = now
	if dt <= 0 || v.alt <= 0 {
		return
	}

	// Attitude-hold closes pointing error at a fixed rate.
	if v.holdEngaged && v.attErr > 0 {
		v.attErr = math.Max(0, v.attErr-v.cfg.AlignRate*dt)
	}

	accel := 0.0
	if v.throttle > 0 && v.cfg.Thrust > 0 {
		accel = v.throttle * v.cfg.Thrust / v.cfg.Mass
	}

	// Thrust resolved along the commanded direction; lateral components
	// convert to angular acceleration on the body sphere.
	if accel > 0 {
		degPerMeter := 180 / (math.Pi * v.cfg.BodyRadius)
		v.omegaLat += accel * v.target.North * degPerMeter * dt
		v.omegaLon += accel * v.target.East * degPerMeter * dt
		v.vAlt += accel * v.target.Up * dt
	}

	v.vAlt -= v.cfg.Gravity * dt
	if v.staged {
		// Parachute drag: decay toward a slow terminal descent.
		terminal := -8.0
		v.vAlt += (terminal - v.vAlt) * math.Min(1, 0.5*dt)
	}

	v.lat += v.omegaLat * dt
	v.lon += v.omegaLon * dt
	v.alt += v.vAlt * dt

	if v.alt <= 0 {
		v.alt = 0
		v.vAlt = 0
		v.omegaLat = 0
		v.omegaLon = 0
	}
}

func (v *Vehicle) Telemetry(ctx context.Context) (vehicle.State, error) {
	if err := ctx.Err(); err != nil {
		return vehicle.State{}, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()

	return vehicle.State{
		Latitude:  v.lat,
		Longitude: v.lon,
		Altitude:  v.alt,
		Mass:      v.cfg.Mass,
	}, nil
}

func (v *Vehicle) AvailableThrust(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cfg.Thrust, nil
}

func (v *Vehicle) SetAttitudeTarget(ctx context.Context, dir vehicle.Direction) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()

	if dir != v.target {
		// A new target starts from a plausible worst-case pointing error.
		v.attErr = 90
	}
	v.target = dir
	return nil
}

func (v *Vehicle) AttitudeError(ctx context.Context) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	return v.attErr, nil
}

func (v *Vehicle) EngageAttitudeHold(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.holdEngaged = true
	return nil
}

func (v *Vehicle) DisengageAttitudeHold(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.holdEngaged = false
	return nil
}

func (v *Vehicle) SetThrottle(ctx context.Context, fraction float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fraction < 0 || fraction > 1 {
		return fmt.Errorf("throttle fraction %f out of [0, 1]", fraction)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	v.throttle = fraction
	return nil
}

func (v *Vehicle) ActivateNextStage(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.advance()
	v.staged = true
	return nil
}

func (v *Vehicle) SetSAS(ctx context.Context, enabled bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.sas = enabled
	return nil
}
