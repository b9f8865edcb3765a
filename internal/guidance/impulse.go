package guidance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// Throttle tiers, gain-scheduled by error magnitude. Finer tiers for smaller
// errors prevent overshoot as the vehicle converges.
const (
	TierCoarse = 0.5
	TierMedium = 0.1
	TierFine   = 0.01
)

// SelectTier picks the throttle tier for the given per-axis errors, degrees.
// It is a pure function of the dominant error magnitude: >= 10 degrees
// selects the coarse tier, >= 5 the medium tier, anything smaller the fine
// tier.
func SelectTier(errLat, errLon float64) float64 {
	dominant := math.Max(math.Abs(errLat), math.Abs(errLon))
	switch {
	case dominant >= 10:
		return TierCoarse
	case dominant >= 5:
		return TierMedium
	default:
		return TierFine
	}
}

// ActuatorConfig clamps burn durations. Floor keeps even tiny corrections at
// a nonzero duration; Cap bounds a single burn so one impulse cannot run
// away. Both in seconds.
type ActuatorConfig struct {
	Floor float64
	Cap   float64
}

// WithActuatorLogger sets the logger for the actuator.
func WithActuatorLogger(logger *slog.Logger) func(*Actuator) {
	return func(a *Actuator) {
		a.logger = logger.With(slog.String("component", "actuator"))
	}
}

// Actuator sizes and applies throttle-and-duration burns.
type Actuator struct {
	vehicle vehicle.Vehicle
	clock   Clock
	cfg     ActuatorConfig
	logger  *slog.Logger
}

func NewActuator(v vehicle.Vehicle, clock Clock, cfg ActuatorConfig, options ...func(*Actuator)) *Actuator {
	a := Actuator{
		vehicle: v,
		clock:   clock,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&a)
	}

	return &a
}

// BurnSeconds computes the clamped burn duration for the given impulse.
func (a *Actuator) BurnSeconds(mass, deltaV, thrust float64) float64 {
	burn := mass * deltaV / thrust
	return math.Max(a.cfg.Floor, math.Min(burn, a.cfg.Cap))
}

// Apply sizes a burn delivering dv at the given throttle tier and executes
// it: throttle up, hold for the clamped duration, cut to zero. It returns
// ErrNoThrust when no engine can fire; the caller decides whether that kills
// the whole run, but must not ignore it.
func (a *Actuator) Apply(ctx context.Context, dv DeltaV, tier float64) (burnSeconds float64, err error) {
	state, err := a.vehicle.Telemetry(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading telemetry: %w", err)
	}

	thrust, err := a.vehicle.AvailableThrust(ctx)
	if err != nil {
		return 0, fmt.Errorf("reading available thrust: %w", err)
	}
	if thrust == 0 {
		return 0, ErrNoThrust
	}

	burnSeconds = a.BurnSeconds(state.Mass, dv.Magnitude(), thrust)

	a.logger.Info("applying impulse",
		slog.Float64("deltaV", dv.Magnitude()),
		slog.Float64("throttle", tier),
		slog.Float64("burnSeconds", burnSeconds))

	if err = a.vehicle.SetThrottle(ctx, tier); err != nil {
		return 0, fmt.Errorf("setting throttle: %w", err)
	}

	if err = a.clock.Sleep(ctx, time.Duration(burnSeconds*float64(time.Second))); err != nil {
		// Cut the throttle even on cancellation; a stuck burn is worse than
		// an unfinished one.
		_ = a.vehicle.SetThrottle(context.WithoutCancel(ctx), 0)
		return 0, err
	}

	if err = a.vehicle.SetThrottle(ctx, 0); err != nil {
		return 0, fmt.Errorf("cutting throttle: %w", err)
	}

	return burnSeconds, nil
}
