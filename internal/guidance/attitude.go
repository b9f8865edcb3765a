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

// alignState is the orientation sub-state machine: acquiring until the
// reported error converges, with a stale self-transition when the watchdog
// re-issues the command.
type alignState int

const (
	alignAcquiring alignState = iota
	alignStale
	alignAligned
)

// smallErrorCutoff is the per-axis error below which the commanded direction
// drops its magnitude component, so the vehicle is not rotated hard for a
// small correction. The branch is a deliberate discretization, not a missing
// interpolation.
const smallErrorCutoff = 10.0

// OrienterConfig holds the attitude acquisition tunables.
type OrienterConfig struct {
	// Tolerance is the alignment error below which acquisition completes,
	// degrees.
	Tolerance float64

	// Poll is the attitude error polling cadence.
	Poll time.Duration

	// Watchdog re-issues the unchanged direction command after this long
	// without convergence. It is a liveness nudge against a stuck
	// attitude-hold subsystem, not a failure path; it retries indefinitely
	// within the enclosing attempt's own timeout budget.
	Watchdog time.Duration
}

// WithOrienterLogger sets the logger for the orienter.
func WithOrienterLogger(logger *slog.Logger) func(*Orienter) {
	return func(o *Orienter) {
		o.logger = logger.With(slog.String("component", "orienter"))
	}
}

// Orienter commands and verifies the vehicle's thrust-vector heading before
// an impulse is applied.
type Orienter struct {
	vehicle vehicle.Vehicle
	clock   Clock
	cfg     OrienterConfig
	logger  *slog.Logger
}

func NewOrienter(v vehicle.Vehicle, clock Clock, cfg OrienterConfig, options ...func(*Orienter)) *Orienter {
	o := Orienter{
		vehicle: v,
		clock:   clock,
		cfg:     cfg,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(&o)
	}

	return &o
}

// Acquire commands the attitude-hold system toward dir and blocks until the
// reported alignment error is within tolerance. SAS is toggled off first as a
// bracketing reset so it does not fight the attitude hold. The hold is left
// engaged on return; the next acquisition re-commands from wherever the
// vehicle is.
func (o *Orienter) Acquire(ctx context.Context, dir vehicle.Direction) error {
	if err := o.vehicle.SetSAS(ctx, false); err != nil {
		return fmt.Errorf("resetting SAS: %w", err)
	}
	if err := o.vehicle.EngageAttitudeHold(ctx); err != nil {
		return fmt.Errorf("engaging attitude hold: %w", err)
	}
	if err := o.vehicle.SetAttitudeTarget(ctx, dir); err != nil {
		return fmt.Errorf("setting attitude target: %w", err)
	}

	state := alignAcquiring
	commandedAt := o.clock.Now()

	for {
		errDeg, err := o.vehicle.AttitudeError(ctx)
		if err != nil {
			return fmt.Errorf("reading attitude error: %w", err)
		}

		if errDeg <= o.cfg.Tolerance {
			state = alignAligned
			o.logger.Debug("attitude acquired",
				slog.Float64("errorDeg", errDeg),
				slog.Int("state", int(state)))
			return nil
		}

		if o.clock.Now().Sub(commandedAt) >= o.cfg.Watchdog {
			state = alignStale
			o.logger.Warn("attitude hold stalled, re-issuing command",
				slog.Float64("errorDeg", errDeg),
				slog.Float64("toleranceDeg", o.cfg.Tolerance))

			if err = o.vehicle.SetAttitudeTarget(ctx, dir); err != nil {
				return fmt.Errorf("re-issuing attitude target: %w", err)
			}

			commandedAt = o.clock.Now()
			state = alignAcquiring
		}

		if err = o.clock.Sleep(ctx, o.cfg.Poll); err != nil {
			return err
		}
	}
}

// SteerDirection derives the commanded thrust-vector direction from the
// correction. Lateral axes carry only the sign of the requested impulse
// (bang-bang steering); the magnitude component is zeroed when both errors
// are small and scaled by the dominant error otherwise.
func SteerDirection(errLat, errLon float64, dv DeltaV, approachWindow float64) vehicle.Direction {
	var dir vehicle.Direction

	if math.Abs(dv.Lat) > 0.1 {
		dir.North = sign(dv.Lat)
	}
	if math.Abs(dv.Lon) > 0.1 {
		dir.East = sign(dv.Lon)
	}

	if math.Abs(errLat) < smallErrorCutoff && math.Abs(errLon) < smallErrorCutoff {
		return dir
	}

	dominant := math.Max(math.Abs(errLat), math.Abs(errLon))
	dir.Up = math.Min(dominant/approachWindow, 1)
	return dir
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}
