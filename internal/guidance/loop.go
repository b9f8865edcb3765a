package guidance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// Run executes the full guidance sequence: idle until the vehicle enters the
// approach window, converge the predicted landing point onto the target, and
// sequence the terminal descent. A run that exhausts its attempt budget is a
// normal outcome reported in the Result, not an error; errors are reserved
// for structural failures (no thrust, vehicle faults, cancellation).
func (c *Controller) Run(ctx context.Context) (*Result, error) {
	c.phase = PhaseAwaitingApproach
	if err := c.awaitApproach(ctx); err != nil {
		c.phase = PhaseAborted
		return nil, err
	}

	res, err := c.converge(ctx)
	if err != nil {
		c.phase = PhaseAborted
		return nil, err
	}

	if !res.Converged && !res.terminal {
		c.phase = PhaseAborted
		res.Phase = PhaseAborted
		c.logger.Warn("attempt budget exhausted, manual correction required",
			slog.Int("attempts", res.Attempts),
			slog.Float64("errLat", res.ErrLat),
			slog.Float64("errLon", res.ErrLon))
		return res, nil
	}

	if err = c.descend(ctx); err != nil {
		c.phase = PhaseAborted
		res.Phase = PhaseAborted
		return res, err
	}

	c.phase = PhaseLanded
	res.Phase = PhaseLanded
	return res, nil
}

// awaitApproach polls until the vehicle's angular distance to the target is
// inside the approach window on both axes. Outside that range prediction is
// meaningless and the controller only narrates position.
func (c *Controller) awaitApproach(ctx context.Context) error {
	for {
		st, err := c.vehicle.Telemetry(ctx)
		if err != nil {
			return fmt.Errorf("reading telemetry: %w", err)
		}
		c.observer.OnState(st)

		dLat := st.Latitude - c.cfg.targetLat()
		dLon := st.Longitude - c.cfg.targetLon()

		if math.Abs(dLat) <= c.cfg.ApproachWindow && math.Abs(dLon) <= c.cfg.ApproachWindow {
			c.logger.Info("vehicle in approach window, engaging correction loop",
				slog.Float64("lat", st.Latitude),
				slog.Float64("lon", st.Longitude))
			return nil
		}

		c.logger.Debug("outside approach window",
			slog.Float64("lat", st.Latitude),
			slog.Float64("lon", st.Longitude),
			slog.Float64("dLat", dLat),
			slog.Float64("dLon", dLon))

		if err = c.clock.Sleep(ctx, c.cfg.ApproachPoll); err != nil {
			return err
		}
	}
}

// converge runs bounded sample-predict-correct cycles until the predicted
// landing point is within tolerance of the target.
func (c *Controller) converge(ctx context.Context) (*Result, error) {
	c.phase = PhaseCorrecting

	res := &Result{}
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		res.Attempts = attempt

		attemptCtx, cancel := context.WithTimeout(ctx, c.cfg.AttemptTimeout)
		err := c.attempt(attemptCtx, attempt, res)
		cancel()

		if err != nil {
			// A timed-out attempt is absorbed and retried; the overall run
			// keeps the cancellation semantics of its own context.
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				c.logger.Warn("attempt timed out", slog.Int("attempt", attempt))
				continue
			}
			return nil, err
		}

		if res.Converged || res.terminal {
			return res, nil
		}
	}

	return res, nil
}

// attempt performs one correction cycle, updating res with the measured
// error and convergence state.
func (c *Controller) attempt(ctx context.Context, attempt int, res *Result) error {
	c.logger.Info("correction attempt", slog.Int("attempt", attempt))

	s, err := c.sampler.Sample(ctx, c.cfg.SampleInterval)
	if err != nil {
		return err
	}
	c.observer.OnSample(s)

	pred := Predict(s, c.cfg.TargetAltitude)

	if pred.Status == NotDescending {
		if s, pred, err = c.recoverDescent(ctx, attempt); err != nil {
			return err
		}
		c.phase = PhaseCorrecting
	}

	if pred.Status == BelowTarget {
		c.logger.Info("already below correction altitude, handing off to descent")
		res.terminal = true
		return nil
	}

	errLat := c.cfg.targetLat() - pred.Latitude
	errLon := c.cfg.targetLon() - pred.Longitude
	res.ErrLat = errLat
	res.ErrLon = errLon

	c.logger.Info("landing prediction",
		slog.Float64("predLat", pred.Latitude),
		slog.Float64("predLon", pred.Longitude),
		slog.Float64("errLat", errLat),
		slog.Float64("errLon", errLon),
		slog.Float64("timeToTarget", pred.TimeToTarget))

	if math.Abs(errLat) < c.cfg.MissTolerance && math.Abs(errLon) < c.cfg.MissTolerance {
		res.Converged = true
		c.observer.OnAttempt(AttemptRecord{
			Timestamp:    c.clock.Now(),
			Index:        attempt,
			PredictedLat: pred.Latitude,
			PredictedLon: pred.Longitude,
			ErrLat:       errLat,
			ErrLon:       errLon,
			Outcome:      OutcomeConverged,
		})
		c.logger.Info("predicted landing point within tolerance")
		return nil
	}

	dv := c.requiredImpulse(errLat, errLon, pred.TimeToTarget, s.Second.Latitude)
	tier := SelectTier(errLat, errLon)
	dir := SteerDirection(errLat, errLon, dv, c.cfg.ApproachWindow)

	if err = c.orienter.Acquire(ctx, dir); err != nil {
		return err
	}

	burn, err := c.actuator.Apply(ctx, dv, tier)
	if err != nil {
		return err
	}

	c.observer.OnAttempt(AttemptRecord{
		Timestamp:    c.clock.Now(),
		Index:        attempt,
		PredictedLat: pred.Latitude,
		PredictedLon: pred.Longitude,
		ErrLat:       errLat,
		ErrLon:       errLon,
		DeltaV:       dv.Magnitude(),
		Tier:         tier,
		BurnSeconds:  burn,
		Outcome:      OutcomeCorrected,
	})

	return nil
}

// recoverDescent forces a non-descending vehicle into a descending
// trajectory: lock the fixed downward attitude, fire a short fixed-power
// burn, resample and re-predict, up to MaxRecoveryBurns times.
func (c *Controller) recoverDescent(ctx context.Context, attempt int) (Sample, Prediction, error) {
	c.phase = PhaseRecoveryBurn

	for burn := 1; burn <= c.cfg.MaxRecoveryBurns; burn++ {
		c.logger.Warn("vehicle not descending, applying recovery burn",
			slog.Int("attempt", attempt),
			slog.Int("recoveryBurn", burn))

		if err := c.orienter.Acquire(ctx, vehicle.Retrograde); err != nil {
			return Sample{}, Prediction{}, err
		}

		if err := c.vehicle.SetThrottle(ctx, c.cfg.RecoveryThrottle); err != nil {
			return Sample{}, Prediction{}, fmt.Errorf("setting recovery throttle: %w", err)
		}
		if err := c.clock.Sleep(ctx, c.cfg.RecoveryBurn); err != nil {
			_ = c.vehicle.SetThrottle(context.WithoutCancel(ctx), 0)
			return Sample{}, Prediction{}, err
		}
		if err := c.vehicle.SetThrottle(ctx, 0); err != nil {
			return Sample{}, Prediction{}, fmt.Errorf("cutting recovery throttle: %w", err)
		}

		c.observer.OnAttempt(AttemptRecord{
			Timestamp:   c.clock.Now(),
			Index:       attempt,
			Tier:        c.cfg.RecoveryThrottle,
			BurnSeconds: c.cfg.RecoveryBurn.Seconds(),
			Outcome:     OutcomeRecovery,
		})

		s, err := c.sampler.Sample(ctx, c.cfg.SampleInterval)
		if err != nil {
			return Sample{}, Prediction{}, err
		}
		c.observer.OnSample(s)

		if pred := Predict(s, c.cfg.TargetAltitude); pred.Status != NotDescending {
			return s, pred, nil
		}
	}

	return Sample{}, Prediction{}, ErrStillAscending
}
