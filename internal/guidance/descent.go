package guidance

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// descend runs the terminal phase: lock the retrograde attitude, trigger
// staging once below the staging altitude, then declare touchdown when the
// altitude stops changing between consecutive polls. The vehicle offers no
// discrete "landed" signal; altitude-rate convergence is the heuristic.
func (c *Controller) descend(ctx context.Context) error {
	c.phase = PhaseEntryLock
	c.logger.Info("locking retrograde attitude for entry")

	if err := c.orienter.Acquire(ctx, vehicle.Retrograde); err != nil {
		return err
	}

	for {
		st, err := c.vehicle.Telemetry(ctx)
		if err != nil {
			return fmt.Errorf("reading telemetry: %w", err)
		}
		c.observer.OnState(st)

		if st.Altitude < c.cfg.StagingAltitude {
			c.logger.Info("staging altitude reached, activating next stage",
				slog.Float64("altitude", st.Altitude))

			if err = c.vehicle.ActivateNextStage(ctx); err != nil {
				return fmt.Errorf("activating next stage: %w", err)
			}
			if err = c.vehicle.DisengageAttitudeHold(ctx); err != nil {
				return fmt.Errorf("releasing attitude hold: %w", err)
			}
			break
		}

		if err = c.clock.Sleep(ctx, c.cfg.DescentPoll); err != nil {
			return err
		}
	}

	c.phase = PhaseDescentMonitor

	st, err := c.vehicle.Telemetry(ctx)
	if err != nil {
		return fmt.Errorf("reading telemetry: %w", err)
	}
	prev := st.Altitude

	for {
		if err = c.clock.Sleep(ctx, c.cfg.DescentPoll); err != nil {
			return err
		}

		st, err = c.vehicle.Telemetry(ctx)
		if err != nil {
			return fmt.Errorf("reading telemetry: %w", err)
		}
		c.observer.OnState(st)

		if math.Abs(st.Altitude-prev) < c.cfg.TouchdownDelta {
			c.logger.Info("touchdown detected",
				slog.Float64("altitude", st.Altitude),
				slog.Float64("lat", st.Latitude),
				slog.Float64("lon", st.Longitude))
			return nil
		}
		prev = st.Altitude
	}
}
