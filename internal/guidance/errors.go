package guidance

import "errors"

var (
	// ErrInvalidInterval is returned when a sampling interval is zero or
	// negative. It indicates a misconfigured loop, not a transient fault.
	ErrInvalidInterval = errors.New("guidance: sampling interval must be positive")

	// ErrNoThrust is returned when the summed available thrust is zero, i.e.
	// no engine is active with propellant. It must never be silently skipped.
	ErrNoThrust = errors.New("guidance: no available thrust")

	// ErrStillAscending is returned when the bounded recovery-burn procedure
	// fails to force a descending trajectory.
	ErrStillAscending = errors.New("guidance: vehicle still not descending after recovery burns")
)
