package vehicle

import "context"

// State is a read-only snapshot of the vehicle, refreshed on every telemetry
// call. Coordinates are in degrees, altitude is height above terrain in
// meters, mass in kilograms.
type State struct {
	Latitude  float64
	Longitude float64
	Altitude  float64
	Mass      float64
}

// Direction is a thrust-vector direction command in the vehicle's surface
// reference frame. Components are dimensionless; North and East carry only
// the sign of the requested lateral correction, Up carries a magnitude-scaled
// component for large corrections and zero for small ones.
type Direction struct {
	North float64
	East  float64
	Up    float64
}

// IsZero reports whether no direction is commanded.
func (d Direction) IsZero() bool {
	return d.North == 0 && d.East == 0 && d.Up == 0
}

// Retrograde is the fixed downward direction used for recovery burns and the
// terminal entry lock.
var Retrograde = Direction{Up: -1}

// Vehicle is the actuation and telemetry surface of the craft under control.
// Implementations are externally supplied (a remote-control protocol binding,
// or the in-process simulator in the sim package). All calls are synchronous;
// implementations must honor context cancellation on anything that blocks.
type Vehicle interface {
	// Telemetry returns a fresh state snapshot.
	Telemetry(ctx context.Context) (State, error)

	// AvailableThrust returns the summed available thrust in newtons across
	// all engines that are both active and have propellant. Zero means no
	// engine can fire.
	AvailableThrust(ctx context.Context) (float64, error)

	// SetAttitudeTarget commands the attitude-hold system toward dir.
	SetAttitudeTarget(ctx context.Context, dir Direction) error

	// AttitudeError returns the angle in degrees between the current facing
	// and the commanded attitude target.
	AttitudeError(ctx context.Context) (float64, error)

	EngageAttitudeHold(ctx context.Context) error
	DisengageAttitudeHold(ctx context.Context) error

	// SetThrottle sets the main throttle, fraction in [0, 1].
	SetThrottle(ctx context.Context, fraction float64) error

	// ActivateNextStage triggers the next staging event (e.g. parachutes).
	ActivateNextStage(ctx context.Context) error

	// SetSAS toggles the stability-assist system. The guidance loop uses it
	// as a bracketing reset around attitude-hold engagement.
	SetSAS(ctx context.Context, enabled bool) error
}
