package guidance

import "math"

// DeltaV is the required tangential velocity correction, m/s per axis.
type DeltaV struct {
	Lat float64
	Lon float64
}

// Magnitude returns the combined impulse size in m/s.
func (dv DeltaV) Magnitude() float64 {
	return math.Sqrt(dv.Lat*dv.Lat + dv.Lon*dv.Lon)
}

// RequiredDeltaV converts an angular error (degrees) into the tangential
// velocity change needed to close it over t seconds, on a spherical surface
// of the given radius. Errors inside the dead zone produce no correction to
// avoid chattering. For the longitude axis, pass the current latitude so the
// arc length is shortened by cos(lat); the gate on |lat| > 0.1 keeps the
// equatorial case exact and mirrors the latitude axis, which needs no cosine
// term. t must be positive; callers route the already-below-target case
// through the terminal phase instead.
func RequiredDeltaV(delta, t, lat, radius, deadZone float64) float64 {
	if math.Abs(delta) < deadZone {
		return 0
	}

	multiplier := math.Pi * radius / (180 * t)
	if math.Abs(lat) > 0.1 {
		multiplier *= math.Cos(lat * math.Pi / 180)
	}

	return delta * multiplier
}

// requiredImpulse computes both axes of the correction. The latitude axis
// never carries a cosine term, the longitude axis is scaled by the vehicle's
// current latitude.
func (c *Controller) requiredImpulse(errLat, errLon, t, currentLat float64) DeltaV {
	return DeltaV{
		Lat: RequiredDeltaV(errLat, t, 0, c.cfg.BodyRadius, c.cfg.DeadZone),
		Lon: RequiredDeltaV(errLon, t, currentLat, c.cfg.BodyRadius, c.cfg.DeadZone),
	}
}
