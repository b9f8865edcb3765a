package guidance

import "math"

// PredictionStatus classifies a landing prediction.
type PredictionStatus int

const (
	// NotDescending means the vehicle is ascending or level; no ballistic
	// prediction exists. Recoverable via a recovery burn.
	NotDescending PredictionStatus = iota

	// BelowTarget means the vehicle is already at or below the target
	// altitude; the horizon is zero and the caller must hand off to the
	// terminal phase instead of correcting.
	BelowTarget

	// Descending is a valid prediction.
	Descending
)

// Prediction is an extrapolated landing coordinate. Latitude, Longitude and
// TimeToTarget are meaningful only when Status is Descending.
type Prediction struct {
	Status       PredictionStatus
	Latitude     float64
	Longitude    float64
	TimeToTarget float64
}

// Predict extrapolates the current angular rates forward to the moment the
// vehicle crosses targetAlt. This is a first-order constant-rate model: it
// is only trustworthy over a short horizon, which is why the loop re-predicts
// on every iteration instead of committing to one prediction.
func Predict(s Sample, targetAlt float64) Prediction {
	if s.VAlt >= 0 {
		return Prediction{Status: NotDescending}
	}

	cur := s.Second
	if cur.Altitude <= targetAlt {
		return Prediction{Status: BelowTarget}
	}

	t := (cur.Altitude - targetAlt) / math.Abs(s.VAlt)
	return Prediction{
		Status:       Descending,
		Latitude:     cur.Latitude + s.OmegaLat*t,
		Longitude:    cur.Longitude + s.OmegaLon*t,
		TimeToTarget: t,
	}
}
