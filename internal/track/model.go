// Package track defines the read-back model of a recorded flight: the
// session, its position track and its correction attempts, as consumers such
// as the track plotter see them.
package track

import "time"

// Session describes one recorded guidance run.
type Session struct {
	ID          int64
	StartTime   time.Time
	VehicleType string
	VehicleID   string

	// Config is the JSON-serialized vehicle configuration captured at
	// session start, nil when none was recorded.
	Config *string
}

// Point is a single recorded position fix.
type Point struct {
	ID        int64
	Timestamp time.Time
	Latitude  float64
	Longitude float64
	Altitude  float64

	// VAlt is the measured altitude rate in m/s, nil for fixes taken outside
	// a finite-difference sample.
	VAlt *float64
}

// Attempt is a recorded correction attempt.
type Attempt struct {
	ID        int64
	Timestamp time.Time
	Index     int

	PredictedLat *float64
	PredictedLon *float64
	ErrLat       *float64
	ErrLon       *float64

	DeltaV      *float64
	Tier        *float64
	BurnSeconds *float64

	Outcome string
}
